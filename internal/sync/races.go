package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
)

// UpdateRaces reconciles the race schedule for the request scope.
// Seasons and circuits must be synced first; a race whose season or
// circuit is absent is skipped as a missing dependency.
func (s *Service) UpdateRaces(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "race"}

	entries, err := s.client.Races(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("races sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{
			"entity": "race",
			"season": entry.Season,
			"round":  entry.Round,
			"name":   entry.RaceName,
		})

		year := parseInt(entry.Season)
		round := parseInt(entry.Round)
		date := parseDatePtr(entry.Date)
		if year == 0 || round == 0 || date == nil {
			summary.Failed++
			log.Error("Malformed race identity")
			continue
		}

		seasonID, err := s.resolver.SeasonID(ctx, year)
		if err != nil {
			s.recordMissingDep(summary, log, err)
			continue
		}

		circuitID, err := s.resolver.CircuitID(ctx, entry.Circuit.CircuitID)
		if err != nil {
			s.recordMissingDep(summary, log, err)
			continue
		}

		_, err = s.repos.Race.GetByNaturalKey(ctx, year, round, entry.RaceName, *date)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check race existence")
			continue
		}

		race := &models.Race{
			ID:        uuid.New(),
			SeasonID:  seasonID,
			Year:      year,
			Round:     round,
			CircuitID: circuitID,
			Name:      entry.RaceName,
			Date:      *date,
			Time:      stringPtr(entry.Time),
			URL:       stringPtr(entry.URL),
		}
		applySessions(race, &entry)

		if s.recordInsert(summary, log, s.repos.Race.Create(ctx, race)) {
			s.mirror(log, func() error { return s.indexer.IndexRace(ctx, race) })
		}
	}

	return s.finish(summary, start), nil
}

// applySessions copies the auxiliary session schedule onto the race
func applySessions(race *models.Race, entry *ergast.RaceEntry) {
	if entry.FirstPractice != nil {
		race.FP1Date = parseDatePtr(entry.FirstPractice.Date)
		race.FP1Time = stringPtr(entry.FirstPractice.Time)
	}
	if entry.SecondPractice != nil {
		race.FP2Date = parseDatePtr(entry.SecondPractice.Date)
		race.FP2Time = stringPtr(entry.SecondPractice.Time)
	}
	if entry.ThirdPractice != nil {
		race.FP3Date = parseDatePtr(entry.ThirdPractice.Date)
		race.FP3Time = stringPtr(entry.ThirdPractice.Time)
	}
	if entry.Qualifying != nil {
		race.QualiDate = parseDatePtr(entry.Qualifying.Date)
		race.QualiTime = stringPtr(entry.Qualifying.Time)
	}
	if entry.Sprint != nil {
		race.SprintDate = parseDatePtr(entry.Sprint.Date)
		race.SprintTime = stringPtr(entry.Sprint.Time)
	}
}
