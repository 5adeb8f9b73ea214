package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/aggregate"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
)

// UpdateSprints reconciles sprint race classifications for the request scope
func (s *Service) UpdateSprints(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "sprint_result"}

	races, err := s.client.SprintResults(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sprints sync: %w", err)
	}

	for _, race := range races {
		summary.Fetched += len(race.SprintResults)

		raceLog := s.logger.WithFields(logrus.Fields{
			"entity": "sprint_result",
			"season": race.Season,
			"round":  race.Round,
		})

		raceID, err := s.resolver.RaceID(ctx, parseInt(race.Season), parseInt(race.Round))
		if err != nil {
			for range race.SprintResults {
				s.recordMissingDep(summary, raceLog, err)
			}
			continue
		}

		for _, entry := range race.SprintResults {
			log := raceLog.WithField("driver_ref", entry.Driver.DriverID)

			driverID, constructorID, statusID, ok := s.resolveResultParents(ctx, summary, log, &entry)
			if !ok {
				continue
			}

			exists, err := s.repos.SprintResult.Exists(ctx, raceID, driverID, constructorID)
			if err != nil {
				summary.Failed++
				log.WithError(err).Error("Failed to check sprint result existence")
				continue
			}
			if exists {
				s.recordSkip(summary)
				continue
			}

			result := &models.SprintResult{
				ID:            uuid.New(),
				RaceID:        raceID,
				DriverID:      driverID,
				ConstructorID: constructorID,
				StatusID:      statusID,
				Number:        parseIntPtr(entry.Number),
				Grid:          parseInt(entry.Grid),
				Position:      parseIntPtr(entry.PositionText),
				PositionText:  entry.PositionText,
				PositionOrder: parseInt(entry.Position),
				Points:        parsePoints(entry.Points),
				Laps:          parseInt(entry.Laps),
			}
			if entry.Time != nil {
				result.Time = stringPtr(entry.Time.Time)
				result.Milliseconds = parseIntPtr(entry.Time.Millis)
			}
			if entry.FastestLap != nil {
				result.FastestLap = parseIntPtr(entry.FastestLap.Lap)
				if entry.FastestLap.Time != nil {
					result.FastestLapTime = stringPtr(entry.FastestLap.Time.Time)
				}
			}

			if s.recordInsert(summary, log, s.repos.SprintResult.Create(ctx, result)) {
				s.mirror(log, func() error { return s.indexer.IndexSprintResult(ctx, result) })
			}
		}
	}

	return s.finish(summary, start), nil
}

// UpdateResults reconciles race classifications for the request scope and
// derives per-race constructor results from the same payload. Two
// summaries come back: one for driver results, one for the aggregated
// constructor results.
func (s *Service) UpdateResults(ctx context.Context, req ergast.Request) ([]*Summary, error) {
	start := time.Now()
	resultSummary := &Summary{Entity: "result"}
	constructorSummary := &Summary{Entity: "constructor_result"}

	races, err := s.client.Results(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("results sync: %w", err)
	}

	for _, race := range races {
		resultSummary.Fetched += len(race.Results)

		raceLog := s.logger.WithFields(logrus.Fields{
			"entity": "result",
			"season": race.Season,
			"round":  race.Round,
		})

		raceID, err := s.resolver.RaceID(ctx, parseInt(race.Season), parseInt(race.Round))
		if err != nil {
			for range race.Results {
				s.recordMissingDep(resultSummary, raceLog, err)
			}
			continue
		}

		for _, entry := range race.Results {
			log := raceLog.WithField("driver_ref", entry.Driver.DriverID)

			driverID, constructorID, statusID, ok := s.resolveResultParents(ctx, resultSummary, log, &entry)
			if !ok {
				continue
			}

			exists, err := s.repos.Result.Exists(ctx, raceID, driverID, constructorID)
			if err != nil {
				resultSummary.Failed++
				log.WithError(err).Error("Failed to check result existence")
				continue
			}
			if exists {
				s.recordSkip(resultSummary)
				continue
			}

			result := &models.Result{
				ID:            uuid.New(),
				RaceID:        raceID,
				DriverID:      driverID,
				ConstructorID: constructorID,
				StatusID:      statusID,
				Number:        parseIntPtr(entry.Number),
				Grid:          parseInt(entry.Grid),
				Position:      parseIntPtr(entry.PositionText),
				PositionText:  entry.PositionText,
				PositionOrder: parseInt(entry.Position),
				Points:        parsePoints(entry.Points),
				Laps:          parseInt(entry.Laps),
			}
			if entry.Time != nil {
				result.Time = stringPtr(entry.Time.Time)
				result.Milliseconds = parseIntPtr(entry.Time.Millis)
			}
			if entry.FastestLap != nil {
				result.FastestLap = parseIntPtr(entry.FastestLap.Lap)
				result.Rank = parseIntPtr(entry.FastestLap.Rank)
				if entry.FastestLap.Time != nil {
					result.FastestLapTime = stringPtr(entry.FastestLap.Time.Time)
				}
				if entry.FastestLap.AverageSpeed != nil {
					result.FastestLapSpeed = stringPtr(entry.FastestLap.AverageSpeed.Speed)
				}
			}

			if s.recordInsert(resultSummary, log, s.repos.Result.Create(ctx, result)) {
				s.mirror(log, func() error { return s.indexer.IndexResult(ctx, result) })
			}
		}

		s.updateConstructorResults(ctx, constructorSummary, raceLog, raceID, race.Results)
	}

	s.finish(constructorSummary, start)
	return []*Summary{s.finish(resultSummary, start), constructorSummary}, nil
}

// updateConstructorResults derives and persists per-constructor point
// totals for one race's results
func (s *Service) updateConstructorResults(ctx context.Context, summary *Summary, raceLog *logrus.Entry, raceID uuid.UUID, results []ergast.ResultEntry) {
	totals := aggregate.SumPointsByConstructor(results)
	summary.Fetched += len(totals)

	for constructorRef, points := range totals {
		log := raceLog.WithFields(logrus.Fields{"entity": "constructor_result", "constructor_ref": constructorRef})

		constructorID, err := s.resolver.ConstructorID(ctx, constructorRef)
		if err != nil {
			s.recordMissingDep(summary, log, err)
			continue
		}

		exists, err := s.repos.ConstructorResult.Exists(ctx, raceID, constructorID)
		if err != nil {
			summary.Failed++
			log.WithError(err).Error("Failed to check constructor result existence")
			continue
		}
		if exists {
			s.recordSkip(summary)
			continue
		}

		result := &models.ConstructorResult{
			ID:            uuid.New(),
			RaceID:        raceID,
			ConstructorID: constructorID,
			Points:        points,
		}
		if s.recordInsert(summary, log, s.repos.ConstructorResult.Create(ctx, result)) {
			s.mirror(log, func() error { return s.indexer.IndexConstructorResult(ctx, result) })
		}
	}
}

// resolveResultParents resolves the driver, constructor and status a
// result depends on, folding failures into the summary
func (s *Service) resolveResultParents(ctx context.Context, summary *Summary, log *logrus.Entry, entry *ergast.ResultEntry) (driverID, constructorID, statusID uuid.UUID, ok bool) {
	driverID, err := s.resolver.DriverID(ctx, entry.Driver.DriverID)
	if err != nil {
		s.recordMissingDep(summary, log, err)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	constructorID, err = s.resolver.ConstructorID(ctx, entry.Constructor.ConstructorID)
	if err != nil {
		s.recordMissingDep(summary, log, err)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	statusID, err = s.resolver.StatusID(ctx, entry.Status)
	if err != nil {
		s.recordMissingDep(summary, log, err)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	return driverID, constructorID, statusID, true
}
