package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/timing"
)

// UpdateQualifying reconciles qualifying classifications for the request
// scope. Races, drivers and constructors must be synced first.
func (s *Service) UpdateQualifying(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "qualifying"}

	races, err := s.client.Qualifying(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("qualifying sync: %w", err)
	}

	for _, race := range races {
		summary.Fetched += len(race.QualifyingResults)

		raceLog := s.logger.WithFields(logrus.Fields{
			"entity": "qualifying",
			"season": race.Season,
			"round":  race.Round,
		})

		raceID, err := s.resolver.RaceID(ctx, parseInt(race.Season), parseInt(race.Round))
		if err != nil {
			for range race.QualifyingResults {
				s.recordMissingDep(summary, raceLog, err)
			}
			continue
		}

		for _, entry := range race.QualifyingResults {
			log := raceLog.WithField("driver_ref", entry.Driver.DriverID)

			driverID, err := s.resolver.DriverID(ctx, entry.Driver.DriverID)
			if err != nil {
				s.recordMissingDep(summary, log, err)
				continue
			}

			constructorID, err := s.resolver.ConstructorID(ctx, entry.Constructor.ConstructorID)
			if err != nil {
				s.recordMissingDep(summary, log, err)
				continue
			}

			exists, err := s.repos.Qualifying.Exists(ctx, raceID, driverID, constructorID)
			if err != nil {
				summary.Failed++
				log.WithError(err).Error("Failed to check qualifying existence")
				continue
			}
			if exists {
				s.recordSkip(summary)
				continue
			}

			qualifying := &models.Qualifying{
				ID:            uuid.New(),
				RaceID:        raceID,
				DriverID:      driverID,
				ConstructorID: constructorID,
				Number:        parseInt(entry.Number),
				Position:      parseIntPtr(entry.Position),
				Q1:            stringPtr(entry.Q1),
				Q2:            stringPtr(entry.Q2),
				Q3:            stringPtr(entry.Q3),
			}
			if s.recordInsert(summary, log, s.repos.Qualifying.Create(ctx, qualifying)) {
				s.mirror(log, func() error { return s.indexer.IndexQualifying(ctx, qualifying) })
			}
		}
	}

	return s.finish(summary, start), nil
}

// UpdateLapTimes reconciles per-lap timings. The upstream serves lap data
// one round at a time, so without an explicit round the pipeline walks
// every stored round of the season; the race schedule must be synced
// first.
func (s *Service) UpdateLapTimes(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "lap_time"}

	if req.Season == 0 {
		return nil, fmt.Errorf("lap times sync requires a season")
	}

	rounds, err := s.seasonRounds(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lap times sync: %w", err)
	}

	for _, round := range rounds {
		races, err := s.client.Laps(ctx, ergast.Request{Season: req.Season, Round: round, Limit: req.Limit})
		if err != nil {
			return nil, fmt.Errorf("lap times sync: %w", err)
		}

		for _, race := range races {
			raceLog := s.logger.WithFields(logrus.Fields{
				"entity": "lap_time",
				"season": race.Season,
				"round":  race.Round,
			})

			raceID, err := s.resolver.RaceID(ctx, parseInt(race.Season), parseInt(race.Round))
			if err != nil {
				for _, lap := range race.Laps {
					summary.Fetched += len(lap.Timings)
					for range lap.Timings {
						s.recordMissingDep(summary, raceLog, err)
					}
				}
				continue
			}

			for _, lap := range race.Laps {
				summary.Fetched += len(lap.Timings)
				lapNumber := parseInt(lap.Number)

				for _, tm := range lap.Timings {
					log := raceLog.WithFields(logrus.Fields{"driver_ref": tm.DriverID, "lap": lapNumber})

					driverID, err := s.resolver.DriverID(ctx, tm.DriverID)
					if err != nil {
						s.recordMissingDep(summary, log, err)
						continue
					}

					exists, err := s.repos.LapTime.Exists(ctx, raceID, driverID, lapNumber)
					if err != nil {
						summary.Failed++
						log.WithError(err).Error("Failed to check lap time existence")
						continue
					}
					if exists {
						s.recordSkip(summary)
						continue
					}

					ms, display := timing.ParseElapsed(tm.Time)
					lapTime := &models.LapTime{
						ID:           uuid.New(),
						RaceID:       raceID,
						DriverID:     driverID,
						Lap:          lapNumber,
						Position:     parseIntPtr(tm.Position),
						Time:         display,
						Milliseconds: ms,
					}
					if s.recordInsert(summary, log, s.repos.LapTime.Create(ctx, lapTime)) {
						s.mirror(log, func() error { return s.indexer.IndexLapTime(ctx, lapTime) })
					}
				}
			}
		}
	}

	return s.finish(summary, start), nil
}

// UpdatePitStops reconciles pit stops, walking rounds the same way lap
// times do. The stop's wall-clock time is kept verbatim; the duration is
// normalized to milliseconds.
func (s *Service) UpdatePitStops(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "pit_stop"}

	if req.Season == 0 {
		return nil, fmt.Errorf("pit stops sync requires a season")
	}

	rounds, err := s.seasonRounds(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pit stops sync: %w", err)
	}

	for _, round := range rounds {
		races, err := s.client.PitStops(ctx, ergast.Request{Season: req.Season, Round: round, Limit: req.Limit})
		if err != nil {
			return nil, fmt.Errorf("pit stops sync: %w", err)
		}

		for _, race := range races {
			summary.Fetched += len(race.PitStops)

			raceLog := s.logger.WithFields(logrus.Fields{
				"entity": "pit_stop",
				"season": race.Season,
				"round":  race.Round,
			})

			raceID, err := s.resolver.RaceID(ctx, parseInt(race.Season), parseInt(race.Round))
			if err != nil {
				for range race.PitStops {
					s.recordMissingDep(summary, raceLog, err)
				}
				continue
			}

			for _, entry := range race.PitStops {
				stop := parseInt(entry.Stop)
				log := raceLog.WithFields(logrus.Fields{"driver_ref": entry.DriverID, "stop": stop})

				driverID, err := s.resolver.DriverID(ctx, entry.DriverID)
				if err != nil {
					s.recordMissingDep(summary, log, err)
					continue
				}

				exists, err := s.repos.PitStop.Exists(ctx, raceID, driverID, stop)
				if err != nil {
					summary.Failed++
					log.WithError(err).Error("Failed to check pit stop existence")
					continue
				}
				if exists {
					s.recordSkip(summary)
					continue
				}

				ms, duration := timing.ParseElapsed(entry.Duration)
				pitStop := &models.PitStop{
					ID:           uuid.New(),
					RaceID:       raceID,
					DriverID:     driverID,
					Stop:         stop,
					Lap:          parseInt(entry.Lap),
					Time:         stringPtr(entry.Time),
					Duration:     duration,
					Milliseconds: ms,
				}
				if s.recordInsert(summary, log, s.repos.PitStop.Create(ctx, pitStop)) {
					s.mirror(log, func() error { return s.indexer.IndexPitStop(ctx, pitStop) })
				}
			}
		}
	}

	return s.finish(summary, start), nil
}
