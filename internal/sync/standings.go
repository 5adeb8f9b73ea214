package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
)

// UpdateConstructorStandings reconciles the per-round constructor
// championship snapshots. The upstream serves one snapshot per request,
// so without an explicit round the pipeline walks every stored round of
// the season.
func (s *Service) UpdateConstructorStandings(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "constructor_standing"}

	if req.Season == 0 {
		return nil, fmt.Errorf("constructor standings sync requires a season")
	}

	rounds, err := s.seasonRounds(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("constructor standings sync: %w", err)
	}

	for _, round := range rounds {
		lists, err := s.client.ConstructorStandings(ctx, ergast.Request{Season: req.Season, Round: round, Limit: req.Limit})
		if err != nil {
			return nil, fmt.Errorf("constructor standings sync: %w", err)
		}

		for _, list := range lists {
			summary.Fetched += len(list.ConstructorStandings)

			listLog := s.logger.WithFields(logrus.Fields{
				"entity": "constructor_standing",
				"season": list.Season,
				"round":  list.Round,
			})

			raceID, err := s.resolver.RaceID(ctx, parseInt(list.Season), parseInt(list.Round))
			if err != nil {
				for range list.ConstructorStandings {
					s.recordMissingDep(summary, listLog, err)
				}
				continue
			}

			for _, entry := range list.ConstructorStandings {
				log := listLog.WithField("constructor_ref", entry.Constructor.ConstructorID)

				constructorID, err := s.resolver.ConstructorID(ctx, entry.Constructor.ConstructorID)
				if err != nil {
					s.recordMissingDep(summary, log, err)
					continue
				}

				exists, err := s.repos.ConstructorStanding.Exists(ctx, raceID, constructorID)
				if err != nil {
					summary.Failed++
					log.WithError(err).Error("Failed to check constructor standing existence")
					continue
				}
				if exists {
					s.recordSkip(summary)
					continue
				}

				standing := &models.ConstructorStanding{
					ID:            uuid.New(),
					RaceID:        raceID,
					ConstructorID: constructorID,
					Points:        parsePoints(entry.Points),
					Position:      parseIntPtr(entry.Position),
					PositionText:  stringPtr(entry.PositionText),
					Wins:          parseInt(entry.Wins),
				}
				if s.recordInsert(summary, log, s.repos.ConstructorStanding.Create(ctx, standing)) {
					s.mirror(log, func() error { return s.indexer.IndexConstructorStanding(ctx, standing) })
				}
			}
		}
	}

	return s.finish(summary, start), nil
}

// UpdateDriverStandings reconciles the per-round driver championship
// snapshots, walking rounds the same way constructor standings do.
func (s *Service) UpdateDriverStandings(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "driver_standing"}

	if req.Season == 0 {
		return nil, fmt.Errorf("driver standings sync requires a season")
	}

	rounds, err := s.seasonRounds(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("driver standings sync: %w", err)
	}

	for _, round := range rounds {
		lists, err := s.client.DriverStandings(ctx, ergast.Request{Season: req.Season, Round: round, Limit: req.Limit})
		if err != nil {
			return nil, fmt.Errorf("driver standings sync: %w", err)
		}

		for _, list := range lists {
			summary.Fetched += len(list.DriverStandings)

			listLog := s.logger.WithFields(logrus.Fields{
				"entity": "driver_standing",
				"season": list.Season,
				"round":  list.Round,
			})

			raceID, err := s.resolver.RaceID(ctx, parseInt(list.Season), parseInt(list.Round))
			if err != nil {
				for range list.DriverStandings {
					s.recordMissingDep(summary, listLog, err)
				}
				continue
			}

			for _, entry := range list.DriverStandings {
				log := listLog.WithField("driver_ref", entry.Driver.DriverID)

				driverID, err := s.resolver.DriverID(ctx, entry.Driver.DriverID)
				if err != nil {
					s.recordMissingDep(summary, log, err)
					continue
				}

				exists, err := s.repos.DriverStanding.Exists(ctx, raceID, driverID)
				if err != nil {
					summary.Failed++
					log.WithError(err).Error("Failed to check driver standing existence")
					continue
				}
				if exists {
					s.recordSkip(summary)
					continue
				}

				standing := &models.DriverStanding{
					ID:           uuid.New(),
					RaceID:       raceID,
					DriverID:     driverID,
					Points:       parsePoints(entry.Points),
					Position:     parseIntPtr(entry.Position),
					PositionText: stringPtr(entry.PositionText),
					Wins:         parseInt(entry.Wins),
				}
				if s.recordInsert(summary, log, s.repos.DriverStanding.Create(ctx, standing)) {
					s.mirror(log, func() error { return s.indexer.IndexDriverStanding(ctx, standing) })
				}
			}
		}
	}

	return s.finish(summary, start), nil
}
