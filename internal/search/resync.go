package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/f1sync/internal/models"
)

// Resync rebuilds every search index from the store. Parent entities are
// loaded once into lookup maps so child documents don't need per-record
// queries; race documents are assembled once and reused inside every
// race-child document. A child row whose parent cannot be found is
// logged and skipped rather than aborting the rebuild.
func (i *Indexer) Resync(ctx context.Context) error {
	seasons, err := i.repos.Season.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	seasonByID := make(map[uuid.UUID]*models.Season, len(seasons))
	for _, season := range seasons {
		seasonByID[season.ID] = season
		if err := i.IndexSeason(ctx, season); err != nil {
			return err
		}
	}

	statuses, err := i.repos.Status.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	statusByID := make(map[uuid.UUID]*models.Status, len(statuses))
	for _, status := range statuses {
		statusByID[status.ID] = status
		if err := i.IndexStatus(ctx, status); err != nil {
			return err
		}
	}

	drivers, err := i.repos.Driver.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	driverByID := make(map[uuid.UUID]*models.Driver, len(drivers))
	for _, driver := range drivers {
		driverByID[driver.ID] = driver
		if err := i.IndexDriver(ctx, driver); err != nil {
			return err
		}
	}

	constructors, err := i.repos.Constructor.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	constructorByID := make(map[uuid.UUID]*models.Constructor, len(constructors))
	for _, constructor := range constructors {
		constructorByID[constructor.ID] = constructor
		if err := i.IndexConstructor(ctx, constructor); err != nil {
			return err
		}
	}

	circuits, err := i.repos.Circuit.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	circuitByID := make(map[uuid.UUID]*models.Circuit, len(circuits))
	for _, circuit := range circuits {
		circuitByID[circuit.ID] = circuit
		if err := i.IndexCircuit(ctx, circuit); err != nil {
			return err
		}
	}

	races, err := i.repos.Race.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	raceDocByID := make(map[uuid.UUID]RaceDocument, len(races))
	for _, race := range races {
		circuit, season := circuitByID[race.CircuitID], seasonByID[race.SeasonID]
		if circuit == nil || season == nil {
			i.logger.WithField("race_id", race.ID).Warn("Skipping race document with unknown circuit or season")
			continue
		}
		doc := NewRaceDocument(race, circuit, season)
		raceDocByID[race.ID] = doc
		if err := i.index(ctx, "races", race.ID.String(), doc); err != nil {
			return err
		}
	}

	qualifying, err := i.repos.Qualifying.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, q := range qualifying {
		raceDoc, ok := raceDocByID[q.RaceID]
		driver, constructor := driverByID[q.DriverID], constructorByID[q.ConstructorID]
		if !ok || driver == nil || constructor == nil {
			i.logger.WithField("id", q.ID).Warn("Skipping qualifying document with unknown parent")
			continue
		}
		if err := i.index(ctx, "qualifying", q.ID.String(), NewQualifyingDocument(q, raceDoc, driver, constructor)); err != nil {
			return err
		}
	}

	lapTimes, err := i.repos.LapTime.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, lt := range lapTimes {
		raceDoc, ok := raceDocByID[lt.RaceID]
		driver := driverByID[lt.DriverID]
		if !ok || driver == nil {
			i.logger.WithField("id", lt.ID).Warn("Skipping lap time document with unknown parent")
			continue
		}
		if err := i.index(ctx, "lap_times", lt.ID.String(), NewLapTimeDocument(lt, raceDoc, driver)); err != nil {
			return err
		}
	}

	pitStops, err := i.repos.PitStop.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, ps := range pitStops {
		raceDoc, ok := raceDocByID[ps.RaceID]
		driver := driverByID[ps.DriverID]
		if !ok || driver == nil {
			i.logger.WithField("id", ps.ID).Warn("Skipping pit stop document with unknown parent")
			continue
		}
		if err := i.index(ctx, "pit_stops", ps.ID.String(), NewPitStopDocument(ps, raceDoc, driver)); err != nil {
			return err
		}
	}

	results, err := i.repos.Result.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, res := range results {
		raceDoc, ok := raceDocByID[res.RaceID]
		driver := driverByID[res.DriverID]
		constructor, status := constructorByID[res.ConstructorID], statusByID[res.StatusID]
		if !ok || driver == nil || constructor == nil || status == nil {
			i.logger.WithField("id", res.ID).Warn("Skipping result document with unknown parent")
			continue
		}
		if err := i.index(ctx, "results", res.ID.String(), NewResultDocument(res, raceDoc, driver, constructor, status)); err != nil {
			return err
		}
	}

	sprintResults, err := i.repos.SprintResult.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, res := range sprintResults {
		raceDoc, ok := raceDocByID[res.RaceID]
		driver := driverByID[res.DriverID]
		constructor, status := constructorByID[res.ConstructorID], statusByID[res.StatusID]
		if !ok || driver == nil || constructor == nil || status == nil {
			i.logger.WithField("id", res.ID).Warn("Skipping sprint result document with unknown parent")
			continue
		}
		if err := i.index(ctx, "sprint_results", res.ID.String(), NewSprintResultDocument(res, raceDoc, driver, constructor, status)); err != nil {
			return err
		}
	}

	constructorResults, err := i.repos.ConstructorResult.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, cr := range constructorResults {
		raceDoc, ok := raceDocByID[cr.RaceID]
		constructor := constructorByID[cr.ConstructorID]
		if !ok || constructor == nil {
			i.logger.WithField("id", cr.ID).Warn("Skipping constructor result document with unknown parent")
			continue
		}
		if err := i.index(ctx, "constructor_results", cr.ID.String(), NewConstructorResultDocument(cr, raceDoc, constructor)); err != nil {
			return err
		}
	}

	constructorStandings, err := i.repos.ConstructorStanding.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, cs := range constructorStandings {
		raceDoc, ok := raceDocByID[cs.RaceID]
		constructor := constructorByID[cs.ConstructorID]
		if !ok || constructor == nil {
			i.logger.WithField("id", cs.ID).Warn("Skipping constructor standing document with unknown parent")
			continue
		}
		if err := i.index(ctx, "constructor_standings", cs.ID.String(), NewConstructorStandingDocument(cs, raceDoc, constructor)); err != nil {
			return err
		}
	}

	driverStandings, err := i.repos.DriverStanding.List(ctx)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}
	for _, ds := range driverStandings {
		raceDoc, ok := raceDocByID[ds.RaceID]
		driver := driverByID[ds.DriverID]
		if !ok || driver == nil {
			i.logger.WithField("id", ds.ID).Warn("Skipping driver standing document with unknown parent")
			continue
		}
		if err := i.index(ctx, "driver_standings", ds.ID.String(), NewDriverStandingDocument(ds, raceDoc, driver)); err != nil {
			return err
		}
	}

	i.logger.Info("Search index rebuild complete")
	return nil
}
