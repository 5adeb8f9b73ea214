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

// UpdateSeasons reconciles the championship season list
func (s *Service) UpdateSeasons(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "season"}

	entries, err := s.client.Seasons(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("seasons sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{"entity": "season", "year": entry.Season})

		year := parseInt(entry.Season)
		if year == 0 {
			summary.Failed++
			log.Error("Malformed season year")
			continue
		}

		_, err := s.repos.Season.GetByYear(ctx, year)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check season existence")
			continue
		}

		season := &models.Season{
			ID:   uuid.New(),
			Year: year,
			URL:  entry.URL,
		}
		if s.recordInsert(summary, log, s.repos.Season.Create(ctx, season)) {
			s.mirror(log, func() error { return s.indexer.IndexSeason(ctx, season) })
		}
	}

	return s.finish(summary, start), nil
}

// UpdateStatuses reconciles the finish-status vocabulary
func (s *Service) UpdateStatuses(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "status"}

	entries, err := s.client.Statuses(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("statuses sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{"entity": "status", "status": entry.Status})

		_, err := s.repos.Status.GetByStatus(ctx, entry.Status)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check status existence")
			continue
		}

		status := &models.Status{
			ID:       uuid.New(),
			StatusID: parseInt(entry.StatusID),
			Status:   entry.Status,
		}
		if s.recordInsert(summary, log, s.repos.Status.Create(ctx, status)) {
			s.mirror(log, func() error { return s.indexer.IndexStatus(ctx, status) })
		}
	}

	return s.finish(summary, start), nil
}

// UpdateDrivers reconciles drivers for the request scope
func (s *Service) UpdateDrivers(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "driver"}

	entries, err := s.client.Drivers(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("drivers sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{"entity": "driver", "driver_ref": entry.DriverID})

		_, err := s.repos.Driver.GetByRef(ctx, entry.DriverID)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check driver existence")
			continue
		}

		driver := &models.Driver{
			ID:          uuid.New(),
			DriverRef:   entry.DriverID,
			Number:      parseIntPtr(entry.PermanentNumber),
			Code:        stringPtr(entry.Code),
			Forename:    entry.GivenName,
			Surname:     entry.FamilyName,
			DOB:         parseDatePtr(entry.DateOfBirth),
			Nationality: stringPtr(entry.Nationality),
			URL:         entry.URL,
		}
		if s.recordInsert(summary, log, s.repos.Driver.Create(ctx, driver)) {
			s.mirror(log, func() error { return s.indexer.IndexDriver(ctx, driver) })
		}
	}

	return s.finish(summary, start), nil
}

// UpdateConstructors reconciles constructors for the request scope
func (s *Service) UpdateConstructors(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "constructor"}

	entries, err := s.client.Constructors(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("constructors sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{"entity": "constructor", "constructor_ref": entry.ConstructorID})

		_, err := s.repos.Constructor.GetByRef(ctx, entry.ConstructorID)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check constructor existence")
			continue
		}

		constructor := &models.Constructor{
			ID:             uuid.New(),
			ConstructorRef: entry.ConstructorID,
			Name:           entry.Name,
			Nationality:    stringPtr(entry.Nationality),
			URL:            entry.URL,
		}
		if s.recordInsert(summary, log, s.repos.Constructor.Create(ctx, constructor)) {
			s.mirror(log, func() error { return s.indexer.IndexConstructor(ctx, constructor) })
		}
	}

	return s.finish(summary, start), nil
}

// UpdateCircuits reconciles circuits for the request scope
func (s *Service) UpdateCircuits(ctx context.Context, req ergast.Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{Entity: "circuit"}

	entries, err := s.client.Circuits(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("circuits sync: %w", err)
	}
	summary.Fetched = len(entries)

	for _, entry := range entries {
		log := s.logger.WithFields(logrus.Fields{"entity": "circuit", "circuit_ref": entry.CircuitID})

		_, err := s.repos.Circuit.GetByRef(ctx, entry.CircuitID)
		if err == nil {
			s.recordSkip(summary)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			summary.Failed++
			log.WithError(err).Error("Failed to check circuit existence")
			continue
		}

		circuit := &models.Circuit{
			ID:         uuid.New(),
			CircuitRef: entry.CircuitID,
			Name:       entry.CircuitName,
			Location:   stringPtr(entry.Location.Locality),
			Country:    stringPtr(entry.Location.Country),
			Lat:        parseFloatPtr(entry.Location.Lat),
			Lng:        parseFloatPtr(entry.Location.Long),
			URL:        entry.URL,
		}
		if s.recordInsert(summary, log, s.repos.Circuit.Create(ctx, circuit)) {
			s.mirror(log, func() error { return s.indexer.IndexCircuit(ctx, circuit) })
		}
	}

	return s.finish(summary, start), nil
}
