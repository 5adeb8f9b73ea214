// Package repository implements PostgreSQL data access for the entity store.
//
// The store is append-only: repositories expose natural-key point lookups
// and inserts, never updates or deletes. Inserts that violate a unique
// index surface models.ErrDuplicateKey so callers can treat concurrent
// duplicate writes as benign.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations
const pgUniqueViolation = "23505"

// Repositories holds all repository implementations
type Repositories struct {
	Season              SeasonRepository
	Status              StatusRepository
	Driver              DriverRepository
	Constructor         ConstructorRepository
	Circuit             CircuitRepository
	Race                RaceRepository
	Qualifying          QualifyingRepository
	LapTime             LapTimeRepository
	PitStop             PitStopRepository
	Result              ResultRepository
	SprintResult        SprintResultRepository
	ConstructorResult   ConstructorResultRepository
	ConstructorStanding ConstructorStandingRepository
	DriverStanding      DriverStandingRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Season:              NewPostgresSeasonRepository(db),
		Status:              NewPostgresStatusRepository(db),
		Driver:              NewPostgresDriverRepository(db),
		Constructor:         NewPostgresConstructorRepository(db),
		Circuit:             NewPostgresCircuitRepository(db),
		Race:                NewPostgresRaceRepository(db),
		Qualifying:          NewPostgresQualifyingRepository(db),
		LapTime:             NewPostgresLapTimeRepository(db),
		PitStop:             NewPostgresPitStopRepository(db),
		Result:              NewPostgresResultRepository(db),
		SprintResult:        NewPostgresSprintResultRepository(db),
		ConstructorResult:   NewPostgresConstructorResultRepository(db),
		ConstructorStanding: NewPostgresConstructorStandingRepository(db),
		DriverStanding:      NewPostgresDriverStandingRepository(db),
	}, nil
}

// mapInsertError converts a unique-violation insert failure into the
// sentinel duplicate-key error
func mapInsertError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.ErrDuplicateKey
	}

	return fmt.Errorf("failed to create %s: %w", entity, err)
}
