package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/f1sync/internal/models"
)

// SeasonRepository defines season data access
type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByYear(ctx context.Context, year int) (*models.Season, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
}

// StatusRepository defines finish-status data access
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByStatus(ctx context.Context, status string) (*models.Status, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Status, error)
	List(ctx context.Context) ([]*models.Status, error)
}

// DriverRepository defines driver data access
type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByRef(ctx context.Context, driverRef string) (*models.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	List(ctx context.Context) ([]*models.Driver, error)
}

// ConstructorRepository defines constructor data access
type ConstructorRepository interface {
	Create(ctx context.Context, constructor *models.Constructor) error
	GetByRef(ctx context.Context, constructorRef string) (*models.Constructor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Constructor, error)
	List(ctx context.Context) ([]*models.Constructor, error)
}

// CircuitRepository defines circuit data access
type CircuitRepository interface {
	Create(ctx context.Context, circuit *models.Circuit) error
	GetByRef(ctx context.Context, circuitRef string) (*models.Circuit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error)
	List(ctx context.Context) ([]*models.Circuit, error)
}

// RaceRepository defines race data access
type RaceRepository interface {
	Create(ctx context.Context, race *models.Race) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	GetByNaturalKey(ctx context.Context, year, round int, name string, date time.Time) (*models.Race, error)
	GetBySeasonRound(ctx context.Context, year, round int) ([]*models.Race, error)
	CountBySeason(ctx context.Context, year int) (int, error)
	List(ctx context.Context) ([]*models.Race, error)
}

// QualifyingRepository defines qualifying data access
type QualifyingRepository interface {
	Create(ctx context.Context, qualifying *models.Qualifying) error
	Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.Qualifying, error)
}

// LapTimeRepository defines lap time data access
type LapTimeRepository interface {
	Create(ctx context.Context, lapTime *models.LapTime) error
	Exists(ctx context.Context, raceID, driverID uuid.UUID, lap int) (bool, error)
	List(ctx context.Context) ([]*models.LapTime, error)
}

// PitStopRepository defines pit stop data access
type PitStopRepository interface {
	Create(ctx context.Context, pitStop *models.PitStop) error
	Exists(ctx context.Context, raceID, driverID uuid.UUID, stop int) (bool, error)
	List(ctx context.Context) ([]*models.PitStop, error)
}

// ResultRepository defines race result data access
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.Result, error)
}

// SprintResultRepository defines sprint result data access
type SprintResultRepository interface {
	Create(ctx context.Context, result *models.SprintResult) error
	Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.SprintResult, error)
}

// ConstructorResultRepository defines aggregated constructor result data access
type ConstructorResultRepository interface {
	Create(ctx context.Context, result *models.ConstructorResult) error
	Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.ConstructorResult, error)
}

// ConstructorStandingRepository defines constructor standing data access
type ConstructorStandingRepository interface {
	Create(ctx context.Context, standing *models.ConstructorStanding) error
	Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.ConstructorStanding, error)
}

// DriverStandingRepository defines driver standing data access
type DriverStandingRepository interface {
	Create(ctx context.Context, standing *models.DriverStanding) error
	Exists(ctx context.Context, raceID, driverID uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*models.DriverStanding, error)
}
