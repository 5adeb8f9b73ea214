package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
)

// fakeClient serves canned responses per entity type
type fakeClient struct {
	seasons              []ergast.SeasonEntry
	statuses             []ergast.StatusEntry
	drivers              []ergast.DriverEntry
	constructors         []ergast.ConstructorEntry
	circuits             []ergast.CircuitEntry
	races                []ergast.RaceEntry
	qualifying           []ergast.RaceEntry
	laps                 map[int][]ergast.RaceEntry
	pitStops             map[int][]ergast.RaceEntry
	sprintResults        []ergast.RaceEntry
	results              []ergast.RaceEntry
	constructorStandings map[int][]ergast.StandingsList
	driverStandings      map[int][]ergast.StandingsList
	err                  error
}

func (c *fakeClient) Seasons(ctx context.Context, req ergast.Request) ([]ergast.SeasonEntry, error) {
	return c.seasons, c.err
}

func (c *fakeClient) Statuses(ctx context.Context, req ergast.Request) ([]ergast.StatusEntry, error) {
	return c.statuses, c.err
}

func (c *fakeClient) Drivers(ctx context.Context, req ergast.Request) ([]ergast.DriverEntry, error) {
	return c.drivers, c.err
}

func (c *fakeClient) Constructors(ctx context.Context, req ergast.Request) ([]ergast.ConstructorEntry, error) {
	return c.constructors, c.err
}

func (c *fakeClient) Circuits(ctx context.Context, req ergast.Request) ([]ergast.CircuitEntry, error) {
	return c.circuits, c.err
}

func (c *fakeClient) Races(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.races, c.err
}

func (c *fakeClient) Qualifying(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.qualifying, c.err
}

func (c *fakeClient) Laps(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.laps[req.Round], c.err
}

func (c *fakeClient) PitStops(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.pitStops[req.Round], c.err
}

func (c *fakeClient) SprintResults(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.sprintResults, c.err
}

func (c *fakeClient) Results(ctx context.Context, req ergast.Request) ([]ergast.RaceEntry, error) {
	return c.results, c.err
}

func (c *fakeClient) ConstructorStandings(ctx context.Context, req ergast.Request) ([]ergast.StandingsList, error) {
	return c.constructorStandings[req.Round], c.err
}

func (c *fakeClient) DriverStandings(ctx context.Context, req ergast.Request) ([]ergast.StandingsList, error) {
	return c.driverStandings[req.Round], c.err
}

// In-memory repositories mirroring the store's natural-key uniqueness

type memSeasonRepo struct {
	rows []*models.Season
}

func (r *memSeasonRepo) Create(ctx context.Context, season *models.Season) error {
	for _, row := range r.rows {
		if row.Year == season.Year {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, season)
	return nil
}

func (r *memSeasonRepo) GetByYear(ctx context.Context, year int) (*models.Season, error) {
	for _, row := range r.rows {
		if row.Year == year {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memSeasonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memSeasonRepo) List(ctx context.Context) ([]*models.Season, error) {
	return r.rows, nil
}

type memStatusRepo struct {
	rows []*models.Status
}

func (r *memStatusRepo) Create(ctx context.Context, status *models.Status) error {
	for _, row := range r.rows {
		if row.Status == status.Status {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, status)
	return nil
}

func (r *memStatusRepo) GetByStatus(ctx context.Context, status string) (*models.Status, error) {
	for _, row := range r.rows {
		if row.Status == status {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memStatusRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memStatusRepo) List(ctx context.Context) ([]*models.Status, error) {
	return r.rows, nil
}

type memDriverRepo struct {
	rows []*models.Driver
}

func (r *memDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	for _, row := range r.rows {
		if row.DriverRef == driver.DriverRef {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, driver)
	return nil
}

func (r *memDriverRepo) GetByRef(ctx context.Context, driverRef string) (*models.Driver, error) {
	for _, row := range r.rows {
		if row.DriverRef == driverRef {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memDriverRepo) List(ctx context.Context) ([]*models.Driver, error) {
	return r.rows, nil
}

type memConstructorRepo struct {
	rows []*models.Constructor
}

func (r *memConstructorRepo) Create(ctx context.Context, constructor *models.Constructor) error {
	for _, row := range r.rows {
		if row.ConstructorRef == constructor.ConstructorRef {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, constructor)
	return nil
}

func (r *memConstructorRepo) GetByRef(ctx context.Context, constructorRef string) (*models.Constructor, error) {
	for _, row := range r.rows {
		if row.ConstructorRef == constructorRef {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memConstructorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Constructor, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memConstructorRepo) List(ctx context.Context) ([]*models.Constructor, error) {
	return r.rows, nil
}

type memCircuitRepo struct {
	rows []*models.Circuit
}

func (r *memCircuitRepo) Create(ctx context.Context, circuit *models.Circuit) error {
	for _, row := range r.rows {
		if row.CircuitRef == circuit.CircuitRef {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, circuit)
	return nil
}

func (r *memCircuitRepo) GetByRef(ctx context.Context, circuitRef string) (*models.Circuit, error) {
	for _, row := range r.rows {
		if row.CircuitRef == circuitRef {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCircuitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memCircuitRepo) List(ctx context.Context) ([]*models.Circuit, error) {
	return r.rows, nil
}

type memRaceRepo struct {
	rows []*models.Race
}

func (r *memRaceRepo) Create(ctx context.Context, race *models.Race) error {
	for _, row := range r.rows {
		if row.Year == race.Year && row.Round == race.Round && row.Name == race.Name && row.Date.Equal(race.Date) {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, race)
	return nil
}

func (r *memRaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memRaceRepo) GetByNaturalKey(ctx context.Context, year, round int, name string, date time.Time) (*models.Race, error) {
	for _, row := range r.rows {
		if row.Year == year && row.Round == round && row.Name == name && row.Date.Equal(date) {
			return row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memRaceRepo) GetBySeasonRound(ctx context.Context, year, round int) ([]*models.Race, error) {
	var out []*models.Race
	for _, row := range r.rows {
		if row.Year == year && row.Round == round {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memRaceRepo) CountBySeason(ctx context.Context, year int) (int, error) {
	count := 0
	for _, row := range r.rows {
		if row.Year == year {
			count++
		}
	}
	return count, nil
}

func (r *memRaceRepo) List(ctx context.Context) ([]*models.Race, error) {
	return r.rows, nil
}

type memQualifyingRepo struct {
	rows []*models.Qualifying
}

func (r *memQualifyingRepo) Create(ctx context.Context, q *models.Qualifying) error {
	for _, row := range r.rows {
		if row.RaceID == q.RaceID && row.DriverID == q.DriverID && row.ConstructorID == q.ConstructorID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, q)
	return nil
}

func (r *memQualifyingRepo) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID && row.ConstructorID == constructorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memQualifyingRepo) List(ctx context.Context) ([]*models.Qualifying, error) {
	return r.rows, nil
}

type memLapTimeRepo struct {
	rows []*models.LapTime
}

func (r *memLapTimeRepo) Create(ctx context.Context, lt *models.LapTime) error {
	for _, row := range r.rows {
		if row.RaceID == lt.RaceID && row.DriverID == lt.DriverID && row.Lap == lt.Lap {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, lt)
	return nil
}

func (r *memLapTimeRepo) Exists(ctx context.Context, raceID, driverID uuid.UUID, lap int) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID && row.Lap == lap {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLapTimeRepo) List(ctx context.Context) ([]*models.LapTime, error) {
	return r.rows, nil
}

type memPitStopRepo struct {
	rows []*models.PitStop
}

func (r *memPitStopRepo) Create(ctx context.Context, ps *models.PitStop) error {
	for _, row := range r.rows {
		if row.RaceID == ps.RaceID && row.DriverID == ps.DriverID && row.Stop == ps.Stop {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, ps)
	return nil
}

func (r *memPitStopRepo) Exists(ctx context.Context, raceID, driverID uuid.UUID, stop int) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID && row.Stop == stop {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPitStopRepo) List(ctx context.Context) ([]*models.PitStop, error) {
	return r.rows, nil
}

type memResultRepo struct {
	rows []*models.Result
}

func (r *memResultRepo) Create(ctx context.Context, result *models.Result) error {
	for _, row := range r.rows {
		if row.RaceID == result.RaceID && row.DriverID == result.DriverID && row.ConstructorID == result.ConstructorID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, result)
	return nil
}

func (r *memResultRepo) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID && row.ConstructorID == constructorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memResultRepo) List(ctx context.Context) ([]*models.Result, error) {
	return r.rows, nil
}

type memSprintResultRepo struct {
	rows []*models.SprintResult
}

func (r *memSprintResultRepo) Create(ctx context.Context, result *models.SprintResult) error {
	for _, row := range r.rows {
		if row.RaceID == result.RaceID && row.DriverID == result.DriverID && row.ConstructorID == result.ConstructorID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, result)
	return nil
}

func (r *memSprintResultRepo) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID && row.ConstructorID == constructorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSprintResultRepo) List(ctx context.Context) ([]*models.SprintResult, error) {
	return r.rows, nil
}

type memConstructorResultRepo struct {
	rows []*models.ConstructorResult
}

func (r *memConstructorResultRepo) Create(ctx context.Context, result *models.ConstructorResult) error {
	for _, row := range r.rows {
		if row.RaceID == result.RaceID && row.ConstructorID == result.ConstructorID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, result)
	return nil
}

func (r *memConstructorResultRepo) Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.ConstructorID == constructorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memConstructorResultRepo) List(ctx context.Context) ([]*models.ConstructorResult, error) {
	return r.rows, nil
}

type memConstructorStandingRepo struct {
	rows []*models.ConstructorStanding
}

func (r *memConstructorStandingRepo) Create(ctx context.Context, standing *models.ConstructorStanding) error {
	for _, row := range r.rows {
		if row.RaceID == standing.RaceID && row.ConstructorID == standing.ConstructorID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, standing)
	return nil
}

func (r *memConstructorStandingRepo) Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.ConstructorID == constructorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memConstructorStandingRepo) List(ctx context.Context) ([]*models.ConstructorStanding, error) {
	return r.rows, nil
}

type memDriverStandingRepo struct {
	rows []*models.DriverStanding
}

func (r *memDriverStandingRepo) Create(ctx context.Context, standing *models.DriverStanding) error {
	for _, row := range r.rows {
		if row.RaceID == standing.RaceID && row.DriverID == standing.DriverID {
			return models.ErrDuplicateKey
		}
	}
	r.rows = append(r.rows, standing)
	return nil
}

func (r *memDriverStandingRepo) Exists(ctx context.Context, raceID, driverID uuid.UUID) (bool, error) {
	for _, row := range r.rows {
		if row.RaceID == raceID && row.DriverID == driverID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDriverStandingRepo) List(ctx context.Context) ([]*models.DriverStanding, error) {
	return r.rows, nil
}

func newMemRepositories() *repository.Repositories {
	return &repository.Repositories{
		Season:              &memSeasonRepo{},
		Status:              &memStatusRepo{},
		Driver:              &memDriverRepo{},
		Constructor:         &memConstructorRepo{},
		Circuit:             &memCircuitRepo{},
		Race:                &memRaceRepo{},
		Qualifying:          &memQualifyingRepo{},
		LapTime:             &memLapTimeRepo{},
		PitStop:             &memPitStopRepo{},
		Result:              &memResultRepo{},
		SprintResult:        &memSprintResultRepo{},
		ConstructorResult:   &memConstructorResultRepo{},
		ConstructorStanding: &memConstructorStandingRepo{},
		DriverStanding:      &memDriverStandingRepo{},
	}
}
