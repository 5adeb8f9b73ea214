package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/models"
)

const raceColumns = `
	id, season_id, year, round, circuit_id, name, date, time, url,
	fp1_date, fp1_time, fp2_date, fp2_time, fp3_date, fp3_time,
	quali_date, quali_time, sprint_date, sprint_time, created_at
`

// PostgresRaceRepository implements RaceRepository for PostgreSQL
type PostgresRaceRepository struct {
	db *database.DB
}

// NewPostgresRaceRepository creates a new race repository
func NewPostgresRaceRepository(db *database.DB) RaceRepository {
	return &PostgresRaceRepository{db: db}
}

// Create inserts a new race
func (r *PostgresRaceRepository) Create(ctx context.Context, race *models.Race) error {
	query := `
		INSERT INTO races (
			id, season_id, year, round, circuit_id, name, date, time, url,
			fp1_date, fp1_time, fp2_date, fp2_time, fp3_date, fp3_time,
			quali_date, quali_time, sprint_date, sprint_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		race.ID, race.SeasonID, race.Year, race.Round, race.CircuitID, race.Name,
		race.Date, race.Time, race.URL,
		race.FP1Date, race.FP1Time, race.FP2Date, race.FP2Time, race.FP3Date, race.FP3Time,
		race.QualiDate, race.QualiTime, race.SprintDate, race.SprintTime,
	)
	return mapInsertError(err, "race")
}

// GetByID retrieves a race by surrogate id
func (r *PostgresRaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races WHERE id = $1`

	race := &models.Race{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(raceFields(race)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}

	return race, nil
}

// GetByNaturalKey retrieves a race by its full natural key
func (r *PostgresRaceRepository) GetByNaturalKey(ctx context.Context, year, round int, name string, date time.Time) (*models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races WHERE year = $1 AND round = $2 AND name = $3 AND date = $4`

	race := &models.Race{}
	err := r.db.GetPool().QueryRow(ctx, query, year, round, name, date).Scan(raceFields(race)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}

	return race, nil
}

// GetBySeasonRound retrieves every race recorded for a season and round.
// More than one row indicates an upstream data-quality collision that
// callers must reject rather than resolve silently.
func (r *PostgresRaceRepository) GetBySeasonRound(ctx context.Context, year, round int) ([]*models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races WHERE year = $1 AND round = $2`

	rows, err := r.db.GetPool().Query(ctx, query, year, round)
	if err != nil {
		return nil, fmt.Errorf("failed to query races by round: %w", err)
	}
	defer rows.Close()

	var races []*models.Race
	for rows.Next() {
		race := &models.Race{}
		if err := rows.Scan(raceFields(race)...); err != nil {
			return nil, fmt.Errorf("failed to scan race: %w", err)
		}
		races = append(races, race)
	}

	return races, rows.Err()
}

// CountBySeason returns the number of races stored for a season
func (r *PostgresRaceRepository) CountBySeason(ctx context.Context, year int) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx, `SELECT COUNT(*) FROM races WHERE year = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count races: %w", err)
	}
	return count, nil
}

// List retrieves all races ordered by year and round
func (r *PostgresRaceRepository) List(ctx context.Context) ([]*models.Race, error) {
	query := `SELECT ` + raceColumns + ` FROM races ORDER BY year ASC, round ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query races: %w", err)
	}
	defer rows.Close()

	var races []*models.Race
	for rows.Next() {
		race := &models.Race{}
		if err := rows.Scan(raceFields(race)...); err != nil {
			return nil, fmt.Errorf("failed to scan race: %w", err)
		}
		races = append(races, race)
	}

	return races, rows.Err()
}

func raceFields(race *models.Race) []interface{} {
	return []interface{}{
		&race.ID, &race.SeasonID, &race.Year, &race.Round, &race.CircuitID, &race.Name,
		&race.Date, &race.Time, &race.URL,
		&race.FP1Date, &race.FP1Time, &race.FP2Date, &race.FP2Time, &race.FP3Date, &race.FP3Time,
		&race.QualiDate, &race.QualiTime, &race.SprintDate, &race.SprintTime, &race.CreatedAt,
	}
}

// PostgresQualifyingRepository implements QualifyingRepository for PostgreSQL
type PostgresQualifyingRepository struct {
	db *database.DB
}

// NewPostgresQualifyingRepository creates a new qualifying repository
func NewPostgresQualifyingRepository(db *database.DB) QualifyingRepository {
	return &PostgresQualifyingRepository{db: db}
}

// Create inserts a new qualifying classification
func (r *PostgresQualifyingRepository) Create(ctx context.Context, qualifying *models.Qualifying) error {
	query := `
		INSERT INTO qualifying (id, race_id, driver_id, constructor_id, number, position, q1, q2, q3)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		qualifying.ID, qualifying.RaceID, qualifying.DriverID, qualifying.ConstructorID,
		qualifying.Number, qualifying.Position, qualifying.Q1, qualifying.Q2, qualifying.Q3,
	)
	return mapInsertError(err, "qualifying")
}

// Exists reports whether a qualifying row exists for the natural key
func (r *PostgresQualifyingRepository) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM qualifying WHERE race_id = $1 AND driver_id = $2 AND constructor_id = $3
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID, constructorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check qualifying existence: %w", err)
	}
	return exists, nil
}

// List retrieves all qualifying rows
func (r *PostgresQualifyingRepository) List(ctx context.Context) ([]*models.Qualifying, error) {
	query := `
		SELECT id, race_id, driver_id, constructor_id, number, position, q1, q2, q3, created_at
		FROM qualifying
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifying: %w", err)
	}
	defer rows.Close()

	var qualifyings []*models.Qualifying
	for rows.Next() {
		qualifying := &models.Qualifying{}
		err := rows.Scan(
			&qualifying.ID, &qualifying.RaceID, &qualifying.DriverID, &qualifying.ConstructorID,
			&qualifying.Number, &qualifying.Position, &qualifying.Q1, &qualifying.Q2, &qualifying.Q3,
			&qualifying.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qualifying: %w", err)
		}
		qualifyings = append(qualifyings, qualifying)
	}

	return qualifyings, rows.Err()
}

// PostgresLapTimeRepository implements LapTimeRepository for PostgreSQL
type PostgresLapTimeRepository struct {
	db *database.DB
}

// NewPostgresLapTimeRepository creates a new lap time repository
func NewPostgresLapTimeRepository(db *database.DB) LapTimeRepository {
	return &PostgresLapTimeRepository{db: db}
}

// Create inserts a new lap time
func (r *PostgresLapTimeRepository) Create(ctx context.Context, lapTime *models.LapTime) error {
	query := `
		INSERT INTO lap_times (id, race_id, driver_id, lap, position, time, milliseconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		lapTime.ID, lapTime.RaceID, lapTime.DriverID, lapTime.Lap,
		lapTime.Position, lapTime.Time, lapTime.Milliseconds,
	)
	return mapInsertError(err, "lap time")
}

// Exists reports whether a lap time exists for the natural key
func (r *PostgresLapTimeRepository) Exists(ctx context.Context, raceID, driverID uuid.UUID, lap int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lap_times WHERE race_id = $1 AND driver_id = $2 AND lap = $3
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID, lap).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lap time existence: %w", err)
	}
	return exists, nil
}

// List retrieves all lap times
func (r *PostgresLapTimeRepository) List(ctx context.Context) ([]*models.LapTime, error) {
	query := `
		SELECT id, race_id, driver_id, lap, position, time, milliseconds, created_at
		FROM lap_times
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lap times: %w", err)
	}
	defer rows.Close()

	var lapTimes []*models.LapTime
	for rows.Next() {
		lapTime := &models.LapTime{}
		err := rows.Scan(
			&lapTime.ID, &lapTime.RaceID, &lapTime.DriverID, &lapTime.Lap,
			&lapTime.Position, &lapTime.Time, &lapTime.Milliseconds, &lapTime.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lap time: %w", err)
		}
		lapTimes = append(lapTimes, lapTime)
	}

	return lapTimes, rows.Err()
}

// PostgresPitStopRepository implements PitStopRepository for PostgreSQL
type PostgresPitStopRepository struct {
	db *database.DB
}

// NewPostgresPitStopRepository creates a new pit stop repository
func NewPostgresPitStopRepository(db *database.DB) PitStopRepository {
	return &PostgresPitStopRepository{db: db}
}

// Create inserts a new pit stop
func (r *PostgresPitStopRepository) Create(ctx context.Context, pitStop *models.PitStop) error {
	query := `
		INSERT INTO pit_stops (id, race_id, driver_id, stop, lap, time, duration, milliseconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		pitStop.ID, pitStop.RaceID, pitStop.DriverID, pitStop.Stop,
		pitStop.Lap, pitStop.Time, pitStop.Duration, pitStop.Milliseconds,
	)
	return mapInsertError(err, "pit stop")
}

// Exists reports whether a pit stop exists for the natural key
func (r *PostgresPitStopRepository) Exists(ctx context.Context, raceID, driverID uuid.UUID, stop int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM pit_stops WHERE race_id = $1 AND driver_id = $2 AND stop = $3
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID, stop).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pit stop existence: %w", err)
	}
	return exists, nil
}

// List retrieves all pit stops
func (r *PostgresPitStopRepository) List(ctx context.Context) ([]*models.PitStop, error) {
	query := `
		SELECT id, race_id, driver_id, stop, lap, time, duration, milliseconds, created_at
		FROM pit_stops
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pit stops: %w", err)
	}
	defer rows.Close()

	var pitStops []*models.PitStop
	for rows.Next() {
		pitStop := &models.PitStop{}
		err := rows.Scan(
			&pitStop.ID, &pitStop.RaceID, &pitStop.DriverID, &pitStop.Stop,
			&pitStop.Lap, &pitStop.Time, &pitStop.Duration, &pitStop.Milliseconds, &pitStop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pit stop: %w", err)
		}
		pitStops = append(pitStops, pitStop)
	}

	return pitStops, rows.Err()
}
