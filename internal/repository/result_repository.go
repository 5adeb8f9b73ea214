package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/models"
)

// PostgresResultRepository implements ResultRepository for PostgreSQL
type PostgresResultRepository struct {
	db *database.DB
}

// NewPostgresResultRepository creates a new result repository
func NewPostgresResultRepository(db *database.DB) ResultRepository {
	return &PostgresResultRepository{db: db}
}

// Create inserts a new race result
func (r *PostgresResultRepository) Create(ctx context.Context, result *models.Result) error {
	query := `
		INSERT INTO results (
			id, race_id, driver_id, constructor_id, status_id, number, grid,
			position, position_text, position_order, points, laps, time, milliseconds,
			fastest_lap, rank, fastest_lap_time, fastest_lap_speed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.RaceID, result.DriverID, result.ConstructorID, result.StatusID,
		result.Number, result.Grid, result.Position, result.PositionText, result.PositionOrder,
		result.Points, result.Laps, result.Time, result.Milliseconds,
		result.FastestLap, result.Rank, result.FastestLapTime, result.FastestLapSpeed,
	)
	return mapInsertError(err, "result")
}

// Exists reports whether a result exists for the natural key
func (r *PostgresResultRepository) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM results WHERE race_id = $1 AND driver_id = $2 AND constructor_id = $3
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID, constructorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check result existence: %w", err)
	}
	return exists, nil
}

// List retrieves all race results
func (r *PostgresResultRepository) List(ctx context.Context) ([]*models.Result, error) {
	query := `
		SELECT id, race_id, driver_id, constructor_id, status_id, number, grid,
		       position, position_text, position_order, points, laps, time, milliseconds,
		       fastest_lap, rank, fastest_lap_time, fastest_lap_speed, created_at
		FROM results
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		result := &models.Result{}
		err := rows.Scan(
			&result.ID, &result.RaceID, &result.DriverID, &result.ConstructorID, &result.StatusID,
			&result.Number, &result.Grid, &result.Position, &result.PositionText, &result.PositionOrder,
			&result.Points, &result.Laps, &result.Time, &result.Milliseconds,
			&result.FastestLap, &result.Rank, &result.FastestLapTime, &result.FastestLapSpeed,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// PostgresSprintResultRepository implements SprintResultRepository for PostgreSQL
type PostgresSprintResultRepository struct {
	db *database.DB
}

// NewPostgresSprintResultRepository creates a new sprint result repository
func NewPostgresSprintResultRepository(db *database.DB) SprintResultRepository {
	return &PostgresSprintResultRepository{db: db}
}

// Create inserts a new sprint result
func (r *PostgresSprintResultRepository) Create(ctx context.Context, result *models.SprintResult) error {
	query := `
		INSERT INTO sprint_results (
			id, race_id, driver_id, constructor_id, status_id, number, grid,
			position, position_text, position_order, points, laps, time, milliseconds,
			fastest_lap, fastest_lap_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.RaceID, result.DriverID, result.ConstructorID, result.StatusID,
		result.Number, result.Grid, result.Position, result.PositionText, result.PositionOrder,
		result.Points, result.Laps, result.Time, result.Milliseconds,
		result.FastestLap, result.FastestLapTime,
	)
	return mapInsertError(err, "sprint result")
}

// Exists reports whether a sprint result exists for the natural key
func (r *PostgresSprintResultRepository) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sprint_results WHERE race_id = $1 AND driver_id = $2 AND constructor_id = $3
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID, constructorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sprint result existence: %w", err)
	}
	return exists, nil
}

// List retrieves all sprint results
func (r *PostgresSprintResultRepository) List(ctx context.Context) ([]*models.SprintResult, error) {
	query := `
		SELECT id, race_id, driver_id, constructor_id, status_id, number, grid,
		       position, position_text, position_order, points, laps, time, milliseconds,
		       fastest_lap, fastest_lap_time, created_at
		FROM sprint_results
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprint results: %w", err)
	}
	defer rows.Close()

	var results []*models.SprintResult
	for rows.Next() {
		result := &models.SprintResult{}
		err := rows.Scan(
			&result.ID, &result.RaceID, &result.DriverID, &result.ConstructorID, &result.StatusID,
			&result.Number, &result.Grid, &result.Position, &result.PositionText, &result.PositionOrder,
			&result.Points, &result.Laps, &result.Time, &result.Milliseconds,
			&result.FastestLap, &result.FastestLapTime, &result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sprint result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// PostgresConstructorResultRepository implements ConstructorResultRepository for PostgreSQL
type PostgresConstructorResultRepository struct {
	db *database.DB
}

// NewPostgresConstructorResultRepository creates a new constructor result repository
func NewPostgresConstructorResultRepository(db *database.DB) ConstructorResultRepository {
	return &PostgresConstructorResultRepository{db: db}
}

// Create inserts a new aggregated constructor result
func (r *PostgresConstructorResultRepository) Create(ctx context.Context, result *models.ConstructorResult) error {
	query := `
		INSERT INTO constructor_results (id, race_id, constructor_id, points, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		result.ID, result.RaceID, result.ConstructorID, result.Points, result.Status,
	)
	return mapInsertError(err, "constructor result")
}

// Exists reports whether a constructor result exists for the natural key
func (r *PostgresConstructorResultRepository) Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM constructor_results WHERE race_id = $1 AND constructor_id = $2
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, constructorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check constructor result existence: %w", err)
	}
	return exists, nil
}

// List retrieves all constructor results
func (r *PostgresConstructorResultRepository) List(ctx context.Context) ([]*models.ConstructorResult, error) {
	query := `
		SELECT id, race_id, constructor_id, points, status, created_at
		FROM constructor_results
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query constructor results: %w", err)
	}
	defer rows.Close()

	var results []*models.ConstructorResult
	for rows.Next() {
		result := &models.ConstructorResult{}
		err := rows.Scan(
			&result.ID, &result.RaceID, &result.ConstructorID, &result.Points,
			&result.Status, &result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan constructor result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// PostgresConstructorStandingRepository implements ConstructorStandingRepository for PostgreSQL
type PostgresConstructorStandingRepository struct {
	db *database.DB
}

// NewPostgresConstructorStandingRepository creates a new constructor standing repository
func NewPostgresConstructorStandingRepository(db *database.DB) ConstructorStandingRepository {
	return &PostgresConstructorStandingRepository{db: db}
}

// Create inserts a new constructor standing
func (r *PostgresConstructorStandingRepository) Create(ctx context.Context, standing *models.ConstructorStanding) error {
	query := `
		INSERT INTO constructor_standings (id, race_id, constructor_id, points, position, position_text, wins)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		standing.ID, standing.RaceID, standing.ConstructorID, standing.Points,
		standing.Position, standing.PositionText, standing.Wins,
	)
	return mapInsertError(err, "constructor standing")
}

// Exists reports whether a constructor standing exists for the natural key
func (r *PostgresConstructorStandingRepository) Exists(ctx context.Context, raceID, constructorID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM constructor_standings WHERE race_id = $1 AND constructor_id = $2
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, constructorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check constructor standing existence: %w", err)
	}
	return exists, nil
}

// List retrieves all constructor standings
func (r *PostgresConstructorStandingRepository) List(ctx context.Context) ([]*models.ConstructorStanding, error) {
	query := `
		SELECT id, race_id, constructor_id, points, position, position_text, wins, created_at
		FROM constructor_standings
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query constructor standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.ConstructorStanding
	for rows.Next() {
		standing := &models.ConstructorStanding{}
		err := rows.Scan(
			&standing.ID, &standing.RaceID, &standing.ConstructorID, &standing.Points,
			&standing.Position, &standing.PositionText, &standing.Wins, &standing.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan constructor standing: %w", err)
		}
		standings = append(standings, standing)
	}

	return standings, rows.Err()
}

// PostgresDriverStandingRepository implements DriverStandingRepository for PostgreSQL
type PostgresDriverStandingRepository struct {
	db *database.DB
}

// NewPostgresDriverStandingRepository creates a new driver standing repository
func NewPostgresDriverStandingRepository(db *database.DB) DriverStandingRepository {
	return &PostgresDriverStandingRepository{db: db}
}

// Create inserts a new driver standing
func (r *PostgresDriverStandingRepository) Create(ctx context.Context, standing *models.DriverStanding) error {
	query := `
		INSERT INTO driver_standings (id, race_id, driver_id, points, position, position_text, wins)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		standing.ID, standing.RaceID, standing.DriverID, standing.Points,
		standing.Position, standing.PositionText, standing.Wins,
	)
	return mapInsertError(err, "driver standing")
}

// Exists reports whether a driver standing exists for the natural key
func (r *PostgresDriverStandingRepository) Exists(ctx context.Context, raceID, driverID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM driver_standings WHERE race_id = $1 AND driver_id = $2
		)
	`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, raceID, driverID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check driver standing existence: %w", err)
	}
	return exists, nil
}

// List retrieves all driver standings
func (r *PostgresDriverStandingRepository) List(ctx context.Context) ([]*models.DriverStanding, error) {
	query := `
		SELECT id, race_id, driver_id, points, position, position_text, wins, created_at
		FROM driver_standings
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.DriverStanding
	for rows.Next() {
		standing := &models.DriverStanding{}
		err := rows.Scan(
			&standing.ID, &standing.RaceID, &standing.DriverID, &standing.Points,
			&standing.Position, &standing.PositionText, &standing.Wins, &standing.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver standing: %w", err)
		}
		standings = append(standings, standing)
	}

	return standings, rows.Err()
}
