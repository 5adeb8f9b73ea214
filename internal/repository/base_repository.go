package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/models"
)

// PostgresSeasonRepository implements SeasonRepository for PostgreSQL
type PostgresSeasonRepository struct {
	db *database.DB
}

// NewPostgresSeasonRepository creates a new season repository
func NewPostgresSeasonRepository(db *database.DB) SeasonRepository {
	return &PostgresSeasonRepository{db: db}
}

// Create inserts a new season
func (r *PostgresSeasonRepository) Create(ctx context.Context, season *models.Season) error {
	query := `
		INSERT INTO seasons (id, year, url)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.GetPool().Exec(ctx, query, season.ID, season.Year, season.URL)
	return mapInsertError(err, "season")
}

// GetByYear retrieves a season by its year, the natural key
func (r *PostgresSeasonRepository) GetByYear(ctx context.Context, year int) (*models.Season, error) {
	query := `SELECT id, year, url, created_at FROM seasons WHERE year = $1`

	season := &models.Season{}
	err := r.db.GetPool().QueryRow(ctx, query, year).Scan(
		&season.ID, &season.Year, &season.URL, &season.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return season, nil
}

// GetByID retrieves a season by surrogate id
func (r *PostgresSeasonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	query := `SELECT id, year, url, created_at FROM seasons WHERE id = $1`

	season := &models.Season{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&season.ID, &season.Year, &season.URL, &season.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return season, nil
}

// List retrieves all seasons ordered by year
func (r *PostgresSeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	query := `SELECT id, year, url, created_at FROM seasons ORDER BY year ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		season := &models.Season{}
		if err := rows.Scan(&season.ID, &season.Year, &season.URL, &season.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}

	return seasons, rows.Err()
}

// PostgresStatusRepository implements StatusRepository for PostgreSQL
type PostgresStatusRepository struct {
	db *database.DB
}

// NewPostgresStatusRepository creates a new status repository
func NewPostgresStatusRepository(db *database.DB) StatusRepository {
	return &PostgresStatusRepository{db: db}
}

// Create inserts a new finish status
func (r *PostgresStatusRepository) Create(ctx context.Context, status *models.Status) error {
	query := `
		INSERT INTO statuses (id, status_id, status)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.GetPool().Exec(ctx, query, status.ID, status.StatusID, status.Status)
	return mapInsertError(err, "status")
}

// GetByStatus retrieves a status by its text, the natural key
func (r *PostgresStatusRepository) GetByStatus(ctx context.Context, statusText string) (*models.Status, error) {
	query := `SELECT id, status_id, status, created_at FROM statuses WHERE status = $1`

	status := &models.Status{}
	err := r.db.GetPool().QueryRow(ctx, query, statusText).Scan(
		&status.ID, &status.StatusID, &status.Status, &status.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return status, nil
}

// GetByID retrieves a status by surrogate id
func (r *PostgresStatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Status, error) {
	query := `SELECT id, status_id, status, created_at FROM statuses WHERE id = $1`

	status := &models.Status{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&status.ID, &status.StatusID, &status.Status, &status.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return status, nil
}

// List retrieves the full status vocabulary
func (r *PostgresStatusRepository) List(ctx context.Context) ([]*models.Status, error) {
	query := `SELECT id, status_id, status, created_at FROM statuses ORDER BY status_id ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		status := &models.Status{}
		if err := rows.Scan(&status.ID, &status.StatusID, &status.Status, &status.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, status)
	}

	return statuses, rows.Err()
}

// PostgresDriverRepository implements DriverRepository for PostgreSQL
type PostgresDriverRepository struct {
	db *database.DB
}

// NewPostgresDriverRepository creates a new driver repository
func NewPostgresDriverRepository(db *database.DB) DriverRepository {
	return &PostgresDriverRepository{db: db}
}

// Create inserts a new driver
func (r *PostgresDriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	query := `
		INSERT INTO drivers (id, driver_ref, number, code, forename, surname, dob, nationality, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		driver.ID, driver.DriverRef, driver.Number, driver.Code, driver.Forename,
		driver.Surname, driver.DOB, driver.Nationality, driver.URL,
	)
	return mapInsertError(err, "driver")
}

// GetByRef retrieves a driver by driver reference, the natural key
func (r *PostgresDriverRepository) GetByRef(ctx context.Context, driverRef string) (*models.Driver, error) {
	query := `
		SELECT id, driver_ref, number, code, forename, surname, dob, nationality, url, created_at
		FROM drivers WHERE driver_ref = $1
	`
	return r.scanOne(ctx, query, driverRef)
}

// GetByID retrieves a driver by surrogate id
func (r *PostgresDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	query := `
		SELECT id, driver_ref, number, code, forename, surname, dob, nationality, url, created_at
		FROM drivers WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *PostgresDriverRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Driver, error) {
	driver := &models.Driver{}
	err := r.db.GetPool().QueryRow(ctx, query, arg).Scan(
		&driver.ID, &driver.DriverRef, &driver.Number, &driver.Code, &driver.Forename,
		&driver.Surname, &driver.DOB, &driver.Nationality, &driver.URL, &driver.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return driver, nil
}

// List retrieves all drivers
func (r *PostgresDriverRepository) List(ctx context.Context) ([]*models.Driver, error) {
	query := `
		SELECT id, driver_ref, number, code, forename, surname, dob, nationality, url, created_at
		FROM drivers ORDER BY driver_ref ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		driver := &models.Driver{}
		err := rows.Scan(
			&driver.ID, &driver.DriverRef, &driver.Number, &driver.Code, &driver.Forename,
			&driver.Surname, &driver.DOB, &driver.Nationality, &driver.URL, &driver.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

// PostgresConstructorRepository implements ConstructorRepository for PostgreSQL
type PostgresConstructorRepository struct {
	db *database.DB
}

// NewPostgresConstructorRepository creates a new constructor repository
func NewPostgresConstructorRepository(db *database.DB) ConstructorRepository {
	return &PostgresConstructorRepository{db: db}
}

// Create inserts a new constructor
func (r *PostgresConstructorRepository) Create(ctx context.Context, constructor *models.Constructor) error {
	query := `
		INSERT INTO constructors (id, constructor_ref, name, nationality, url)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		constructor.ID, constructor.ConstructorRef, constructor.Name,
		constructor.Nationality, constructor.URL,
	)
	return mapInsertError(err, "constructor")
}

// GetByRef retrieves a constructor by constructor reference, the natural key
func (r *PostgresConstructorRepository) GetByRef(ctx context.Context, constructorRef string) (*models.Constructor, error) {
	query := `
		SELECT id, constructor_ref, name, nationality, url, created_at
		FROM constructors WHERE constructor_ref = $1
	`
	return r.scanOne(ctx, query, constructorRef)
}

// GetByID retrieves a constructor by surrogate id
func (r *PostgresConstructorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Constructor, error) {
	query := `
		SELECT id, constructor_ref, name, nationality, url, created_at
		FROM constructors WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *PostgresConstructorRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Constructor, error) {
	constructor := &models.Constructor{}
	err := r.db.GetPool().QueryRow(ctx, query, arg).Scan(
		&constructor.ID, &constructor.ConstructorRef, &constructor.Name,
		&constructor.Nationality, &constructor.URL, &constructor.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get constructor: %w", err)
	}

	return constructor, nil
}

// List retrieves all constructors
func (r *PostgresConstructorRepository) List(ctx context.Context) ([]*models.Constructor, error) {
	query := `
		SELECT id, constructor_ref, name, nationality, url, created_at
		FROM constructors ORDER BY constructor_ref ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query constructors: %w", err)
	}
	defer rows.Close()

	var constructors []*models.Constructor
	for rows.Next() {
		constructor := &models.Constructor{}
		err := rows.Scan(
			&constructor.ID, &constructor.ConstructorRef, &constructor.Name,
			&constructor.Nationality, &constructor.URL, &constructor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan constructor: %w", err)
		}
		constructors = append(constructors, constructor)
	}

	return constructors, rows.Err()
}

// PostgresCircuitRepository implements CircuitRepository for PostgreSQL
type PostgresCircuitRepository struct {
	db *database.DB
}

// NewPostgresCircuitRepository creates a new circuit repository
func NewPostgresCircuitRepository(db *database.DB) CircuitRepository {
	return &PostgresCircuitRepository{db: db}
}

// Create inserts a new circuit
func (r *PostgresCircuitRepository) Create(ctx context.Context, circuit *models.Circuit) error {
	query := `
		INSERT INTO circuits (id, circuit_ref, name, location, country, lat, lng, alt, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		circuit.ID, circuit.CircuitRef, circuit.Name, circuit.Location,
		circuit.Country, circuit.Lat, circuit.Lng, circuit.Alt, circuit.URL,
	)
	return mapInsertError(err, "circuit")
}

// GetByRef retrieves a circuit by circuit reference, the natural key
func (r *PostgresCircuitRepository) GetByRef(ctx context.Context, circuitRef string) (*models.Circuit, error) {
	query := `
		SELECT id, circuit_ref, name, location, country, lat, lng, alt, url, created_at
		FROM circuits WHERE circuit_ref = $1
	`
	return r.scanOne(ctx, query, circuitRef)
}

// GetByID retrieves a circuit by surrogate id
func (r *PostgresCircuitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	query := `
		SELECT id, circuit_ref, name, location, country, lat, lng, alt, url, created_at
		FROM circuits WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *PostgresCircuitRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Circuit, error) {
	circuit := &models.Circuit{}
	err := r.db.GetPool().QueryRow(ctx, query, arg).Scan(
		&circuit.ID, &circuit.CircuitRef, &circuit.Name, &circuit.Location,
		&circuit.Country, &circuit.Lat, &circuit.Lng, &circuit.Alt, &circuit.URL, &circuit.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circuit: %w", err)
	}

	return circuit, nil
}

// List retrieves all circuits
func (r *PostgresCircuitRepository) List(ctx context.Context) ([]*models.Circuit, error) {
	query := `
		SELECT id, circuit_ref, name, location, country, lat, lng, alt, url, created_at
		FROM circuits ORDER BY circuit_ref ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}
	defer rows.Close()

	var circuits []*models.Circuit
	for rows.Next() {
		circuit := &models.Circuit{}
		err := rows.Scan(
			&circuit.ID, &circuit.CircuitRef, &circuit.Name, &circuit.Location,
			&circuit.Country, &circuit.Lat, &circuit.Lng, &circuit.Alt, &circuit.URL, &circuit.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan circuit: %w", err)
		}
		circuits = append(circuits, circuit)
	}

	return circuits, rows.Err()
}
