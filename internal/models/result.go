package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result represents a driver's classified race result
type Result struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RaceID          uuid.UUID       `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID        uuid.UUID       `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	ConstructorID   uuid.UUID       `db:"constructor_id" json:"constructor_id" validate:"required,uuid4"`
	StatusID        uuid.UUID       `db:"status_id" json:"status_id" validate:"required,uuid4"`
	Number          *int            `db:"number" json:"number"`
	Grid            int             `db:"grid" json:"grid"`
	Position        *int            `db:"position" json:"position"`
	PositionText    string          `db:"position_text" json:"position_text"`
	PositionOrder   int             `db:"position_order" json:"position_order"`
	Points          decimal.Decimal `db:"points" json:"points"`
	Laps            int             `db:"laps" json:"laps"`
	Time            *string         `db:"time" json:"time"`
	Milliseconds    *int            `db:"milliseconds" json:"milliseconds"`
	FastestLap      *int            `db:"fastest_lap" json:"fastest_lap"`
	Rank            *int            `db:"rank" json:"rank"`
	FastestLapTime  *string         `db:"fastest_lap_time" json:"fastest_lap_time"`
	FastestLapSpeed *string         `db:"fastest_lap_speed" json:"fastest_lap_speed"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// SprintResult represents a driver's sprint race result.
// Sprint payloads carry no fastest-lap rank or average speed.
type SprintResult struct {
	ID             uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RaceID         uuid.UUID       `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID       uuid.UUID       `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	ConstructorID  uuid.UUID       `db:"constructor_id" json:"constructor_id" validate:"required,uuid4"`
	StatusID       uuid.UUID       `db:"status_id" json:"status_id" validate:"required,uuid4"`
	Number         *int            `db:"number" json:"number"`
	Grid           int             `db:"grid" json:"grid"`
	Position       *int            `db:"position" json:"position"`
	PositionText   string          `db:"position_text" json:"position_text"`
	PositionOrder  int             `db:"position_order" json:"position_order"`
	Points         decimal.Decimal `db:"points" json:"points"`
	Laps           int             `db:"laps" json:"laps"`
	Time           *string         `db:"time" json:"time"`
	Milliseconds   *int            `db:"milliseconds" json:"milliseconds"`
	FastestLap     *int            `db:"fastest_lap" json:"fastest_lap"`
	FastestLapTime *string         `db:"fastest_lap_time" json:"fastest_lap_time"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// ConstructorResult represents a constructor's aggregated points for one race.
// Points must equal the sum of the constructor's Result points for that race.
type ConstructorResult struct {
	ID            uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RaceID        uuid.UUID       `db:"race_id" json:"race_id" validate:"required,uuid4"`
	ConstructorID uuid.UUID       `db:"constructor_id" json:"constructor_id" validate:"required,uuid4"`
	Points        decimal.Decimal `db:"points" json:"points"`
	Status        *string         `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// ConstructorStanding is a per-race cumulative championship snapshot for a constructor
type ConstructorStanding struct {
	ID            uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RaceID        uuid.UUID       `db:"race_id" json:"race_id" validate:"required,uuid4"`
	ConstructorID uuid.UUID       `db:"constructor_id" json:"constructor_id" validate:"required,uuid4"`
	Points        decimal.Decimal `db:"points" json:"points"`
	Position      *int            `db:"position" json:"position"`
	PositionText  *string         `db:"position_text" json:"position_text"`
	Wins          int             `db:"wins" json:"wins"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// DriverStanding is a per-race cumulative championship snapshot for a driver
type DriverStanding struct {
	ID           uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RaceID       uuid.UUID       `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID     uuid.UUID       `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	Points       decimal.Decimal `db:"points" json:"points"`
	Position     *int            `db:"position" json:"position"`
	PositionText *string         `db:"position_text" json:"position_text"`
	Wins         int             `db:"wins" json:"wins"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
