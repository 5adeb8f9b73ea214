package models

import (
	"time"

	"github.com/google/uuid"
)

// Race represents a single round of a championship season.
// The natural key is (year, round, name, date); year is stored alongside
// the season foreign key so round lookups don't need a join.
type Race struct {
	ID         uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	SeasonID   uuid.UUID  `db:"season_id" json:"season_id" validate:"required,uuid4"`
	Year       int        `db:"year" json:"year" validate:"required,gte=1950"`
	Round      int        `db:"round" json:"round" validate:"required,gt=0"`
	CircuitID  uuid.UUID  `db:"circuit_id" json:"circuit_id" validate:"required,uuid4"`
	Name       string     `db:"name" json:"name" validate:"required"`
	Date       time.Time  `db:"date" json:"date" validate:"required"`
	Time       *string    `db:"time" json:"time"`
	URL        *string    `db:"url" json:"url"`
	FP1Date    *time.Time `db:"fp1_date" json:"fp1_date"`
	FP1Time    *string    `db:"fp1_time" json:"fp1_time"`
	FP2Date    *time.Time `db:"fp2_date" json:"fp2_date"`
	FP2Time    *string    `db:"fp2_time" json:"fp2_time"`
	FP3Date    *time.Time `db:"fp3_date" json:"fp3_date"`
	FP3Time    *string    `db:"fp3_time" json:"fp3_time"`
	QualiDate  *time.Time `db:"quali_date" json:"quali_date"`
	QualiTime  *string    `db:"quali_time" json:"quali_time"`
	SprintDate *time.Time `db:"sprint_date" json:"sprint_date"`
	SprintTime *string    `db:"sprint_time" json:"sprint_time"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Qualifying represents one driver's qualifying classification at a race
type Qualifying struct {
	ID            uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	RaceID        uuid.UUID `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID      uuid.UUID `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	ConstructorID uuid.UUID `db:"constructor_id" json:"constructor_id" validate:"required,uuid4"`
	Number        int       `db:"number" json:"number"`
	Position      *int      `db:"position" json:"position"`
	Q1            *string   `db:"q1" json:"q1"`
	Q2            *string   `db:"q2" json:"q2"`
	Q3            *string   `db:"q3" json:"q3"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// LapTime represents one timed lap for a driver; unique on (race, driver, lap)
type LapTime struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	RaceID       uuid.UUID `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID     uuid.UUID `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	Lap          int       `db:"lap" json:"lap" validate:"required,gt=0"`
	Position     *int      `db:"position" json:"position"`
	Time         *string   `db:"time" json:"time"`
	Milliseconds *int      `db:"milliseconds" json:"milliseconds"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PitStop represents one pit stop for a driver; unique on (race, driver, stop)
type PitStop struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	RaceID       uuid.UUID `db:"race_id" json:"race_id" validate:"required,uuid4"`
	DriverID     uuid.UUID `db:"driver_id" json:"driver_id" validate:"required,uuid4"`
	Stop         int       `db:"stop" json:"stop" validate:"required,gt=0"`
	Lap          int       `db:"lap" json:"lap"`
	Time         *string   `db:"time" json:"time"`
	Duration     *string   `db:"duration" json:"duration"`
	Milliseconds *int      `db:"milliseconds" json:"milliseconds"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
