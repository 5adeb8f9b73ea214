package models

import (
	"time"

	"github.com/google/uuid"
)

// Season represents a championship year, the root of the race hierarchy
type Season struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Year      int       `db:"year" json:"year" validate:"required,gte=1950"`
	URL       string    `db:"url" json:"url" validate:"required,url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Status represents a race finish status (e.g. "Finished", "Retired")
type Status struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	StatusID  int       `db:"status_id" json:"status_id" validate:"required,gt=0"`
	Status    string    `db:"status" json:"status" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Driver represents a Formula 1 driver
type Driver struct {
	ID          uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	DriverRef   string     `db:"driver_ref" json:"driver_ref" validate:"required"`
	Number      *int       `db:"number" json:"number"`
	Code        *string    `db:"code" json:"code"`
	Forename    string     `db:"forename" json:"forename" validate:"required"`
	Surname     string     `db:"surname" json:"surname" validate:"required"`
	DOB         *time.Time `db:"dob" json:"dob"`
	Nationality *string    `db:"nationality" json:"nationality"`
	URL         string     `db:"url" json:"url" validate:"required"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// FullName returns the driver's display name
func (d *Driver) FullName() string {
	return d.Forename + " " + d.Surname
}

// Constructor represents a Formula 1 constructor/team
type Constructor struct {
	ID             uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	ConstructorRef string    `db:"constructor_ref" json:"constructor_ref" validate:"required"`
	Name           string    `db:"name" json:"name" validate:"required"`
	Nationality    *string   `db:"nationality" json:"nationality"`
	URL            string    `db:"url" json:"url" validate:"required"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Circuit represents a race circuit with its geographic position
type Circuit struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	CircuitRef string    `db:"circuit_ref" json:"circuit_ref" validate:"required"`
	Name       string    `db:"name" json:"name" validate:"required"`
	Location   *string   `db:"location" json:"location"`
	Country    *string   `db:"country" json:"country"`
	Lat        *float64  `db:"lat" json:"lat"`
	Lng        *float64  `db:"lng" json:"lng"`
	Alt        *int      `db:"alt" json:"alt"`
	URL        string    `db:"url" json:"url" validate:"required"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
