package search

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/f1sync/internal/models"
)

// Documents are the denormalized projections written to the search
// index. Each document is keyed by the entity's surrogate ID. Race
// children embed the full race document, circuit and season included,
// so country- and geo-scoped queries never need joins.

const dateLayout = "2006-01-02"

// SeasonDocument is the indexed projection of a season
type SeasonDocument struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	URL  string `json:"url"`
}

// StatusDocument is the indexed projection of a finish status
type StatusDocument struct {
	ID       string `json:"id"`
	StatusID int    `json:"status_id"`
	Status   string `json:"status"`
}

// DriverDocument is the indexed projection of a driver
type DriverDocument struct {
	ID          string  `json:"id"`
	DriverRef   string  `json:"driver_ref"`
	Number      *int    `json:"number,omitempty"`
	Code        *string `json:"code,omitempty"`
	Name        string  `json:"name"`
	Forename    string  `json:"forename"`
	Surname     string  `json:"surname"`
	DOB         *string `json:"dob,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	URL         string  `json:"url"`
}

// ConstructorDocument is the indexed projection of a constructor
type ConstructorDocument struct {
	ID             string  `json:"id"`
	ConstructorRef string  `json:"constructor_ref"`
	Name           string  `json:"name"`
	Nationality    *string `json:"nationality,omitempty"`
	URL            string  `json:"url"`
}

// CircuitDocument is the indexed projection of a circuit. GeoLocation is
// the "lat,lng" pair Elasticsearch accepts as a geo_point.
type CircuitDocument struct {
	ID          string   `json:"id"`
	CircuitRef  string   `json:"circuit_ref"`
	Name        string   `json:"name"`
	Location    *string  `json:"location,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Alt         *int     `json:"alt,omitempty"`
	GeoLocation *string  `json:"geo_location,omitempty"`
	URL         string   `json:"url"`
}

// DriverRef is the slim driver reference embedded in child documents
type DriverRef struct {
	ID        string  `json:"id"`
	DriverRef string  `json:"driver_ref"`
	Code      *string `json:"code,omitempty"`
	Name      string  `json:"name"`
}

// ConstructorRef is the slim constructor reference embedded in child documents
type ConstructorRef struct {
	ID             string `json:"id"`
	ConstructorRef string `json:"constructor_ref"`
	Name           string `json:"name"`
}

// RaceDocument is the indexed projection of a race with its circuit and
// season embedded. The same shape is nested inside every race-child
// document, so filters like race circuit country or the circuit geo
// point apply to results, laps and standings directly.
type RaceDocument struct {
	ID      string          `json:"id"`
	Year    int             `json:"year"`
	Round   int             `json:"round"`
	Name    string          `json:"name"`
	Date    string          `json:"date"`
	Time    *string         `json:"time,omitempty"`
	URL     *string         `json:"url,omitempty"`
	Circuit CircuitDocument `json:"circuit"`
	Season  SeasonDocument  `json:"season"`
}

// QualifyingDocument is the indexed projection of a qualifying classification
type QualifyingDocument struct {
	ID          string         `json:"id"`
	Race        RaceDocument   `json:"race"`
	Driver      DriverRef      `json:"driver"`
	Constructor ConstructorRef `json:"constructor"`
	Number      int            `json:"number"`
	Position    *int           `json:"position,omitempty"`
	Q1          *string        `json:"q1,omitempty"`
	Q2          *string        `json:"q2,omitempty"`
	Q3          *string        `json:"q3,omitempty"`
}

// LapTimeDocument is the indexed projection of a timed lap
type LapTimeDocument struct {
	ID           string       `json:"id"`
	Race         RaceDocument `json:"race"`
	Driver       DriverRef    `json:"driver"`
	Lap          int          `json:"lap"`
	Position     *int         `json:"position,omitempty"`
	Time         *string      `json:"time,omitempty"`
	Milliseconds *int         `json:"milliseconds,omitempty"`
}

// PitStopDocument is the indexed projection of a pit stop
type PitStopDocument struct {
	ID           string       `json:"id"`
	Race         RaceDocument `json:"race"`
	Driver       DriverRef    `json:"driver"`
	Stop         int          `json:"stop"`
	Lap          int          `json:"lap"`
	Time         *string      `json:"time,omitempty"`
	Duration     *string      `json:"duration,omitempty"`
	Milliseconds *int         `json:"milliseconds,omitempty"`
}

// ResultDocument is the indexed projection of a race result
type ResultDocument struct {
	ID              string          `json:"id"`
	Race            RaceDocument    `json:"race"`
	Driver          DriverRef       `json:"driver"`
	Constructor     ConstructorRef  `json:"constructor"`
	Status          string          `json:"status"`
	Number          *int            `json:"number,omitempty"`
	Grid            int             `json:"grid"`
	Position        *int            `json:"position,omitempty"`
	PositionText    string          `json:"position_text"`
	PositionOrder   int             `json:"position_order"`
	Points          decimal.Decimal `json:"points"`
	Laps            int             `json:"laps"`
	Time            *string         `json:"time,omitempty"`
	Milliseconds    *int            `json:"milliseconds,omitempty"`
	FastestLap      *int            `json:"fastest_lap,omitempty"`
	Rank            *int            `json:"rank,omitempty"`
	FastestLapTime  *string         `json:"fastest_lap_time,omitempty"`
	FastestLapSpeed *string         `json:"fastest_lap_speed,omitempty"`
}

// SprintResultDocument is the indexed projection of a sprint result
type SprintResultDocument struct {
	ID             string          `json:"id"`
	Race           RaceDocument    `json:"race"`
	Driver         DriverRef       `json:"driver"`
	Constructor    ConstructorRef  `json:"constructor"`
	Status         string          `json:"status"`
	Number         *int            `json:"number,omitempty"`
	Grid           int             `json:"grid"`
	Position       *int            `json:"position,omitempty"`
	PositionText   string          `json:"position_text"`
	PositionOrder  int             `json:"position_order"`
	Points         decimal.Decimal `json:"points"`
	Laps           int             `json:"laps"`
	Time           *string         `json:"time,omitempty"`
	Milliseconds   *int            `json:"milliseconds,omitempty"`
	FastestLap     *int            `json:"fastest_lap,omitempty"`
	FastestLapTime *string         `json:"fastest_lap_time,omitempty"`
}

// ConstructorResultDocument is the indexed projection of an aggregated
// per-race constructor result
type ConstructorResultDocument struct {
	ID          string          `json:"id"`
	Race        RaceDocument    `json:"race"`
	Constructor ConstructorRef  `json:"constructor"`
	Points      decimal.Decimal `json:"points"`
	Status      *string         `json:"status,omitempty"`
}

// ConstructorStandingDocument is the indexed projection of a standings snapshot
type ConstructorStandingDocument struct {
	ID           string          `json:"id"`
	Race         RaceDocument    `json:"race"`
	Constructor  ConstructorRef  `json:"constructor"`
	Points       decimal.Decimal `json:"points"`
	Position     *int            `json:"position,omitempty"`
	PositionText *string         `json:"position_text,omitempty"`
	Wins         int             `json:"wins"`
}

// DriverStandingDocument is the indexed projection of a standings snapshot
type DriverStandingDocument struct {
	ID           string          `json:"id"`
	Race         RaceDocument    `json:"race"`
	Driver       DriverRef       `json:"driver"`
	Points       decimal.Decimal `json:"points"`
	Position     *int            `json:"position,omitempty"`
	PositionText *string         `json:"position_text,omitempty"`
	Wins         int             `json:"wins"`
}

// NewSeasonDocument builds the indexed projection of a season
func NewSeasonDocument(season *models.Season) SeasonDocument {
	return SeasonDocument{
		ID:   season.ID.String(),
		Year: season.Year,
		URL:  season.URL,
	}
}

// NewStatusDocument builds the indexed projection of a status
func NewStatusDocument(status *models.Status) StatusDocument {
	return StatusDocument{
		ID:       status.ID.String(),
		StatusID: status.StatusID,
		Status:   status.Status,
	}
}

// NewDriverDocument builds the indexed projection of a driver
func NewDriverDocument(driver *models.Driver) DriverDocument {
	return DriverDocument{
		ID:          driver.ID.String(),
		DriverRef:   driver.DriverRef,
		Number:      driver.Number,
		Code:        driver.Code,
		Name:        driver.FullName(),
		Forename:    driver.Forename,
		Surname:     driver.Surname,
		DOB:         formatDate(driver.DOB),
		Nationality: driver.Nationality,
		URL:         driver.URL,
	}
}

// NewConstructorDocument builds the indexed projection of a constructor
func NewConstructorDocument(constructor *models.Constructor) ConstructorDocument {
	return ConstructorDocument{
		ID:             constructor.ID.String(),
		ConstructorRef: constructor.ConstructorRef,
		Name:           constructor.Name,
		Nationality:    constructor.Nationality,
		URL:            constructor.URL,
	}
}

// NewCircuitDocument builds the indexed projection of a circuit.
// GeoLocation is set only when both coordinates are present.
func NewCircuitDocument(circuit *models.Circuit) CircuitDocument {
	doc := CircuitDocument{
		ID:         circuit.ID.String(),
		CircuitRef: circuit.CircuitRef,
		Name:       circuit.Name,
		Location:   circuit.Location,
		Country:    circuit.Country,
		Lat:        circuit.Lat,
		Lng:        circuit.Lng,
		Alt:        circuit.Alt,
		URL:        circuit.URL,
	}
	if circuit.Lat != nil && circuit.Lng != nil {
		geo := strconv.FormatFloat(*circuit.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(*circuit.Lng, 'f', -1, 64)
		doc.GeoLocation = &geo
	}
	return doc
}

// NewRaceDocument builds the indexed projection of a race
func NewRaceDocument(race *models.Race, circuit *models.Circuit, season *models.Season) RaceDocument {
	return RaceDocument{
		ID:      race.ID.String(),
		Year:    race.Year,
		Round:   race.Round,
		Name:    race.Name,
		Date:    race.Date.Format(dateLayout),
		Time:    race.Time,
		URL:     race.URL,
		Circuit: NewCircuitDocument(circuit),
		Season:  NewSeasonDocument(season),
	}
}

// NewQualifyingDocument builds the indexed projection of a qualifying classification
func NewQualifyingDocument(q *models.Qualifying, race RaceDocument, driver *models.Driver, constructor *models.Constructor) QualifyingDocument {
	return QualifyingDocument{
		ID:          q.ID.String(),
		Race:        race,
		Driver:      newDriverRef(driver),
		Constructor: newConstructorRef(constructor),
		Number:      q.Number,
		Position:    q.Position,
		Q1:          q.Q1,
		Q2:          q.Q2,
		Q3:          q.Q3,
	}
}

// NewLapTimeDocument builds the indexed projection of a timed lap
func NewLapTimeDocument(lt *models.LapTime, race RaceDocument, driver *models.Driver) LapTimeDocument {
	return LapTimeDocument{
		ID:           lt.ID.String(),
		Race:         race,
		Driver:       newDriverRef(driver),
		Lap:          lt.Lap,
		Position:     lt.Position,
		Time:         lt.Time,
		Milliseconds: lt.Milliseconds,
	}
}

// NewPitStopDocument builds the indexed projection of a pit stop
func NewPitStopDocument(ps *models.PitStop, race RaceDocument, driver *models.Driver) PitStopDocument {
	return PitStopDocument{
		ID:           ps.ID.String(),
		Race:         race,
		Driver:       newDriverRef(driver),
		Stop:         ps.Stop,
		Lap:          ps.Lap,
		Time:         ps.Time,
		Duration:     ps.Duration,
		Milliseconds: ps.Milliseconds,
	}
}

// NewResultDocument builds the indexed projection of a race result
func NewResultDocument(res *models.Result, race RaceDocument, driver *models.Driver, constructor *models.Constructor, status *models.Status) ResultDocument {
	return ResultDocument{
		ID:              res.ID.String(),
		Race:            race,
		Driver:          newDriverRef(driver),
		Constructor:     newConstructorRef(constructor),
		Status:          status.Status,
		Number:          res.Number,
		Grid:            res.Grid,
		Position:        res.Position,
		PositionText:    res.PositionText,
		PositionOrder:   res.PositionOrder,
		Points:          res.Points,
		Laps:            res.Laps,
		Time:            res.Time,
		Milliseconds:    res.Milliseconds,
		FastestLap:      res.FastestLap,
		Rank:            res.Rank,
		FastestLapTime:  res.FastestLapTime,
		FastestLapSpeed: res.FastestLapSpeed,
	}
}

// NewSprintResultDocument builds the indexed projection of a sprint result
func NewSprintResultDocument(res *models.SprintResult, race RaceDocument, driver *models.Driver, constructor *models.Constructor, status *models.Status) SprintResultDocument {
	return SprintResultDocument{
		ID:             res.ID.String(),
		Race:           race,
		Driver:         newDriverRef(driver),
		Constructor:    newConstructorRef(constructor),
		Status:         status.Status,
		Number:         res.Number,
		Grid:           res.Grid,
		Position:       res.Position,
		PositionText:   res.PositionText,
		PositionOrder:  res.PositionOrder,
		Points:         res.Points,
		Laps:           res.Laps,
		Time:           res.Time,
		Milliseconds:   res.Milliseconds,
		FastestLap:     res.FastestLap,
		FastestLapTime: res.FastestLapTime,
	}
}

// NewConstructorResultDocument builds the indexed projection of an aggregated constructor result
func NewConstructorResultDocument(cr *models.ConstructorResult, race RaceDocument, constructor *models.Constructor) ConstructorResultDocument {
	return ConstructorResultDocument{
		ID:          cr.ID.String(),
		Race:        race,
		Constructor: newConstructorRef(constructor),
		Points:      cr.Points,
		Status:      cr.Status,
	}
}

// NewConstructorStandingDocument builds the indexed projection of a constructor standing
func NewConstructorStandingDocument(cs *models.ConstructorStanding, race RaceDocument, constructor *models.Constructor) ConstructorStandingDocument {
	return ConstructorStandingDocument{
		ID:           cs.ID.String(),
		Race:         race,
		Constructor:  newConstructorRef(constructor),
		Points:       cs.Points,
		Position:     cs.Position,
		PositionText: cs.PositionText,
		Wins:         cs.Wins,
	}
}

// NewDriverStandingDocument builds the indexed projection of a driver standing
func NewDriverStandingDocument(ds *models.DriverStanding, race RaceDocument, driver *models.Driver) DriverStandingDocument {
	return DriverStandingDocument{
		ID:           ds.ID.String(),
		Race:         race,
		Driver:       newDriverRef(driver),
		Points:       ds.Points,
		Position:     ds.Position,
		PositionText: ds.PositionText,
		Wins:         ds.Wins,
	}
}

func newDriverRef(driver *models.Driver) DriverRef {
	return DriverRef{
		ID:        driver.ID.String(),
		DriverRef: driver.DriverRef,
		Code:      driver.Code,
		Name:      driver.FullName(),
	}
}

func newConstructorRef(constructor *models.Constructor) ConstructorRef {
	return ConstructorRef{
		ID:             constructor.ID.String(),
		ConstructorRef: constructor.ConstructorRef,
		Name:           constructor.Name,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
