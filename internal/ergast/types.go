package ergast

// Wire types for the Ergast motorsport API (http://ergast.com/mrd/).
// Every response wraps its table in an MRData envelope; numeric values
// arrive as strings and are converted at the pipeline boundary.

// Envelope is the MRData wrapper common to all Ergast responses
type Envelope struct {
	MRData MRData `json:"MRData"`
}

// MRData carries exactly one populated table per response
type MRData struct {
	Series           string            `json:"series"`
	Limit            string            `json:"limit"`
	Offset           string            `json:"offset"`
	Total            string            `json:"total"`
	SeasonTable      *SeasonTable      `json:"SeasonTable,omitempty"`
	StatusTable      *StatusTable      `json:"StatusTable,omitempty"`
	DriverTable      *DriverTable      `json:"DriverTable,omitempty"`
	ConstructorTable *ConstructorTable `json:"ConstructorTable,omitempty"`
	CircuitTable     *CircuitTable     `json:"CircuitTable,omitempty"`
	RaceTable        *RaceTable        `json:"RaceTable,omitempty"`
	StandingsTable   *StandingsTable   `json:"StandingsTable,omitempty"`
}

// SeasonTable lists championship seasons
type SeasonTable struct {
	Seasons []SeasonEntry `json:"Seasons"`
}

// SeasonEntry is one championship season
type SeasonEntry struct {
	Season string `json:"season"`
	URL    string `json:"url"`
}

// StatusTable lists the finish-status vocabulary
type StatusTable struct {
	Status []StatusEntry `json:"Status"`
}

// StatusEntry is one finish status
type StatusEntry struct {
	StatusID string `json:"statusId"`
	Count    string `json:"count"`
	Status   string `json:"status"`
}

// DriverTable lists drivers
type DriverTable struct {
	Drivers []DriverEntry `json:"Drivers"`
}

// DriverEntry is one driver
type DriverEntry struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	URL             string `json:"url"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Nationality     string `json:"nationality"`
}

// ConstructorTable lists constructors
type ConstructorTable struct {
	Constructors []ConstructorEntry `json:"Constructors"`
}

// ConstructorEntry is one constructor
type ConstructorEntry struct {
	ConstructorID string `json:"constructorId"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
}

// CircuitTable lists circuits
type CircuitTable struct {
	Circuits []CircuitEntry `json:"Circuits"`
}

// CircuitEntry is one circuit
type CircuitEntry struct {
	CircuitID   string   `json:"circuitId"`
	URL         string   `json:"url"`
	CircuitName string   `json:"circuitName"`
	Location    Location `json:"Location"`
}

// Location is a circuit's geographic position
type Location struct {
	Lat      string `json:"lat"`
	Long     string `json:"long"`
	Locality string `json:"locality"`
	Country  string `json:"country"`
}

// RaceTable lists races; the nested slices are populated depending on
// which endpoint produced the response (schedule, qualifying, laps, ...)
type RaceTable struct {
	Season string      `json:"season"`
	Round  string      `json:"round"`
	Races  []RaceEntry `json:"Races"`
}

// RaceEntry is one race with any per-race payload the endpoint returned
type RaceEntry struct {
	Season            string             `json:"season"`
	Round             string             `json:"round"`
	URL               string             `json:"url"`
	RaceName          string             `json:"raceName"`
	Circuit           CircuitEntry       `json:"Circuit"`
	Date              string             `json:"date"`
	Time              string             `json:"time"`
	FirstPractice     *Session           `json:"FirstPractice,omitempty"`
	SecondPractice    *Session           `json:"SecondPractice,omitempty"`
	ThirdPractice     *Session           `json:"ThirdPractice,omitempty"`
	Qualifying        *Session           `json:"Qualifying,omitempty"`
	Sprint            *Session           `json:"Sprint,omitempty"`
	QualifyingResults []QualifyingResult `json:"QualifyingResults,omitempty"`
	Laps              []Lap              `json:"Laps,omitempty"`
	PitStops          []PitStopEntry     `json:"PitStops,omitempty"`
	SprintResults     []ResultEntry      `json:"SprintResults,omitempty"`
	Results           []ResultEntry      `json:"Results,omitempty"`
}

// Session is an auxiliary session's date and time
type Session struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// QualifyingResult is one driver's qualifying classification
type QualifyingResult struct {
	Number      string           `json:"number"`
	Position    string           `json:"position"`
	Driver      DriverEntry      `json:"Driver"`
	Constructor ConstructorEntry `json:"Constructor"`
	Q1          string           `json:"Q1"`
	Q2          string           `json:"Q2"`
	Q3          string           `json:"Q3"`
}

// Lap is one race lap with per-driver timings
type Lap struct {
	Number  string   `json:"number"`
	Timings []Timing `json:"Timings"`
}

// Timing is one driver's time on a lap
type Timing struct {
	DriverID string `json:"driverId"`
	Position string `json:"position"`
	Time     string `json:"time"`
}

// PitStopEntry is one pit stop
type PitStopEntry struct {
	DriverID string `json:"driverId"`
	Lap      string `json:"lap"`
	Stop     string `json:"stop"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
}

// ResultEntry is one driver's race or sprint result
type ResultEntry struct {
	Number       string           `json:"number"`
	Position     string           `json:"position"`
	PositionText string           `json:"positionText"`
	Points       string           `json:"points"`
	Driver       DriverEntry      `json:"Driver"`
	Constructor  ConstructorEntry `json:"Constructor"`
	Grid         string           `json:"grid"`
	Laps         string           `json:"laps"`
	Status       string           `json:"status"`
	Time         *ElapsedTime     `json:"Time,omitempty"`
	FastestLap   *FastestLap      `json:"FastestLap,omitempty"`
}

// ElapsedTime is a race finishing time
type ElapsedTime struct {
	Millis string `json:"millis"`
	Time   string `json:"time"`
}

// FastestLap is a result's fastest-lap detail
type FastestLap struct {
	Rank         string        `json:"rank"`
	Lap          string        `json:"lap"`
	Time         *LapTimeValue `json:"Time,omitempty"`
	AverageSpeed *AverageSpeed `json:"AverageSpeed,omitempty"`
}

// LapTimeValue is a lap time display string
type LapTimeValue struct {
	Time string `json:"time"`
}

// AverageSpeed is a fastest lap's average speed
type AverageSpeed struct {
	Units string `json:"units"`
	Speed string `json:"speed"`
}

// StandingsTable lists championship standings snapshots
type StandingsTable struct {
	Season         string          `json:"season"`
	StandingsLists []StandingsList `json:"StandingsLists"`
}

// StandingsList is the standings after one round of a season
type StandingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	DriverStandings      []DriverStanding      `json:"DriverStandings,omitempty"`
	ConstructorStandings []ConstructorStanding `json:"ConstructorStandings,omitempty"`
}

// DriverStanding is one driver's cumulative championship position
type DriverStanding struct {
	Position     string             `json:"position"`
	PositionText string             `json:"positionText"`
	Points       string             `json:"points"`
	Wins         string             `json:"wins"`
	Driver       DriverEntry        `json:"Driver"`
	Constructors []ConstructorEntry `json:"Constructors"`
}

// ConstructorStanding is one constructor's cumulative championship position
type ConstructorStanding struct {
	Position     string           `json:"position"`
	PositionText string           `json:"positionText"`
	Points       string           `json:"points"`
	Wins         string           `json:"wins"`
	Constructor  ConstructorEntry `json:"Constructor"`
}
