package sync

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
	"github.com/yourusername/f1sync/internal/resolver"
)

func newTestService(client ergast.Client, repos *repository.Repositories) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(client, repos, resolver.New(repos), nil, log)
}

func seedSeason(t *testing.T, repos *repository.Repositories, year int) *models.Season {
	t.Helper()
	season := &models.Season{ID: uuid.New(), Year: year, URL: "http://example.com"}
	require.NoError(t, repos.Season.Create(context.Background(), season))
	return season
}

func seedCircuit(t *testing.T, repos *repository.Repositories, ref string) *models.Circuit {
	t.Helper()
	circuit := &models.Circuit{ID: uuid.New(), CircuitRef: ref, Name: ref, URL: "http://example.com"}
	require.NoError(t, repos.Circuit.Create(context.Background(), circuit))
	return circuit
}

func seedDriver(t *testing.T, repos *repository.Repositories, ref string) *models.Driver {
	t.Helper()
	driver := &models.Driver{ID: uuid.New(), DriverRef: ref, Forename: "A", Surname: "B", URL: "http://example.com"}
	require.NoError(t, repos.Driver.Create(context.Background(), driver))
	return driver
}

func seedConstructor(t *testing.T, repos *repository.Repositories, ref string) *models.Constructor {
	t.Helper()
	constructor := &models.Constructor{ID: uuid.New(), ConstructorRef: ref, Name: ref, URL: "http://example.com"}
	require.NoError(t, repos.Constructor.Create(context.Background(), constructor))
	return constructor
}

func seedStatus(t *testing.T, repos *repository.Repositories, text string) *models.Status {
	t.Helper()
	status := &models.Status{ID: uuid.New(), StatusID: 1, Status: text}
	require.NoError(t, repos.Status.Create(context.Background(), status))
	return status
}

func seedRace(t *testing.T, repos *repository.Repositories, season *models.Season, circuit *models.Circuit, round int, name string) *models.Race {
	t.Helper()
	race := &models.Race{
		ID:        uuid.New(),
		SeasonID:  season.ID,
		Year:      season.Year,
		Round:     round,
		CircuitID: circuit.ID,
		Name:      name,
		Date:      time.Date(season.Year, 3, round, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repos.Race.Create(context.Background(), race))
	return race
}

func TestUpdateSeasonsIsIdempotent(t *testing.T) {
	repos := newMemRepositories()
	client := &fakeClient{seasons: []ergast.SeasonEntry{
		{Season: "2023", URL: "http://example.com/2023"},
		{Season: "2024", URL: "http://example.com/2024"},
	}}
	svc := newTestService(client, repos)

	first, err := svc.UpdateSeasons(context.Background(), ergast.Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Fetched)
	assert.Equal(t, 2, first.Inserted)
	assert.Equal(t, 0, first.Skipped)

	second, err := svc.UpdateSeasons(context.Background(), ergast.Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	stored, err := repos.Season.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUpdateDriversMapsOptionalFields(t *testing.T) {
	repos := newMemRepositories()
	client := &fakeClient{drivers: []ergast.DriverEntry{
		{DriverID: "alonso", PermanentNumber: "14", Code: "ALO", GivenName: "Fernando", FamilyName: "Alonso", DateOfBirth: "1981-07-29", Nationality: "Spanish", URL: "http://example.com/alonso"},
		{DriverID: "fangio", GivenName: "Juan", FamilyName: "Fangio", URL: "http://example.com/fangio"},
	}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateDrivers(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)

	alonso, err := repos.Driver.GetByRef(context.Background(), "alonso")
	require.NoError(t, err)
	require.NotNil(t, alonso.Number)
	assert.Equal(t, 14, *alonso.Number)
	require.NotNil(t, alonso.Code)
	assert.Equal(t, "ALO", *alonso.Code)
	require.NotNil(t, alonso.DOB)
	assert.Equal(t, 1981, alonso.DOB.Year())

	// Historical drivers carry no number, code or nationality
	fangio, err := repos.Driver.GetByRef(context.Background(), "fangio")
	require.NoError(t, err)
	assert.Nil(t, fangio.Number)
	assert.Nil(t, fangio.Code)
	assert.Nil(t, fangio.Nationality)
	assert.Nil(t, fangio.DOB)
}

func TestUpdateRacesSkipsMissingCircuit(t *testing.T) {
	repos := newMemRepositories()
	seedSeason(t, repos, 2023)

	client := &fakeClient{races: []ergast.RaceEntry{{
		Season:   "2023",
		Round:    "1",
		RaceName: "Bahrain Grand Prix",
		Date:     "2023-03-05",
		Circuit:  ergast.CircuitEntry{CircuitID: "bahrain"},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateRaces(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.MissingDeps)

	races, err := repos.Race.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, races)
}

func TestUpdateRacesInsertsSchedule(t *testing.T) {
	repos := newMemRepositories()
	seedSeason(t, repos, 2023)
	seedCircuit(t, repos, "bahrain")

	client := &fakeClient{races: []ergast.RaceEntry{{
		Season:        "2023",
		Round:         "1",
		URL:           "http://example.com/race",
		RaceName:      "Bahrain Grand Prix",
		Date:          "2023-03-05",
		Time:          "15:00:00Z",
		Circuit:       ergast.CircuitEntry{CircuitID: "bahrain"},
		FirstPractice: &ergast.Session{Date: "2023-03-03", Time: "11:30:00Z"},
		Sprint:        &ergast.Session{Date: "2023-03-04", Time: "14:00:00Z"},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateRaces(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	race, err := repos.Race.GetByNaturalKey(context.Background(), 2023, 1, "Bahrain Grand Prix",
		time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, race.FP1Date)
	assert.Equal(t, 3, race.FP1Date.Day())
	require.NotNil(t, race.SprintTime)
	assert.Equal(t, "14:00:00Z", *race.SprintTime)
	assert.Nil(t, race.FP2Date)
}

func TestUpdateQualifyingCountsMissingRacePerRecord(t *testing.T) {
	repos := newMemRepositories()
	seedDriver(t, repos, "alonso")
	seedConstructor(t, repos, "aston_martin")

	client := &fakeClient{qualifying: []ergast.RaceEntry{{
		Season: "2023",
		Round:  "1",
		QualifyingResults: []ergast.QualifyingResult{
			{Number: "14", Position: "4", Driver: ergast.DriverEntry{DriverID: "alonso"}, Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"}},
			{Number: "18", Position: "5", Driver: ergast.DriverEntry{DriverID: "stroll"}, Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"}},
		},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateQualifying(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 2, summary.MissingDeps)
	assert.Equal(t, 0, summary.Inserted)
}

func TestUpdateQualifyingInsertsClassification(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedDriver(t, repos, "alonso")
	seedConstructor(t, repos, "aston_martin")

	client := &fakeClient{qualifying: []ergast.RaceEntry{{
		Season: "2023",
		Round:  "1",
		QualifyingResults: []ergast.QualifyingResult{{
			Number:      "14",
			Position:    "4",
			Driver:      ergast.DriverEntry{DriverID: "alonso"},
			Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"},
			Q1:          "1:30.555",
			Q2:          "1:29.801",
		}},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateQualifying(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	rows, err := repos.Qualifying.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 14, rows[0].Number)
	require.NotNil(t, rows[0].Position)
	assert.Equal(t, 4, *rows[0].Position)
	require.NotNil(t, rows[0].Q2)
	assert.Equal(t, "1:29.801", *rows[0].Q2)
	assert.Nil(t, rows[0].Q3)
}

func TestUpdateLapTimesWalksRoundsAndNormalizes(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedRace(t, repos, season, circuit, 2, "Saudi Arabian Grand Prix")
	seedDriver(t, repos, "alonso")

	client := &fakeClient{laps: map[int][]ergast.RaceEntry{
		1: {{
			Season: "2023",
			Round:  "1",
			Laps: []ergast.Lap{{
				Number:  "1",
				Timings: []ergast.Timing{{DriverID: "alonso", Position: "3", Time: "1:23.456"}},
			}},
		}},
		2: {{
			Season: "2023",
			Round:  "2",
			Laps: []ergast.Lap{{
				Number:  "1",
				Timings: []ergast.Timing{{DriverID: "alonso", Position: "2", Time: "garbled"}},
			}},
		}},
	}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateLapTimes(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 2, summary.Inserted)

	rows, err := repos.LapTime.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Milliseconds)
	assert.Equal(t, 83456, *rows[0].Milliseconds)

	// Unparsable times keep the display string with no millisecond value
	assert.Nil(t, rows[1].Milliseconds)
	require.NotNil(t, rows[1].Time)
	assert.Equal(t, "garbled", *rows[1].Time)
}

func TestUpdatePitStopsKeepsClockAndNormalizesDuration(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedDriver(t, repos, "alonso")

	client := &fakeClient{pitStops: map[int][]ergast.RaceEntry{
		1: {{
			Season: "2023",
			Round:  "1",
			PitStops: []ergast.PitStopEntry{
				{DriverID: "alonso", Lap: "14", Stop: "1", Time: "17:31:04", Duration: "24.931"},
			},
		}},
	}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdatePitStops(context.Background(), ergast.Request{Season: 2023, Round: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	rows, err := repos.PitStop.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 14, rows[0].Lap)
	require.NotNil(t, rows[0].Time)
	assert.Equal(t, "17:31:04", *rows[0].Time)
	require.NotNil(t, rows[0].Milliseconds)
	assert.Equal(t, 24931, *rows[0].Milliseconds)
}

func TestUpdateResultsDerivesConstructorResults(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	race := seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedDriver(t, repos, "alonso")
	seedDriver(t, repos, "stroll")
	constructor := seedConstructor(t, repos, "aston_martin")
	seedStatus(t, repos, "Finished")
	seedStatus(t, repos, "Retired")

	client := &fakeClient{results: []ergast.RaceEntry{{
		Season: "2023",
		Round:  "1",
		Results: []ergast.ResultEntry{
			{
				Number: "14", Position: "3", PositionText: "3", Points: "15",
				Driver:      ergast.DriverEntry{DriverID: "alonso"},
				Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"},
				Grid:        "2", Laps: "57", Status: "Finished",
				Time:       &ergast.ElapsedTime{Millis: "5640567", Time: "+38.637"},
				FastestLap: &ergast.FastestLap{Rank: "2", Lap: "44", Time: &ergast.LapTimeValue{Time: "1:34.570"}},
			},
			{
				Number: "18", Position: "12", PositionText: "R", Points: "0.5",
				Driver:      ergast.DriverEntry{DriverID: "stroll"},
				Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"},
				Grid:        "7", Laps: "40", Status: "Retired",
			},
		},
	}}}
	svc := newTestService(client, repos)

	summaries, err := svc.UpdateResults(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "result", summaries[0].Entity)
	assert.Equal(t, 2, summaries[0].Inserted)
	assert.Equal(t, "constructor_result", summaries[1].Entity)
	assert.Equal(t, 1, summaries[1].Inserted)

	results, err := repos.Result.List(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	// A classified finisher keeps a numeric position; a retirement does not
	require.NotNil(t, results[0].Position)
	assert.Equal(t, 3, *results[0].Position)
	assert.Equal(t, 3, results[0].PositionOrder)
	assert.Nil(t, results[1].Position)
	assert.Equal(t, "R", results[1].PositionText)
	assert.Equal(t, 12, results[1].PositionOrder)

	require.NotNil(t, results[0].Milliseconds)
	assert.Equal(t, 5640567, *results[0].Milliseconds)
	require.NotNil(t, results[0].Rank)
	assert.Equal(t, 2, *results[0].Rank)

	// Constructor points are the exact sum of the team's driver points
	crs, err := repos.ConstructorResult.List(context.Background())
	require.NoError(t, err)
	require.Len(t, crs, 1)
	assert.Equal(t, constructor.ID, crs[0].ConstructorID)
	assert.Equal(t, race.ID, crs[0].RaceID)
	assert.True(t, crs[0].Points.Equal(decimal.RequireFromString("15.5")),
		"expected 15.5 points, got %s", crs[0].Points)
}

func TestUpdateDriverStandingsWalksRounds(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedRace(t, repos, season, circuit, 2, "Saudi Arabian Grand Prix")
	seedDriver(t, repos, "alonso")

	client := &fakeClient{driverStandings: map[int][]ergast.StandingsList{
		1: {{
			Season: "2023", Round: "1",
			DriverStandings: []ergast.DriverStanding{
				{Position: "3", PositionText: "3", Points: "15", Wins: "0", Driver: ergast.DriverEntry{DriverID: "alonso"}},
			},
		}},
		2: {{
			Season: "2023", Round: "2",
			DriverStandings: []ergast.DriverStanding{
				{Position: "2", PositionText: "2", Points: "30", Wins: "0", Driver: ergast.DriverEntry{DriverID: "alonso"}},
			},
		}},
	}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateDriverStandings(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 2, summary.Inserted)

	rows, err := repos.DriverStanding.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].Points.Equal(decimal.RequireFromString("30")))
}

func TestUpdateSeasonsAbortsOnUpstreamFailure(t *testing.T) {
	repos := newMemRepositories()
	client := &fakeClient{err: ergast.ErrUpstream}
	svc := newTestService(client, repos)

	_, err := svc.UpdateSeasons(context.Background(), ergast.Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ergast.ErrUpstream)

	stored, err := repos.Season.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

// staleExistsQualifyingRepo hides existing rows from the existence check
// so the insert collides with an already-present natural key, the way a
// concurrent writer would make it.
type staleExistsQualifyingRepo struct {
	*memQualifyingRepo
}

func (r *staleExistsQualifyingRepo) Exists(ctx context.Context, raceID, driverID, constructorID uuid.UUID) (bool, error) {
	return false, nil
}

func TestConcurrentDuplicateInsertIsBenign(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	race := seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	driver := seedDriver(t, repos, "alonso")
	constructor := seedConstructor(t, repos, "aston_martin")

	qualifyingRepo := &memQualifyingRepo{}
	require.NoError(t, qualifyingRepo.Create(context.Background(), &models.Qualifying{
		ID: uuid.New(), RaceID: race.ID, DriverID: driver.ID, ConstructorID: constructor.ID,
	}))
	repos.Qualifying = &staleExistsQualifyingRepo{qualifyingRepo}

	client := &fakeClient{qualifying: []ergast.RaceEntry{{
		Season: "2023",
		Round:  "1",
		QualifyingResults: []ergast.QualifyingResult{{
			Number:      "14",
			Driver:      ergast.DriverEntry{DriverID: "alonso"},
			Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"},
		}},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateQualifying(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
}

func TestAmbiguousRoundCountsAsFailure(t *testing.T) {
	repos := newMemRepositories()
	season := seedSeason(t, repos, 2023)
	circuit := seedCircuit(t, repos, "bahrain")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix")
	seedRace(t, repos, season, circuit, 1, "Bahrain Grand Prix Rerun")
	seedDriver(t, repos, "alonso")
	seedConstructor(t, repos, "aston_martin")

	client := &fakeClient{qualifying: []ergast.RaceEntry{{
		Season: "2023",
		Round:  "1",
		QualifyingResults: []ergast.QualifyingResult{{
			Number:      "14",
			Driver:      ergast.DriverEntry{DriverID: "alonso"},
			Constructor: ergast.ConstructorEntry{ConstructorID: "aston_martin"},
		}},
	}}}
	svc := newTestService(client, repos)

	summary, err := svc.UpdateQualifying(context.Background(), ergast.Request{Season: 2023})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 0, summary.MissingDeps)
	assert.Equal(t, 1, summary.Failed)
}
