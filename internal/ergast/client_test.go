package ergast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	httpClient := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:      5 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
		RateLimit:    1000,
	}, log)

	return NewHTTPClient(httpClient, server.URL, log)
}

func TestSeasonsPaginatesToTotal(t *testing.T) {
	pages := map[string]string{
		"0": `{"MRData": {"total": "2", "SeasonTable": {"Seasons": [
			{"season": "2023", "url": "http://example.com/2023"}
		]}}}`,
		"1": `{"MRData": {"total": "2", "SeasonTable": {"Seasons": [
			{"season": "2024", "url": "http://example.com/2024"}
		]}}}`,
	}

	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		body, ok := pages[r.URL.Query().Get("offset")]
		require.True(t, ok, "unexpected offset %s", r.URL.Query().Get("offset"))
		fmt.Fprint(w, body)
	})

	seasons, err := client.Seasons(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "2023", seasons[0].Season)
	assert.Equal(t, "2024", seasons[1].Season)
	assert.Equal(t, 2, requests)
}

func TestQualifyingMergesRaceSplitAcrossPages(t *testing.T) {
	// The same race continues on the second page; the split entries must
	// fold back into one.
	pages := map[string]string{
		"0": `{"MRData": {"total": "3", "RaceTable": {"Races": [{
			"season": "2023", "round": "1", "raceName": "Bahrain Grand Prix",
			"QualifyingResults": [
				{"number": "1", "position": "1", "Driver": {"driverId": "max_verstappen"}, "Constructor": {"constructorId": "red_bull"}},
				{"number": "11", "position": "2", "Driver": {"driverId": "perez"}, "Constructor": {"constructorId": "red_bull"}}
			]
		}]}}}`,
		"2": `{"MRData": {"total": "3", "RaceTable": {"Races": [{
			"season": "2023", "round": "1", "raceName": "Bahrain Grand Prix",
			"QualifyingResults": [
				{"number": "14", "position": "3", "Driver": {"driverId": "alonso"}, "Constructor": {"constructorId": "aston_martin"}}
			]
		}]}}}`,
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("offset")]
		require.True(t, ok, "unexpected offset %s", r.URL.Query().Get("offset"))
		fmt.Fprint(w, body)
	})

	races, err := client.Qualifying(context.Background(), Request{Season: 2023})
	require.NoError(t, err)
	require.Len(t, races, 1)
	require.Len(t, races[0].QualifyingResults, 3)
	assert.Equal(t, "alonso", races[0].QualifyingResults[2].Driver.DriverID)
}

func TestLapsScopesPathBySeasonAndRound(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"MRData": {"total": "0", "RaceTable": {"Races": []}}}`)
	})

	_, err := client.Laps(context.Background(), Request{Season: 2023, Round: 2})
	require.NoError(t, err)
	assert.Equal(t, "/2023/2/laps.json", gotPath)
}

func TestRequestLimitCapsPagination(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"MRData": {"total": "5", "DriverTable": {"Drivers": [
			{"driverId": "alonso", "givenName": "Fernando", "familyName": "Alonso"}
		]}}}`)
	})

	drivers, err := client.Drivers(context.Background(), Request{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, drivers, 1)
	assert.Equal(t, 1, requests)
}

func TestErrorStatusReturnsErrUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such table", http.StatusNotFound)
	})

	_, err := client.Seasons(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestMalformedResponseReturnsErrUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"MRData": {"total": `)
	})

	_, err := client.Statuses(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestStandingsPaginationCountsLeafRecords(t *testing.T) {
	// Ergast counts individual standings rows, not standings lists
	pages := map[string]string{
		"0": `{"MRData": {"total": "3", "StandingsTable": {"StandingsLists": [{
			"season": "2023", "round": "1",
			"DriverStandings": [
				{"position": "1", "points": "25", "wins": "1", "Driver": {"driverId": "max_verstappen"}},
				{"position": "2", "points": "18", "wins": "0", "Driver": {"driverId": "perez"}}
			]
		}]}}}`,
		"2": `{"MRData": {"total": "3", "StandingsTable": {"StandingsLists": [{
			"season": "2023", "round": "1",
			"DriverStandings": [
				{"position": "3", "points": "15", "wins": "0", "Driver": {"driverId": "alonso"}}
			]
		}]}}}`,
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("offset")]
		require.True(t, ok, "unexpected offset %s", r.URL.Query().Get("offset"))
		fmt.Fprint(w, body)
	})

	lists, err := client.DriverStandings(context.Background(), Request{Season: 2023, Round: 1})
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Len(t, lists[0].DriverStandings, 2)
	assert.Len(t, lists[1].DriverStandings, 1)
}
