// Package ergast implements a client for the Ergast motorsport statistics API.
package ergast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Ergast API endpoint
const DefaultBaseURL = "https://ergast.com/api/f1"

// defaultPageLimit is the largest page size Ergast accepts
const defaultPageLimit = 1000

// ErrUpstream marks responses the API returned but that could not be used
var ErrUpstream = errors.New("upstream fetch failure")

// Request is an immutable per-call descriptor. Season and Round of zero
// mean unscoped; Limit of zero requests the full record set, paginating
// past the API's page cap so no season is silently truncated.
type Request struct {
	Season int
	Round  int
	Limit  int
}

// Client fetches Ergast records per entity type
type Client interface {
	Seasons(ctx context.Context, req Request) ([]SeasonEntry, error)
	Statuses(ctx context.Context, req Request) ([]StatusEntry, error)
	Drivers(ctx context.Context, req Request) ([]DriverEntry, error)
	Constructors(ctx context.Context, req Request) ([]ConstructorEntry, error)
	Circuits(ctx context.Context, req Request) ([]CircuitEntry, error)
	Races(ctx context.Context, req Request) ([]RaceEntry, error)
	Qualifying(ctx context.Context, req Request) ([]RaceEntry, error)
	Laps(ctx context.Context, req Request) ([]RaceEntry, error)
	PitStops(ctx context.Context, req Request) ([]RaceEntry, error)
	SprintResults(ctx context.Context, req Request) ([]RaceEntry, error)
	Results(ctx context.Context, req Request) ([]RaceEntry, error)
	ConstructorStandings(ctx context.Context, req Request) ([]StandingsList, error)
	DriverStandings(ctx context.Context, req Request) ([]StandingsList, error)
}

// HTTPClient implements Client against the Ergast REST API
type HTTPClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	pageLimit  int
	logger     *logrus.Logger
}

// NewHTTPClient creates a new Ergast API client
func NewHTTPClient(httpClient *RateLimitedHTTPClient, baseURL string, logger *logrus.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		pageLimit:  defaultPageLimit,
		logger:     logger,
	}
}

// path builds the endpoint path for a request scope
func (c *HTTPClient) path(req Request, resource string) string {
	p := c.baseURL
	if req.Season > 0 {
		p += fmt.Sprintf("/%d", req.Season)
		if req.Round > 0 {
			p += fmt.Sprintf("/%d", req.Round)
		}
	}
	if resource != "" {
		p += "/" + resource
	}
	return p + ".json"
}

// fetchPages retrieves every page of a resource, invoking collect per page.
// Each page's MRData reports the total record count; pagination stops once
// offset+limit covers it, or once req.Limit records have been consumed.
func (c *HTTPClient) fetchPages(ctx context.Context, req Request, resource string, collect func(*MRData) int) error {
	limit := c.pageLimit
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}

	offset := 0
	for {
		url := fmt.Sprintf("%s?limit=%d&offset=%d", c.path(req, resource), limit, offset)

		resp, err := c.httpClient.Get(ctx, url)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUpstream, url, err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%w: unexpected status %d: %s", ErrUpstream, resp.StatusCode, string(body))
		}

		var envelope Envelope
		err = json.NewDecoder(resp.Body).Decode(&envelope)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
		}

		got := collect(&envelope.MRData)

		total, err := strconv.Atoi(envelope.MRData.Total)
		if err != nil {
			return fmt.Errorf("%w: malformed total %q", ErrUpstream, envelope.MRData.Total)
		}

		offset += got
		if offset >= total || got == 0 {
			return nil
		}
		if req.Limit > 0 && offset >= req.Limit {
			return nil
		}
	}
}

// Seasons fetches the championship season list
func (c *HTTPClient) Seasons(ctx context.Context, req Request) ([]SeasonEntry, error) {
	var out []SeasonEntry
	err := c.fetchPages(ctx, req, "seasons", func(data *MRData) int {
		if data.SeasonTable == nil {
			return 0
		}
		out = append(out, data.SeasonTable.Seasons...)
		return len(data.SeasonTable.Seasons)
	})
	return out, err
}

// Statuses fetches the finish-status vocabulary
func (c *HTTPClient) Statuses(ctx context.Context, req Request) ([]StatusEntry, error) {
	var out []StatusEntry
	err := c.fetchPages(ctx, req, "status", func(data *MRData) int {
		if data.StatusTable == nil {
			return 0
		}
		out = append(out, data.StatusTable.Status...)
		return len(data.StatusTable.Status)
	})
	return out, err
}

// Drivers fetches drivers for the request scope
func (c *HTTPClient) Drivers(ctx context.Context, req Request) ([]DriverEntry, error) {
	var out []DriverEntry
	err := c.fetchPages(ctx, req, "drivers", func(data *MRData) int {
		if data.DriverTable == nil {
			return 0
		}
		out = append(out, data.DriverTable.Drivers...)
		return len(data.DriverTable.Drivers)
	})
	return out, err
}

// Constructors fetches constructors for the request scope
func (c *HTTPClient) Constructors(ctx context.Context, req Request) ([]ConstructorEntry, error) {
	var out []ConstructorEntry
	err := c.fetchPages(ctx, req, "constructors", func(data *MRData) int {
		if data.ConstructorTable == nil {
			return 0
		}
		out = append(out, data.ConstructorTable.Constructors...)
		return len(data.ConstructorTable.Constructors)
	})
	return out, err
}

// Circuits fetches circuits for the request scope
func (c *HTTPClient) Circuits(ctx context.Context, req Request) ([]CircuitEntry, error) {
	var out []CircuitEntry
	err := c.fetchPages(ctx, req, "circuits", func(data *MRData) int {
		if data.CircuitTable == nil {
			return 0
		}
		out = append(out, data.CircuitTable.Circuits...)
		return len(data.CircuitTable.Circuits)
	})
	return out, err
}

// Races fetches the race schedule for the request scope
func (c *HTTPClient) Races(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "")
}

// Qualifying fetches qualifying classifications grouped by race
func (c *HTTPClient) Qualifying(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "qualifying")
}

// Laps fetches lap timings grouped by race; Ergast requires round scope
func (c *HTTPClient) Laps(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "laps")
}

// PitStops fetches pit stops grouped by race; Ergast requires round scope
func (c *HTTPClient) PitStops(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "pitstops")
}

// SprintResults fetches sprint classifications grouped by race
func (c *HTTPClient) SprintResults(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "sprint")
}

// Results fetches race classifications grouped by race
func (c *HTTPClient) Results(ctx context.Context, req Request) ([]RaceEntry, error) {
	return c.fetchRaceTable(ctx, req, "results")
}

// ConstructorStandings fetches constructor standings snapshots
func (c *HTTPClient) ConstructorStandings(ctx context.Context, req Request) ([]StandingsList, error) {
	return c.fetchStandings(ctx, req, "constructorStandings")
}

// DriverStandings fetches driver standings snapshots
func (c *HTTPClient) DriverStandings(ctx context.Context, req Request) ([]StandingsList, error) {
	return c.fetchStandings(ctx, req, "driverStandings")
}

func (c *HTTPClient) fetchRaceTable(ctx context.Context, req Request, resource string) ([]RaceEntry, error) {
	var out []RaceEntry
	err := c.fetchPages(ctx, req, resource, func(data *MRData) int {
		if data.RaceTable == nil {
			return 0
		}
		out = mergeRaces(out, data.RaceTable.Races)
		return countRaceRecords(resource, data.RaceTable.Races)
	})
	return out, err
}

func (c *HTTPClient) fetchStandings(ctx context.Context, req Request, resource string) ([]StandingsList, error) {
	var out []StandingsList
	err := c.fetchPages(ctx, req, resource, func(data *MRData) int {
		if data.StandingsTable == nil {
			return 0
		}
		out = append(out, data.StandingsTable.StandingsLists...)
		n := 0
		for _, list := range data.StandingsTable.StandingsLists {
			n += len(list.DriverStandings) + len(list.ConstructorStandings)
		}
		return n
	})
	return out, err
}

// mergeRaces appends page races, folding a race split across a page
// boundary back into one entry.
func mergeRaces(acc, page []RaceEntry) []RaceEntry {
	for _, race := range page {
		if len(acc) > 0 {
			last := &acc[len(acc)-1]
			if last.Season == race.Season && last.Round == race.Round {
				last.QualifyingResults = append(last.QualifyingResults, race.QualifyingResults...)
				last.Laps = append(last.Laps, race.Laps...)
				last.PitStops = append(last.PitStops, race.PitStops...)
				last.SprintResults = append(last.SprintResults, race.SprintResults...)
				last.Results = append(last.Results, race.Results...)
				continue
			}
		}
		acc = append(acc, race)
	}
	return acc
}

// countRaceRecords returns the number of leaf records a page carried,
// which is what Ergast's offset pagination counts.
func countRaceRecords(resource string, races []RaceEntry) int {
	n := 0
	for _, race := range races {
		switch resource {
		case "qualifying":
			n += len(race.QualifyingResults)
		case "laps":
			for _, lap := range race.Laps {
				n += len(lap.Timings)
			}
		case "pitstops":
			n += len(race.PitStops)
		case "sprint":
			n += len(race.SprintResults)
		case "results":
			n += len(race.Results)
		default:
			n++
		}
	}
	return n
}
