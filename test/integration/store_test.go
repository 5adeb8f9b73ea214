//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
)

const skipIntegration = "Skipping integration test in short mode"

// TestStoreRepositoryIntegration exercises the repositories against real PostgreSQL
func TestStoreRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := repository.NewRepositories(db)
	require.NoError(t, err)

	t.Run("SeasonRepository", func(t *testing.T) {
		season := &models.Season{
			ID:   uuid.New(),
			Year: 1950,
			URL:  "http://example.com/1950",
		}

		err := repos.Season.Create(ctx, season)
		require.NoError(t, err)

		retrieved, err := repos.Season.GetByYear(ctx, 1950)
		require.NoError(t, err)
		assert.Equal(t, season.ID, retrieved.ID)

		// A second insert on the same year violates the natural key
		duplicate := &models.Season{
			ID:   uuid.New(),
			Year: 1950,
			URL:  "http://example.com/1950-duplicate",
		}
		err = repos.Season.Create(ctx, duplicate)
		assert.ErrorIs(t, err, models.ErrDuplicateKey)
	})

	t.Run("RaceRepositoryNaturalKey", func(t *testing.T) {
		season := seedSeason(t, ctx, repos, 1951)
		circuit := seedCircuit(t, ctx, repos, "silverstone")

		race := &models.Race{
			ID:        uuid.New(),
			SeasonID:  season.ID,
			Year:      1951,
			Round:     1,
			CircuitID: circuit.ID,
			Name:      "British Grand Prix",
			Date:      time.Date(1951, 7, 14, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repos.Race.Create(ctx, race))

		retrieved, err := repos.Race.GetByNaturalKey(ctx, 1951, 1, "British Grand Prix",
			time.Date(1951, 7, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, race.ID, retrieved.ID)

		matches, err := repos.Race.GetBySeasonRound(ctx, 1951, 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)

		count, err := repos.Race.CountBySeason(ctx, 1951)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("ResultRepositoryExists", func(t *testing.T) {
		season := seedSeason(t, ctx, repos, 1952)
		circuit := seedCircuit(t, ctx, repos, "monza_integration")
		driver := seedDriver(t, ctx, repos, "ascari_integration")
		constructor := seedConstructor(t, ctx, repos, "ferrari_integration")
		status := seedStatus(t, ctx, repos, "Finished Integration")

		race := &models.Race{
			ID:        uuid.New(),
			SeasonID:  season.ID,
			Year:      1952,
			Round:     1,
			CircuitID: circuit.ID,
			Name:      "Italian Grand Prix",
			Date:      time.Date(1952, 9, 7, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repos.Race.Create(ctx, race))

		exists, err := repos.Result.Exists(ctx, race.ID, driver.ID, constructor.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		result := &models.Result{
			ID:            uuid.New(),
			RaceID:        race.ID,
			DriverID:      driver.ID,
			ConstructorID: constructor.ID,
			StatusID:      status.ID,
			Grid:          1,
			PositionText:  "1",
			PositionOrder: 1,
			Points:        decimal.RequireFromString("9"),
			Laps:          80,
		}
		require.NoError(t, repos.Result.Create(ctx, result))

		exists, err = repos.Result.Exists(ctx, race.ID, driver.ID, constructor.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

// TestConcurrentDuplicateInserts verifies the unique index arbitrates
// concurrent writers: exactly one insert wins, the rest fail with the
// duplicate-key sentinel.
func TestConcurrentDuplicateInserts(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := repository.NewRepositories(db)
	require.NoError(t, err)

	concurrency := 10
	year := 1960

	var wg sync.WaitGroup
	outcomes := make(chan error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			season := &models.Season{
				ID:   uuid.New(),
				Year: year,
				URL:  "http://example.com/1960",
			}
			outcomes <- repos.Season.Create(ctx, season)
		}()
	}

	wg.Wait()
	close(outcomes)

	inserted, duplicates := 0, 0
	for err := range outcomes {
		switch {
		case err == nil:
			inserted++
		case assert.ErrorIs(t, err, models.ErrDuplicateKey):
			duplicates++
		}
	}

	assert.Equal(t, 1, inserted)
	assert.Equal(t, concurrency-1, duplicates)
}

// TestSchemaApplied verifies every store table exists after setup
func TestSchemaApplied(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	tables := []string{
		"seasons", "statuses", "drivers", "constructors", "circuits", "races",
		"qualifying", "lap_times", "pit_stops", "results", "sprint_results",
		"constructor_results", "constructor_standings", "driver_standings",
	}
	for _, table := range tables {
		var exists bool
		query := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = $1
			)
		`
		err := db.GetPool().QueryRow(ctx, query, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Table %s should exist", table)
	}
}

func seedSeason(t *testing.T, ctx context.Context, repos *repository.Repositories, year int) *models.Season {
	season := &models.Season{ID: uuid.New(), Year: year, URL: "http://example.com"}
	require.NoError(t, repos.Season.Create(ctx, season))
	return season
}

func seedCircuit(t *testing.T, ctx context.Context, repos *repository.Repositories, ref string) *models.Circuit {
	circuit := &models.Circuit{ID: uuid.New(), CircuitRef: ref, Name: ref, URL: "http://example.com"}
	require.NoError(t, repos.Circuit.Create(ctx, circuit))
	return circuit
}

func seedDriver(t *testing.T, ctx context.Context, repos *repository.Repositories, ref string) *models.Driver {
	driver := &models.Driver{ID: uuid.New(), DriverRef: ref, Forename: "A", Surname: "B", URL: "http://example.com"}
	require.NoError(t, repos.Driver.Create(ctx, driver))
	return driver
}

func seedConstructor(t *testing.T, ctx context.Context, repos *repository.Repositories, ref string) *models.Constructor {
	constructor := &models.Constructor{ID: uuid.New(), ConstructorRef: ref, Name: ref, URL: "http://example.com"}
	require.NoError(t, repos.Constructor.Create(ctx, constructor))
	return constructor
}

func seedStatus(t *testing.T, ctx context.Context, repos *repository.Repositories, text string) *models.Status {
	status := &models.Status{ID: uuid.New(), StatusID: 1, Status: text}
	require.NoError(t, repos.Status.Create(ctx, status))
	return status
}
