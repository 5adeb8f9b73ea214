// Package sync implements the reconciliation pipelines that pull records
// from the upstream API and persist the ones the store does not yet hold.
//
// Every pipeline follows the same shape: fetch the remote record set,
// resolve each record's parents to stored IDs, skip records that already
// exist, and insert the remainder. Inserts never update rows in place;
// re-running a pipeline against an unchanged upstream is a no-op.
//
// Error containment is per record. A record whose parent is missing is
// logged and skipped, a duplicate-key insert (a concurrent writer got
// there first) counts as skipped, and any other persistence failure is
// logged and counted without stopping the run. Only an upstream fetch
// failure aborts a pipeline.
package sync

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/metrics"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
	"github.com/yourusername/f1sync/internal/resolver"
)

// Indexer mirrors inserted entities into the search index. A nil indexer
// disables mirroring.
type Indexer interface {
	IndexSeason(ctx context.Context, season *models.Season) error
	IndexStatus(ctx context.Context, status *models.Status) error
	IndexDriver(ctx context.Context, driver *models.Driver) error
	IndexConstructor(ctx context.Context, constructor *models.Constructor) error
	IndexCircuit(ctx context.Context, circuit *models.Circuit) error
	IndexRace(ctx context.Context, race *models.Race) error
	IndexQualifying(ctx context.Context, q *models.Qualifying) error
	IndexLapTime(ctx context.Context, lt *models.LapTime) error
	IndexPitStop(ctx context.Context, ps *models.PitStop) error
	IndexResult(ctx context.Context, res *models.Result) error
	IndexSprintResult(ctx context.Context, res *models.SprintResult) error
	IndexConstructorResult(ctx context.Context, cr *models.ConstructorResult) error
	IndexConstructorStanding(ctx context.Context, cs *models.ConstructorStanding) error
	IndexDriverStanding(ctx context.Context, ds *models.DriverStanding) error
}

// Summary reports what one pipeline run did
type Summary struct {
	Entity      string        `json:"entity"`
	Fetched     int           `json:"fetched"`
	Inserted    int           `json:"inserted"`
	Skipped     int           `json:"skipped"`
	MissingDeps int           `json:"missing_deps"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration"`
}

// Service runs the reconciliation pipelines
type Service struct {
	client   ergast.Client
	repos    *repository.Repositories
	resolver *resolver.Resolver
	indexer  Indexer
	logger   *logrus.Logger
}

// NewService creates a sync service. indexer may be nil to disable
// search mirroring.
func NewService(client ergast.Client, repos *repository.Repositories, res *resolver.Resolver, indexer Indexer, logger *logrus.Logger) *Service {
	return &Service{
		client:   client,
		repos:    repos,
		resolver: res,
		indexer:  indexer,
		logger:   logger,
	}
}

// finish stamps the summary duration and records run metrics
func (s *Service) finish(summary *Summary, start time.Time) *Summary {
	summary.Duration = time.Since(start)
	metrics.RecordFetched(summary.Entity, summary.Fetched)
	metrics.RecordSyncDuration(summary.Entity, summary.Duration.Seconds())

	s.logger.WithFields(logrus.Fields{
		"entity":       summary.Entity,
		"fetched":      summary.Fetched,
		"inserted":     summary.Inserted,
		"skipped":      summary.Skipped,
		"missing_deps": summary.MissingDeps,
		"failed":       summary.Failed,
		"duration":     summary.Duration,
	}).Info("Sync complete")

	return summary
}

// recordInsert folds an insert outcome into the summary. Returns true
// when the row was actually inserted.
func (s *Service) recordInsert(summary *Summary, entry *logrus.Entry, err error) bool {
	switch {
	case err == nil:
		summary.Inserted++
		metrics.RecordInserted(summary.Entity)
		return true
	case errors.Is(err, models.ErrDuplicateKey):
		// A concurrent writer inserted the same natural key between the
		// existence check and our insert. The row is present, which is
		// all this pipeline guarantees.
		summary.Skipped++
		metrics.RecordSkipped(summary.Entity)
		entry.Debug("Record already present")
		return false
	default:
		summary.Failed++
		metrics.RecordFailed(summary.Entity)
		entry.WithError(err).Error("Failed to persist record")
		return false
	}
}

// recordMissingDep folds a failed parent resolution into the summary.
// Returns true when the failure was a missing parent (skip the record);
// anything else counts as a hard failure.
func (s *Service) recordMissingDep(summary *Summary, entry *logrus.Entry, err error) bool {
	if errors.Is(err, models.ErrNotFound) {
		summary.MissingDeps++
		metrics.RecordMissingDependency(summary.Entity)
		entry.WithError(err).Warn("Skipping record with missing dependency")
		return true
	}

	summary.Failed++
	metrics.RecordFailed(summary.Entity)
	entry.WithError(err).Error("Failed to resolve dependency")
	return false
}

// recordSkip folds an already-present record into the summary
func (s *Service) recordSkip(summary *Summary) {
	summary.Skipped++
	metrics.RecordSkipped(summary.Entity)
}

// mirror writes the inserted entity's document when mirroring is on.
// Index failures degrade the mirror, not the store, so they only warn.
func (s *Service) mirror(entry *logrus.Entry, index func() error) {
	if s.indexer == nil {
		return
	}
	if err := index(); err != nil {
		entry.WithError(err).Warn("Failed to mirror record into search index")
	}
}

// seasonRounds returns the rounds to iterate for round-scoped resources.
// A request carrying an explicit round yields just that round; otherwise
// every stored round of the season is covered, so the race schedule must
// be synced first.
func (s *Service) seasonRounds(ctx context.Context, req ergast.Request) ([]int, error) {
	if req.Round > 0 {
		return []int{req.Round}, nil
	}

	count, err := s.repos.Race.CountBySeason(ctx, req.Season)
	if err != nil {
		return nil, err
	}

	rounds := make([]int, 0, count)
	for round := 1; round <= count; round++ {
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// Conversion helpers for the upstream API's string-typed numerics.

func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func parseIntPtr(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatPtr(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func stringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseDatePtr(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func parsePoints(value string) decimal.Decimal {
	points, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return points
}
