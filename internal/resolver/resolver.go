// Package resolver maps upstream natural keys to stored entity IDs.
//
// Child records arrive from the upstream API carrying natural keys only
// (season year, driver ref, constructor ref, status text). The resolver
// performs the point lookups against the store and caches hits, since a
// single race payload repeats the same handful of parents hundreds of
// times.
package resolver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
)

const (
	defaultExpiration = 30 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

// Resolver resolves natural keys to surrogate IDs with a read-through cache
type Resolver struct {
	repos *repository.Repositories
	cache *cache.Cache
}

// New creates a resolver backed by the given repositories
func New(repos *repository.Repositories) *Resolver {
	return &Resolver{
		repos: repos,
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// SeasonID resolves a championship year to its season ID
func (r *Resolver) SeasonID(ctx context.Context, year int) (uuid.UUID, error) {
	key := "season:" + strconv.Itoa(year)
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	season, err := r.repos.Season.GetByYear(ctx, year)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve season %d: %w", year, err)
	}

	r.cache.SetDefault(key, season.ID)
	return season.ID, nil
}

// StatusID resolves a finish status text to its status ID
func (r *Resolver) StatusID(ctx context.Context, statusText string) (uuid.UUID, error) {
	key := "status:" + statusText
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	status, err := r.repos.Status.GetByStatus(ctx, statusText)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve status %q: %w", statusText, err)
	}

	r.cache.SetDefault(key, status.ID)
	return status.ID, nil
}

// DriverID resolves a driver reference to its driver ID
func (r *Resolver) DriverID(ctx context.Context, driverRef string) (uuid.UUID, error) {
	key := "driver:" + driverRef
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	driver, err := r.repos.Driver.GetByRef(ctx, driverRef)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve driver %q: %w", driverRef, err)
	}

	r.cache.SetDefault(key, driver.ID)
	return driver.ID, nil
}

// ConstructorID resolves a constructor reference to its constructor ID
func (r *Resolver) ConstructorID(ctx context.Context, constructorRef string) (uuid.UUID, error) {
	key := "constructor:" + constructorRef
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	constructor, err := r.repos.Constructor.GetByRef(ctx, constructorRef)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve constructor %q: %w", constructorRef, err)
	}

	r.cache.SetDefault(key, constructor.ID)
	return constructor.ID, nil
}

// CircuitID resolves a circuit reference to its circuit ID
func (r *Resolver) CircuitID(ctx context.Context, circuitRef string) (uuid.UUID, error) {
	key := "circuit:" + circuitRef
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	circuit, err := r.repos.Circuit.GetByRef(ctx, circuitRef)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve circuit %q: %w", circuitRef, err)
	}

	r.cache.SetDefault(key, circuit.ID)
	return circuit.ID, nil
}

// RaceID resolves a (year, round) pair to its race ID.
//
// A season holds at most one race per round; if the store somehow holds
// more than one the lookup fails with models.ErrAmbiguousRound rather
// than silently picking a winner.
func (r *Resolver) RaceID(ctx context.Context, year, round int) (uuid.UUID, error) {
	key := "race:" + strconv.Itoa(year) + ":" + strconv.Itoa(round)
	if id, ok := r.cache.Get(key); ok {
		return id.(uuid.UUID), nil
	}

	races, err := r.repos.Race.GetBySeasonRound(ctx, year, round)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve race %d round %d: %w", year, round, err)
	}

	switch len(races) {
	case 0:
		return uuid.Nil, fmt.Errorf("resolve race %d round %d: %w", year, round, models.ErrNotFound)
	case 1:
		r.cache.SetDefault(key, races[0].ID)
		return races[0].ID, nil
	default:
		return uuid.Nil, fmt.Errorf("resolve race %d round %d: %w", year, round, models.ErrAmbiguousRound)
	}
}

// Flush drops every cached mapping
func (r *Resolver) Flush() {
	r.cache.Flush()
}
