// Package search mirrors stored entities into an Elasticsearch index as
// denormalized documents.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/f1sync/internal/config"
	"github.com/yourusername/f1sync/internal/metrics"
	"github.com/yourusername/f1sync/internal/models"
	"github.com/yourusername/f1sync/internal/repository"
)

// Indexer writes denormalized documents keyed by surrogate ID. Parent
// entities are fetched by ID to embed their reference fields, so a
// document can only be built after its row exists in the store.
type Indexer struct {
	es     *elasticsearch.Client
	repos  *repository.Repositories
	logger *logrus.Logger
	prefix string
}

// NewIndexer creates an indexer from the search configuration
func NewIndexer(cfg *config.SearchConfig, repos *repository.Repositories, logger *logrus.Logger) (*Indexer, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	return &Indexer{
		es:     es,
		repos:  repos,
		logger: logger,
		prefix: cfg.IndexPrefix,
	}, nil
}

// Ping verifies connectivity to the search cluster
func (i *Indexer) Ping(ctx context.Context) error {
	res, err := i.es.Ping(i.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search ping failed: %s", res.Status())
	}
	return nil
}

func (i *Indexer) indexName(entity string) string {
	if i.prefix == "" {
		return entity
	}
	return i.prefix + "-" + entity
}

// index writes one document, overwriting any previous version under the
// same ID so re-indexing is idempotent.
func (i *Indexer) index(ctx context.Context, entity, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", entity, err)
	}

	res, err := i.es.Index(
		i.indexName(entity),
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(id),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index %s document: %w", entity, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		detail, _ := io.ReadAll(res.Body)
		return fmt.Errorf("failed to index %s document %s: %s: %s", entity, id, res.Status(), string(detail))
	}

	metrics.RecordDocumentIndexed(entity)
	return nil
}

// IndexSeason mirrors a season into the search index
func (i *Indexer) IndexSeason(ctx context.Context, season *models.Season) error {
	return i.index(ctx, "seasons", season.ID.String(), NewSeasonDocument(season))
}

// IndexStatus mirrors a finish status into the search index
func (i *Indexer) IndexStatus(ctx context.Context, status *models.Status) error {
	return i.index(ctx, "statuses", status.ID.String(), NewStatusDocument(status))
}

// IndexDriver mirrors a driver into the search index
func (i *Indexer) IndexDriver(ctx context.Context, driver *models.Driver) error {
	return i.index(ctx, "drivers", driver.ID.String(), NewDriverDocument(driver))
}

// IndexConstructor mirrors a constructor into the search index
func (i *Indexer) IndexConstructor(ctx context.Context, constructor *models.Constructor) error {
	return i.index(ctx, "constructors", constructor.ID.String(), NewConstructorDocument(constructor))
}

// IndexCircuit mirrors a circuit into the search index
func (i *Indexer) IndexCircuit(ctx context.Context, circuit *models.Circuit) error {
	return i.index(ctx, "circuits", circuit.ID.String(), NewCircuitDocument(circuit))
}

// IndexRace mirrors a race into the search index with its circuit and
// season embedded
func (i *Indexer) IndexRace(ctx context.Context, race *models.Race) error {
	doc, err := i.buildRaceDocument(ctx, race)
	if err != nil {
		return err
	}
	return i.index(ctx, "races", race.ID.String(), doc)
}

// IndexQualifying mirrors a qualifying classification into the search index
func (i *Indexer) IndexQualifying(ctx context.Context, q *models.Qualifying) error {
	race, driver, err := i.raceDriver(ctx, q.RaceID, q.DriverID)
	if err != nil {
		return err
	}
	constructor, err := i.repos.Constructor.GetByID(ctx, q.ConstructorID)
	if err != nil {
		return fmt.Errorf("failed to load constructor for document: %w", err)
	}
	return i.index(ctx, "qualifying", q.ID.String(), NewQualifyingDocument(q, race, driver, constructor))
}

// IndexLapTime mirrors a timed lap into the search index
func (i *Indexer) IndexLapTime(ctx context.Context, lt *models.LapTime) error {
	race, driver, err := i.raceDriver(ctx, lt.RaceID, lt.DriverID)
	if err != nil {
		return err
	}
	return i.index(ctx, "lap_times", lt.ID.String(), NewLapTimeDocument(lt, race, driver))
}

// IndexPitStop mirrors a pit stop into the search index
func (i *Indexer) IndexPitStop(ctx context.Context, ps *models.PitStop) error {
	race, driver, err := i.raceDriver(ctx, ps.RaceID, ps.DriverID)
	if err != nil {
		return err
	}
	return i.index(ctx, "pit_stops", ps.ID.String(), NewPitStopDocument(ps, race, driver))
}

// IndexResult mirrors a race result into the search index
func (i *Indexer) IndexResult(ctx context.Context, res *models.Result) error {
	race, driver, err := i.raceDriver(ctx, res.RaceID, res.DriverID)
	if err != nil {
		return err
	}
	constructor, err := i.repos.Constructor.GetByID(ctx, res.ConstructorID)
	if err != nil {
		return fmt.Errorf("failed to load constructor for document: %w", err)
	}
	status, err := i.repos.Status.GetByID(ctx, res.StatusID)
	if err != nil {
		return fmt.Errorf("failed to load status for document: %w", err)
	}
	return i.index(ctx, "results", res.ID.String(), NewResultDocument(res, race, driver, constructor, status))
}

// IndexSprintResult mirrors a sprint result into the search index
func (i *Indexer) IndexSprintResult(ctx context.Context, res *models.SprintResult) error {
	race, driver, err := i.raceDriver(ctx, res.RaceID, res.DriverID)
	if err != nil {
		return err
	}
	constructor, err := i.repos.Constructor.GetByID(ctx, res.ConstructorID)
	if err != nil {
		return fmt.Errorf("failed to load constructor for document: %w", err)
	}
	status, err := i.repos.Status.GetByID(ctx, res.StatusID)
	if err != nil {
		return fmt.Errorf("failed to load status for document: %w", err)
	}
	return i.index(ctx, "sprint_results", res.ID.String(), NewSprintResultDocument(res, race, driver, constructor, status))
}

// IndexConstructorResult mirrors an aggregated constructor result into the search index
func (i *Indexer) IndexConstructorResult(ctx context.Context, cr *models.ConstructorResult) error {
	race, err := i.raceDocument(ctx, cr.RaceID)
	if err != nil {
		return err
	}
	constructor, err := i.repos.Constructor.GetByID(ctx, cr.ConstructorID)
	if err != nil {
		return fmt.Errorf("failed to load constructor for document: %w", err)
	}
	return i.index(ctx, "constructor_results", cr.ID.String(), NewConstructorResultDocument(cr, race, constructor))
}

// IndexConstructorStanding mirrors a constructor standing into the search index
func (i *Indexer) IndexConstructorStanding(ctx context.Context, cs *models.ConstructorStanding) error {
	race, err := i.raceDocument(ctx, cs.RaceID)
	if err != nil {
		return err
	}
	constructor, err := i.repos.Constructor.GetByID(ctx, cs.ConstructorID)
	if err != nil {
		return fmt.Errorf("failed to load constructor for document: %w", err)
	}
	return i.index(ctx, "constructor_standings", cs.ID.String(), NewConstructorStandingDocument(cs, race, constructor))
}

// IndexDriverStanding mirrors a driver standing into the search index
func (i *Indexer) IndexDriverStanding(ctx context.Context, ds *models.DriverStanding) error {
	race, driver, err := i.raceDriver(ctx, ds.RaceID, ds.DriverID)
	if err != nil {
		return err
	}
	return i.index(ctx, "driver_standings", ds.ID.String(), NewDriverStandingDocument(ds, race, driver))
}

// buildRaceDocument assembles the race projection with its circuit and
// season rows joined in
func (i *Indexer) buildRaceDocument(ctx context.Context, race *models.Race) (RaceDocument, error) {
	circuit, err := i.repos.Circuit.GetByID(ctx, race.CircuitID)
	if err != nil {
		return RaceDocument{}, fmt.Errorf("failed to load circuit for document: %w", err)
	}
	season, err := i.repos.Season.GetByID(ctx, race.SeasonID)
	if err != nil {
		return RaceDocument{}, fmt.Errorf("failed to load season for document: %w", err)
	}
	return NewRaceDocument(race, circuit, season), nil
}

func (i *Indexer) raceDocument(ctx context.Context, raceID uuid.UUID) (RaceDocument, error) {
	race, err := i.repos.Race.GetByID(ctx, raceID)
	if err != nil {
		return RaceDocument{}, fmt.Errorf("failed to load race for document: %w", err)
	}
	return i.buildRaceDocument(ctx, race)
}

func (i *Indexer) raceDriver(ctx context.Context, raceID, driverID uuid.UUID) (RaceDocument, *models.Driver, error) {
	race, err := i.raceDocument(ctx, raceID)
	if err != nil {
		return RaceDocument{}, nil, err
	}
	driver, err := i.repos.Driver.GetByID(ctx, driverID)
	if err != nil {
		return RaceDocument{}, nil, fmt.Errorf("failed to load driver for document: %w", err)
	}
	return race, driver, nil
}
