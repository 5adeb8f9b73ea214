// Package main provides the f1sync command line interface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/f1sync/internal/config"
	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/ergast"
	"github.com/yourusername/f1sync/internal/logger"
	"github.com/yourusername/f1sync/internal/repository"
	"github.com/yourusername/f1sync/internal/resolver"
	"github.com/yourusername/f1sync/internal/search"
	"github.com/yourusername/f1sync/internal/sync"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	season     int
	round      int

	cfg     *config.Config
	appLog  *logrus.Logger
	db      *database.DB
	repos   *repository.Repositories
	indexer *search.Indexer
	syncSvc *sync.Service
)

var rootCmd = &cobra.Command{
	Use:   "f1sync",
	Short: "Synchronize Formula 1 data into the local store",
	Long: `f1sync pulls Formula 1 records from the Ergast API, persists the ones
the relational store does not yet hold, and mirrors them into a search
index. Runs are idempotent: records already present are left untouched.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return setupDependencies(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVar(&season, "season", time.Now().UTC().Year(), "Championship season to sync")
	rootCmd.PersistentFlags().IntVar(&round, "round", 0, "Restrict the sync to one round (0 = all rounds)")

	rootCmd.AddCommand(
		seasonsCmd,
		statusesCmd,
		driversCmd,
		constructorsCmd,
		circuitsCmd,
		racesCmd,
		qualifyingCmd,
		lapTimesCmd,
		pitStopsCmd,
		sprintsCmd,
		resultsCmd,
		constructorStandingsCmd,
		driverStandingsCmd,
		allCmd,
		syncIndexCmd,
		migrateCmd,
		serveCmd,
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	httpClient := ergast.NewRateLimitedHTTPClient(ergast.HTTPClientConfig{
		Timeout:      time.Duration(cfg.Ergast.TimeoutSeconds) * time.Second,
		MaxRetries:   cfg.Ergast.MaxRetries,
		RetryWaitMin: time.Duration(cfg.Ergast.RetryWaitMinMillis) * time.Millisecond,
		RetryWaitMax: time.Duration(cfg.Ergast.RetryWaitMaxMillis) * time.Millisecond,
		RateLimit:    cfg.Ergast.RateLimitPerSecond,
	}, appLog)
	client := ergast.NewHTTPClient(httpClient, cfg.Ergast.BaseURL, appLog)

	var mirror sync.Indexer
	if cfg.Search.Enabled {
		indexer, err = search.NewIndexer(&cfg.Search, repos, appLog)
		if err != nil {
			return fmt.Errorf("failed to initialize search indexer: %w", err)
		}
		if cfg.Search.SyncOnWrite {
			mirror = indexer
		}
	}

	syncSvc = sync.NewService(client, repos, resolver.New(repos), mirror, appLog)
	return nil
}

// scopedRequest builds the request for the season/round flags
func scopedRequest() ergast.Request {
	return ergast.Request{Season: season, Round: round}
}

// printSummaries renders pipeline summaries as a fixed-width table
func printSummaries(summaries ...*sync.Summary) {
	fmt.Printf("%-22s %9s %9s %9s %12s %8s %12s\n",
		"ENTITY", "FETCHED", "INSERTED", "SKIPPED", "MISSING DEP", "FAILED", "DURATION")
	for _, s := range summaries {
		if s == nil {
			continue
		}
		fmt.Printf("%-22s %9d %9d %9d %12d %8d %12s\n",
			s.Entity, s.Fetched, s.Inserted, s.Skipped, s.MissingDeps, s.Failed, s.Duration.Round(time.Millisecond))
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("f1sync %s (commit %s, built %s)", Version, GitCommit, BuildDate)
	},
}
