package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/f1sync/internal/database"
	"github.com/yourusername/f1sync/internal/metrics"
	"github.com/yourusername/f1sync/internal/scheduler"
	"github.com/yourusername/f1sync/internal/sync"
)

// runPipeline wraps a single-summary pipeline into a cobra run function
func runPipeline(run func(ctx context.Context) (*sync.Summary, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		summary, err := run(cmd.Context())
		if summary != nil {
			printSummaries(summary)
		}
		return err
	}
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Sync the championship season list",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateSeasons(ctx, scopedRequest())
	}),
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Sync the finish-status vocabulary",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateStatuses(ctx, scopedRequest())
	}),
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Sync drivers for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateDrivers(ctx, scopedRequest())
	}),
}

var constructorsCmd = &cobra.Command{
	Use:   "constructors",
	Short: "Sync constructors for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateConstructors(ctx, scopedRequest())
	}),
}

var circuitsCmd = &cobra.Command{
	Use:   "circuits",
	Short: "Sync circuits for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateCircuits(ctx, scopedRequest())
	}),
}

var racesCmd = &cobra.Command{
	Use:   "races",
	Short: "Sync the race schedule for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateRaces(ctx, scopedRequest())
	}),
}

var qualifyingCmd = &cobra.Command{
	Use:   "qualifying",
	Short: "Sync qualifying classifications for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateQualifying(ctx, scopedRequest())
	}),
}

var lapTimesCmd = &cobra.Command{
	Use:   "laptimes",
	Short: "Sync per-lap timings for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateLapTimes(ctx, scopedRequest())
	}),
}

var pitStopsCmd = &cobra.Command{
	Use:   "pitstops",
	Short: "Sync pit stops for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdatePitStops(ctx, scopedRequest())
	}),
}

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "Sync sprint race classifications for the selected season",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateSprints(ctx, scopedRequest())
	}),
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Sync race classifications and derived constructor results",
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := syncSvc.UpdateResults(cmd.Context(), scopedRequest())
		printSummaries(summaries...)
		return err
	},
}

var constructorStandingsCmd = &cobra.Command{
	Use:   "constructor-standings",
	Short: "Sync per-round constructor championship snapshots",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateConstructorStandings(ctx, scopedRequest())
	}),
}

var driverStandingsCmd = &cobra.Command{
	Use:   "driver-standings",
	Short: "Sync per-round driver championship snapshots",
	RunE: runPipeline(func(ctx context.Context) (*sync.Summary, error) {
		return syncSvc.UpdateDriverStandings(ctx, scopedRequest())
	}),
}

var (
	fromSeason int
	toSeason   int
)

func init() {
	allCmd.Flags().IntVar(&fromSeason, "from", 0, "First season of an inclusive range")
	allCmd.Flags().IntVar(&toSeason, "to", 0, "Last season of an inclusive range")
	migrateCmd.Flags().StringVar(&schemaFile, "schema", "migrations/schema.sql", "Path to the schema DDL file")
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every pipeline in dependency order",
	Long: `Runs every pipeline for the selected season, or for each season of the
--from/--to range when both are given. Reference entities sync before
the race schedule, which syncs before the per-race records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			summaries []*sync.Summary
			err       error
		)

		if fromSeason > 0 || toSeason > 0 {
			if fromSeason == 0 || toSeason == 0 {
				return fmt.Errorf("--from and --to must be given together")
			}
			summaries, err = syncSvc.UpdateRange(cmd.Context(), fromSeason, toSeason)
		} else {
			summaries, err = syncSvc.UpdateSeason(cmd.Context(), season)
		}

		printSummaries(summaries...)
		return err
	},
}

var schemaFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ApplySchema(cmd.Context(), db, schemaFile); err != nil {
			return err
		}
		appLog.WithField("schema", schemaFile).Info("Schema applied")
		return nil
	},
}

var syncIndexCmd = &cobra.Command{
	Use:   "sync-index",
	Short: "Rebuild the search index from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if indexer == nil {
			return fmt.Errorf("search is not enabled in the configuration")
		}
		return indexer.Resync(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled refresh daemon",
	Long: `Keeps the store current without manual runs: the configured cron
schedules re-sync the current season and optionally rebuild the search
index. The metrics endpoint is exposed while the daemon runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Scheduler.Enabled {
			return fmt.Errorf("scheduler is not enabled in the configuration")
		}

		sched := scheduler.NewScheduler(syncSvc, appLog)
		if err := sched.ScheduleSeasonSync(cfg.Scheduler.SeasonSyncCron, 0); err != nil {
			return err
		}
		if indexer != nil && cfg.Scheduler.IndexResyncCron != "" {
			if err := sched.ScheduleIndexResync(cfg.Scheduler.IndexResyncCron, indexer); err != nil {
				return err
			}
		}

		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		var metricsServer *http.Server
		if cfg.Metrics.Enabled {
			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, metrics.Handler())
			metricsServer = &http.Server{
				Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
				Handler: mux,
			}
			go func() {
				appLog.WithField("addr", metricsServer.Addr).Info("Metrics endpoint listening")
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					appLog.WithError(err).Error("Metrics server failed")
				}
			}()
		}

		appLog.WithField("next_run", sched.GetNextRun()).Info("Refresh daemon running")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		appLog.Info("Shutting down")
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				appLog.WithError(err).Error("Failed to shut down metrics server")
			}
		}
		return nil
	},
}
