package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/txfs/internal/cli/output"
	"github.com/marmos91/txfs/internal/logger"
	"github.com/marmos91/txfs/pkg/blob"
	"github.com/marmos91/txfs/pkg/config"
	"github.com/marmos91/txfs/pkg/metrics"
	"github.com/marmos91/txfs/pkg/metrics/prometheus"
	"github.com/marmos91/txfs/pkg/txn"
)

var demoFail bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a staged batch against the configured backend",
	Long: `Run a guided walkthrough of the unit-of-work lifecycle:

  1. Seed the backend with a few entries
  2. Stage creates and deletes without touching the backend
  3. Commit the batch atomically
  4. Show the resulting backend state

With --fail, one of the staged deletes is removed behind the coordinator's
back before the commit, forcing a failed commit and demonstrating the
compensating rollback.

Examples:
  txfs demo
  txfs demo --fail
  TXFS_STORE_TYPE=memory txfs demo`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoFail, "fail", false, "Sabotage the commit to demonstrate rollback")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
		go serveMetrics(cfg.Metrics.Port)
		logger.Info("metrics endpoint started", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	store, err := config.NewStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	printer := output.DefaultPrinter()
	printer.Printf("Backend: %s\n\n", cfg.Store.Type)

	// Seed entries the batch will delete.
	seeds := map[string]string{
		"reports/january.txt":  "january figures",
		"reports/february.txt": "february figures",
		"reports/march.txt":    "march figures",
	}
	for name, content := range seeds {
		if err := store.Write(ctx, name, []byte(content)); err != nil {
			return fmt.Errorf("seeding backend: %w", err)
		}
	}
	printer.Println("Seeded 3 entries under reports/.")

	u := txn.NewWithMetrics(store, metrics.NewTxnMetrics())

	if err := u.StageCreate(ctx, "reports/summary.txt", []byte("q1 summary")); err != nil {
		return err
	}
	if err := u.StageCreate(ctx, "reports/index.txt", []byte("index")); err != nil {
		return err
	}
	for _, name := range []string{"reports/january.txt", "reports/february.txt", "reports/march.txt"} {
		if err := u.StageDelete(ctx, name); err != nil {
			return err
		}
	}

	printer.Println("\nStaged batch (backend untouched so far):")
	pending := output.NewTable("Name", "Pending Operation")
	for _, name := range u.PendingCreates() {
		pending.AddRow(name, "create")
	}
	for _, name := range u.PendingDeletes() {
		pending.AddRow(name, "delete")
	}
	if err := printer.Print(pending); err != nil {
		return err
	}

	if demoFail {
		// Remove a staged delete behind the coordinator's back so its
		// backend delete fails mid-commit.
		if err := store.Delete(ctx, "reports/february.txt"); err != nil {
			return err
		}
		printer.Warning("\nSabotage: reports/february.txt removed outside the batch.")
	}

	printer.Println("\nCommitting...")
	if err := u.Commit(ctx); err != nil {
		printer.Error(fmt.Sprintf("Commit failed: %v", err))
		printer.Println("Rollback restored the backend to its pre-commit state.")
	} else {
		printer.Success("Commit applied.")
	}

	printer.Println("\nBackend state after commit:")
	result := output.NewTable("Name", "Present")
	names := []string{
		"reports/summary.txt", "reports/index.txt",
		"reports/january.txt", "reports/february.txt", "reports/march.txt",
	}
	for _, name := range names {
		exists, err := store.Exists(ctx, name)
		if err != nil {
			return err
		}
		present := "no"
		if exists {
			present = "yes"
		}
		result.AddRow(name, present)
	}
	if err := printer.Print(result); err != nil {
		return err
	}

	cleanupDemo(ctx, store, names)
	return nil
}

// cleanupDemo removes any demo entries still present so repeated runs start
// from a clean backend.
func cleanupDemo(ctx context.Context, store blob.Store, names []string) {
	for _, name := range names {
		exists, err := store.Exists(ctx, name)
		if err != nil || !exists {
			continue
		}
		if err := store.Delete(ctx, name); err != nil {
			logger.Warn("demo cleanup failed", "name", name, "error", err)
		}
	}
}

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server error", "error", err)
	}
}
