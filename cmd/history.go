package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/iocache"
	"github.com/fuikk/fuikk/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper reads and validates the history backend settings.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return backend, connStr, err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	if backend == schema.NoneBackend {
		return errors.New("no history backend configured (set --history-backend)")
	}

	// Initialize stores with the loaded config (no stats cache for history commands)
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cacheManager = iocache.Manager
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup is like historySetup but does NOT open the store or create
// tables, so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on summary history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the recorded summary history",
	Long: `Every run of 'fuikk courses' with a history backend records the run and the
summary row of each course. This lets you follow response rates and ratings
across runs as new semesters are added.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Examples:
  fuikk history status --history-backend sqlite
  fuikk history show IN1000 --history-backend sqlite
  fuikk history export --output-file history --history-backend sqlite`,
}

// historyShowCmd prints the recorded rows of one course.
var historyShowCmd = &cobra.Command{
	Use:   "show <course>",
	Short: "Show the recorded summary rows of a course",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, courseArg)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot show course history", err)
		}
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the summary history to Parquet",
	Long: `Export all recorded runs and course rows to two Parquet files named after
--output-file, for use with DuckDB, pandas or other analytics tools.

Examples:
  fuikk history export --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.course_summaries.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded summary history",
	Long: `Delete all recorded runs and course rows.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		dbFile := cfg.HistoryDBConnect
		if dbFile == "" {
			dbFile = contract.GetHistoryDBFilePath()
		}
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbFile, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the summary history store.

Examples:
  # Migrate to the latest version
  fuikk history migrate --history-backend postgresql --history-db-connect "host=... dbname=..."

  # Roll back all migrations
  fuikk history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.HistoryBackend == schema.NoneBackend {
			contract.LogFatal("Cannot migrate history", errors.New("no history backend configured"))
		}
		result, err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to migrate history", err)
		}
		if !result.Changed {
			fmt.Printf("History schema already at version %d.\n", result.To)
			return
		}
		fmt.Printf("Migrated history schema from version %d to %d.\n", result.From, result.To)
	},
}
