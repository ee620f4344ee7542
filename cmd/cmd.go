// Package cmd defines the command-line interface for fuikk.
package cmd

import (
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(responsesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(divideCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Root of the evaluation data tree")
	rootCmd.PersistentFlags().String("courses-info", contract.DefaultCoursesInfo, "Path to courses_info.json with course replacement codes")
	rootCmd.PersistentFlags().String("course-names", contract.DefaultCourseNames, "Path to the course code to name mapping")
	rootCmd.PersistentFlags().String("downloads-dir", contract.DefaultDownloadsDir, "Directory holding downloaded survey reports")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("resolve-mode", string(schema.SingleHopResolve), "Replacement code resolution: single or transitive")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Stats cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., redis://localhost:6379/0)")
	rootCmd.PersistentFlags().String("history-backend", "", "Summary history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for summary history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of summaryCmd to Viper
	summaryCmd.Flags().Bool("resolved", false, "Count replaced course codes only under their successor")
	summaryCmd.Flags().Int("min-responses", 0, "Hide courses with fewer total responses")
	if err := viper.BindPFlags(summaryCmd.Flags()); err != nil {
		contract.LogFatal("Error binding summary flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Address for the HTTP server to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of downloadCmd to Viper
	downloadCmd.Flags().StringP("filter", "f", "", "Only download forms whose title contains this text")
	downloadCmd.Flags().Bool("csv", true, "Also download the CSV answer report of every form")
	if err := viper.BindPFlags(downloadCmd.Flags()); err != nil {
		contract.LogFatal("Error binding download flags", err)
	}

	// Bind all flags of sortCmd to Viper
	sortCmd.Flags().String("exclude", contract.DefaultExcludePattern, "Regular expression of paths to skip")
	sortCmd.Flags().Bool("delete", false, "Move files instead of copying and prune empty directories")
	if err := viper.BindPFlags(sortCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sort flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
