package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/iocache"
	"github.com/fuikk/fuikk/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "fuikk",
	Short: "Turn course evaluation survey answers into statistics and reports.",
	Long: `Fuikk converts survey exports into per-course statistics, follows courses across
code replacements and semesters, and reports response rates and general ratings.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("FUIKK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("courses-info", contract.DefaultCoursesInfo)
	viper.SetDefault("course-names", contract.DefaultCourseNames)
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("resolve-mode", schema.SingleHopResolve)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "warn")

	// Nested keys need defaults so FUIKK_API_* variables are picked up
	viper.SetDefault("api.base-url", contract.DefaultAPIBaseURL)
	viper.SetDefault("api.token-url", contract.DefaultAPITokenURL)
	viper.SetDefault("api.client-id", "")
	viper.SetDefault("api.client-secret", "")
	viper.SetDefault("api.timeout", "")
}

// setConfigFile points Viper at --config or the default .fuikk.yaml search path.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".fuikk") // Name of config file (without extension)
	viper.SetConfigType("yaml")   // We'll use YAML format
	viper.AddConfigPath(".")      // Look in the current directory
	viper.AddConfigPath("$HOME")  // Look in the home directory
}

// loadConfigFile reads the config file if present.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// argsAssigner copies positional arguments into the raw input.
type argsAssigner func(in *contract.ConfigRawInput, args []string)

// semesterArg treats the first positional argument as a semester.
func semesterArg(in *contract.ConfigRawInput, args []string) {
	if len(args) > 0 {
		in.SemesterStr = args[0]
	}
}

// courseArg treats the first positional argument as a course code.
func courseArg(in *contract.ConfigRawInput, args []string) {
	if len(args) > 0 {
		in.CourseStr = args[0]
	}
}

// divideArgs reads a semester followed by a member count or name list.
func divideArgs(in *contract.ConfigRawInput, args []string) {
	if len(args) == 2 {
		in.SemesterStr = args[0]
		in.MembersStr = args[1]
	}
}

// sharedSetup unmarshals config, runs validation and opens the stores.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string, assign argsAssigner) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.SemesterStr, input.CourseStr, input.MembersStr = "", "", ""
	if assign != nil {
		assign(input, args)
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	logger, err := contract.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	contract.SetLogger(logger)

	// 5. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	cacheManager = iocache.Manager
	return nil
}

// setupWith builds a PreRunE that maps positional args before the shared setup.
func setupWith(assign argsAssigner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args, assign)
	}
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args, nil)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetContext replaces the root context, usually with one cancelled on interrupt.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}
