package contract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fuikk/fuikk/schema"
)

// Default values for configuration.
const (
	DefaultDataDir      = "data"
	DefaultCoursesInfo  = "courses/courses_info.json"
	DefaultCourseNames  = "resources/course_names/all.json"
	DefaultResultLimit  = 50
	MaxResultLimit      = 5000
	DefaultPrecision    = 2
	DefaultServeAddr    = ":8080"
	DefaultAPIBaseURL   = "https://api.nettskjema.no"
	DefaultAPITokenURL  = "https://authorization.nettskjema.no/oauth2/token"
	DefaultAPITimeout   = 30 * time.Second
	DefaultDownloadsDir = "downloads"
	UnknownMember       = "Unknown"

	// DefaultExcludePattern skips test forms when sorting downloads.
	DefaultExcludePattern = `(testskjema)|(XXX)|(\*\*\*)`
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// APIConfig holds settings for the survey API client.
type APIConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string // Please use env var or .env as this is plaintext
	TitleFilter  string
	Timeout      time.Duration
	CSVReports   bool
}

// Config holds the runtime configuration for a fuikk command.
// This struct is the "final, validated" config.
type Config struct {
	DataDir     string
	CoursesInfo string
	CourseNames string
	Semester    string // empty means every semester under DataDir
	Course      string // course code for plot and history lookups
	Members     []string

	ResultLimit  int
	Workers      int
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool
	LogLevel     string
	ResolveMode  schema.ResolveMode
	Resolved     bool
	MinResponses int

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	DownloadsDir string
	SortExclude  string
	SortDelete   bool

	ServeAddr string
	API       APIConfig
}

// APIRawInput holds survey API settings from the config file and env.
type APIRawInput struct {
	BaseURL      string `mapstructure:"base-url"`
	TokenURL     string `mapstructure:"token-url"`
	ClientID     string `mapstructure:"client-id"`
	ClientSecret string `mapstructure:"client-secret"`
	Timeout      string `mapstructure:"timeout"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	SemesterStr string
	CourseStr   string
	MembersStr  string

	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir          string `mapstructure:"data-dir"`
	CoursesInfo      string `mapstructure:"courses-info"`
	CourseNames      string `mapstructure:"course-names"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	ResolveMode      string `mapstructure:"resolve-mode"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from summaryCmd.Flags() ---
	Resolved     bool `mapstructure:"resolved"`
	MinResponses int  `mapstructure:"min-responses"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Fields from downloadCmd.Flags() and sortCmd.Flags() ---
	Filter       string `mapstructure:"filter"`
	CSVReports   bool   `mapstructure:"csv"`
	DownloadsDir string `mapstructure:"downloads-dir"`
	Exclude      string `mapstructure:"exclude"`
	Delete       bool   `mapstructure:"delete"`

	// --- Survey API settings from config file ---
	API APIRawInput `mapstructure:"api"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Params returns the settings that shape aggregated output, for run history.
func (c *Config) Params() map[string]any {
	params := map[string]any{
		"data_dir":     c.DataDir,
		"courses_info": c.CoursesInfo,
		"resolve_mode": string(c.ResolveMode),
	}
	if c.Semester != "" {
		params["semester"] = c.Semester
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processAPIConfig(cfg, input); err != nil {
		return err
	}
	if err := resolveCourse(cfg, input); err != nil {
		return err
	}
	if err := resolveMembers(cfg, input); err != nil {
		return err
	}
	return resolveSemester(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with redis:// or rediss://")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Resolved = input.Resolved
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Resolve Mode Validation ---
	cfg.ResolveMode = schema.ResolveMode(strings.ToLower(input.ResolveMode))
	if cfg.ResolveMode == "" {
		cfg.ResolveMode = schema.SingleHopResolve
	}
	if _, ok := schema.ValidResolveModes[cfg.ResolveMode]; !ok {
		return fmt.Errorf("invalid resolve mode '%s'. must be single, transitive", input.ResolveMode)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 5. Filters ---
	if input.MinResponses < 0 {
		return fmt.Errorf("min-responses cannot be negative (received %d)", input.MinResponses)
	}
	cfg.MinResponses = input.MinResponses

	// --- 6. Paths ---
	cfg.DataDir = filepath.Clean(orDefault(input.DataDir, DefaultDataDir))
	cfg.CoursesInfo = filepath.Clean(orDefault(input.CoursesInfo, DefaultCoursesInfo))
	cfg.CourseNames = filepath.Clean(orDefault(input.CourseNames, DefaultCourseNames))
	cfg.DownloadsDir = filepath.Clean(orDefault(input.DownloadsDir, DefaultDownloadsDir))

	// --- 7. Sorting ---
	cfg.SortExclude = orDefault(input.Exclude, DefaultExcludePattern)
	if _, err := regexp.Compile(cfg.SortExclude); err != nil {
		return fmt.Errorf("invalid exclude pattern %q: %w", cfg.SortExclude, err)
	}
	cfg.SortDelete = input.Delete

	return nil
}

// processAPIConfig fills the survey API settings, falling back to defaults.
func processAPIConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.API = APIConfig{
		BaseURL:      strings.TrimRight(orDefault(input.API.BaseURL, DefaultAPIBaseURL), "/"),
		TokenURL:     orDefault(input.API.TokenURL, DefaultAPITokenURL),
		ClientID:     input.API.ClientID,
		ClientSecret: input.API.ClientSecret,
		TitleFilter:  input.Filter,
		Timeout:      DefaultAPITimeout,
		CSVReports:   input.CSVReports,
	}
	if input.API.Timeout != "" {
		d, err := time.ParseDuration(input.API.Timeout)
		if err != nil {
			return fmt.Errorf("invalid api timeout %q: %w", input.API.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("api timeout must be positive (received %s)", d)
		}
		cfg.API.Timeout = d
	}
	return nil
}

// resolveSemester validates the optional positional semester argument.
func resolveSemester(cfg *Config, input *ConfigRawInput) error {
	sem := strings.ToUpper(strings.TrimSpace(input.SemesterStr))
	if sem == "" || sem == "ALL" {
		cfg.Semester = ""
		return nil
	}
	if !schema.IsSemester(sem) {
		return fmt.Errorf("invalid semester %q: expected V or H followed by a year, e.g. H2020", input.SemesterStr)
	}
	cfg.Semester = sem
	return nil
}

// resolveCourse validates the optional positional course code.
func resolveCourse(cfg *Config, input *ConfigRawInput) error {
	code := strings.ToUpper(strings.TrimSpace(input.CourseStr))
	if strings.ContainsAny(code, " /\\") {
		return fmt.Errorf("invalid course code %q", input.CourseStr)
	}
	cfg.Course = code
	return nil
}

// resolveMembers parses the divide member list: a count of anonymous members
// or a comma-separated list of names.
func resolveMembers(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.MembersStr)
	cfg.Members = nil
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 || n > MaxResultLimit {
			return fmt.Errorf("member count must be between 1 and %d (received %d)", MaxResultLimit, n)
		}
		cfg.Members = make([]string, n)
		for i := range cfg.Members {
			cfg.Members[i] = UnknownMember
		}
		return nil
	}
	for name := range strings.SplitSeq(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Members = append(cfg.Members, name)
		}
	}
	if len(cfg.Members) == 0 {
		return fmt.Errorf("no member names in %q", input.MembersStr)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// RevalidateCourse sets and checks the course code of a cloned config.
// Used by the MCP and HTTP surfaces where the code arrives per request.
func RevalidateCourse(cfg *Config, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("a course code is required")
	}
	return resolveCourse(cfg, &ConfigRawInput{CourseStr: code})
}

// RevalidateSemester sets and checks the semester of a cloned config. Empty or "all" selects every semester.
func RevalidateSemester(cfg *Config, semester string) error {
	return resolveSemester(cfg, &ConfigRawInput{SemesterStr: semester})
}
