package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// ResolveMode represents how course replacement chains are followed.
	ResolveMode string

	// Language represents the detected language of a survey.
	Language string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis" // cache only
	NoneBackend       DatabaseBackend = "none"
)

// All resolve modes supported.
const (
	SingleHopResolve  ResolveMode = "single" // default
	TransitiveResolve ResolveMode = "transitive"
)

// All languages recognized by the language detector.
const (
	English         Language = "EN"
	Norwegian       Language = "NO"
	UnknownLanguage Language = ""
)

// AllIgnoredText is the average text used when every answer to a question was ignored.
const AllIgnoredText = "All answers ignored"

// NoneSentinel is the serialized form of a missing average.
const NoneSentinel = "None"

// MinReportedAnswers is the answer count a course must exceed to be reported and divided.
const MinReportedAnswers = 4

// GeneralQuestions lists the overall-impression question variants in lookup order.
var GeneralQuestions = []string{
	"Hva er ditt generelle inntrykk av emnet?",
	"Hva er ditt generelle intrykk av kurset?",
	"Hva er ditt generelle inntrykk av kurset?",
	"What is your general impression of the course?",
	"How do you rate the course in general?",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid SQL-style backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidResolveModes lists all valid resolve modes.
var ValidResolveModes = map[ResolveMode]struct{}{
	SingleHopResolve:  {},
	TransitiveResolve: {},
}
