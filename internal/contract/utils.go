package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fuikk/fuikk/schema"
	"go.uber.org/zap"
)

// Rating label constants. Lower averages are better since scale index 0 is the top answer.
const (
	ExcellentValue = "Excellent" // Excellent value
	GoodValue      = "Good"      // Good value
	FairValue      = "Fair"      // Fair value
	PoorValue      = "Poor"      // Poor value
	NoRatingValue  = "-"         // No rating value
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor marks the best rated courses.
	GoodColor      = color.New(color.FgCyan)              // goodColor is the common healthy case.
	FairColor      = color.New(color.FgYellow)            // fairColor is a mild caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // poorColor flags courses worth a closer look.
)

// GetPlainLabel returns a plain text label for an average rating.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(rating float64, responses int) string {
	switch {
	case responses == 0:
		return NoRatingValue
	case rating < 0.75:
		return ExcellentValue
	case rating < 1.5:
		return GoodValue
	case rating < 2.25:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(rating float64, responses int) string {
	text := GetPlainLabel(rating, responses)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	case PoorValue:
		return PoorColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error(msg, zap.Error(err))
	_ = Logger().Sync()
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, zap.Error(err))
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for stats cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fuikk_cache.db"
	}
	return filepath.Join(homeDir, ".fuikk_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for summary history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fuikk_history.db"
	}
	return filepath.Join(homeDir, ".fuikk_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// FormatParticipation renders respondent counts the way course reports show them.
func FormatParticipation(p schema.Participation, lang schema.Language) string {
	rate := 100.0
	if p.Invited > 0 {
		rate = 100 * float64(p.Answered) / float64(p.Invited)
	}
	if lang == schema.Norwegian {
		return fmt.Sprintf("Antall besvarelser: %d av %d (%.0f%%)", p.Answered, p.Invited, rate)
	}
	return fmt.Sprintf("Respondents: %d of %d (%.0f%%)", p.Answered, p.Invited, rate)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
