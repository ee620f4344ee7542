package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
)

// PrintStatsResults outputs what the stats pipeline did per semester.
func PrintStatsResults(results []schema.StatsSemesterResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON stats results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, results)
		}, "Wrote CSV stats results")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(w, results, cfg, duration)
		}, "Wrote table")
	}
}

func statsRecord(r schema.StatsSemesterResult) []string {
	return []string{
		r.Semester,
		strconv.Itoa(r.Courses),
		strconv.Itoa(r.Generated),
		strconv.Itoa(r.Cached),
		strconv.Itoa(r.Skipped),
		strconv.Itoa(r.Failed),
	}
}

func writeStatsTable(w io.Writer, results []schema.StatsSemesterResult, cfg *contract.Config, duration time.Duration) error {
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, statsRecord(r))
	}
	if err := writeTable(w, []string{"Semester", "Courses", "Generated", "Cached", "Skipped", "Failed"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Stats completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return err
}

func writeStatsCSV(w io.Writer, results []schema.StatsSemesterResult) error {
	header := []string{"semester", "courses", "generated", "cached", "skipped", "failed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := cw.Write(statsRecord(r)); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintCoursesResult outputs the outcome of one combine, aggregate and summarize run.
func PrintCoursesResult(result schema.CoursesRunResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON courses result")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("courses only supports text and json output (got %s)", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoursesText(w, result, duration)
		}, "Wrote courses result")
	}
}

func writeCoursesText(w io.Writer, result schema.CoursesRunResult, duration time.Duration) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Semesters:  %s\n", strings.Join(result.Semesters, ", "))
	fmt.Fprintf(&b, "Courses:    %d (%d entries, resolve mode %s)\n", result.Courses, result.Entries, result.Resolve)
	fmt.Fprintf(&b, "Summaries:  %d\n", result.Summaries)
	if result.RunID > 0 {
		fmt.Fprintf(&b, "History:    run %d\n", result.RunID)
	}
	fmt.Fprintf(&b, "Completed in %v\n", duration)
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintResponsesResults outputs how many CSV exports were converted per semester.
func PrintResponsesResults(results []schema.ResponsesResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON responses result")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s: converted %d files\n", r.Semester, r.Files); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote responses result")
}

// PrintDownloadResult outputs the counters of one download run.
func PrintDownloadResult(result schema.DownloadResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON download result")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"Forms: %d, downloaded: %d, already present: %d, CSV reports: %d, failed: %d\nDownload completed in %v\n",
			result.Forms, result.Downloaded, result.Skipped, result.Reports, result.Failed, duration)
		return err
	}, "Wrote download result")
}
