package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/internal/plot"
	"github.com/fuikk/fuikk/schema"
)

// PrintScoreResults outputs the semester scores and, when present, the overall score.
func PrintScoreResults(result schema.ScoreResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON scores")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreCSV(w, result, fmtFloat)
		}, "Wrote CSV scores")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreText(w, result, fmtFloat)
		}, "Wrote scores")
	}
}

func writeScoreText(w io.Writer, result schema.ScoreResult, fmtFloat func(float64) string) error {
	var b strings.Builder
	for _, s := range result.Scores {
		fmt.Fprintf(&b, "Semester %s: %s\n", s.Semester, fmtFloat(s.Average))
	}
	if result.Overall != nil {
		fmt.Fprintf(&b, "Overall: %s\n", fmtFloat(*result.Overall))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeScoreCSV(w io.Writer, result schema.ScoreResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"semester", "average"}, func(cw *csv.Writer) error {
		for _, s := range result.Scores {
			if err := cw.Write([]string{s.Semester, fmtFloat(s.Average)}); err != nil {
				return err
			}
		}
		if result.Overall != nil {
			return cw.Write([]string{"overall", fmtFloat(*result.Overall)})
		}
		return nil
	})
}

// PrintDivideResults outputs the course assignment of every member.
func PrintDivideResults(assignments []schema.DivideAssignment, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, assignments)
		}, "Wrote JSON assignments")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDivideCSV(w, assignments)
		}, "Wrote CSV assignments")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDivideText(w, assignments)
		}, "Wrote assignments")
	}
}

func writeDivideText(w io.Writer, assignments []schema.DivideAssignment) error {
	var b strings.Builder
	for _, a := range assignments {
		fmt.Fprintf(&b, "%s (%d answers): %s\n", a.Name, a.Answers, strings.Join(a.Courses, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDivideCSV(w io.Writer, assignments []schema.DivideAssignment) error {
	return writeCSVWithHeader(w, []string{"name", "answers", "courses"}, func(cw *csv.Writer) error {
		for _, a := range assignments {
			if err := cw.Write([]string{a.Name, strconv.Itoa(a.Answers), strings.Join(a.Courses, "|")}); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintSortResults outputs what happened to each downloaded file.
func PrintSortResults(results []datadir.SortResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON sort results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSortCSV(w, results)
		}, "Wrote CSV sort results")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSortText(w, results)
		}, "Wrote sort results")
	}
}

func writeSortText(w io.Writer, results []datadir.SortResult) error {
	counts := make(map[datadir.SortAction]int)
	var b strings.Builder
	for _, r := range results {
		counts[r.Action]++
		switch r.Action {
		case datadir.SortCopied, datadir.SortMoved:
			fmt.Fprintf(&b, "%-8s %s -> %s\n", r.Action, r.Source, r.Target)
		default:
			fmt.Fprintf(&b, "%-8s %s (%s)\n", r.Action, r.Source, r.Reason)
		}
	}
	fmt.Fprintf(&b, "Sorted %d files: %d copied, %d moved, %d excluded, %d skipped, %d failed\n",
		len(results),
		counts[datadir.SortCopied],
		counts[datadir.SortMoved],
		counts[datadir.SortExcluded],
		counts[datadir.SortSkipped],
		counts[datadir.SortFailed])
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSortCSV(w io.Writer, results []datadir.SortResult) error {
	return writeCSVWithHeader(w, []string{"source", "target", "action", "reason"}, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := cw.Write([]string{r.Source, r.Target, string(r.Action), r.Reason}); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintCourseTrend outputs the general-question history of one course as a chart or JSON.
func PrintCourseTrend(trend schema.CourseTrend, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, trend)
		}, "Wrote JSON trend")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, trend)
		}, "Wrote CSV trend")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return plot.Render(w, trend)
		}, "Wrote plot")
	}
}

func writeTrendCSV(w io.Writer, trend schema.CourseTrend) error {
	return writeCSVWithHeader(w, []string{"semester", "code", "average"}, func(cw *csv.Writer) error {
		for _, p := range trend.Points {
			if err := cw.Write([]string{p.Semester, p.Code, p.Average.String()}); err != nil {
				return err
			}
		}
		return nil
	})
}
