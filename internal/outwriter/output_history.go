package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
)

// PrintCourseHistory outputs the summary rows recorded for one course across runs.
func PrintCourseHistory(records []schema.CourseSummaryRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON history")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, records, fmtFloat)
		}, "Wrote CSV history")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat)
		}, "Wrote history")
	}
}

func historyRow(r schema.CourseSummaryRecord, fmtFloat func(float64) string) []string {
	return []string{
		strconv.FormatInt(r.RunID, 10),
		r.RecordedAt.Format(contract.DateTimeFormat),
		strconv.Itoa(int(r.Semesters)),
		strconv.Itoa(int(r.TotalResponses)),
		strconv.Itoa(int(r.TotalInvited)),
		fmtFloat(r.AverageResponseRate),
		fmtFloat(r.AverageRating),
	}
}

func writeHistoryCSV(w io.Writer, records []schema.CourseSummaryRecord, fmtFloat func(float64) string) error {
	header := []string{"run_id", "recorded_at", "semesters", "total_responses", "total_invited", "average_response_rate", "average_rating"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			if err := cw.Write(historyRow(r, fmtFloat)); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeHistoryTable(w io.Writer, records []schema.CourseSummaryRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	headers := []string{"Run", "Recorded", "Semesters", "Responses", "Invited", "Rate", "Rating"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := historyRow(r, fmtFloat)
		row[5] = formatPercent(r.AverageResponseRate)
		rows = append(rows, row)
	}
	if err := writeTable(w, headers, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d runs recorded for %s\n", len(records), cfg.Course)
	return err
}
