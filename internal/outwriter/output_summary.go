package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/parquet"
	"github.com/fuikk/fuikk/schema"
)

// PrintSummaryResults outputs the summary rows, dispatching based on the output format configured.
func PrintSummaryResults(rows []schema.CourseSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryJSON(w, rows)
		}, "Wrote JSON summary"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, rows, fmtFloat, intFmt)
		}, "Wrote CSV summary"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSummaryRowsParquet(parquet.ConvertSummaryRows(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, rows, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryTable generates and writes the human-readable summary table.
func writeSummaryTable(w io.Writer, rows []schema.CourseSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	headers := []string{"Rank", "Code", "Name", "Responses", "Invited", "Rate", "Rating", "Label"}
	nameWidth := getMaxNameWidth(cfg)

	data := make([][]string, 0, len(rows))
	totalResponses := 0
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Code,
			contract.TruncateText(r.Name, nameWidth),
			fmt.Sprintf(intFmt, r.TotalResponses),
			fmt.Sprintf(intFmt, r.TotalInvited),
			formatPercent(r.AverageResponseRate),
			fmtFloat(r.AverageRating),
			contract.GetColorLabel(r.AverageRating, r.TotalResponses),
		})
		totalResponses += r.TotalResponses
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d courses (total responses: %d)\n", len(rows), totalResponses); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Summary loaded in %v. Resolved: %t\n", duration, cfg.Resolved)
	return err
}

// writeSummaryCSV writes the summary rows in CSV format.
func writeSummaryCSV(w io.Writer, rows []schema.CourseSummary, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"code",
		"name",
		"total_responses",
		"total_invited",
		"average_response_rate",
		"average_rating",
		"label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rows {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Code,
				r.Name,
				fmt.Sprintf(intFmt, r.TotalResponses),
				fmt.Sprintf(intFmt, r.TotalInvited),
				fmtFloat(r.AverageResponseRate),
				fmtFloat(r.AverageRating),
				contract.GetPlainLabel(r.AverageRating, r.TotalResponses),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSummaryJSON writes the summary rows in JSON format with rank and label added.
func writeSummaryJSON(w io.Writer, rows []schema.CourseSummary) error {
	type jsonSummary struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.CourseSummary
	}

	output := make([]jsonSummary, len(rows))
	for i, r := range rows {
		output[i] = jsonSummary{
			Rank:          i + 1,
			Label:         contract.GetPlainLabel(r.AverageRating, r.TotalResponses),
			CourseSummary: r,
		}
	}
	return writeJSON(w, output)
}
