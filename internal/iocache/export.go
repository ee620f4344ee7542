package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/parquet"
)

// ExecuteHistoryExport writes the summary history to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no summary history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total summary runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total course records: %d\n", status.TableSizes[courseSummariesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve summary runs: %w", err)
	}
	summaries, err := store.GetAllCourseSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve course summaries: %w", err)
	}

	runsFile := outputFile + ".summary_runs.parquet"
	parquetRuns := parquet.ConvertSummaryRunRecords(runs)
	if err := parquet.WriteSummaryRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write summary runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d summary runs to: %s\n", len(parquetRuns), runsFile)

	summariesFile := outputFile + ".course_summaries.parquet"
	parquetSummaries := parquet.ConvertCourseSummaryRecords(summaries)
	if err := parquet.WriteCourseSummariesParquet(parquetSummaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write course summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d course records to: %s\n", len(parquetSummaries), summariesFile)
	return nil
}
