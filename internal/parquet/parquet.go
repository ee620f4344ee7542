// Package parquet exports fuikk summary data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/fuikk/fuikk/schema"
	"github.com/parquet-go/parquet-go"
)

// SummaryRun is one recorded `courses` run.
// It maps to the fuikk_summary_runs table.
type SummaryRun struct {
	RunID int64 `parquet:"run_id,snappy"`

	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is nil for runs that never finished
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalCourses int32 `parquet:"total_courses,snappy"`

	// ConfigParams is the JSON-encoded configuration of the run
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CourseSummary is one course's summary row recorded in a run.
// It maps to the fuikk_course_summaries table.
type CourseSummary struct {
	RunID               int64     `parquet:"run_id,snappy"`
	CourseCode          string    `parquet:"course_code,snappy"`
	RecordedAt          time.Time `parquet:"recorded_at,snappy"`
	Semesters           int32     `parquet:"semesters,snappy"`
	TotalResponses      int32     `parquet:"total_responses,snappy"`
	TotalInvited        int32     `parquet:"total_invited,snappy"`
	AverageResponseRate float64   `parquet:"average_response_rate,snappy"`
	AverageRating       float64   `parquet:"average_rating,snappy"`
}

// SummaryRow is a live summary report row, used by `summary --output parquet`.
type SummaryRow struct {
	CourseCode          string  `parquet:"course_code,snappy"`
	TotalResponses      int32   `parquet:"total_responses,snappy"`
	TotalInvited        int32   `parquet:"total_invited,snappy"`
	AverageResponseRate float64 `parquet:"average_response_rate,snappy"`
	AverageRating       float64 `parquet:"average_rating,snappy"`
}

// writeParquet writes rows of any struct type to outputPath, inferring the schema from struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteSummaryRunsParquet writes summary runs to a Parquet file.
func WriteSummaryRunsParquet(data []SummaryRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCourseSummariesParquet writes recorded course summaries to a Parquet file.
func WriteCourseSummariesParquet(data []CourseSummary, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSummaryRowsParquet writes a summary report to a Parquet file.
func WriteSummaryRowsParquet(data []SummaryRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertSummaryRunRecords converts store records for Parquet export.
func ConvertSummaryRunRecords(records []schema.SummaryRunRecord) []SummaryRun {
	result := make([]SummaryRun, len(records))
	for i, record := range records {
		result[i] = SummaryRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalCourses:  record.TotalCourses,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertCourseSummaryRecords converts store records for Parquet export.
func ConvertCourseSummaryRecords(records []schema.CourseSummaryRecord) []CourseSummary {
	result := make([]CourseSummary, len(records))
	for i, record := range records {
		result[i] = CourseSummary(record)
	}
	return result
}

// ConvertSummaryRows converts summary report rows for Parquet export.
func ConvertSummaryRows(rows []schema.CourseSummary) []SummaryRow {
	result := make([]SummaryRow, len(rows))
	for i, row := range rows {
		result[i] = SummaryRow{
			CourseCode:          row.Code,
			TotalResponses:      int32(row.TotalResponses),
			TotalInvited:        int32(row.TotalInvited),
			AverageResponseRate: row.AverageResponseRate,
			AverageRating:       row.AverageRating,
		}
	}
	return result
}
