package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fuikk/fuikk/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestSchemaColumns(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"summary runs", new(SummaryRun), []string{"run_id", "start_time", "end_time", "run_duration_ms", "total_courses", "config_params"}},
		{"course summaries", new(CourseSummary), []string{"run_id", "course_code", "recorded_at", "semesters", "total_responses", "total_invited", "average_response_rate", "average_rating"}},
		{"summary rows", new(SummaryRow), []string{"course_code", "total_responses", "total_invited", "average_response_rate", "average_rating"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteSummaryRunsParquet(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(3 * time.Second)
	duration := int32(3000)
	params := `{"resolve_mode":"single"}`

	data := ConvertSummaryRunRecords([]schema.SummaryRunRecord{
		{RunID: 1, StartTime: now, EndTime: &end, RunDurationMs: &duration, TotalCourses: 12, ConfigParams: &params},
		{RunID: 2, StartTime: now},
	})

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteSummaryRunsParquet(data, path))

	got := readAll[SummaryRun](t, path)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].RunID)
	assert.Equal(t, int32(12), got[0].TotalCourses)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, end, *got[0].EndTime, time.Microsecond)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, params, *got[0].ConfigParams)

	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteCourseSummariesParquet(t *testing.T) {
	now := time.Now().UTC()
	data := ConvertCourseSummaryRecords([]schema.CourseSummaryRecord{
		{RunID: 1, CourseCode: "INF1000", RecordedAt: now, Semesters: 3, TotalResponses: 30, TotalInvited: 90, AverageResponseRate: 33.33, AverageRating: 0.61},
	})

	path := filepath.Join(t.TempDir(), "courses.parquet")
	require.NoError(t, WriteCourseSummariesParquet(data, path))

	got := readAll[CourseSummary](t, path)
	require.Len(t, got, 1)
	assert.Equal(t, "INF1000", got[0].CourseCode)
	assert.Equal(t, int32(3), got[0].Semesters)
	assert.InDelta(t, 33.33, got[0].AverageResponseRate, 1e-9)
	assert.InDelta(t, 0.61, got[0].AverageRating, 1e-9)
}

func TestWriteSummaryRowsParquet(t *testing.T) {
	rows := []schema.CourseSummary{
		{Code: "NEW101", SummaryRow: schema.SummaryRow{TotalResponses: 30, TotalInvited: 90, AverageResponseRate: 33.33, AverageRating: 0.6}},
		{Code: "OLD101", SummaryRow: schema.SummaryRow{TotalResponses: 10, TotalInvited: 40, AverageResponseRate: 25, AverageRating: 0.8}},
	}
	path := filepath.Join(t.TempDir(), "summary.parquet")
	require.NoError(t, WriteSummaryRowsParquet(ConvertSummaryRows(rows), path))

	got := readAll[SummaryRow](t, path)
	require.Len(t, got, 2)
	assert.Equal(t, "NEW101", got[0].CourseCode)
	assert.Equal(t, int32(90), got[0].TotalInvited)
	assert.Equal(t, "OLD101", got[1].CourseCode)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteSummaryRunsParquet([]SummaryRun{}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteCourseSummariesParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}
