package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []schema.CourseSummary {
	return []schema.CourseSummary{
		{
			Code: "INF1000",
			Name: "Introduction to programming",
			SummaryRow: schema.SummaryRow{
				TotalResponses:      30,
				TotalInvited:        120,
				AverageResponseRate: 25,
				AverageRating:       0.5,
			},
		},
		{
			Code:       "INF2000",
			Name:       "Unknown",
			SummaryRow: schema.SummaryRow{TotalInvited: 10},
		},
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSummaryJSON(&buf, sampleRows()))

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "INF1000", result[0]["code"])
	assert.Equal(t, float64(30), result[0]["total_responses"])
	assert.Equal(t, contract.ExcellentValue, result[0]["label"])
	assert.Equal(t, contract.NoRatingValue, result[1]["label"])
}

func TestWriteSummaryCSV(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeSummaryCSV(&buf, sampleRows(), fmtFloat, intFmt))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, []string{"1", "INF1000", "Introduction to programming", "30", "120", "25.00", "0.50", "Excellent"}, records[1])
	assert.Equal(t, "-", records[2][7])
}

func TestWriteSummaryTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	cfg := &contract.Config{Width: 160, Resolved: true}
	fmtFloat, intFmt := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeSummaryTable(&buf, sampleRows(), cfg, fmtFloat, intFmt, time.Second))

	out := buf.String()
	assert.Contains(t, out, "INF1000")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Showing 2 courses (total responses: 30)")
	assert.Contains(t, out, "Resolved: true")
}

func TestPrintSummaryResultsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path, Precision: 2}

	require.NoError(t, PrintSummaryResults(sampleRows(), cfg, time.Second))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPrintStatsResultsCSVToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path}
	results := []schema.StatsSemesterResult{
		{Semester: "H2020", Courses: 3, Generated: 2, Skipped: 1, Cached: 1},
	}

	require.NoError(t, PrintStatsResults(results, cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "semester,courses,generated,cached,skipped,failed", lines[0])
	assert.Equal(t, "H2020,3,2,1,1,0", lines[1])
}

func TestParquetUnsupported(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: "x.parquet"}
	assert.ErrorIs(t, PrintStatsResults(nil, cfg, 0), errParquetUnsupported)
	assert.ErrorIs(t, PrintScoreResults(schema.ScoreResult{}, cfg), errParquetUnsupported)
	assert.ErrorIs(t, PrintDivideResults(nil, cfg), errParquetUnsupported)
	assert.Error(t, PrintCoursesResult(schema.CoursesRunResult{}, cfg, 0))
}

func TestWriteScoreText(t *testing.T) {
	overall := 1.25
	result := schema.ScoreResult{
		Scores: []schema.SemesterScore{
			{Semester: "H2019", Average: 1.5},
			{Semester: "V2020", Average: 1},
		},
		Overall: &overall,
	}
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeScoreText(&buf, result, fmtFloat))
	assert.Equal(t, "Semester H2019: 1.50\nSemester V2020: 1.00\nOverall: 1.25\n", buf.String())

	buf.Reset()
	require.NoError(t, writeScoreCSV(&buf, result, fmtFloat))
	assert.Equal(t, "semester,average\nH2019,1.50\nV2020,1.00\noverall,1.25\n", buf.String())
}

func TestWriteDivide(t *testing.T) {
	assignments := []schema.DivideAssignment{
		{Name: "Ada", Answers: 30, Courses: []string{"INF1000", "INF1100"}},
		{Name: "Unknown", Answers: 0, Courses: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeDivideText(&buf, assignments))
	assert.Equal(t, "Ada (30 answers): INF1000, INF1100\nUnknown (0 answers): \n", buf.String())

	buf.Reset()
	require.NoError(t, writeDivideCSV(&buf, assignments))
	assert.Contains(t, buf.String(), "Ada,30,INF1000|INF1100")
}

func TestWriteSortText(t *testing.T) {
	results := []datadir.SortResult{
		{Source: "a/INF1000.csv", Target: "H2020/downloads/csv/INF1000.csv", Action: datadir.SortCopied},
		{Source: "b/testskjema.csv", Action: datadir.SortExcluded, Reason: "matches exclude pattern"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSortText(&buf, results))
	out := buf.String()
	assert.Contains(t, out, "a/INF1000.csv -> H2020/downloads/csv/INF1000.csv")
	assert.Contains(t, out, "(matches exclude pattern)")
	assert.Contains(t, out, "Sorted 2 files: 1 copied, 0 moved, 1 excluded, 0 skipped, 0 failed")
}

func TestWriteCoursesText(t *testing.T) {
	result := schema.CoursesRunResult{
		RunID:     7,
		Semesters: []string{"H2019", "V2020"},
		Courses:   4,
		Entries:   6,
		Resolve:   "single",
		Summaries: 4,
	}

	var buf bytes.Buffer
	require.NoError(t, writeCoursesText(&buf, result, time.Second))
	out := buf.String()
	assert.Contains(t, out, "H2019, V2020")
	assert.Contains(t, out, "4 (6 entries, resolve mode single)")
	assert.Contains(t, out, "run 7")
}

func TestWriteTrendCSV(t *testing.T) {
	trend := schema.CourseTrend{
		Points: []schema.CoursePoint{
			{Semester: "H2019", Code: "INF1000", Average: schema.NumericAverage(0.5)},
			{Semester: "V2020", Code: "IN1000", Average: schema.NoAverage},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeTrendCSV(&buf, trend))
	assert.Equal(t, "semester,code,average\nH2019,INF1000,0.5\nV2020,IN1000,None\n", buf.String())
}

func TestGetMaxNameWidth(t *testing.T) {
	assert.Equal(t, 15, getMaxNameWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 25, getMaxNameWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 60, getMaxNameWidth(&contract.Config{Width: 400}))
}

func TestWriteHistoryCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	records := []schema.CourseSummaryRecord{
		{RunID: 4, RecordedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), Semesters: 2, TotalResponses: 7, TotalInvited: 14, AverageResponseRate: 50, AverageRating: 0.6},
	}

	var buf bytes.Buffer
	require.NoError(t, writeHistoryCSV(&buf, records, fmtFloat))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"4", "2024-05-01T12:00:00Z", "2", "7", "14", "50.00", "0.60"}, rows[1])
}

func TestWriteHistoryTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Course: "IN1000"}
	records := []schema.CourseSummaryRecord{
		{RunID: 1, Semesters: 1, TotalResponses: 5, TotalInvited: 10, AverageResponseRate: 50},
		{RunID: 2, Semesters: 2, TotalResponses: 7, TotalInvited: 14, AverageResponseRate: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, writeHistoryTable(&buf, records, cfg, fmtFloat))
	out := buf.String()
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "2 runs recorded for IN1000")
}
