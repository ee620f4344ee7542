package plot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrend() schema.CourseTrend {
	return schema.CourseTrend{
		Code:      "INF1000",
		Name:      "Introduksjon til programmering",
		Question:  schema.GeneralQuestions[0],
		Language:  schema.Norwegian,
		Labels:    []string{"Svært godt", "Godt", "Middels", "Dårlig"},
		Semesters: []string{"H2019", "V2020", "H2020"},
		Points: []schema.CoursePoint{
			{Semester: "H2019", Code: "INF1000", Average: schema.NumericAverage(0.4)},
			{Semester: "H2020", Code: "INF1000", Average: schema.NumericAverage(2.6)},
			{Semester: "H2020", Code: "IN1000", Average: schema.NoAverage},
		},
		Latest: &schema.Participation{Started: 20, Answered: 10, Invited: 40},
	}
}

func TestLayout(t *testing.T) {
	chart := Layout(sampleTrend())

	require.Len(t, chart.Cells, 4)
	assert.Equal(t, []string{PointMarker}, chart.Cells[0][0])
	assert.Empty(t, chart.Cells[0][1], "V2020 has no data and stays a gap")
	assert.Equal(t, []string{PointMarker}, chart.Cells[3][2])
	assert.Equal(t, []string{SentinelMarker}, chart.Cells[2][2], "sentinel goes to the middle row")
}

func TestLayoutClampsAverages(t *testing.T) {
	trend := schema.CourseTrend{
		Labels:    []string{"Good", "Bad"},
		Semesters: []string{"V2021"},
		Points:    []schema.CoursePoint{{Semester: "V2021", Average: schema.NumericAverage(7)}},
	}
	chart := Layout(trend)
	assert.Equal(t, []string{PointMarker}, chart.Cells[1][0])
}

func TestLayoutWithoutLabels(t *testing.T) {
	chart := Layout(schema.CourseTrend{Semesters: []string{"V2021"}})
	assert.Empty(t, chart.Cells)
}

func TestRender(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleTrend()))
	out := buf.String()

	assert.Contains(t, out, "INF1000 Introduksjon til programmering")
	assert.Contains(t, out, "Generell vurdering fra H2019")
	assert.Contains(t, out, "H2019 V2020 H2020")
	assert.Contains(t, out, "Antall besvarelser: 10 av 40 (25%)")

	lines := strings.Split(out, "\n")
	var godt string
	for _, l := range lines {
		if strings.HasPrefix(l, "Svært godt") {
			godt = l
		}
	}
	require.NotEmpty(t, godt)
	assert.Contains(t, godt, PointMarker)
}
