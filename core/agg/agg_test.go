package agg

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/courses.json
var coursesFixture []byte

func loadFixture(t *testing.T) *schema.CourseData {
	t.Helper()
	data := schema.NewCourseData()
	require.NoError(t, json.Unmarshal(coursesFixture, data))
	return data
}

func entry(code, semester string, answered, invited int) schema.CourseSemesterStats {
	return schema.CourseSemesterStats{
		Course:      schema.Course{Code: code, Semester: semester},
		Respondents: schema.Participation{Started: answered, Answered: answered, Invited: invited},
		Questions:   schema.NewQuestionSet(),
	}
}

func courseData(t *testing.T, entries ...schema.CourseSemesterStats) *schema.CourseData {
	t.Helper()
	data := schema.NewCourseData()
	for _, e := range entries {
		semesters, ok := data.Get(e.Course.Code)
		if !ok {
			semesters = schema.NewSemesterEntries()
			data.Set(e.Course.Code, semesters)
		}
		existing, _ := semesters.Get(e.Course.Semester)
		semesters.Set(e.Course.Semester, append(existing, e))
	}
	return data
}

func TestResolveEmptyGraph(t *testing.T) {
	for _, r := range []Resolver{SingleHop(nil), Transitive(schema.ReplacementGraph{})} {
		assert.Equal(t, "INF1000", r.Resolve("INF1000"))
		assert.Equal(t, "", r.Resolve(""))
	}
}

func TestResolveChains(t *testing.T) {
	graph := schema.ReplacementGraph{"A100": "B100", "B100": "C100"}

	assert.Equal(t, "B100", SingleHop(graph).Resolve("A100"))
	assert.Equal(t, "C100", SingleHop(graph).Resolve("B100"))
	assert.Equal(t, "C100", Transitive(graph).Resolve("A100"))
	assert.Equal(t, "C100", Transitive(graph).Resolve("C100"))
}

func TestResolveTransitiveCycle(t *testing.T) {
	graph := schema.ReplacementGraph{"A100": "B100", "B100": "A100", "SELF1": "SELF1"}
	r := Transitive(graph)
	assert.Equal(t, "B100", r.Resolve("A100"))
	assert.Equal(t, "A100", r.Resolve("B100"))
	assert.Equal(t, "SELF1", r.Resolve("SELF1"))
}

func TestNewResolver(t *testing.T) {
	graph := schema.ReplacementGraph{"A100": "B100", "B100": "C100"}
	assert.Equal(t, "B100", NewResolver(schema.SingleHopResolve, graph).Resolve("A100"))
	assert.Equal(t, "B100", NewResolver("", graph).Resolve("A100"))
	assert.Equal(t, "C100", NewResolver(schema.TransitiveResolve, graph).Resolve("A100"))
}

func TestAggregateSupersededCode(t *testing.T) {
	data := courseData(t,
		entry("OLD101", "H2020", 10, 40),
		entry("NEW101", "H2020", 20, 50),
	)
	graph := schema.ReplacementGraph{"OLD101": "NEW101"}

	out := Aggregate(data, SingleHop(graph))

	newSems, ok := out.Get("NEW101")
	require.True(t, ok)
	h2020, _ := newSems.Get("H2020")
	require.Len(t, h2020, 2)
	assert.Equal(t, "NEW101", h2020[0].Course.Code)
	assert.Equal(t, "OLD101", h2020[1].Course.Code)

	oldSems, ok := out.Get("OLD101")
	require.True(t, ok)
	oldH2020, _ := oldSems.Get("H2020")
	assert.Len(t, oldH2020, 1)

	// input is untouched
	inputNew, _ := data.Get("NEW101")
	inputH2020, _ := inputNew.Get("H2020")
	assert.Len(t, inputH2020, 1)
}

func TestAggregateEntryCounts(t *testing.T) {
	data := loadFixture(t)
	graph := schema.ReplacementGraph{"OLD101": "NEW101"}

	out := Aggregate(data, SingleHop(graph))

	assert.Equal(t, CountEntries(data, "OLD101"), CountEntries(out, "OLD101"))
	assert.Equal(t, CountEntries(data, "NEW101")+CountEntries(data, "OLD101"), CountEntries(out, "NEW101"))
	assert.Equal(t, CountEntries(data, "NOGEN200"), CountEntries(out, "NOGEN200"))
	assert.Equal(t, data.Len(), out.Len())
}

func TestAggregateTargetWithoutOwnData(t *testing.T) {
	data := courseData(t, entry("OLD200", "V2019", 7, 9))
	out := Aggregate(data, SingleHop(schema.ReplacementGraph{"OLD200": "NEW200"}))

	assert.Equal(t, 1, CountEntries(out, "OLD200"))
	assert.Equal(t, 1, CountEntries(out, "NEW200"))
}

func TestAggregateResolved(t *testing.T) {
	data := loadFixture(t)
	out := AggregateResolved(data, SingleHop(schema.ReplacementGraph{"OLD101": "NEW101"}))

	_, ok := out.Get("OLD101")
	assert.False(t, ok)
	assert.Equal(t, 3, CountEntries(out, "NEW101"))
	assert.Equal(t, 1, CountEntries(out, "NOGEN200"))
}

func TestCombineSemesters(t *testing.T) {
	v2021 := schema.NewSemesterCourses()
	v2021.Set("INF1000", entry("INF1000", "V2021", 3, 4))
	h2020 := schema.NewSemesterCourses()
	h2020.Set("INF1000", entry("INF1000", "H2020", 5, 6))
	h2020.Set("INF1010", entry("INF1010", "H2020", 1, 2))

	out := CombineSemesters([]string{"H2020", "V2021", "H2099"}, map[string]*schema.SemesterCourses{
		"H2020": h2020,
		"V2021": v2021,
	})

	require.Equal(t, 2, out.Len())
	inf1000, _ := out.Get("INF1000")
	var order []string
	for sem := inf1000.Oldest(); sem != nil; sem = sem.Next() {
		order = append(order, sem.Key)
	}
	assert.Equal(t, []string{"H2020", "V2021"}, order)
	assert.Equal(t, 1, CountEntries(out, "INF1010"))
}

func TestSummarizeFixture(t *testing.T) {
	out := Aggregate(loadFixture(t), SingleHop(schema.ReplacementGraph{"OLD101": "NEW101"}))
	report := Summarize(out)

	old, ok := report.Get("OLD101")
	require.True(t, ok)
	assert.Equal(t, 10, old.TotalResponses)
	assert.Equal(t, 40, old.TotalInvited)
	assert.InDelta(t, 25.0, old.AverageResponseRate, 1e-9)
	assert.InDelta(t, 0.8, old.AverageRating, 1e-9)

	// V2021 is all ignored and skipped; H2020 holds NEW101 and OLD101.
	nw, ok := report.Get("NEW101")
	require.True(t, ok)
	assert.Equal(t, 30, nw.TotalResponses)
	assert.Equal(t, 90, nw.TotalInvited)
	assert.InDelta(t, 100.0*30/90, nw.AverageResponseRate, 1e-9)
	assert.InDelta(t, (0.5*20+0.8*10)/30, nw.AverageRating, 1e-9)

	// No general question: totals only.
	nogen, ok := report.Get("NOGEN200")
	require.True(t, ok)
	assert.Equal(t, 3, nogen.TotalResponses)
	assert.Equal(t, 6, nogen.TotalInvited)
	assert.Equal(t, 0.0, nogen.AverageRating)
}

func TestSummarizeAllIgnored(t *testing.T) {
	e := entry("IGN100", "H2021", 8, 10)
	e.Questions.Set(schema.GeneralQuestions[3], schema.QuestionStats{
		Counts:      map[string]int{},
		Average:     schema.NoAverage,
		AverageText: schema.AllIgnoredText,
	})

	report := Summarize(courseData(t, e))
	row, ok := report.Get("IGN100")
	require.True(t, ok)
	assert.Equal(t, schema.SummaryRow{}, row)
}

func TestSummarizeSentinelWithCounts(t *testing.T) {
	e := entry("ODD100", "H2021", 4, 0)
	e.Questions.Set(schema.GeneralQuestions[0], schema.QuestionStats{
		Counts:  map[string]int{"bra": 2},
		Average: schema.NoAverage,
	})

	row := SummarizeCourse(courseData(t, e).Oldest().Value)
	assert.Equal(t, 4, row.TotalResponses)
	assert.Equal(t, 0.0, row.AverageResponseRate)
	assert.Equal(t, 0.0, row.AverageRating)
}

func TestSummarizeResponseRateRange(t *testing.T) {
	data := courseData(t,
		entry("A100", "H2020", 0, 5),
		entry("A100", "V2021", 5, 5),
		entry("B100", "H2020", 1, 300),
	)
	report := Summarize(data)
	for pair := report.Oldest(); pair != nil; pair = pair.Next() {
		assert.GreaterOrEqual(t, pair.Value.AverageResponseRate, 0.0, pair.Key)
		assert.LessOrEqual(t, pair.Value.AverageResponseRate, 100.0, pair.Key)
	}
	assert.Equal(t, 0, Summarize(nil).Len())
}
