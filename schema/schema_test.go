package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageJSON(t *testing.T) {
	t.Run("sentinel encodes as None", func(t *testing.T) {
		data, err := json.Marshal(NoAverage)
		require.NoError(t, err)
		assert.Equal(t, `"None"`, string(data))
	})

	t.Run("number encodes as number", func(t *testing.T) {
		data, err := json.Marshal(NumericAverage(0.5))
		require.NoError(t, err)
		assert.Equal(t, `0.5`, string(data))
	})

	tests := []struct {
		in    string
		valid bool
		value float64
	}{
		{`"None"`, false, 0},
		{`null`, false, 0},
		{`1.25`, true, 1.25},
		{`0`, true, 0},
		{`"2.5"`, true, 2.5},
	}
	for _, tt := range tests {
		t.Run("decode "+tt.in, func(t *testing.T) {
			var a Average
			require.NoError(t, json.Unmarshal([]byte(tt.in), &a))
			assert.Equal(t, tt.valid, a.Valid)
			assert.InDelta(t, tt.value, a.Value, 1e-9)
		})
	}

	var bad Average
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestParticipationJSON(t *testing.T) {
	var p Participation
	require.NoError(t, json.Unmarshal([]byte(`{"started":0,"answered":5,"invited":10,"response_rate":50}`), &p))
	assert.Equal(t, Participation{Started: 0, Answered: 5, Invited: 10}, p)

	var s Participation
	require.NoError(t, json.Unmarshal([]byte(`{"started":"3","answered":"5","invited":"10"}`), &s))
	assert.Equal(t, Participation{Started: 3, Answered: 5, Invited: 10}, s)

	var missing Participation
	err := json.Unmarshal([]byte(`{"started":0,"answered":5}`), &missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingData)
	assert.Contains(t, err.Error(), "invited")

	var garbage Participation
	err = json.Unmarshal([]byte(`{"started":0,"answered":"many","invited":1}`), &garbage)
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestCourseSemesterStatsKeepsQuestionOrder(t *testing.T) {
	questions := NewQuestionSet()
	questions.Set("Zeta?", QuestionStats{Counts: map[string]int{"good": 1}, Average: NumericAverage(0)})
	questions.Set("Alpha?", QuestionStats{Counts: map[string]int{}, Average: NoAverage, AverageText: AllIgnoredText})
	stats := CourseSemesterStats{
		Course:    Course{Code: "INF1000", Name: "Intro", Semester: "H2020"},
		Questions: questions,
	}

	data, err := json.Marshal(stats)
	require.NoError(t, err)
	out := string(data)
	assert.Less(t, strings.Index(out, "Zeta?"), strings.Index(out, "Alpha?"))
	assert.Contains(t, out, `"language":null`)

	var decoded CourseSemesterStats
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Zeta?", decoded.Questions.Oldest().Key)
	alpha, ok := decoded.Question("Alpha?")
	require.True(t, ok)
	assert.True(t, alpha.AllIgnored())
	assert.Equal(t, UnknownLanguage, decoded.Lang())
}

func TestGeneralQuestionLookupOrder(t *testing.T) {
	questions := NewQuestionSet()
	questions.Set("How do you rate the course in general?", QuestionStats{})
	questions.Set("Hva er ditt generelle inntrykk av emnet?", QuestionStats{})
	stats := CourseSemesterStats{Questions: questions}

	q, ok := stats.GeneralQuestion()
	require.True(t, ok)
	assert.Equal(t, "Hva er ditt generelle inntrykk av emnet?", q)

	_, ok = (&CourseSemesterStats{}).GeneralQuestion()
	assert.False(t, ok)
}

func TestCourseInfoGraph(t *testing.T) {
	next := "NEW101"
	empty := ""
	info := CourseInfo{
		"OLD101": {ReplacementCode: &next},
		"NEW101": {},
		"NULL10": {ReplacementCode: nil},
		"EMPTY1": {ReplacementCode: &empty},
	}
	assert.Equal(t, ReplacementGraph{"OLD101": "NEW101"}, info.Graph())
}

func TestQuestionStatsCountSum(t *testing.T) {
	q := QuestionStats{Counts: map[string]int{"good": 2, "ok": 3}}
	assert.Equal(t, 5, q.CountSum())
	assert.False(t, q.AllIgnored())
}
