package agg

import (
	"testing"

	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
)

func TestDivide(t *testing.T) {
	courses := schema.NewSemesterCourses()
	for _, c := range []struct {
		code     string
		answered int
	}{
		{"INF1000", 50}, {"INF1010", 4}, {"INF2100", 12}, {"IN3000", 12}, {"IN4000", 30},
	} {
		courses.Set(c.code, entry(c.code, "H2020", c.answered, 100))
	}

	got := Divide(courses, []string{"Kari", "Ola"})
	assert.Equal(t, []schema.DivideAssignment{
		{Name: "Kari", Answers: 62, Courses: []string{"INF1000", "INF2100"}},
		{Name: "Ola", Answers: 42, Courses: []string{"IN4000", "IN3000"}},
	}, got)
}

func TestDivideEdges(t *testing.T) {
	assert.Nil(t, Divide(schema.NewSemesterCourses(), nil))

	got := Divide(nil, []string{"Unknown"})
	assert.Equal(t, []schema.DivideAssignment{{Name: "Unknown", Courses: []string{}}}, got)
}
