package agg

import (
	"cmp"
	"slices"

	"github.com/fuikk/fuikk/schema"
)

// Divide hands out courses with enough answers to people in round-robin order.
// Courses are visited from most to fewest answers; ties keep their input order.
func Divide(courses *schema.SemesterCourses, people []string) []schema.DivideAssignment {
	if len(people) == 0 {
		return nil
	}

	type candidate struct {
		code    string
		answers int
	}
	var candidates []candidate
	if courses != nil {
		for course := courses.Oldest(); course != nil; course = course.Next() {
			answered := course.Value.Respondents.Answered
			if answered > schema.MinReportedAnswers {
				candidates = append(candidates, candidate{code: course.Key, answers: answered})
			}
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.answers, a.answers)
	})

	assignments := make([]schema.DivideAssignment, len(people))
	for i, name := range people {
		assignments[i] = schema.DivideAssignment{Name: name, Courses: []string{}}
	}
	for i, c := range candidates {
		a := &assignments[i%len(people)]
		a.Answers += c.answers
		a.Courses = append(a.Courses, c.code)
	}
	return assignments
}
