package agg

import (
	"math"

	"github.com/fuikk/fuikk/schema"
)

// SemesterAverage is the mean of every numeric question average in one semester,
// rounded to two decimals. The bool is false when no average was numeric.
func SemesterAverage(courses *schema.SemesterCourses) (float64, bool) {
	var sum float64
	n := 0
	if courses != nil {
		for course := courses.Oldest(); course != nil; course = course.Next() {
			if course.Value.Questions == nil {
				continue
			}
			for q := course.Value.Questions.Oldest(); q != nil; q = q.Next() {
				if !q.Value.Average.Valid {
					continue
				}
				sum += q.Value.Average.Value
				n++
			}
		}
	}
	if n == 0 {
		return 0, false
	}
	return Round2(sum / float64(n)), true
}

// Scores computes SemesterAverage for each semester and returns them in chronological order.
// Semesters without a numeric average are left out.
func Scores(perSemester map[string]*schema.SemesterCourses) []schema.SemesterScore {
	codes := make([]string, 0, len(perSemester))
	for code := range perSemester {
		codes = append(codes, code)
	}

	var scores []schema.SemesterScore
	for _, code := range schema.SortSemesters(codes) {
		avg, ok := SemesterAverage(perSemester[code])
		if !ok {
			continue
		}
		scores = append(scores, schema.SemesterScore{Semester: code, Average: avg})
	}
	return scores
}

// OverallScore is the rounded mean of semester scores.
func OverallScore(scores []schema.SemesterScore) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range scores {
		sum += s.Average
	}
	return Round2(sum / float64(len(scores))), true
}

// Round2 rounds to two decimals, ties to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
