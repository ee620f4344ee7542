package agg

import (
	"github.com/fuikk/fuikk/schema"
)

// Summarize reduces aggregated course data to one SummaryRow per code.
//
// Entries whose general question was answered only with ignored options are
// skipped entirely. Entries without any general question still count toward
// respondent totals but add nothing to the rating.
func Summarize(data *schema.CourseData) *schema.SummaryReport {
	report := schema.NewSummaryReport()
	if data == nil {
		return report
	}
	for course := data.Oldest(); course != nil; course = course.Next() {
		report.Set(course.Key, SummarizeCourse(course.Value))
	}
	return report
}

// SummarizeCourse computes the SummaryRow for a single code's semesters.
func SummarizeCourse(semesters *schema.SemesterEntries) schema.SummaryRow {
	var (
		responses, invited int
		weightedSum        float64
		weightedCount      int
	)

	if semesters != nil {
		for sem := semesters.Oldest(); sem != nil; sem = sem.Next() {
			for i := range sem.Value {
				entry := &sem.Value[i]
				general, hasGeneral := generalStats(entry)
				if hasGeneral && general.AllIgnored() {
					continue
				}

				responses += entry.Respondents.Answered
				invited += entry.Respondents.Invited
				if !hasGeneral {
					continue
				}

				n := general.CountSum()
				weightedSum += general.Average.Float() * float64(n)
				weightedCount += n
			}
		}
	}

	row := schema.SummaryRow{
		TotalResponses: responses,
		TotalInvited:   invited,
	}
	if invited > 0 {
		row.AverageResponseRate = 100 * float64(responses) / float64(invited)
	}
	if weightedCount > 0 {
		row.AverageRating = weightedSum / float64(weightedCount)
	}
	return row
}

func generalStats(entry *schema.CourseSemesterStats) (schema.QuestionStats, bool) {
	question, ok := entry.GeneralQuestion()
	if !ok {
		return schema.QuestionStats{}, false
	}
	return entry.Question(question)
}
