package schema

import "time"

// SummaryRunRecord represents a row from the fuikk_summary_runs table.
type SummaryRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalCourses  int32
	ConfigParams  *string
}

// CourseSummaryRecord represents a row from the fuikk_course_summaries table.
type CourseSummaryRecord struct {
	RunID               int64
	CourseCode          string
	RecordedAt          time.Time
	Semesters           int32
	TotalResponses      int32
	TotalInvited        int32
	AverageResponseRate float64
	AverageRating       float64
}
