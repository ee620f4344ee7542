package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SemesterEntries maps semester code to the stats entries recorded for it.
type SemesterEntries = orderedmap.OrderedMap[string, []CourseSemesterStats]

// CourseData maps course code to its per-semester entries.
// After aggregation it is the AggregatedCourseData structure.
type CourseData = orderedmap.OrderedMap[string, *SemesterEntries]

// NewSemesterEntries returns an empty SemesterEntries.
func NewSemesterEntries() *SemesterEntries {
	return orderedmap.New[string, []CourseSemesterStats]()
}

// NewCourseData returns an empty CourseData.
func NewCourseData() *CourseData {
	return orderedmap.New[string, *SemesterEntries]()
}

// SemesterCourses maps course code to stats for a single semester (outputs/courses.json).
type SemesterCourses = orderedmap.OrderedMap[string, CourseSemesterStats]

// NewSemesterCourses returns an empty SemesterCourses.
func NewSemesterCourses() *SemesterCourses {
	return orderedmap.New[string, CourseSemesterStats]()
}

// ReplacementGraph maps a course code to its immediate successor.
type ReplacementGraph map[string]string

// CourseInfoRecord is one entry from the course catalog.
type CourseInfoRecord struct {
	Name            string   `json:"name,omitempty"`
	ReplacementCode *string  `json:"replacement_code,omitempty"`
	Replaces        []string `json:"replaces,omitempty"`
}

// CourseInfo maps course code to its catalog record.
type CourseInfo map[string]CourseInfoRecord

// Graph builds the replacement graph. Null or empty replacement codes mean no successor.
func (ci CourseInfo) Graph() ReplacementGraph {
	graph := make(ReplacementGraph)
	for code, rec := range ci {
		if rec.ReplacementCode == nil || *rec.ReplacementCode == "" {
			continue
		}
		graph[code] = *rec.ReplacementCode
	}
	return graph
}

// SummaryRow is the rollup for one course code across all semesters.
type SummaryRow struct {
	TotalResponses      int     `json:"total_responses"`
	TotalInvited        int     `json:"total_invited"`
	AverageResponseRate float64 `json:"average_response_rate"`
	AverageRating       float64 `json:"average_rating"`
}

// SummaryReport maps course code to its SummaryRow.
type SummaryReport = orderedmap.OrderedMap[string, SummaryRow]

// NewSummaryReport returns an empty SummaryReport.
func NewSummaryReport() *SummaryReport {
	return orderedmap.New[string, SummaryRow]()
}

// CourseSummary is a SummaryRow with its course code, used for tabular output.
type CourseSummary struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	SummaryRow
}

// SummaryRows flattens a report in report order.
func SummaryRows(report *SummaryReport) []CourseSummary {
	rows := make([]CourseSummary, 0, report.Len())
	for pair := report.Oldest(); pair != nil; pair = pair.Next() {
		rows = append(rows, CourseSummary{Code: pair.Key, SummaryRow: pair.Value})
	}
	return rows
}

// SemesterScore is the mean of all numeric question averages in one semester.
type SemesterScore struct {
	Semester string  `json:"semester"`
	Average  float64 `json:"average"`
}

// DivideAssignment is the set of courses assigned to one member.
type DivideAssignment struct {
	Name    string   `json:"name"`
	Answers int      `json:"answers"`
	Courses []string `json:"courses"`
}
