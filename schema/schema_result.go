package schema

import "time"

// StatsSemesterResult counts what the stats pipeline did for one semester.
type StatsSemesterResult struct {
	Semester  string `json:"semester"`
	Courses   int    `json:"courses"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"` // nobody answered or unknown language
	Failed    int    `json:"failed"`
	Cached    int    `json:"cached"`
}

// CoursesRunResult describes one run of the combine, aggregate and summarize pipeline.
type CoursesRunResult struct {
	RunID     int64     `json:"run_id,omitempty"`
	Semesters []string  `json:"semesters"`
	Courses   int       `json:"courses"`
	Entries   int       `json:"entries"`
	Resolve   string    `json:"resolve_mode"`
	Summaries int       `json:"summaries"`
	Started   time.Time `json:"started"`
}

// ScoreResult holds the per-semester scores and their overall mean.
type ScoreResult struct {
	Scores  []SemesterScore `json:"scores"`
	Overall *float64        `json:"overall,omitempty"`
}

// CoursePoint is the general-question average of one stats entry in one semester.
type CoursePoint struct {
	Semester string  `json:"semester"`
	Code     string  `json:"code"`
	Average  Average `json:"average"`
}

// CourseTrend is the general-question history of one course across semesters.
type CourseTrend struct {
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Question  string         `json:"question"`
	Language  Language       `json:"language"`
	Labels    []string       `json:"labels"`    // scale labels by index
	Semesters []string       `json:"semesters"` // full semester range, gaps included
	Points    []CoursePoint  `json:"points"`
	Latest    *Participation `json:"latest,omitempty"`
}

// FirstSemester returns the earliest semester that has a point.
func (t CourseTrend) FirstSemester() string {
	for _, sem := range t.Semesters {
		for _, p := range t.Points {
			if p.Semester == sem {
				return sem
			}
		}
	}
	return ""
}

// Title returns the plot title in the trend's language.
func (t CourseTrend) Title() string {
	if t.Language == Norwegian {
		return "Generell vurdering fra " + t.FirstSemester()
	}
	return "General assessment since " + t.FirstSemester()
}

// DownloadResult counts what one download run fetched.
type DownloadResult struct {
	Forms      int `json:"forms"`
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"` // already listed in the resume file
	Reports    int `json:"reports"`
	Failed     int `json:"failed"`
}

// ResponsesResult counts the CSV exports converted for one semester.
type ResponsesResult struct {
	Semester string `json:"semester"`
	Files    int    `json:"files"`
}
