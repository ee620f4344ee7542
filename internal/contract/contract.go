// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/fuikk/fuikk/schema"
)

// HistoryStore records every `courses` run and the summary rows it produced.
type HistoryStore interface {
	// BeginRun creates a new summary run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalCourses int) error

	// RecordCourseSummary stores the summary row of one course for a run
	RecordCourseSummary(runID int64, code string, semesters int, row schema.SummaryRow) error

	// GetCourseHistory returns every recorded summary of a course, oldest first
	GetCourseHistory(code string) ([]schema.CourseSummaryRecord, error)

	// GetAllRuns returns all recorded runs
	GetAllRuns() ([]schema.SummaryRunRecord, error)

	// GetAllCourseSummaries returns all recorded course summaries
	GetAllCourseSummaries() ([]schema.CourseSummaryRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}

// SurveyClient is the subset of the survey API used by the download command.
// It allows the download flow to be tested against an in-memory fake.
type SurveyClient interface {
	// ListForms returns the forms visible to the authenticated client.
	ListForms(ctx context.Context) ([]schema.Form, error)

	// CountInvitations returns how many people were invited to a form.
	CountInvitations(ctx context.Context, formID int64) (int, error)

	// CSVReport returns the raw semicolon-separated answer export of a form.
	CSVReport(ctx context.Context, formID int64) ([]byte, error)
}
