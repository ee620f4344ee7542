package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/fuikk/fuikk/core/agg"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
)

// GetSummaryResults returns the summary rows to display.
//
// By default the rows come from summary_report.json. With cfg.Resolved the
// report is rebuilt from courses.json so that every entry is counted once,
// under its resolved code only. Rows with fewer than cfg.MinResponses
// responses are dropped, the rest are ranked by RankSummaries and at most
// cfg.ResultLimit rows are returned.
func GetSummaryResults(_ context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.CourseSummary, error) {
	report, err := loadReport(cfg)
	if err != nil {
		return nil, err
	}
	names, err := datadir.LoadCourseNames(cfg.CourseNames)
	if err != nil {
		return nil, fmt.Errorf("failed to load course names: %w", err)
	}

	rows := make([]schema.CourseSummary, 0, report.Len())
	for _, row := range schema.SummaryRows(report) {
		if row.TotalResponses < cfg.MinResponses {
			continue
		}
		row.Name = datadir.CourseName(names, row.Code)
		rows = append(rows, row)
	}
	return RankSummaries(rows, cfg.ResultLimit), nil
}

// loadReport reads or rebuilds the summary report depending on cfg.Resolved.
func loadReport(cfg *contract.Config) (*schema.SummaryReport, error) {
	layout := datadir.NewLayout(cfg.DataDir)
	if !cfg.Resolved {
		report, err := datadir.LoadSummaryReport(layout.SummaryPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load summary report (run `fuikk courses` first): %w", err)
		}
		return report, nil
	}

	combined, err := datadir.LoadCourseData(layout.CombinedPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load combined courses (run `fuikk courses` first): %w", err)
	}
	info, err := datadir.LoadCourseInfo(cfg.CoursesInfo)
	if err != nil {
		return nil, err
	}
	resolver := agg.NewResolver(cfg.ResolveMode, info.Graph())
	return agg.Summarize(agg.AggregateResolved(combined, resolver)), nil
}

// GetScoreResults computes the semester score of each selected semester.
// The overall score is only set when every semester was selected.
func GetScoreResults(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) (schema.ScoreResult, error) {
	layout := datadir.NewLayout(cfg.DataDir)
	semesters, err := layout.SelectSemesters(cfg.Semester)
	if err != nil {
		return schema.ScoreResult{}, err
	}
	perSemester, err := loadSemesterCourses(ctx, layout, semesters, cfg.Workers)
	if err != nil {
		return schema.ScoreResult{}, err
	}

	result := schema.ScoreResult{Scores: agg.Scores(perSemester)}
	if cfg.Semester == "" {
		if overall, ok := agg.OverallScore(result.Scores); ok {
			result.Overall = &overall
		}
	}
	return result, nil
}

// GetDivideResults splits the courses of cfg.Semester among cfg.Members.
func GetDivideResults(_ context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.DivideAssignment, error) {
	if cfg.Semester == "" {
		return nil, errors.New("divide needs a single semester")
	}
	if len(cfg.Members) == 0 {
		return nil, errors.New("divide needs at least one member")
	}
	layout := datadir.NewLayout(cfg.DataDir)
	courses, err := datadir.LoadSemesterCourses(layout.SemesterCoursesPath(cfg.Semester))
	if err != nil {
		return nil, fmt.Errorf("failed to load courses for %s: %w", cfg.Semester, err)
	}
	return agg.Divide(courses, cfg.Members), nil
}
