package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fuikk/fuikk/core/agg"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetCoursesResults combines every semester, aggregates with course replacements,
// summarizes, and writes courses.json, aggregated_courses.json and summary_report.json.
// When a history store is configured the run and its summary rows are recorded.
func GetCoursesResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CoursesRunResult, error) {
	result := schema.CoursesRunResult{Started: time.Now(), Resolve: string(cfg.ResolveMode)}
	layout := datadir.NewLayout(cfg.DataDir)

	semesters, err := layout.Semesters()
	if err != nil {
		return result, err
	}
	perSemester, err := loadSemesterCourses(ctx, layout, semesters, cfg.Workers)
	if err != nil {
		return result, err
	}
	for _, sem := range semesters {
		if _, ok := perSemester[sem]; ok {
			result.Semesters = append(result.Semesters, sem)
		}
	}

	combined := agg.CombineSemesters(semesters, perSemester)
	if err := datadir.WriteJSON(layout.CombinedPath(), combined); err != nil {
		return result, fmt.Errorf("failed to write combined courses: %w", err)
	}

	info, err := datadir.LoadCourseInfo(cfg.CoursesInfo)
	if err != nil {
		return result, err
	}
	resolver := agg.NewResolver(cfg.ResolveMode, info.Graph())

	aggregated := agg.Aggregate(combined, resolver)
	if err := datadir.WriteJSON(layout.AggregatedPath(), aggregated); err != nil {
		return result, fmt.Errorf("failed to write aggregated courses: %w", err)
	}

	report := agg.Summarize(aggregated)
	if err := datadir.WriteJSON(layout.SummaryPath(), report); err != nil {
		return result, fmt.Errorf("failed to write summary report: %w", err)
	}

	result.Courses = aggregated.Len()
	for course := aggregated.Oldest(); course != nil; course = course.Next() {
		result.Entries += agg.CountEntries(aggregated, course.Key)
	}
	result.Summaries = report.Len()
	result.RunID = recordHistory(ctx, cfg, mgr, result.Started, aggregated, report)
	return result, nil
}

// loadSemesterCourses reads every semester's courses.json concurrently.
// Semesters without the file are skipped; any other read error fails the load.
func loadSemesterCourses(ctx context.Context, layout datadir.Layout, semesters []string, workers int) (map[string]*schema.SemesterCourses, error) {
	var mu sync.Mutex
	perSemester := make(map[string]*schema.SemesterCourses, len(semesters))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, sem := range semesters {
		g.Go(func() error {
			courses, err := datadir.LoadSemesterCourses(layout.SemesterCoursesPath(sem))
			if errors.Is(err, os.ErrNotExist) {
				contract.Logger().Info("semester has no courses.json", zap.String("semester", sem))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load courses for %s: %w", sem, err)
			}
			mu.Lock()
			perSemester[sem] = courses
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perSemester, nil
}

// recordHistory stores the run and its summary rows. Failures are warnings, never fatal.
func recordHistory(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, start time.Time, aggregated *schema.CourseData, report *schema.SummaryReport) int64 {
	if mgr == nil {
		return 0
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return 0
	}

	runID, err := store.BeginRun(start, cfg.Params())
	if err != nil {
		contract.LogWarn("Summary history initialization failed", err)
		return 0
	}
	ctx = withRunID(ctx, runID)

	recorded := 0
	for row := report.Oldest(); row != nil; row = row.Next() {
		if err := recordCourseSummary(ctx, store, aggregated, row.Key, row.Value); err != nil {
			contract.LogWarn(fmt.Sprintf("Summary history failed for %s", row.Key), err)
			continue
		}
		recorded++
	}

	if err := store.EndRun(runID, time.Now(), recorded); err != nil {
		contract.LogWarn("Failed to finalize summary history", err)
	}
	return runID
}

// recordCourseSummary stores one course's row under the run in ctx.
func recordCourseSummary(ctx context.Context, store contract.HistoryStore, aggregated *schema.CourseData, code string, row schema.SummaryRow) error {
	runID, ok := getRunID(ctx)
	if !ok {
		return errors.New("no run in progress")
	}
	semesters := 0
	if entries, ok := aggregated.Get(code); ok && entries != nil {
		semesters = entries.Len()
	}
	return store.RecordCourseSummary(runID, code, semesters, row)
}
