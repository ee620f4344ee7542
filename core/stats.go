package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fuikk/fuikk/core/stats"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
	"go.uber.org/zap"
)

// statsOutcome is the result of one course-semester unit.
type statsOutcome struct {
	code   string
	stats  *schema.CourseSemesterStats
	cached bool
	err    error
}

// GetStatsResults runs the stats generator over every course of the selected semesters.
// A semester without scales or responses is logged and reported with zero courses.
func GetStatsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.StatsSemesterResult, error) {
	layout := datadir.NewLayout(cfg.DataDir)
	semesters, err := layout.SelectSemesters(cfg.Semester)
	if err != nil {
		return nil, err
	}
	names, err := datadir.LoadCourseNames(cfg.CourseNames)
	if err != nil {
		return nil, fmt.Errorf("failed to load course names: %w", err)
	}

	ctx = contextWithCacheManager(ctx, mgr)
	gen := stats.NewGenerator(stats.HeuristicDetector{})

	results := make([]schema.StatsSemesterResult, 0, len(semesters))
	for _, semester := range semesters {
		result, err := generateSemester(withSemester(ctx, semester), cfg, layout, gen, names)
		if err != nil {
			contract.Logger().Warn("skipping semester", zap.String("semester", semester), zap.Error(err))
		}
		results = append(results, result)
	}
	return results, nil
}

// generateSemester computes, writes and combines the stats of one semester.
func generateSemester(ctx context.Context, cfg *contract.Config, layout datadir.Layout, gen *stats.Generator, names map[string]string) (schema.StatsSemesterResult, error) {
	semester := semesterFromContext(ctx)
	result := schema.StatsSemesterResult{Semester: semester}

	scales, err := datadir.LoadScales(layout.OutputsDir(semester))
	if err != nil {
		return result, err
	}
	codes, err := datadir.CourseCodes(layout.ResponsesDir(semester), ".json")
	if err != nil {
		return result, fmt.Errorf("failed to list responses: %w", err)
	}
	result.Courses = len(codes)

	outcomes := analyzeSemester(ctx, cfg.Workers, layout, gen, names, scales, codes)

	courses := schema.NewSemesterCourses()
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			result.Failed++
			contract.Logger().Warn("skipping course",
				zap.String("semester", semester),
				zap.String("course", o.code),
				zap.Error(o.err))
			continue
		case o.stats == nil || o.stats.Lang() == schema.UnknownLanguage:
			result.Skipped++
			contract.Logger().Info("no stats written",
				zap.String("semester", semester),
				zap.String("course", o.code))
			continue
		}
		if o.cached {
			result.Cached++
		}
		path := filepath.Join(layout.StatsDir(semester), o.code+".json")
		if err := datadir.WriteJSON(path, o.stats); err != nil {
			result.Failed++
			contract.Logger().Warn("failed to write stats", zap.String("path", path), zap.Error(err))
			continue
		}
		courses.Set(o.code, *o.stats)
		result.Generated++
	}

	if err := datadir.WriteJSON(layout.SemesterCoursesPath(semester), courses); err != nil {
		return result, fmt.Errorf("failed to write semester courses: %w", err)
	}
	return result, nil
}

// analyzeSemester processes all courses in parallel using a worker pool.
// Each worker writes only its own slot, so outcomes keep the order of codes.
func analyzeSemester(ctx context.Context, workers int, layout datadir.Layout, gen *stats.Generator, names map[string]string, scales schema.Scales, codes []string) []statsOutcome {
	semester := semesterFromContext(ctx)
	outcomes := make([]statsOutcome, len(codes))
	indexCh := make(chan int, len(codes))
	var wg sync.WaitGroup

	for range max(workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				outcomes[i] = analyzeCourse(ctx, layout, gen, semester, codes[i], datadir.CourseName(names, codes[i]), scales)
			}
		})
	}

	for i := range codes {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return outcomes
}

// analyzeCourse loads the inputs of one course and generates its stats.
func analyzeCourse(ctx context.Context, layout datadir.Layout, gen *stats.Generator, semester, code, name string, scales schema.Scales) statsOutcome {
	outcome := statsOutcome{code: code}
	if err := ctx.Err(); err != nil {
		outcome.err = err
		return outcome
	}

	raw, err := datadir.LoadRawAnswers(filepath.Join(layout.ResponsesDir(semester), code+".json"))
	if err != nil {
		outcome.err = err
		return outcome
	}
	participation, err := datadir.LoadParticipation(filepath.Join(layout.ParticipationDir(semester), code+".json"))
	if err != nil {
		outcome.err = err
		return outcome
	}

	in := statsInput{
		course:        schema.Course{Code: code, Name: name, Semester: semester},
		raw:           raw,
		participation: participation,
		scales:        scales,
	}
	outcome.stats, outcome.cached = cachedGenerate(ctx, gen, in)
	return outcome
}
