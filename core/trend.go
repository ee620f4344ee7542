package core

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fuikk/fuikk/core/stats"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
)

// ErrNoGeneralQuestion is returned when a course has no general-question data to plot.
var ErrNoGeneralQuestion = errors.New("no general question data")

// ErrCourseNotFound is returned when a course code has no aggregated entries.
var ErrCourseNotFound = errors.New("course not found")

// GetCourseTrend collects the general-question averages of cfg.Course from aggregated_courses.json.
//
// Every semester between the first and last one with entries is listed, so
// semesters without data show up as gaps. Scale labels come from the newest
// semester whose scales define the general question.
func GetCourseTrend(_ context.Context, cfg *contract.Config, _ contract.CacheManager) (schema.CourseTrend, error) {
	trend := schema.CourseTrend{Code: cfg.Course}
	if cfg.Course == "" {
		return trend, errors.New("no course code given")
	}

	layout := datadir.NewLayout(cfg.DataDir)
	aggregated, err := datadir.LoadCourseData(layout.AggregatedPath())
	if err != nil {
		return trend, fmt.Errorf("failed to load aggregated courses (run `fuikk courses` first): %w", err)
	}
	semesters, ok := aggregated.Get(cfg.Course)
	if !ok || semesters == nil || semesters.Len() == 0 {
		return trend, fmt.Errorf("%w: %s", ErrCourseNotFound, cfg.Course)
	}

	var codes []string
	for sem := semesters.Oldest(); sem != nil; sem = sem.Next() {
		codes = append(codes, sem.Key)
	}
	trend.Semesters = schema.FullSemesterRange(codes)

	for _, sem := range trend.Semesters {
		entries, _ := semesters.Get(sem)
		for i := range entries {
			entry := &entries[i]
			question, ok := entry.GeneralQuestion()
			if !ok {
				continue
			}
			if trend.Question == "" {
				trend.Question = question
			}
			q, _ := entry.Question(question)
			trend.Points = append(trend.Points, schema.CoursePoint{
				Semester: sem,
				Code:     entry.Course.Code,
				Average:  q.Average,
			})
			if entry.Course.Code == cfg.Course || trend.Latest == nil {
				respondents := entry.Respondents
				trend.Latest = &respondents
			}
		}
	}
	if len(trend.Points) == 0 {
		return trend, fmt.Errorf("%w for %s", ErrNoGeneralQuestion, cfg.Course)
	}

	trend.Language = stats.HeuristicDetector{}.Detect(trend.Question)
	labels, err := findScaleLabels(layout, trend.Semesters, trend.Question)
	if err != nil {
		return trend, err
	}
	trend.Labels = labels

	names, err := datadir.LoadCourseNames(cfg.CourseNames)
	if err != nil {
		return trend, fmt.Errorf("failed to load course names: %w", err)
	}
	trend.Name = datadir.CourseName(names, cfg.Course)
	return trend, nil
}

// findScaleLabels returns the reversed scale order of question from the newest semester that defines it.
func findScaleLabels(layout datadir.Layout, semesters []string, question string) ([]string, error) {
	for _, sem := range slices.Backward(semesters) {
		scales, err := datadir.LoadScales(layout.OutputsDir(sem))
		if err != nil {
			continue
		}
		scale, ok := scales[question]
		if !ok {
			continue
		}
		labels := slices.Clone(scale.Order)
		slices.Reverse(labels)
		return labels, nil
	}
	return nil, fmt.Errorf("no scale defines %q", question)
}
