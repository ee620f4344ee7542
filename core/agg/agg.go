// Package agg has cross-semester aggregation and summary logic for course stats.
package agg

import (
	"github.com/fuikk/fuikk/schema"
)

// Aggregate merges per-semester course data and folds superseded codes into their successors.
//
// Every code is first copied verbatim under its own key. Each code whose
// resolved target differs then has its entries appended to the target's
// semester lists as well, so superseded data appears under both codes.
func Aggregate(data *schema.CourseData, r Resolver) *schema.CourseData {
	out := schema.NewCourseData()
	if data == nil {
		return out
	}

	for course := data.Oldest(); course != nil; course = course.Next() {
		appendSemesters(out, course.Key, course.Value)
	}

	for course := data.Oldest(); course != nil; course = course.Next() {
		target := r.Resolve(course.Key)
		if target == course.Key {
			continue
		}
		appendSemesters(out, target, course.Value)
	}

	return out
}

// AggregateResolved places every code's entries only under its resolved target.
// Superseded codes do not appear as keys, so totals over the result count each entry once.
func AggregateResolved(data *schema.CourseData, r Resolver) *schema.CourseData {
	out := schema.NewCourseData()
	if data == nil {
		return out
	}
	for course := data.Oldest(); course != nil; course = course.Next() {
		appendSemesters(out, r.Resolve(course.Key), course.Value)
	}
	return out
}

// appendSemesters appends entries semester by semester onto out[code], creating keys as needed.
func appendSemesters(out *schema.CourseData, code string, semesters *schema.SemesterEntries) {
	target, ok := out.Get(code)
	if !ok {
		target = schema.NewSemesterEntries()
		out.Set(code, target)
	}
	if semesters == nil {
		return
	}
	for sem := semesters.Oldest(); sem != nil; sem = sem.Next() {
		existing, _ := target.Get(sem.Key)
		merged := make([]schema.CourseSemesterStats, 0, len(existing)+len(sem.Value))
		merged = append(merged, existing...)
		merged = append(merged, sem.Value...)
		target.Set(sem.Key, merged)
	}
}

// CombineSemesters builds CourseData from per-semester course maps, in semester order.
func CombineSemesters(semesters []string, perSemester map[string]*schema.SemesterCourses) *schema.CourseData {
	out := schema.NewCourseData()
	for _, sem := range semesters {
		courses, ok := perSemester[sem]
		if !ok || courses == nil {
			continue
		}
		for course := courses.Oldest(); course != nil; course = course.Next() {
			entries, ok := out.Get(course.Key)
			if !ok {
				entries = schema.NewSemesterEntries()
				out.Set(course.Key, entries)
			}
			existing, _ := entries.Get(sem)
			entries.Set(sem, append(existing, course.Value))
		}
	}
	return out
}

// CountEntries returns the number of stats entries stored under one code.
func CountEntries(data *schema.CourseData, code string) int {
	semesters, ok := data.Get(code)
	if !ok || semesters == nil {
		return 0
	}
	n := 0
	for sem := semesters.Oldest(); sem != nil; sem = sem.Next() {
		n += len(sem.Value)
	}
	return n
}
