// Package datadir reads and writes the on-disk data tree of fuikk.
//
// The tree looks like this:
//
//	data/
//	  courses.json, aggregated_courses.json, summary_report.json
//	  <semester>/
//	    downloads/{csv,participation}/<code>.<ext>
//	    outputs/responses/<code>.json
//	    outputs/stats/<code>.json
//	    outputs/scales.{json,toml}
//	    outputs/courses.json
package datadir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fuikk/fuikk/schema"
)

// File names at the data root.
const (
	CombinedFile   = "courses.json"
	AggregatedFile = "aggregated_courses.json"
	SummaryFile    = "summary_report.json"
)

// Layout resolves paths inside a data directory.
type Layout struct {
	Root string
}

// NewLayout returns a Layout rooted at dir.
func NewLayout(dir string) Layout {
	return Layout{Root: filepath.Clean(dir)}
}

// SemesterDir returns data/<semester>.
func (l Layout) SemesterDir(semester string) string {
	return filepath.Join(l.Root, semester)
}

// CSVDir returns the directory holding raw CSV exports for a semester.
func (l Layout) CSVDir(semester string) string {
	return filepath.Join(l.Root, semester, "downloads", "csv")
}

// ParticipationDir returns the directory holding participation files for a semester.
func (l Layout) ParticipationDir(semester string) string {
	return filepath.Join(l.Root, semester, "downloads", "participation")
}

// ResponsesDir returns the directory holding converted responses for a semester.
func (l Layout) ResponsesDir(semester string) string {
	return filepath.Join(l.Root, semester, "outputs", "responses")
}

// StatsDir returns the directory holding per-course stats for a semester.
func (l Layout) StatsDir(semester string) string {
	return filepath.Join(l.Root, semester, "outputs", "stats")
}

// OutputsDir returns data/<semester>/outputs.
func (l Layout) OutputsDir(semester string) string {
	return filepath.Join(l.Root, semester, "outputs")
}

// SemesterCoursesPath returns the combined stats file of one semester.
func (l Layout) SemesterCoursesPath(semester string) string {
	return filepath.Join(l.OutputsDir(semester), "courses.json")
}

// CombinedPath returns data/courses.json.
func (l Layout) CombinedPath() string {
	return filepath.Join(l.Root, CombinedFile)
}

// AggregatedPath returns data/aggregated_courses.json.
func (l Layout) AggregatedPath() string {
	return filepath.Join(l.Root, AggregatedFile)
}

// SummaryPath returns data/summary_report.json.
func (l Layout) SummaryPath() string {
	return filepath.Join(l.Root, SummaryFile)
}

// Semesters lists the semester directories under the root in chronological order.
// Directories that are not semester codes are ignored.
func (l Layout) Semesters() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", l.Root, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && schema.IsSemester(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return schema.SortSemesters(names), nil
}

// SelectSemesters returns []string{semester} when set, or every semester under the root.
func (l Layout) SelectSemesters(semester string) ([]string, error) {
	if semester != "" {
		if _, err := os.Stat(l.SemesterDir(semester)); err != nil {
			return nil, fmt.Errorf("semester %s not found: %w", semester, err)
		}
		return []string{semester}, nil
	}
	return l.Semesters()
}

// CourseCodes lists <code> for every <code>.<ext> file in dir, sorted by name.
func CourseCodes(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var codes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext {
			continue
		}
		codes = append(codes, name[:len(name)-len(ext)])
	}
	return codes, nil
}
