package datadir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fuikk/fuikk/schema"
)

// UnknownCourseName is used when a course code has no entry in the course names file.
const UnknownCourseName = "Unknown"

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadParticipation reads a participation file. Any missing or malformed
// file is reported as schema.ErrMissingData.
func LoadParticipation(path string) (schema.Participation, error) {
	var p schema.Participation
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("%w: %v", schema.ErrMissingData, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		if errors.Is(err, schema.ErrMissingData) {
			return p, fmt.Errorf("%s: %w", path, err)
		}
		return p, fmt.Errorf("%w: %s: %v", schema.ErrMissingData, path, err)
	}
	return p, nil
}

// LoadRawAnswers reads a converted responses file, keeping question order.
func LoadRawAnswers(path string) (*schema.RawAnswerSet, error) {
	raw := schema.NewRawAnswerSet()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrMissingData, err)
	}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrMissingData, path, err)
	}
	return raw, nil
}

// LoadCourseNames reads a code -> name map. A missing file yields an empty map.
func LoadCourseNames(path string) (map[string]string, error) {
	names := make(map[string]string)
	if err := ReadJSON(path, &names); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return names, nil
		}
		return nil, err
	}
	return names, nil
}

// CourseName looks up a course name, falling back to UnknownCourseName.
func CourseName(names map[string]string, code string) string {
	if name, ok := names[code]; ok && name != "" {
		return name
	}
	return UnknownCourseName
}

// LoadCourseInfo reads the course catalog used to build the replacement graph.
func LoadCourseInfo(path string) (schema.CourseInfo, error) {
	info := make(schema.CourseInfo)
	if err := ReadJSON(path, &info); err != nil {
		return nil, fmt.Errorf("failed to load course info: %w", err)
	}
	return info, nil
}

// LoadSemesterCourses reads data/<semester>/outputs/courses.json.
func LoadSemesterCourses(path string) (*schema.SemesterCourses, error) {
	courses := schema.NewSemesterCourses()
	if err := ReadJSON(path, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// LoadCourseData reads courses.json or aggregated_courses.json from the data root.
func LoadCourseData(path string) (*schema.CourseData, error) {
	data := schema.NewCourseData()
	if err := ReadJSON(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadSummaryReport reads summary_report.json.
func LoadSummaryReport(path string) (*schema.SummaryReport, error) {
	report := schema.NewSummaryReport()
	if err := ReadJSON(path, report); err != nil {
		return nil, err
	}
	return report, nil
}

// LoadStats reads one per-course stats file.
func LoadStats(path string) (schema.CourseSemesterStats, error) {
	var stats schema.CourseSemesterStats
	err := ReadJSON(path, &stats)
	return stats, err
}
