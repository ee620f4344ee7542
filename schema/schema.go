// Package schema has models and constants for all parts of fuikk.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrMissingData is returned when a participation or response record is absent or malformed.
var ErrMissingData = errors.New("missing data")

// Average is a question average that may be the "None" sentinel.
// The zero value is the sentinel.
type Average struct {
	Value float64
	Valid bool
}

// NumericAverage wraps a computed average.
func NumericAverage(v float64) Average {
	return Average{Value: v, Valid: true}
}

// NoAverage is the sentinel for "no computable average".
var NoAverage = Average{}

// Float returns the numeric value, or 0 for the sentinel.
func (a Average) Float() float64 {
	if !a.Valid {
		return 0
	}
	return a.Value
}

// String renders the average like it is stored on disk.
func (a Average) String() string {
	if !a.Valid {
		return NoneSentinel
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// MarshalJSON encodes the sentinel as the string "None".
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(NoneSentinel)
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts numbers, numeric strings, "None" and null.
func (a *Average) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = NoAverage
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == NoneSentinel || s == "" {
			*a = NoAverage
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid average %q: %w", s, err)
		}
		*a = NumericAverage(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid average %s: %w", data, err)
	}
	*a = NumericAverage(v)
	return nil
}

// Participation holds respondent counts for one course in one semester.
type Participation struct {
	Started  int `json:"started"`
	Answered int `json:"answered"`
	Invited  int `json:"invited"`
}

// UnmarshalJSON requires started, answered and invited to be present.
// Values may be JSON numbers or numeric strings; extra keys are ignored.
func (p *Participation) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: participation is not an object: %v", ErrMissingData, err)
	}
	fields := []struct {
		key string
		dst *int
	}{
		{"started", &p.Started},
		{"answered", &p.Answered},
		{"invited", &p.Invited},
	}
	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok {
			return fmt.Errorf("%w: participation has no %q", ErrMissingData, f.key)
		}
		n, err := parseCount(value)
		if err != nil {
			return fmt.Errorf("%w: participation %q: %v", ErrMissingData, f.key, err)
		}
		*f.dst = n
	}
	return nil
}

// parseCount reads an integer that may have been written as a float or a string.
func parseCount(value json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(value, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", value)
	}
	return strconv.Atoi(s)
}

// QuestionStats is the per-question outcome of the stats generator.
type QuestionStats struct {
	Counts      map[string]int `json:"counts"`
	Average     Average        `json:"average"`
	AverageText string         `json:"average_text"`
}

// AllIgnored reports whether every answer to the question was ignored.
func (q QuestionStats) AllIgnored() bool {
	return !q.Average.Valid && q.AverageText == AllIgnoredText
}

// CountSum returns the number of matched answers.
func (q QuestionStats) CountSum() int {
	total := 0
	for _, c := range q.Counts {
		total += c
	}
	return total
}

// Course identifies one course offering.
type Course struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Semester string `json:"semester"`
}

// QuestionSet maps question text to its stats, in survey order.
type QuestionSet = orderedmap.OrderedMap[string, QuestionStats]

// NewQuestionSet returns an empty QuestionSet.
func NewQuestionSet() *QuestionSet {
	return orderedmap.New[string, QuestionStats]()
}

// CourseSemesterStats is the stats record for one course in one semester.
type CourseSemesterStats struct {
	Course           Course        `json:"course"`
	Respondents      Participation `json:"respondents"`
	AnswerPercentage float64       `json:"answer_percentage"`
	Language         *Language     `json:"language"`
	Questions        *QuestionSet  `json:"questions"`
}

// Lang returns the detected language or UnknownLanguage.
func (s *CourseSemesterStats) Lang() Language {
	if s.Language == nil {
		return UnknownLanguage
	}
	return *s.Language
}

// Question looks up the stats for one question.
func (s *CourseSemesterStats) Question(text string) (QuestionStats, bool) {
	if s.Questions == nil {
		return QuestionStats{}, false
	}
	return s.Questions.Get(text)
}

// GeneralQuestion returns the first general question variant present in the record.
func (s *CourseSemesterStats) GeneralQuestion() (string, bool) {
	for _, q := range GeneralQuestions {
		if _, ok := s.Question(q); ok {
			return q, true
		}
	}
	return "", false
}

// RawAnswerSet maps question text to raw answers, one per respondent.
type RawAnswerSet = orderedmap.OrderedMap[string, []string]

// NewRawAnswerSet returns an empty RawAnswerSet.
func NewRawAnswerSet() *RawAnswerSet {
	return orderedmap.New[string, []string]()
}

// AnswerScale is an ordered answer vocabulary plus an ignore list.
// Order is authored worst first, so the last label gets index 0 once reversed.
type AnswerScale struct {
	Order  []string `json:"order" toml:"order"`
	Ignore []string `json:"ignore" toml:"ignore"`
}

// Scales maps question text to its answer scale.
type Scales map[string]AnswerScale
