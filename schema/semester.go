package schema

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Semester season prefixes.
const (
	SpringPrefix = "V"
	FallPrefix   = "H"
)

// semesterPattern matches a full semester code such as V2019 or H2023.
var semesterPattern = regexp.MustCompile(`^(V|H)([0-9]{4})$`)

// Semester is a parsed semester code.
type Semester struct {
	Year   int
	Spring bool
}

// ParseSemester parses a code such as "V2020" (spring) or "H2020" (fall).
func ParseSemester(code string) (Semester, error) {
	m := semesterPattern.FindStringSubmatch(code)
	if m == nil {
		return Semester{}, fmt.Errorf("invalid semester code %q", code)
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return Semester{}, fmt.Errorf("invalid semester year %q: %w", m[2], err)
	}
	return Semester{Year: year, Spring: m[1] == SpringPrefix}, nil
}

// IsSemester reports whether code is a valid semester code.
func IsSemester(code string) bool {
	return semesterPattern.MatchString(code)
}

// Code renders the semester back into its code.
func (s Semester) Code() string {
	if s.Spring {
		return fmt.Sprintf("%s%d", SpringPrefix, s.Year)
	}
	return fmt.Sprintf("%s%d", FallPrefix, s.Year)
}

// Index orders semesters: spring before fall within a year.
func (s Semester) Index() int {
	if s.Spring {
		return s.Year * 2
	}
	return s.Year*2 + 1
}

// Next returns the following semester.
func (s Semester) Next() Semester {
	if s.Spring {
		return Semester{Year: s.Year, Spring: false}
	}
	return Semester{Year: s.Year + 1, Spring: true}
}

// Title returns the human readable semester name in the given language.
func (s Semester) Title(lang Language) string {
	if lang == Norwegian {
		if s.Spring {
			return fmt.Sprintf("Vår %d", s.Year)
		}
		return fmt.Sprintf("Høst %d", s.Year)
	}
	if s.Spring {
		return fmt.Sprintf("Spring %d", s.Year)
	}
	return fmt.Sprintf("Fall %d", s.Year)
}

// SortSemesters returns the valid semester codes in chronological order.
// Invalid codes are dropped.
func SortSemesters(codes []string) []string {
	parsed := make([]Semester, 0, len(codes))
	for _, c := range codes {
		s, err := ParseSemester(c)
		if err != nil {
			continue
		}
		parsed = append(parsed, s)
	}
	slices.SortStableFunc(parsed, func(a, b Semester) int {
		return a.Index() - b.Index()
	})
	out := make([]string, len(parsed))
	for i, s := range parsed {
		out[i] = s.Code()
	}
	return out
}

// FullSemesterRange returns every semester from the earliest to the latest valid code.
func FullSemesterRange(codes []string) []string {
	sorted := SortSemesters(codes)
	if len(sorted) == 0 {
		return nil
	}
	first, _ := ParseSemester(sorted[0])
	last, _ := ParseSemester(sorted[len(sorted)-1])
	var out []string
	for s := first; s.Index() <= last.Index(); s = s.Next() {
		out = append(out, s.Code())
	}
	return out
}
