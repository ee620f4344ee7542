// Package fixture writes a small evaluation data directory for tests.
package fixture

import (
	"path/filepath"
	"testing"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/require"
)

// GeneralEN is the English general assessment question used by the fixture.
const GeneralEN = "What is your general impression of the course?"

// Write lays out a two-semester data directory and returns a config pointing at it.
// INF1000 (H2019) is replaced by IN1000 (V2020), INF1001 had no answers.
func Write(t testing.TB) *contract.Config {
	t.Helper()
	root := t.TempDir()
	layout := datadir.NewLayout(filepath.Join(root, "data"))

	scales := schema.Scales{
		GeneralEN: {Order: []string{"Bad", "OK", "Good"}, Ignore: []string{"Not relevant"}},
	}
	write := func(path string, v any) {
		require.NoError(t, datadir.WriteJSON(path, v))
	}

	for _, sem := range []string{"H2019", "V2020"} {
		write(filepath.Join(layout.OutputsDir(sem), datadir.ScalesJSON), scales)
	}

	write(filepath.Join(layout.ResponsesDir("H2019"), "INF1000.json"), map[string][]string{
		GeneralEN: {"Good", "Good", "OK"},
	})
	write(filepath.Join(layout.ParticipationDir("H2019"), "INF1000.json"), schema.Participation{Started: 6, Answered: 5, Invited: 10})
	write(filepath.Join(layout.ResponsesDir("H2019"), "INF1001.json"), map[string][]string{GeneralEN: {}})
	write(filepath.Join(layout.ParticipationDir("H2019"), "INF1001.json"), schema.Participation{Invited: 8})

	write(filepath.Join(layout.ResponsesDir("V2020"), "IN1000.json"), map[string][]string{
		GeneralEN: {"OK", "OK"},
	})
	write(filepath.Join(layout.ParticipationDir("V2020"), "IN1000.json"), schema.Participation{Started: 2, Answered: 2, Invited: 4})

	successor := "IN1000"
	coursesInfo := filepath.Join(root, "courses_info.json")
	write(coursesInfo, schema.CourseInfo{
		"INF1000": {Name: "Grunnkurs i objektorientert programmering", ReplacementCode: &successor},
		"IN1000":  {Name: "Introduksjon til objektorientert programmering"},
	})
	courseNames := filepath.Join(root, "names.json")
	write(courseNames, map[string]string{
		"INF1000": "Intro to programming",
		"IN1000":  "Intro to object oriented programming",
	})

	return &contract.Config{
		DataDir:     layout.Root,
		CoursesInfo: coursesInfo,
		CourseNames: courseNames,
		Workers:     2,
		Precision:   2,
		ResultLimit: contract.DefaultResultLimit,
		ResolveMode: schema.SingleHopResolve,
		Output:      schema.TextOut,
	}
}
