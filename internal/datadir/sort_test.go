package datadir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorterClassify(t *testing.T) {
	s, err := NewSorter("in", "data", "", false, 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		target string
		action SortAction
	}{
		{"csv report", "in/INF1000 H2020 report.csv", filepath.Join("data", "H2020", "downloads", "csv", "INF1000.csv"), SortCopied},
		{"participation json", "in/INF-MAT1100 V2021.json", filepath.Join("data", "V2021", "downloads", "participation", "INF-MAT1100.json"), SortCopied},
		{"suffix kept", "in/IN1000MAT_H2019.csv", filepath.Join("data", "H2019", "downloads", "csv", "IN1000MAT.csv"), SortCopied},
		{"semester directory", "in/H2020/INF1000.csv", filepath.Join("data", "H2020", "downloads", "csv", "INF1000.csv"), SortCopied},
		{"semester before code", "in/H2020 INF1001.json", filepath.Join("data", "H2020", "downloads", "participation", "INF1001.json"), SortCopied},
		{"only semester", "in/H2020/report.csv", "", SortSkipped},
		{"excluded", "in/testskjema H2020 INF1000.csv", "", SortExcluded},
		{"placeholder", "in/XXX H2020.csv", "", SortExcluded},
		{"no semester", "in/INF1000.csv", "", SortSkipped},
		{"no course", "in/summary.csv", "", SortSkipped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, action, _ := s.Classify(tt.path)
			assert.Equal(t, tt.target, target)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestNewSorter_InvalidExclude(t *testing.T) {
	_, err := NewSorter("in", "out", "(", false, 1)
	assert.Error(t, err)
}

func TestSorterRun(t *testing.T) {
	t.Run("copy", func(t *testing.T) {
		in := filepath.Join(t.TempDir(), "downloads")
		out := t.TempDir()
		writeFile(t, filepath.Join(in, "a", "INF1000 H2020.csv"), "Q1\nA\n")
		writeFile(t, filepath.Join(in, "INF1000 H2020.json"), `{"answered": 1}`)
		writeFile(t, filepath.Join(in, "notes.txt"), "x")

		s, err := NewSorter(in, out, "", false, 4)
		require.NoError(t, err)
		results, err := s.Run()
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.FileExists(t, filepath.Join(out, "H2020", "downloads", "csv", "INF1000.csv"))
		assert.FileExists(t, filepath.Join(out, "H2020", "downloads", "participation", "INF1000.json"))
		assert.FileExists(t, filepath.Join(in, "a", "INF1000 H2020.csv"), "copy keeps the source")
	})

	t.Run("move prunes empty dirs", func(t *testing.T) {
		in := filepath.Join(t.TempDir(), "downloads")
		out := t.TempDir()
		writeFile(t, filepath.Join(in, "x", "y", "MAT1100 V2021.csv"), "Q1\n")

		s, err := NewSorter(in, out, "", true, 2)
		require.NoError(t, err)
		results, err := s.Run()
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, SortMoved, results[0].Action)

		assert.FileExists(t, filepath.Join(out, "V2021", "downloads", "csv", "MAT1100.csv"))
		_, err = os.Stat(in)
		assert.True(t, os.IsNotExist(err), "empty input tree should be removed")
	})
}
