package datadir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponsesCSV(t *testing.T) {
	input := "\ufeffQ1;Q2\n" +
		"Good;Yes\n" +
		"Bad;No;extra\n" +
		"\"Very; good\";\n"

	responses, skipped, err := ParseResponsesCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, skipped)

	q1, ok := responses.Get("Q1")
	require.True(t, ok)
	assert.Equal(t, []string{"Good", "Very; good"}, q1)

	q2, ok := responses.Get("Q2")
	require.True(t, ok)
	assert.Equal(t, []string{"Yes", ""}, q2)
	assert.Equal(t, "Q1", responses.Oldest().Key)
}

func TestParseResponsesCSV_Empty(t *testing.T) {
	responses, skipped, err := ParseResponsesCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 0, responses.Len())

	data, err := responses.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestParseResponsesCSV_HeaderOnly(t *testing.T) {
	responses, _, err := ParseResponsesCSV(strings.NewReader("Q1;Q2\n"))
	require.NoError(t, err)

	data, err := responses.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q1": [], "Q2": []}`, string(data))
}

func TestConvertResponses(t *testing.T) {
	root := t.TempDir()
	layout := NewLayout(root)
	writeFile(t, filepath.Join(layout.CSVDir("H2020"), "INF1000.csv"), "Q1;Q2\nA;B\n")
	writeFile(t, filepath.Join(layout.CSVDir("H2020"), "INF1010.csv"), "")

	n, err := ConvertResponses(layout, "H2020")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	raw, err := LoadRawAnswers(filepath.Join(layout.ResponsesDir("H2020"), "INF1000.json"))
	require.NoError(t, err)
	q2, _ := raw.Get("Q2")
	assert.Equal(t, []string{"B"}, q2)

	data, err := os.ReadFile(filepath.Join(layout.ResponsesDir("H2020"), "INF1010.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestConvertResponses_MissingInput(t *testing.T) {
	_, err := ConvertResponses(NewLayout(t.TempDir()), "H2020")
	assert.ErrorContains(t, err, "invalid input path")
}
