package core

import (
	"testing"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/fixture"
	"github.com/stretchr/testify/require"
)

const generalEN = fixture.GeneralEN

func writeFixture(t *testing.T) *contract.Config {
	t.Helper()
	return fixture.Write(t)
}

// runPipeline runs stats and courses over the fixture.
func runPipeline(t *testing.T, cfg *contract.Config) {
	t.Helper()
	_, err := GetStatsResults(t.Context(), cfg, nil)
	require.NoError(t, err)
	_, err = GetCoursesResults(t.Context(), cfg, nil)
	require.NoError(t, err)
}
