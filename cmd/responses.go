package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// responsesCmd converts raw survey CSV exports into per-course answer files.
var responsesCmd = &cobra.Command{
	Use:   "responses [semester]",
	Short: "Convert survey CSV exports into per-course answer files.",
	Long: `Read the semicolon-separated answer exports under <data-dir>/<semester>/downloads/csv
and write one JSON answer file per course under <data-dir>/<semester>/outputs/responses.

Examples:
  # Convert every semester
  fuikk responses

  # Convert a single semester
  fuikk responses H2020`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(semesterArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteResponses(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot convert responses", err)
		}
	},
}
