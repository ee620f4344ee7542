package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints the summary report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show responses, response rate and general rating per course.",
	Long: `Print summary_report.json as a ranked table. Lower ratings are better.

Examples:
  # Courses with at least 20 responses
  fuikk summary --min-responses 20

  # Count replaced codes only under their successor
  fuikk summary --resolved

  # Export for a spreadsheet
  fuikk summary --output csv --output-file summary.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot print summary", err)
		}
	},
}
