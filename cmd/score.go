package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd prints the mean question average of each semester.
var scoreCmd = &cobra.Command{
	Use:   "score [semester]",
	Short: "Show the mean of all question averages per semester.",
	Long: `Average every numeric question average of every course in a semester.
Without a semester, all semesters are listed along with their overall mean.

Examples:
  fuikk score
  fuikk score H2020`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(semesterArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute scores", err)
		}
	},
}
