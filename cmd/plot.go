package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// plotCmd draws the general assessment of one course over time.
var plotCmd = &cobra.Command{
	Use:   "plot <course>",
	Short: "Plot the general assessment of a course across semesters.",
	Long: `Draw a terminal chart of the general-question average of one course for every
semester it was evaluated, including the codes it replaced.

Examples:
  fuikk plot IN1000
  fuikk plot IN1000 --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(courseArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePlot(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot plot course", err)
		}
	},
}
