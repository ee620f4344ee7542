package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd generates per-course statistics for one or all semesters.
var statsCmd = &cobra.Command{
	Use:   "stats [semester]",
	Short: "Generate per-course statistics from answers and participation.",
	Long: `Generate the statistics of every course in a semester: answer counts and
percentages per option, question averages on the normalized scale and participation.

Results are written under <data-dir>/<semester>/outputs/stats and collected in
<data-dir>/<semester>/outputs/courses.json. Generated stats are cached in the
configured cache backend keyed by their inputs.

Examples:
  # Generate every semester
  fuikk stats

  # Regenerate one semester without the cache
  fuikk stats V2021 --cache-backend none`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(semesterArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot generate stats", err)
		}
	},
}
