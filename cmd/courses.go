package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// coursesCmd combines, aggregates and summarizes every semester.
var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Combine semesters, follow replaced course codes and write the summary report.",
	Long: `Combine the per-semester course files, fold superseded course codes into their
successors using courses_info.json, and write courses.json,
aggregated_courses.json and summary_report.json under the data directory.

When a history backend is configured, every run and its summary rows are recorded.

Examples:
  fuikk courses
  fuikk courses --resolve-mode transitive --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCourses(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot aggregate courses", err)
		}
	},
}
