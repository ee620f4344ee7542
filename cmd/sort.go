package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// sortCmd files downloaded reports into the data directory.
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "File downloaded reports into semester directories.",
	Long: `Walk the downloads directory and copy (or move with --delete) every report into
<data-dir>/<semester>/downloads/<kind>/<code>.<ext>, using the semester and course
code found in its path.

Files matching --exclude are skipped.

Examples:
  fuikk sort
  fuikk sort --downloads-dir ~/Downloads/evaluations --delete`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSort(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot sort downloads", err)
		}
	},
}
