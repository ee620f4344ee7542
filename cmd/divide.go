package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// divideCmd splits the courses of a semester between members.
var divideCmd = &cobra.Command{
	Use:   "divide <semester> <members>",
	Short: "Split the courses of a semester evenly by answer count.",
	Long: `Assign every course with more than four answers to one member so each member
gets about the same number of answers to read.

Members are either a count or a comma-separated list of names.

Examples:
  fuikk divide H2020 4
  fuikk divide H2020 "Ada,Brian,Grace"`,
	Args:    cobra.ExactArgs(2),
	PreRunE: setupWith(divideArgs),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDivide(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot divide courses", err)
		}
	},
}
