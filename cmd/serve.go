package cmd

import (
	"github.com/fuikk/fuikk/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd exposes the reports over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve summaries, course trends and scores as JSON over HTTP.",
	Long: `Start an HTTP server with read-only JSON endpoints:

  GET /healthz
  GET /summary?min_responses=&limit=&resolved=
  GET /scores?semester=
  GET /courses/{code}
  GET /courses/{code}/history

Examples:
  fuikk serve --addr :9000`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return api.Serve(rootCtx, cfg, cacheManager)
	},
}
