package cmd

import (
	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/spf13/cobra"
)

// downloadCmd fetches forms and reports from the survey API.
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download forms, participation and answer reports from the survey API.",
	Long: `Authenticate with OAuth2 client credentials and download every form visible to
the client. Forms already listed in downloaded.txt are skipped, so an interrupted
run resumes where it stopped.

Credentials are read from the config file, FUIKK_API_CLIENT_ID and
FUIKK_API_CLIENT_SECRET, or API_CLIENT_ID and API_SECRET in a .env file.

Examples:
  fuikk download --filter "H2020"
  fuikk download --csv=false`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDownload(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot download forms", err)
		}
	},
}
