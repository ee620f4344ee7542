package outwriter

import (
	"os"

	"github.com/fuikk/fuikk/internal/contract"
	"golang.org/x/term"
)

// getMaxNameWidth calculates the maximum width for course names in table output
// based on terminal width and the fixed summary columns.
func getMaxNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank, Code, Responses, Invited, Rate, Rating and Label with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
