// Command fuikk turns course evaluation survey answers into statistics and reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fuikk/fuikk/cmd"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/iocache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd.SetContext(ctx)

	err := cmd.Execute()
	stop()
	iocache.CloseCaching()
	_ = contract.Logger().Sync()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
