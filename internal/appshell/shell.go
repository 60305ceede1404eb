// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/levantapatin/siteout/internal/cmdutil"
)

// Main runs run with a context cancelled on SIGINT/SIGTERM and exits with
// its status.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}

	stop()
	os.Exit(code)
}
