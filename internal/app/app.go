// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/levantapatin/siteout/internal/appcore"
	"github.com/levantapatin/siteout/internal/cli"
	"github.com/levantapatin/siteout/internal/cmdutil"
	"github.com/levantapatin/siteout/internal/config"
)

// RunContext parses argv, runs the chosen subcommand and returns its exit
// status. With no arguments it prints help.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := cmdutil.ExitOK
	root := cli.NewRoot(func(ctx context.Context, mode cli.Mode, cfg config.Config) error {
		code = appcore.Run(ctx, stdout, stderr, mode, cfg)
		return nil
	})
	cli.SetIO(root, stdout, stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	root.SetArgs(argv)

	if err := root.ExecuteContext(parent); err != nil {
		if errors.Is(err, context.Canceled) {
			return cmdutil.ExitCanceled
		}
		// cobra reports unknown subcommands and argument counts as plain
		// errors, so everything reaching here is a usage problem
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return cmdutil.ExitUsage
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
