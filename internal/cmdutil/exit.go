// internal/cmdutil/exit.go
package cmdutil

import (
	"context"
	"errors"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/template"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitHits     = 1 // exhausted with hits left, or scan found hits
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// ExitCode maps a fatal error to an exit status. Malformed inputs are usage
// errors; scorer and I/O failures are runtime errors.
func ExitCode(err error) int {
	var (
		pe *template.TemplateParseError
		le *motif.LoadError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &pe), errors.As(err, &le):
		return ExitUsage
	}
	return ExitRuntime
}
