// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Infof prints a progress line when verbose is on.
func Infof(dst io.Writer, verbose bool, format string, a ...any) {
	if !verbose {
		return
	}
	_, _ = fmt.Fprintf(dst, "INFO: "+format+"\n", a...)
}
