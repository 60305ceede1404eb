// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"github.com/levantapatin/siteout/internal/output"
	"github.com/levantapatin/siteout/pkg/api"
)

// ReportWriter renders one report.
type ReportWriter func(w io.Writer, r api.ReportV1) error

// Report writers (format → handler).
var ReportWriters = map[string]ReportWriter{}

// RegisterReport adds or replaces a format (last wins).
func RegisterReport(format string, fn ReportWriter) { ReportWriters[format] = fn }

func init() {
	RegisterReport(output.FormatText, output.WriteText)
	RegisterReport(output.FormatJSON, output.WriteJSON)
	RegisterReport(output.FormatJSONL, output.WriteJSONL)
	RegisterReport(output.FormatFASTA, output.WriteFASTA)
	RegisterReport(output.FormatCSV, output.WriteCSV)
	RegisterReport(output.FormatPretty, output.WritePretty)
}

// Has reports whether format has a writer.
func Has(format string) bool {
	_, ok := ReportWriters[format]
	return ok
}

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(ReportWriters))
	for f := range ReportWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteReport dispatches to the writer registered for format.
func WriteReport(format string, w io.Writer, r api.ReportV1) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r)
}
