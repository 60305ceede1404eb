// internal/output/csv.go
package output

import (
	"fmt"
	"io"

	"github.com/levantapatin/siteout/pkg/api"
)

// WriteCSV writes hits in the InSite layout: a comment header naming the
// sequence, then one binding_site row per hit with a 1-based start, the
// motif width, the motif id and the score.
func WriteCSV(w io.Writer, r api.ReportV1) error {
	if _, err := fmt.Fprintf(w, "#NAME: %s\n#START: 0\n#LENGTH: %d\n%s\n", r.Name, r.Length, CSVClassHeader); err != nil {
		return err
	}
	for _, h := range r.Hits {
		if _, err := fmt.Fprintf(w, "binding_site,%d,%d,%s,%.2f\n", h.Start+1, h.End-h.Start, h.MotifID, h.Score); err != nil {
			return err
		}
	}
	return nil
}
