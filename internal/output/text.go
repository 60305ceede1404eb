// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/levantapatin/siteout/internal/pretty"
	"github.com/levantapatin/siteout/pkg/api"
)

// WriteText prints the sequence, a summary block and the hit table.
func WriteText(w io.Writer, r api.ReportV1) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", r.Sequence); err != nil {
		return err
	}
	return writeSummary(w, r)
}

// WritePretty prints the ASCII map, then the summary and hit table.
func WritePretty(w io.Writer, r api.ReportV1) error {
	if _, err := fmt.Fprintf(w, "%s\n", pretty.RenderReport(r)); err != nil {
		return err
	}
	return writeSummary(w, r)
}

func writeSummary(w io.Writer, r api.ReportV1) error {
	rows := [][2]string{
		{"name", r.Name},
		{"mode", r.Mode},
		{"state", r.State},
		{"seed", strconv.FormatInt(r.Seed, 10)},
		{"rounds", strconv.Itoa(r.Rounds)},
		{"mutations", strconv.Itoa(r.Mutations)},
		{"length", strconv.Itoa(r.Length)},
		{"gc", fmt.Sprintf("%.3f", r.GC)},
		{"hits", strconv.Itoa(len(r.Hits))},
	}
	for _, kv := range rows {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", kv[0]+":", kv[1]); err != nil {
			return err
		}
	}
	if len(r.Hits) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", HitHeader); err != nil {
		return err
	}
	for _, h := range r.Hits {
		score := "-"
		if !h.Exact {
			score = fmt.Sprintf("%.2f", h.Score)
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\t%s\t%s\n",
			h.MotifID, h.Start, h.End, h.Strand, h.Exact, score, h.Site); err != nil {
			return err
		}
	}
	return nil
}
