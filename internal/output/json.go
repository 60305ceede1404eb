// internal/output/json.go
package output

import (
	"io"

	"github.com/levantapatin/siteout/internal/jsonutil"
	"github.com/levantapatin/siteout/pkg/api"
)

// WriteJSON writes the v1 report (pretty-indented).
func WriteJSON(w io.Writer, r api.ReportV1) error {
	if r.Hits == nil {
		r.Hits = []api.HitV1{}
	}
	return jsonutil.EncodePretty(w, r)
}
