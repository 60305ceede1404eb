// internal/output/jsonl.go
package output

import (
	"io"

	"github.com/levantapatin/siteout/internal/jsonlutil"
	"github.com/levantapatin/siteout/pkg/api"
)

// WriteJSONL writes one line per hit and nothing when there are none.
func WriteJSONL(w io.Writer, r api.ReportV1) error {
	return jsonlutil.Write(w, r.Hits, func(h api.HitV1) any {
		return api.HitLineV1{Name: r.Name, HitV1: h}
	})
}
