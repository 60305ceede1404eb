// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"github.com/levantapatin/siteout/core/fasta"
	"github.com/levantapatin/siteout/pkg/api"
)

// WriteFASTA writes the sequence with the run summary in the header.
func WriteFASTA(w io.Writer, r api.ReportV1) error {
	desc := fmt.Sprintf("state=%s rounds=%d mutations=%d unresolved=%d seed=%d gc=%.3f",
		r.State, r.Rounds, r.Mutations, len(r.Hits), r.Seed, r.GC)
	return fasta.Write(w, fasta.Record{ID: r.Name, Desc: desc, Seq: []byte(r.Sequence)}, fasta.LineWidth)
}
