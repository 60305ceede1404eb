// core/fasta/writer.go
package fasta

import (
	"bufio"
	"io"
)

// LineWidth is the default wrap width of Write.
const LineWidth = 60

// Write emits rec as FASTA wrapped at width (<= 0 means one line).
func Write(w io.Writer, rec Record, width int) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('>')
	bw.WriteString(rec.ID)
	if rec.Desc != "" {
		bw.WriteByte(' ')
		bw.WriteString(rec.Desc)
	}
	bw.WriteByte('\n')
	if width <= 0 {
		width = len(rec.Seq)
	}
	for off := 0; off < len(rec.Seq); off += width {
		end := off + width
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		bw.Write(rec.Seq[off:end])
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
