// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA sequence.
type Record struct {
	ID   string
	Desc string // header text after the ID
	Seq  []byte
}

// ReadCtx parses FASTA from r and calls emit once per record. Whitespace
// inside sequence lines is dropped; case is kept. Sequence lines before the
// first header form a record with an empty ID, so a bare sequence file reads
// as one record. Cancellation is checked between lines.
func ReadCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		cur     Record
		started bool
	)
	flush := func() error {
		if !started && len(cur.Seq) == 0 {
			return nil
		}
		return emit(cur)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur = Record{}
			cur.ID, cur.Desc = parseHeader(line[1:])
			started = true
			continue
		}
		for _, b := range line {
			if b != ' ' && b != '\t' && b != '\r' {
				cur.Seq = append(cur.Seq, b)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
