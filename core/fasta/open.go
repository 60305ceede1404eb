// core/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *readCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type keepOpen struct{}

func (keepOpen) Close() error { return nil }

// Open returns a reader over path, "-" meaning stdin, which is never
// closed. Gzip is detected from the magic bytes rather than the name, so
// compressed input also works through a pipe.
func Open(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader = os.Stdin
		closer io.Closer = keepOpen{}
	)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}
	br := bufio.NewReaderSize(src, 64<<10)
	if sig, _ := br.Peek(2); len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &readCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	}
	return &readCloser{Reader: br, closers: []io.Closer{closer}}, nil
}
