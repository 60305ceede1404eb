// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Buffered writers are pooled across calls; the encoder is rebuilt per call
// because it is bound to its writer.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Write encodes each value as one JSON line, HTML escaping off. conv maps a value to its wire
// form; nil conv encodes the value as is.
func Write[T any](out io.Writer, vs []T, conv func(T) any) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, v := range vs {
		var wire any = v
		if conv != nil {
			wire = conv(v)
		}
		if err := enc.Encode(wire); err != nil {
			return err
		}
	}
	return bw.Flush()
}
