// core/fasta/path.go
package fasta

import (
	"context"
	"fmt"
)

// ReadPathCtx opens path ("-" for stdin, gzip detected) and parses it.
func ReadPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return ReadCtx(ctx, rc, emit)
}

// ReadAll returns every record in path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := ReadPathCtx(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadOne returns the single record in path; more or fewer is an error.
func ReadOne(ctx context.Context, path string) (Record, error) {
	recs, err := ReadAll(ctx, path)
	if err != nil {
		return Record{}, err
	}
	switch len(recs) {
	case 1:
		return recs[0], nil
	case 0:
		return Record{}, fmt.Errorf("%s: no sequence", path)
	}
	return Record{}, fmt.Errorf("%s: %d records, want 1", path, len(recs))
}
