package fasta

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NN nn
`

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestReadAllGzip(t *testing.T) {
	recs, err := ReadAll(context.Background(), writeGz(t, plain))
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "seq1" || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed, recs=%+v", recs)
	}
	if recs[0].Desc != "first record" || string(recs[0].Seq) != "ACGTacgt" || string(recs[1].Seq) != "NNnn" {
		t.Fatalf("bad records %+v", recs)
	}
}

func TestReadStdin(t *testing.T) {
	// Fake stdin by swapping os.Stdin
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadAll(context.Background(), "-")
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", len(recs))
	}
}

func TestReadBareSequence(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bare.txt")
	_ = os.WriteFile(p, []byte("ACGT\nTTAA\n"), 0o644)
	rec, err := ReadOne(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "" || string(rec.Seq) != "ACGTTTAA" {
		t.Fatalf("bad record %+v", rec)
	}
}

func TestReadOneRejectsMany(t *testing.T) {
	p := filepath.Join(t.TempDir(), "two.fa")
	_ = os.WriteFile(p, []byte(plain), 0o644)
	if _, err := ReadOne(context.Background(), p); err == nil {
		t.Fatal("two records accepted")
	}
	if _, err := ReadOne(context.Background(), filepath.Join(t.TempDir(), "none.fa")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := ReadCtx(ctx, strings.NewReader(plain), func(Record) error { n++; return nil })
	if err == nil || n != 0 {
		t.Fatalf("expected cancellation with no records, got %d records err=%v", n, err)
	}
}

func TestWriteWraps(t *testing.T) {
	var b bytes.Buffer
	if err := Write(&b, Record{ID: "x", Desc: "state=converged", Seq: []byte("ACGTACGTAC")}, 4); err != nil {
		t.Fatal(err)
	}
	want := ">x state=converged\nACGT\nACGT\nAC\n"
	if b.String() != want {
		t.Fatalf("got %q", b.String())
	}
}

func TestOpenGzipStdin(t *testing.T) {
	var zb bytes.Buffer
	gw := gzip.NewWriter(&zb)
	_, _ = gw.Write([]byte(plain))
	_ = gw.Close()

	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		_, _ = w.Write(zb.Bytes())
		_ = w.Close()
	}()

	rc, err := Open("-")
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != plain {
		t.Fatalf("got %q", b)
	}
	if err := rc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "none.fa")); !os.IsNotExist(err) {
		t.Fatalf("want not-exist, got %v", err)
	}
}
