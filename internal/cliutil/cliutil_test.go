package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "bcd_fly.fm")
	b := filepath.Join(dir, "hb_fly.fm")
	_ = os.WriteFile(a, []byte("1 0 0 0\n"), 0o644)
	_ = os.WriteFile(b, []byte("1 0 0 0\n"), 0o644)
	got, err := ExpandPaths([]string{filepath.Join(dir, "*.fm"), "-", "plain.zip"})
	if err != nil || len(got) != 4 || got[2] != "-" || got[3] != "plain.zip" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if _, err := ExpandPaths([]string{filepath.Join(dir, "*.none")}); err == nil {
		t.Fatal("empty glob accepted")
	}
}

func TestExpandPathsDedupes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "bcd_fly.fm")
	_ = os.WriteFile(a, []byte("1 0 0 0\n"), 0o644)
	got, err := ExpandPaths([]string{filepath.Join(dir, "*.fm"), a, dir + "/./bcd_fly.fm"})
	if err != nil || len(got) != 1 || got[0] != a {
		t.Fatalf("dedupe: err=%v got=%v", err, got)
	}
}
