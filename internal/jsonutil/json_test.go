package jsonutil

import (
	"bytes"
	"testing"
)

func TestEncodePretty(t *testing.T) {
	var b bytes.Buffer
	if err := EncodePretty(&b, map[string]any{"name": "<p&q>", "n": 1}); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"n\": 1,\n  \"name\": \"<p&q>\"\n}\n"
	if b.String() != want {
		t.Fatalf("got %q", b.String())
	}
}
