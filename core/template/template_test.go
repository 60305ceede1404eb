package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/levantapatin/siteout/core/sampler"
	"github.com/levantapatin/siteout/core/span"
)

func build(t *testing.T, design string) *Template {
	t.Helper()
	specs, err := ParseDesign(strings.NewReader(design), 0.5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tm, err := New(specs, sampler.New(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return tm
}

func TestAssembleScenario(t *testing.T) {
	tm := build(t, `["ATGCGT", 10, "TTTAAA"]`)
	seq := tm.Render()
	if len(seq) != 22 {
		t.Fatalf("len = %d, want 22", len(seq))
	}
	if seq[:6] != "ATGCGT" || seq[16:] != "TTTAAA" {
		t.Fatalf("functional blocks not preserved: %s", seq)
	}
	rs := tm.SpacerRanges()
	if len(rs) != 1 || rs[0] != (span.Range{Start: 6, End: 16}) {
		t.Fatalf("spacer ranges = %v", rs)
	}
}

func TestBlocksPartitionSequence(t *testing.T) {
	tm := build(t, "AAAA 5 CCCC 0 GGGG 3@0.8 acgt")
	cur := 0
	total := 0
	for _, b := range tm.Blocks() {
		if b.Start != cur {
			t.Fatalf("gap or overlap at %d: %+v", cur, b)
		}
		cur = b.End
		total += b.Len()
	}
	if total != tm.Len() || cur != tm.Len() {
		t.Fatalf("blocks cover %d of %d", total, tm.Len())
	}
	if got := len(tm.SpacerRanges()); got != 3 {
		t.Fatalf("want 3 non-empty spacers, got %d", got)
	}
}

func TestMutateRejectsFunctional(t *testing.T) {
	tm := build(t, "ATGCGT 4 TTTAAA")
	var oor *OutOfRangeError
	for _, pos := range []int{-1, 0, 5, 10, 15, 16} {
		if err := tm.Mutate(pos, 'A'); !errors.As(err, &oor) {
			t.Errorf("Mutate(%d) err = %v, want OutOfRangeError", pos, err)
		}
	}
	if err := tm.Mutate(6, 'N'); !errors.As(err, &oor) {
		t.Errorf("invalid base accepted: %v", err)
	}
	for pos := 6; pos < 10; pos++ {
		if err := tm.Mutate(pos, 'C'); err != nil {
			t.Fatalf("Mutate(%d): %v", pos, err)
		}
	}
	if got := tm.Render(); got != "ATGCGTCCCCTTTAAA" {
		t.Fatalf("render = %s", got)
	}
	if err := tm.CheckFunctional(); err != nil {
		t.Fatal(err)
	}
}

func TestAssembleIsCopy(t *testing.T) {
	tm := build(t, "ACGT 3")
	a := tm.Assemble()
	a[0] = 'T'
	if tm.Render()[0] != 'A' {
		t.Fatal("Assemble leaked the live buffer")
	}
}

func TestSeededSpacerKept(t *testing.T) {
	tm := build(t, "AAA ggccgg@0.9 TTT")
	if got := tm.Render(); got != "AAAGGCCGGTTT" {
		t.Fatalf("render = %s", got)
	}
	if gc := tm.TargetGC(4); gc != 0.9 {
		t.Fatalf("TargetGC = %v", gc)
	}
}

func TestParseDesignErrors(t *testing.T) {
	cases := []string{
		"",
		"ACGN 4",
		"AcGT",
		"ACGT 5@1.5",
		"ACGT@0.5",
		"ACGT -3",
	}
	for _, in := range cases {
		_, err := ParseDesign(strings.NewReader(in), 0.5)
		var pe *TemplateParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseDesign(%q) err = %v, want TemplateParseError", in, err)
		}
	}
}

func TestParseDesignComments(t *testing.T) {
	specs, err := ParseDesign(strings.NewReader("# promoter\nTTGACA # -35\n17\nTATAAT\n"), 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 3 || specs[1].Kind != Spacer || specs[1].Length != 17 || specs[1].TargetGC != 0.4 {
		t.Fatalf("specs = %+v", specs)
	}
}

func TestFromRecord(t *testing.T) {
	specs, err := FromRecord([]byte("AAAACCCCGGGGTTTT"), []span.Range{{Start: 4, End: 8}}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 3 || specs[1].Kind != Functional || specs[1].Seq != "CCCC" {
		t.Fatalf("specs = %+v", specs)
	}
	if _, err := FromRecord([]byte("ACGT"), []span.Range{{Start: 2, End: 9}}, 0.5); err == nil {
		t.Fatal("expected error for out-of-bounds protect range")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("3-9")
	if err != nil || r != (span.Range{Start: 3, End: 9}) {
		t.Fatalf("ParseRange = %v %v", r, err)
	}
	if _, err := ParseRange("9-3"); err == nil {
		t.Fatal("expected error for reversed range")
	}
}
