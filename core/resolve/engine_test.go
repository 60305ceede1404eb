package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/sampler"
	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/core/span"
	"github.com/levantapatin/siteout/core/template"
)

func setup(t *testing.T, design string, seed int64, motifs ...string) (*template.Template, *scan.Set, *sampler.Sampler) {
	t.Helper()
	specs, err := template.ParseDesign(strings.NewReader(design), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	rng := sampler.New(seed)
	tpl, err := template.New(specs, rng)
	if err != nil {
		t.Fatal(err)
	}
	cat := motif.NewCatalog()
	if err := cat.LoadExplicit(motifs); err != nil {
		t.Fatal(err)
	}
	cat.Seal()
	return tpl, scan.NewSet(cat, nil), rng
}

func TestScenarioConverges(t *testing.T) {
	tpl, sc, rng := setup(t, `["ATGCGT", "gggggggggg", "TTTAAA"]`, 7, "GGGG")
	res, err := New(Config{}, sc, rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Converged || res.Err() != nil {
		t.Fatalf("state %v", res.State)
	}
	if res.Mutations == 0 || len(res.Trace) != res.Mutations {
		t.Fatalf("mutations %d trace %d", res.Mutations, len(res.Trace))
	}
	if len(res.Sequence) != 22 || res.Sequence[:6] != "ATGCGT" || res.Sequence[16:] != "TTTAAA" {
		t.Fatalf("functional blocks changed: %s", res.Sequence)
	}
	if err := tpl.CheckFunctional(); err != nil {
		t.Fatal(err)
	}
	// a converged sequence rescans clean
	hits, err := sc.Scan(context.Background(), []byte(res.Sequence), tpl.SpacerRanges())
	if err != nil || len(hits) != 0 {
		t.Fatalf("rescan: %v %+v", err, hits)
	}
	for _, m := range res.Trace {
		if m.Pos < 6 || m.Pos >= 16 || m.Old == m.New && m.Kind == Point {
			t.Fatalf("bad mutation %+v", m)
		}
	}
}

func TestZeroSpacerConvergesImmediately(t *testing.T) {
	tpl, sc, rng := setup(t, `["ATGC", 0, "GGGG"]`, 1, "GGGG")
	res, err := New(Config{}, sc, rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Converged || res.Mutations != 0 || res.Rounds != 0 || res.Sequence != "ATGCGGGG" {
		t.Fatalf("result %+v", res)
	}
}

func TestUnavoidableMotifExhausts(t *testing.T) {
	tpl, sc, rng := setup(t, "AAAA 10@1.0 TTTT", 3, "G")
	res, err := New(Config{MaxRounds: 25}, sc, rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Exhausted || !errors.Is(res.Err(), ErrExhausted) {
		t.Fatalf("state %v", res.State)
	}
	if res.Rounds != 25 || len(res.Unresolved) != 10 {
		t.Fatalf("rounds %d unresolved %d", res.Rounds, len(res.Unresolved))
	}
	if res.Sequence[:4] != "AAAA" || res.Sequence[14:] != "TTTT" {
		t.Fatalf("functional blocks changed: %s", res.Sequence)
	}
}

func TestDeterministic(t *testing.T) {
	runOnce := func() *Result {
		tpl, sc, rng := setup(t, "ATGCGT 40 gggggggggggg 30@0.7 TTTAAA", 42, "GGGG", "GAATTC", "TATA")
		res, err := New(Config{ZoneCeiling: 3}, sc, rng).Run(context.Background(), tpl)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := runOnce(), runOnce()
	if a.Sequence != b.Sequence || a.Mutations != b.Mutations || a.Rounds != b.Rounds || len(a.Trace) != len(b.Trace) {
		t.Fatalf("runs differ:\n%+v\n%+v", a, b)
	}
	for i := range a.Trace {
		if a.Trace[i] != b.Trace[i] {
			t.Fatalf("trace differs at %d: %+v vs %+v", i, a.Trace[i], b.Trace[i])
		}
	}
}

func TestZoneCeilingResamples(t *testing.T) {
	tpl, sc, rng := setup(t, "AAAA gggggggg AAAA", 5, "GGGG")
	res, err := New(Config{ZoneCeiling: 1}, sc, rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Converged {
		t.Fatalf("state %v", res.State)
	}
	resampled := false
	for _, m := range res.Trace {
		if m.Kind == Resample {
			resampled = true
		}
	}
	if !resampled {
		t.Fatalf("no zone re-sample in %+v", res.Trace)
	}
}

func TestPWMHitsResolved(t *testing.T) {
	specs, _ := template.ParseDesign(strings.NewReader("ATAT gggggg ATAT"), 0.5)
	rng := sampler.New(9)
	tpl, err := template.New(specs, rng)
	if err != nil {
		t.Fatal(err)
	}
	g := [4]float64{0, 0, 1, 0}
	cat := motif.NewCatalog()
	if err := cat.LoadPWM([]motif.PWMSpec{{ID: "gg", Freq: motif.FrequencyMatrix{g, g}, PValue: 0.1, SpeciesGC: 0.5, TargetGC: 0.5}}, motif.ExactCalibrator{}); err != nil {
		t.Fatal(err)
	}
	cat.Seal()
	res, err := New(Config{}, scan.NewSet(cat, scan.BuiltinScorer{}), rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Converged || strings.Contains(res.Sequence[3:11], "GG") || strings.Contains(res.Sequence[3:11], "CC") {
		t.Fatalf("result %+v", res)
	}
}

// scripted returns n hits on call i, all inside [4,8).
type scripted struct {
	counts []int
	calls  int
	err    error
}

func (s *scripted) Scan(_ context.Context, _ []byte, _ []span.Range) ([]scan.Hit, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := s.counts[len(s.counts)-1]
	if s.calls < len(s.counts) {
		n = s.counts[s.calls]
	}
	s.calls++
	hs := make([]scan.Hit, n)
	for i := range hs {
		hs[i] = scan.Hit{Start: 4, End: 8, Strand: scan.Plus, MotifID: string(rune('a' + i)), Exact: true}
	}
	return hs, nil
}

func TestExhaustedRestoresBest(t *testing.T) {
	tpl, _, rng := setup(t, "AAAA cccc AAAA", 1)
	start := tpl.Render()
	sc := &scripted{counts: []int{1, 3}}
	var rounds []int
	cfg := Config{MaxRounds: 4, OnRound: func(r int, hs []scan.Hit) { rounds = append(rounds, len(hs)) }}
	res, err := New(cfg, sc, rng).Run(context.Background(), tpl)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Exhausted || res.Sequence != start || len(res.Unresolved) != 1 {
		t.Fatalf("want rollback to %s with 1 hit, got %+v", start, res)
	}
	if tpl.Render() != start {
		t.Fatal("template not restored")
	}
	if len(rounds) != 5 || rounds[0] != 1 || rounds[4] != 3 {
		t.Fatalf("OnRound calls %v", rounds)
	}
}

func TestScannerErrorAborts(t *testing.T) {
	tpl, _, rng := setup(t, "AAAA cccc AAAA", 1)
	boom := &scan.ScorerError{MotifID: "m", Err: errors.New("boom")}
	_, err := New(Config{}, &scripted{err: boom}, rng).Run(context.Background(), tpl)
	var se *scan.ScorerError
	if !errors.As(err, &se) {
		t.Fatalf("want ScorerError, got %v", err)
	}
}

func TestCancelled(t *testing.T) {
	tpl, sc, rng := setup(t, "AAAA gggggggg AAAA", 1, "GGGG")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{}, sc, rng).Run(ctx, tpl); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
