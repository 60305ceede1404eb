// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/levantapatin/siteout/internal/app"
	"github.com/levantapatin/siteout/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func runJSON(t *testing.T, argv ...string) (int, api.ReportV1, string) {
	t.Helper()
	code, out, stderr := run(t, append(argv, "--output", "json")...)
	var rep api.ReportV1
	if out != "" {
		if err := json.Unmarshal([]byte(out), &rep); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
	}
	return code, rep, stderr
}

func TestGenerateConverges(t *testing.T) {
	d := write(t, "construct.txt", `["ATGCGT", 10, "TTTAAA"]`)
	code, rep, stderr := runJSON(t, "generate", "--design", d, "--motif", "GGGG", "--seed", "7")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if rep.State != "converged" || rep.Name != "construct" || rep.Seed != 7 {
		t.Fatalf("report %+v", rep)
	}
	s := rep.Sequence
	if len(s) != 22 || !strings.HasPrefix(s, "ATGCGT") || !strings.HasSuffix(s, "TTTAAA") {
		t.Fatalf("sequence %q", s)
	}
	if strings.Contains(s, "GGGG") || strings.Contains(s, "CCCC") {
		t.Fatalf("motif left in %q", s)
	}
	if len(rep.Hits) != 0 || len(rep.Blocks) != 3 || len(rep.Motifs) != 1 {
		t.Fatalf("hits=%d blocks=%d motifs=%d", len(rep.Hits), len(rep.Blocks), len(rep.Motifs))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	d := write(t, "d.txt", "ATGCGT 40 TTTAAA 40@0.3 ATGCGT\n")
	argv := []string{"generate", "--design", d, "-m", "GGG", "-m", "TATA", "--seed", "11", "-o", "fasta"}
	c1, o1, _ := run(t, argv...)
	c2, o2, _ := run(t, argv...)
	if c1 != 0 || c2 != 0 || o1 != o2 {
		t.Fatalf("runs differ:\n%s\n%s", o1, o2)
	}
}

func TestGeneratePWM(t *testing.T) {
	d := write(t, "d.txt", "ATGCGT 30 TTTAAA")
	m := write(t, "GGG_counts.txt", "0 0 10 0\n0 0 10 0\n0 0 10 0\n")
	code, rep, stderr := runJSON(t, "generate", "--design", d, "--pwm", m, "--cutoff", "6", "--seed", "3")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if strings.Contains(rep.Sequence, "GGG") || strings.Contains(rep.Sequence, "CCC") {
		t.Fatalf("pwm site left in %q", rep.Sequence)
	}
	if len(rep.Motifs) != 1 || rep.Motifs[0].ID != "GGG" || rep.Motifs[0].Kind != "pwm" {
		t.Fatalf("motifs %+v", rep.Motifs)
	}
}

func TestScanPWMReportsWeight(t *testing.T) {
	fa := write(t, "q.fa", ">q\nATATGGGATAT\n")
	m := write(t, "GGG_counts.txt", "0 0 10 0\n0 0 10 0\n0 0 10 0\n")
	code, rep, stderr := runJSON(t, "scan", "--sequence", fa, "--pwm", m, "--cutoff", "6")
	if code != 1 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if len(rep.Hits) == 0 {
		t.Fatalf("no hits in %+v", rep)
	}
	for _, h := range rep.Hits {
		if h.MotifID != "GGG" || h.Weight <= 1 {
			t.Fatalf("hit %+v", h)
		}
	}
}

func TestScorerNoneRejectsMatrices(t *testing.T) {
	d := write(t, "d.txt", `["ATAT", "ggggggggggg", "ATAT"]`)
	m := write(t, "GGG_counts.txt", "0 0 10 0\n0 0 10 0\n0 0 10 0\n")
	code, out, stderr := run(t, "generate", "--design", d, "--pwm", m, "--scorer", "none", "--quiet", "--pvalue", "0.05")
	if code != 2 || out != "" {
		t.Fatalf("exit %d stdout %q", code, out)
	}
	if !strings.Contains(stderr, "--scorer none") {
		t.Fatalf("stderr %q", stderr)
	}

	code, _, stderr = run(t, "generate", "--design", d, "-m", "TTTT", "--scorer", "none", "--seed", "1", "-q")
	if code != 0 {
		t.Fatalf("explicit motifs under none: exit %d %s", code, stderr)
	}
}

func TestGenerateExhausted(t *testing.T) {
	d := write(t, "d.txt", "AAAA 10@1.0 TTTT")
	code, rep, stderr := runJSON(t, "generate", "--design", d, "-m", "G", "--max-rounds", "25", "--seed", "1")
	if code != 1 {
		t.Fatalf("exit %d, want 1: %s", code, stderr)
	}
	if rep.State != "exhausted" || len(rep.Hits) == 0 {
		t.Fatalf("report %+v", rep)
	}
	if !strings.Contains(stderr, "WARN:") {
		t.Fatalf("no warning in %q", stderr)
	}

	code, _, stderr = runJSON(t, "generate", "--design", d, "-m", "G", "--max-rounds", "25", "--seed", "1", "-q")
	if code != 1 || stderr != "" {
		t.Fatalf("quiet: exit %d stderr %q", code, stderr)
	}
}

func TestSpacerFASTA(t *testing.T) {
	code, out, stderr := run(t, "spacer", "--length", "50", "--gc", "0.4", "-m", "GGG", "--seed", "5", "-o", "fasta")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], ">spacer state=converged") || len(lines[1]) != 50 {
		t.Fatalf("fasta %q", out)
	}
}

func TestRefineKeepsProtected(t *testing.T) {
	fa := write(t, "p.fa", ">prom test\nGGGGATATGGGGCCCCAAAAGGGG\n")
	code, rep, stderr := runJSON(t, "refine", "--sequence", fa, "--protect", "0-4", "-m", "GGGG", "--seed", "2")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if rep.Name != "prom" || rep.State != "converged" || !strings.HasPrefix(rep.Sequence, "GGGG") {
		t.Fatalf("report %+v", rep)
	}
	if len(rep.Sequence) != 24 || strings.Contains(rep.Sequence[1:], "GGGG") || strings.Contains(rep.Sequence, "CCCC") {
		t.Fatalf("sequence %q", rep.Sequence)
	}
}

func TestScanExitCodes(t *testing.T) {
	hit := write(t, "hit.fa", ">q\nAAGGGGTT\n")
	code, rep, _ := runJSON(t, "scan", "--sequence", hit, "-m", "GGGG")
	if code != 1 || rep.State != "hits" || len(rep.Hits) != 1 {
		t.Fatalf("exit %d report %+v", code, rep)
	}
	if h := rep.Hits[0]; h.Start != 2 || h.End != 6 || h.Strand != "+" || h.Site != "GGGG" {
		t.Fatalf("hit %+v", h)
	}

	clean := write(t, "clean.fa", ">q\nAAGGTT\n")
	code, rep, _ = runJSON(t, "scan", "--sequence", clean, "-m", "GGGG")
	if code != 0 || rep.State != "clean" || rep.Hits == nil {
		t.Fatalf("exit %d report %+v", code, rep)
	}
}

func TestScanCSV(t *testing.T) {
	fa := write(t, "hit.fa", ">q\nAAGGGGTT\n")
	code, out, _ := run(t, "scan", "--sequence", fa, "-m", "GGGG", "-o", "csv")
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out, "#NAME: q\n") || !strings.Contains(out, "binding_site,3,4,") {
		t.Fatalf("csv %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	bad := write(t, "bad.txt", "ATGXGT 10")
	cases := [][]string{
		{"generate", "--design", bad, "-m", "GG"},
		{"generate", "--design", filepath.Join(t.TempDir(), "missing.txt")},
		{"generate"},
		{"generate", "--design", bad, "--gc", "1.5"},
		{"generate", "--design", bad, "--output", "xml"},
		{"generate", "--bogus"},
		{"spacer", "--length", "10", "--protect", "0-4"},
		{"frobnicate"},
	}
	for _, argv := range cases {
		code, out, stderr := run(t, argv...)
		if code != 2 {
			t.Errorf("%v: exit %d, want 2 (%s)", argv, code, stderr)
		}
		if out != "" {
			t.Errorf("%v: unexpected stdout %q", argv, out)
		}
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := run(t, "version")
	if code != 0 || !strings.HasPrefix(out, "siteout version ") {
		t.Fatalf("version: %d %q", code, out)
	}
	code, out, _ = run(t)
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("help: %d %q", code, out)
	}
}

func TestEnvAndConfigFile(t *testing.T) {
	t.Setenv("SITEOUT_SEED", "42")
	code, rep, stderr := runJSON(t, "spacer", "--length", "20")
	if code != 0 || rep.Seed != 42 {
		t.Fatalf("env seed: exit %d seed %d %s", code, rep.Seed, stderr)
	}
	code, rep, _ = runJSON(t, "spacer", "--length", "20", "--seed", "9")
	if code != 0 || rep.Seed != 9 {
		t.Fatalf("flag seed: exit %d seed %d", code, rep.Seed)
	}

	cfg := write(t, "siteout.yaml", "name: from-file\nmotif: [GGGG]\n")
	code, rep, _ = runJSON(t, "spacer", "--length", "20", "--config", cfg)
	if code != 0 || rep.Name != "from-file" || len(rep.Motifs) != 1 {
		t.Fatalf("config file: exit %d report %+v", code, rep)
	}
}

func TestCancelExit130(t *testing.T) {
	d := write(t, "d.txt", "ATGCGT 5000 TTTAAA")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"generate", "--design", d, "-m", "GG"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
