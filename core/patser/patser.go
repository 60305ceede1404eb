// core/patser/patser.go
//
// Package patser scores matrices with the external patser program.
package patser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/scan"
)

// DefaultPath is the executable looked up on PATH when Scorer.Path is empty.
const DefaultPath = "patser"

// DefaultTimeout bounds one patser call.
const DefaultTimeout = 60 * time.Second

// seqName names the single sequence handed to patser.
const seqName = "query"

// patser prints scores with two decimals after applying -l itself, so a
// printed score up to this much below the cutoff still counts as a hit.
const printPrecision = 0.005

// Scorer runs patser once per call in a fresh temporary directory.
type Scorer struct {
	Path    string
	Timeout time.Duration
	// WorkDir is the parent of the per-call temp dirs; "" uses os.TempDir.
	WorkDir string
	// Args are appended to the generated arguments.
	Args      []string
	KeepFiles bool
	// MaxLnP, when negative, drops sites with ln(p-value) >= MaxLnP.
	MaxLnP float64
}

var _ scan.Scorer = (*Scorer)(nil)

func (s *Scorer) path() string {
	if s.Path == "" {
		return DefaultPath
	}
	return s.Path
}

// Score implements scan.Scorer.
func (s *Scorer) Score(ctx context.Context, seq []byte, m *motif.PWM) ([]scan.Site, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp(s.WorkDir, "patser-"+safeName(m.ID)+"-")
	if err != nil {
		return nil, err
	}
	if !s.KeepFiles {
		defer func() { _ = os.RemoveAll(dir) }()
	}

	files, err := writeInputs(dir, seq, m)
	if err != nil {
		return nil, fmt.Errorf("write patser inputs in %s: %w", dir, err)
	}

	args := []string{
		"-a", files.alphabet,
		"-m", files.matrix,
		"-w", "-v", "-c",
		"-l", fmt.Sprintf("%.4f", m.Cutoff),
		"-d2",
		"-f", files.list,
	}
	args = append(args, s.Args...)
	cmd := exec.CommandContext(ctx, s.path(), args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %v", s.path(), timeout)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed executing %s: %v: %s", s.path(), err, strings.TrimSpace(stderr.String()))
	}

	hits, err := ParseOutput(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}
	w := m.Width()
	sites := make([]scan.Site, 0, len(hits))
	for _, h := range hits {
		if h.Name != seqName {
			continue
		}
		if s.MaxLnP < 0 && h.LnP >= s.MaxLnP {
			continue
		}
		score := h.Score
		if score < m.Cutoff && score >= m.Cutoff-printPrecision {
			score = m.Cutoff
		}
		pos := h.Position - 1
		if pos < 0 || pos+w > len(seq) {
			return nil, fmt.Errorf("patser reported position %d outside %d-base sequence", h.Position, len(seq))
		}
		site := scan.Site{Pos: pos, Strand: scan.Plus, Score: score}
		if h.Complement {
			site.Strand = scan.Minus
		}
		sites = append(sites, site)
	}
	return sites, nil
}

type inputFiles struct {
	alphabet, matrix, sequence, list string
}

func writeInputs(dir string, seq []byte, m *motif.PWM) (inputFiles, error) {
	f := inputFiles{
		alphabet: filepath.Join(dir, "alphabet"),
		matrix:   filepath.Join(dir, "matrix"),
		sequence: filepath.Join(dir, seqName+".seq"),
		list:     filepath.Join(dir, "files"),
	}
	if err := os.WriteFile(f.alphabet, []byte("A:T\nC:G\n\n"), 0o644); err != nil {
		return f, err
	}
	var mb strings.Builder
	WriteMatrix(&mb, m.Weights)
	if err := os.WriteFile(f.matrix, []byte(mb.String()), 0o644); err != nil {
		return f, err
	}
	body := fmt.Sprintf("%s \\%s\\\n", seqName, seq)
	if err := os.WriteFile(f.sequence, []byte(body), 0o644); err != nil {
		return f, err
	}
	if err := os.WriteFile(f.list, []byte(f.sequence+"\n"), 0o644); err != nil {
		return f, err
	}
	return f, nil
}

// WriteMatrix writes a vertical weight matrix: an "A C G T" header and one
// tab-separated row per position.
func WriteMatrix(w io.Writer, wm [][4]float64) {
	fmt.Fprint(w, "A\tC\tG\tT\n")
	for _, row := range wm {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\n", row[0], row[1], row[2], row[3])
	}
}

// Hit is one parsed patser result line.
type Hit struct {
	Name       string
	Position   int // 1-based
	Complement bool
	Score      float64
	LnP        float64
}

var hitLine = regexp.MustCompile(`^([\w.\-]+)\s+position=\s*(\d+)(C?)\s+score=\s*(\S+)\s+ln\(p-value\)=\s*(\S+)`)

// ParseOutput extracts hit lines from patser output. Other lines (matrix
// echo, statistics) are ignored; a line that looks like a hit but has
// unreadable numbers is an error.
func ParseOutput(r io.Reader) ([]Hit, error) {
	var out []Hit
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if !strings.Contains(line, "position=") {
			continue
		}
		m := hitLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("patser output line %d: unrecognized hit %q", ln, line)
		}
		pos, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("patser output line %d: %v", ln, err)
		}
		score, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return nil, fmt.Errorf("patser output line %d: score: %v", ln, err)
		}
		lnp, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return nil, fmt.Errorf("patser output line %d: ln(p-value): %v", ln, err)
		}
		out = append(out, Hit{Name: m[1], Position: pos, Complement: m[3] == "C", Score: score, LnP: lnp})
	}
	return out, sc.Err()
}

func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator || r == '*' {
			return '_'
		}
		return r
	}, id)
}
