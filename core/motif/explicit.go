// core/motif/explicit.go
package motif

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/levantapatin/siteout/core/nucleotide"
)

// Explicit is a literal motif matched on both strands.
type Explicit struct {
	ID string
	// Seq is upper case and may hold IUPAC codes.
	Seq string
	RC  string
}

// Palindromic reports whether the motif equals its reverse complement.
func (m Explicit) Palindromic() bool { return m.Seq == m.RC }

// Width is the motif length.
func (m Explicit) Width() int { return len(m.Seq) }

// NewExplicit validates seq and computes its reverse complement. An empty id
// defaults to the sequence itself.
func NewExplicit(id, seq string) (Explicit, error) {
	s, err := nucleotide.ValidateIUPAC(seq)
	if err != nil {
		return Explicit{}, &LoadError{ID: id, Err: err}
	}
	if id == "" {
		id = s
	}
	return Explicit{ID: id, Seq: s, RC: nucleotide.RevComp(s)}, nil
}

// LoadMotifFile reads one motif per line. A line is either "MOTIF" or
// "id<whitespace>MOTIF"; blank lines and '#' comments are skipped.
func LoadMotifFile(path string) ([]Explicit, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer func() { _ = fh.Close() }()

	var list []Explicit
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		var id, seq string
		switch len(f) {
		case 1:
			seq = f[0]
		case 2:
			id, seq = f[0], f[1]
		default:
			return nil, &LoadError{Err: fmt.Errorf("%s:%d bad field count", path, ln)}
		}
		s, err := nucleotide.ValidateIUPAC(seq)
		if err != nil {
			return nil, &LoadError{ID: id, Err: fmt.Errorf("%s:%d %w", path, ln, err)}
		}
		if id == "" {
			id = s
		}
		list = append(list, Explicit{ID: id, Seq: s, RC: nucleotide.RevComp(s)})
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}
	return list, nil
}
