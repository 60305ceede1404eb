// core/motif/matrix.go
package motif

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/levantapatin/siteout/core/nucleotide"
)

// Orientation of a matrix file.
type Orientation int

const (
	// Auto treats a 4-row matrix that is not 4 columns wide as ByBase.
	Auto Orientation = iota
	// ByPosition has one row per motif position, columns A C G T.
	ByPosition
	// ByBase has four rows A C G T, one column per motif position.
	ByBase
)

// FrequencyMatrix rows are motif positions, columns A C G T.
type FrequencyMatrix [][4]float64

// CountMatrix rows are motif positions, columns A C G T.
type CountMatrix [][4]float64

// Width is the number of motif positions.
func (f FrequencyMatrix) Width() int { return len(f) }

func background(gc float64) ([4]float64, error) {
	if gc <= 0 || gc >= 1 {
		return [4]float64{}, fmt.Errorf("GC content %v must be between 0 and 1", gc)
	}
	return [4]float64{0.5 - gc/2, gc / 2, gc / 2, 0.5 - gc/2}, nil
}

// WeightMatrix returns log2(f/bg) for a background with the given GC
// fraction. Zero frequencies get weight 0.
func (f FrequencyMatrix) WeightMatrix(gc float64) ([][4]float64, error) {
	bg, err := background(gc)
	if err != nil {
		return nil, err
	}
	wm := make([][4]float64, len(f))
	for i, row := range f {
		for j := 0; j < 4; j++ {
			if row[j] != 0 {
				wm[i][j] = math.Log2(row[j] / bg[j])
			}
		}
	}
	return wm, nil
}

// KLEntropy is the relative entropy (bits) of the matrix against a
// background with the given GC fraction.
func (f FrequencyMatrix) KLEntropy(gc float64) (float64, error) {
	bg, err := background(gc)
	if err != nil {
		return 0, err
	}
	kl := 0.0
	for _, row := range f {
		for j := 0; j < 4; j++ {
			if row[j] != 0 {
				kl += row[j] * math.Log2(row[j]/bg[j])
			}
		}
	}
	return kl, nil
}

// SeqWeight is the statistical weight of seq (len == Width) relative to
// background, scaled by concentration.
func (f FrequencyMatrix) SeqWeight(seq string, gc, concentration float64) (float64, error) {
	bg, err := background(gc)
	if err != nil {
		return 0, err
	}
	if concentration < 0 {
		return 0, fmt.Errorf("concentration must be positive")
	}
	if len(seq) < len(f) {
		return 0, fmt.Errorf("sequence shorter than matrix (%d < %d)", len(seq), len(f))
	}
	w := concentration
	for i := range f {
		j := nucleotide.Index(seq[i])
		if j < 0 {
			return 0, fmt.Errorf("invalid base %q at %d", seq[i], i+1)
		}
		w *= f[i][j] / bg[j]
	}
	return w, nil
}

// Validate checks every position sums to 1 (±0.01).
func (f FrequencyMatrix) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("empty matrix")
	}
	for i, row := range f {
		sum := 0.0
		for _, v := range row {
			if v < 0 || math.IsNaN(v) {
				return fmt.Errorf("negative or NaN frequency at position %d", i+1)
			}
			sum += v
		}
		if sum < 0.99 || sum > 1.01 {
			return fmt.Errorf("frequencies at position %d do not sum to 1", i+1)
		}
	}
	return nil
}

// Frequencies converts counts to frequencies, adding pseudo to each cell.
func (c CountMatrix) Frequencies(pseudo float64) (FrequencyMatrix, error) {
	if pseudo < 0 {
		return nil, fmt.Errorf("pseudocount must be >= 0")
	}
	fm := make(FrequencyMatrix, len(c))
	for i, row := range c {
		total := row[0] + row[1] + row[2] + row[3] + 4*pseudo
		if total <= 0 {
			return nil, fmt.Errorf("position %d has no counts", i+1)
		}
		for j := 0; j < 4; j++ {
			fm[i][j] = (row[j] + pseudo) / total
		}
	}
	return fm, nil
}

// SitesToCounts builds a count matrix from aligned binding sites of equal
// length.
func SitesToCounts(sites []string) (CountMatrix, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("no sites")
	}
	w := len(sites[0])
	cm := make(CountMatrix, w)
	for n, raw := range sites {
		s := strings.ToUpper(strings.TrimSpace(raw))
		if len(s) != w {
			return nil, fmt.Errorf("site %d has length %d, want %d", n+1, len(s), w)
		}
		for i := 0; i < w; i++ {
			j := nucleotide.Index(s[i])
			if j < 0 {
				return nil, fmt.Errorf("site %d: invalid base %q", n+1, s[i])
			}
			cm[i][j]++
		}
	}
	return cm, nil
}

// ParseSites reads aligned binding sites, one per line, and converts their
// counts with pseudo. Blank lines and lines starting with '#' or '>' are
// skipped.
func ParseSites(r io.Reader, pseudo float64) (FrequencyMatrix, error) {
	var sites []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '>' {
			continue
		}
		sites = append(sites, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	cm, err := SitesToCounts(sites)
	if err != nil {
		return nil, err
	}
	return cm.Frequencies(pseudo)
}

// ParseMatrix reads a count or frequency matrix. Blank lines and lines
// starting with '#' or '>' are skipped; a leading base label ("A", "A:",
// "A |") and square brackets are ignored. When every value is an integer and
// some position sums above 1 the matrix is treated as counts and converted
// with pseudo.
func ParseMatrix(r io.Reader, o Orientation, pseudo float64) (FrequencyMatrix, error) {
	m, err := parseRows(r, o)
	if err != nil {
		return nil, err
	}
	if isCounts(m) {
		return CountMatrix(m).Frequencies(pseudo)
	}
	fm := FrequencyMatrix(m)
	if err := fm.Validate(); err != nil {
		return nil, err
	}
	return fm, nil
}

func parseRows(r io.Reader, o Orientation) ([][4]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '>' {
			continue
		}
		line = strings.NewReplacer("[", " ", "]", " ", "|", " ", ":", " ").Replace(line)
		f := strings.Fields(line)
		if len(f) > 0 && len(f[0]) == 1 && nucleotide.Index(f[0][0]) >= 0 {
			f = f[1:]
		}
		row := make([]float64, 0, len(f))
		for _, tok := range f {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", ln, err)
			}
			row = append(row, v)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}

	if o == Auto {
		o = ByPosition
		if len(rows) == 4 && len(rows[0]) != 4 {
			o = ByBase
		}
	}
	var m [][4]float64
	switch o {
	case ByBase:
		if len(rows) != 4 {
			return nil, fmt.Errorf("base-oriented matrix needs 4 rows, got %d", len(rows))
		}
		w := len(rows[0])
		for i := 1; i < 4; i++ {
			if len(rows[i]) != w {
				return nil, fmt.Errorf("row %d has %d columns, want %d", i+1, len(rows[i]), w)
			}
		}
		m = make([][4]float64, w)
		for j := 0; j < w; j++ {
			for b := 0; b < 4; b++ {
				m[j][b] = rows[b][j]
			}
		}
	default:
		m = make([][4]float64, len(rows))
		for i, row := range rows {
			if len(row) != 4 {
				return nil, fmt.Errorf("position %d of matrix isn't 4 columns", i+1)
			}
			copy(m[i][:], row)
		}
	}
	return m, nil
}

func isCounts(m [][4]float64) bool {
	over := false
	for _, row := range m {
		sum := 0.0
		for _, v := range row {
			if v != math.Trunc(v) {
				return false
			}
			sum += v
		}
		if sum > 1.01 {
			over = true
		}
	}
	return over
}

// ParseFrequencyMatrix reads a frequency matrix; counts are rejected.
func ParseFrequencyMatrix(r io.Reader, o Orientation) (FrequencyMatrix, error) {
	m, err := parseRows(r, o)
	if err != nil {
		return nil, err
	}
	fm := FrequencyMatrix(m)
	if err := fm.Validate(); err != nil {
		return nil, err
	}
	return fm, nil
}

// ParseCountMatrix reads a count matrix.
func ParseCountMatrix(r io.Reader, o Orientation) (CountMatrix, error) {
	m, err := parseRows(r, o)
	if err != nil {
		return nil, err
	}
	for i, row := range m {
		for _, v := range row {
			if v < 0 || math.IsNaN(v) {
				return nil, fmt.Errorf("negative or NaN count at position %d", i+1)
			}
		}
	}
	return CountMatrix(m), nil
}
