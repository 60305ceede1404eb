// core/scan/explicit.go
package scan

import (
	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/span"
)

// ExplicitScanner finds literal motifs and their reverse complements.
type ExplicitScanner struct {
	motifs []motif.Explicit
	seeds  []seed
	nodes  []acNode
	// orientations without any A/C/G/T base are checked at every position
	slow []seed
}

// NewExplicitScanner builds the seed automaton for ms.
func NewExplicitScanner(ms []motif.Explicit) *ExplicitScanner {
	sc := &ExplicitScanner{motifs: ms}
	add := func(mi int, strand byte, p string) {
		pat := []byte(p)
		off, n := longestRun(pat)
		s := seed{motif: mi, strand: strand, pat: pat, run: pat[off : off+n], offset: off}
		if n == 0 {
			sc.slow = append(sc.slow, s)
			return
		}
		sc.seeds = append(sc.seeds, s)
	}
	for i, m := range ms {
		add(i, Plus, m.Seq)
		if !m.Palindromic() {
			add(i, Minus, m.RC)
		}
	}
	sc.nodes = buildAC(sc.seeds)
	return sc
}

// Scan reports every match overlapping one of ranges. Each range is searched
// with w-1 bases of context on both sides, so matches straddling a range
// boundary are found; a match seen from two ranges is reported once.
func (sc *ExplicitScanner) Scan(seq []byte, ranges []span.Range) []Hit {
	if len(sc.motifs) == 0 {
		return nil
	}
	seen := map[hitKey]bool{}
	var out []Hit
	emit := func(s seed, start int) {
		w := len(s.pat)
		h := Hit{Start: start, End: start + w, Strand: s.strand, MotifID: sc.motifs[s.motif].ID, Exact: true}
		if seen[h.key()] || !overlapsAny(h.Range(), ranges) {
			return
		}
		if !verifyAt(seq, start, s.pat) {
			return
		}
		seen[h.key()] = true
		out = append(out, h)
	}
	maxW := 0
	for _, m := range sc.motifs {
		if m.Width() > maxW {
			maxW = m.Width()
		}
	}
	for _, r := range ranges {
		win := r.Pad(maxW - 1).Clip(len(seq))
		if win.Empty() {
			continue
		}
		scanAC(seq, win.Start, win.End, sc.nodes, sc.seeds, func(si, start int) {
			emit(sc.seeds[si], start)
		})
		for _, s := range sc.slow {
			for p := win.Start; p+len(s.pat) <= win.End; p++ {
				emit(s, p)
			}
		}
	}
	Sort(out)
	return out
}
