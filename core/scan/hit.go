// core/scan/hit.go
package scan

import (
	"sort"

	"github.com/levantapatin/siteout/core/span"
)

// Strand of a hit relative to the forward sequence.
const (
	Plus  byte = '+'
	Minus byte = '-'
)

// Hit is one motif occurrence. Start/End are forward coordinates.
type Hit struct {
	Start   int
	End     int
	Strand  byte
	MotifID string
	Score   float64 // PWM score; 0 for exact hits
	Exact   bool
}

func (h Hit) Range() span.Range { return span.Range{Start: h.Start, End: h.End} }

type hitKey struct {
	motif  string
	exact  bool
	strand byte
	start  int
}

func (h Hit) key() hitKey { return hitKey{h.MotifID, h.Exact, h.Strand, h.Start} }

// Sort orders hits by position, then motif and strand.
func Sort(hs []Hit) {
	sort.SliceStable(hs, func(i, j int) bool {
		a, b := hs[i], hs[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.MotifID != b.MotifID {
			return a.MotifID < b.MotifID
		}
		return a.Strand < b.Strand
	})
}

// Ranges returns the hit ranges in order.
func Ranges(hs []Hit) []span.Range {
	out := make([]span.Range, len(hs))
	for i, h := range hs {
		out[i] = h.Range()
	}
	return out
}

func overlapsAny(r span.Range, rs []span.Range) bool {
	for _, x := range rs {
		if r.Overlaps(x) {
			return true
		}
	}
	return false
}

// superset is the hull of rs padded by pad and clipped to [0,n).
func superset(rs []span.Range, pad, n int) (span.Range, bool) {
	h, ok := span.Hull(rs)
	if !ok {
		return span.Range{}, false
	}
	h = h.Pad(pad).Clip(n)
	return h, !h.Empty()
}
