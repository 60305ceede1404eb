// Package span holds half-open coordinate ranges over a sequence.
package span

import (
	"fmt"
	"sort"
)

// Range is the half-open interval [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Empty() bool { return r.End <= r.Start }

func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

// Overlaps reports whether r and o share at least one position.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Intersect returns the overlap of r and o (possibly empty).
func (r Range) Intersect(o Range) Range {
	s, e := r.Start, r.End
	if o.Start > s {
		s = o.Start
	}
	if o.End < e {
		e = o.End
	}
	if e < s {
		e = s
	}
	return Range{Start: s, End: e}
}

// Clip limits r to [0, n).
func (r Range) Clip(n int) Range { return r.Intersect(Range{Start: 0, End: n}) }

// Pad grows r by k on both sides.
func (r Range) Pad(k int) Range { return Range{Start: r.Start - k, End: r.End + k} }

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// Merge returns the union of rs as sorted, non-overlapping ranges.
// Ranges that only touch (a.End == b.Start) are kept apart.
func Merge(rs []Range) []Range {
	if len(rs) == 0 {
		return nil
	}
	sorted := make([]Range, 0, len(rs))
	for _, r := range rs {
		if !r.Empty() {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	var out []Range
	for _, r := range sorted {
		if n := len(out); n > 0 && r.Start < out[n-1].End {
			if r.End > out[n-1].End {
				out[n-1].End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Hull returns the smallest range covering every non-empty range in rs.
func Hull(rs []Range) (Range, bool) {
	var h Range
	ok := false
	for _, r := range rs {
		if r.Empty() {
			continue
		}
		if !ok {
			h, ok = r, true
			continue
		}
		if r.Start < h.Start {
			h.Start = r.Start
		}
		if r.End > h.End {
			h.End = r.End
		}
	}
	return h, ok
}
