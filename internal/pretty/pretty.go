// Package pretty draws a report as an ASCII map: the sequence wrapped in
// fixed-width rows, a block track under it and one lane per set of
// non-overlapping hits.
package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/levantapatin/siteout/pkg/api"
)

// Options control the ASCII rendering.
type Options struct {
	// Bases per row. If <=0, use default (60).
	Width int

	FunctionalGlyph byte // default '='
	SpacerGlyph     byte // default '.'
	PlusGlyph       byte // default '>'
	MinusGlyph      byte // default '<'
}

// DefaultOptions is the look used by the "pretty" output format.
var DefaultOptions = Options{
	Width:           60,
	FunctionalGlyph: '=',
	SpacerGlyph:     '.',
	PlusGlyph:       '>',
	MinusGlyph:      '<',
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.Width > 0 {
		d.Width = o.Width
	}
	if o.FunctionalGlyph != 0 {
		d.FunctionalGlyph = o.FunctionalGlyph
	}
	if o.SpacerGlyph != 0 {
		d.SpacerGlyph = o.SpacerGlyph
	}
	if o.PlusGlyph != 0 {
		d.PlusGlyph = o.PlusGlyph
	}
	if o.MinusGlyph != 0 {
		d.MinusGlyph = o.MinusGlyph
	}
	return d
}

// lanes packs hits into rows so no two hits in a row overlap.
func lanes(hits []api.HitV1) [][]api.HitV1 {
	hs := append([]api.HitV1(nil), hits...)
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Start != hs[j].Start {
			return hs[i].Start < hs[j].Start
		}
		return hs[i].End > hs[j].End
	})
	var out [][]api.HitV1
	var ends []int
	for _, h := range hs {
		placed := false
		for i := range out {
			if ends[i] <= h.Start {
				out[i] = append(out[i], h)
				ends[i] = h.End
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, []api.HitV1{h})
			ends = append(ends, h.End)
		}
	}
	return out
}

func blockTrack(r api.ReportV1, o Options) []byte {
	track := []byte(strings.Repeat(" ", len(r.Sequence)))
	for _, b := range r.Blocks {
		g := o.SpacerGlyph
		if b.Kind == "functional" {
			g = o.FunctionalGlyph
		}
		for i := b.Start; i < b.End && i < len(track); i++ {
			track[i] = g
		}
	}
	return track
}

func hitTrack(n int, hs []api.HitV1, o Options) []byte {
	track := []byte(strings.Repeat(" ", n))
	for _, h := range hs {
		g := o.PlusGlyph
		if h.Strand == "-" {
			g = o.MinusGlyph
		}
		for i := h.Start; i < h.End && i < n; i++ {
			track[i] = g
		}
	}
	return track
}

// Render draws r with opt.
func Render(r api.ReportV1, opt Options) string {
	o := opt.withDefaults()
	n := len(r.Sequence)
	if n == 0 {
		return linePrefix + "(empty sequence)\n"
	}
	blocks := blockTrack(r, o)
	var hits [][]byte
	for _, lane := range lanes(r.Hits) {
		hits = append(hits, hitTrack(n, lane, o))
	}

	pad := len(fmt.Sprint(n))
	var b strings.Builder
	for off := 0; off < n; off += o.Width {
		end := off + o.Width
		if end > n {
			end = n
		}
		fmt.Fprintf(&b, "%s%*d %s\n", linePrefix, pad, off+1, r.Sequence[off:end])
		if len(r.Blocks) > 0 {
			fmt.Fprintf(&b, "%s%*s %s\n", linePrefix, pad, "", blocks[off:end])
		}
		for _, t := range hits {
			row := strings.TrimRight(string(t[off:end]), " ")
			if row == "" {
				continue
			}
			fmt.Fprintf(&b, "%s%*s %s\n", linePrefix, pad, "", row)
		}
	}
	return b.String()
}

// RenderReport draws r with DefaultOptions.
func RenderReport(r api.ReportV1) string { return Render(r, DefaultOptions) }
