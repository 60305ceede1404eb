// internal/appcore/report.go
package appcore

import (
	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/nucleotide"
	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/core/template"
	"github.com/levantapatin/siteout/pkg/api"
)

// ToAPIHits converts hits to the wire schema, attaching the matched site and,
// for matrix hits, its statistical weight against the species background.
func ToAPIHits(hs []scan.Hit, seq []byte, cat *motif.Catalog) []api.HitV1 {
	pwms := make(map[string]*motif.PWM, len(cat.PWMs()))
	for _, p := range cat.PWMs() {
		pwms[p.ID] = p
	}
	out := make([]api.HitV1, 0, len(hs))
	for _, h := range hs {
		site := string(seq[h.Start:h.End])
		var weight float64
		if p, ok := pwms[h.MotifID]; ok && !h.Exact {
			weight = siteWeight(p, site, h.Strand)
		}
		out = append(out, api.HitV1{
			MotifID: h.MotifID,
			Start:   h.Start,
			End:     h.End,
			Strand:  string(h.Strand),
			Exact:   h.Exact,
			Score:   h.Score,
			Site:    site,
			Weight:  weight,
		})
	}
	return out
}

// siteWeight is 0 when the site holds a non-ACGT base.
func siteWeight(p *motif.PWM, site string, strand byte) float64 {
	if strand == scan.Minus {
		site = nucleotide.RevComp(site)
	}
	w, err := p.Freq.SeqWeight(site, p.SpeciesGC, 1)
	if err != nil {
		return 0
	}
	return w
}

func toAPIBlocks(tpl *template.Template) []api.BlockV1 {
	seq := tpl.View()
	bs := tpl.Blocks()
	out := make([]api.BlockV1, 0, len(bs))
	for _, b := range bs {
		v := api.BlockV1{
			Kind:  b.Kind.String(),
			Start: b.Start,
			End:   b.End,
			GC:    nucleotide.GCFraction(seq[b.Start:b.End]),
		}
		if b.Kind == template.Spacer {
			v.TargetGC = b.TargetGC
		}
		out = append(out, v)
	}
	return out
}

func toAPIMotifs(cat *motif.Catalog) []api.MotifV1 {
	out := make([]api.MotifV1, 0, cat.Len())
	for _, m := range cat.Explicit() {
		out = append(out, api.MotifV1{ID: m.ID, Kind: "explicit", Width: m.Width(), Seq: m.Seq})
	}
	for _, p := range cat.PWMs() {
		out = append(out, api.MotifV1{ID: p.ID, Kind: "pwm", Width: p.Width(), Cutoff: p.Cutoff, PValue: p.PValue, Entropy: p.Entropy})
	}
	return out
}
