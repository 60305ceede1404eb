// core/scan/pwm.go
package scan

import (
	"context"
	"fmt"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/span"
)

// Site is one scored window as returned by a Scorer. Pos is the 0-based
// window start on forward coordinates of the sequence passed to Score.
type Site struct {
	Pos    int
	Strand byte
	Score  float64
}

// Scorer scores a matrix over a sequence on both strands. Implementations
// may drop sites below m.Cutoff.
type Scorer interface {
	Score(ctx context.Context, seq []byte, m *motif.PWM) ([]Site, error)
}

// ScorerError reports a failed or malformed scorer call.
type ScorerError struct {
	MotifID string
	Err     error
}

func (e *ScorerError) Error() string {
	return fmt.Sprintf("scorer failed for %s: %v", e.MotifID, e.Err)
}

func (e *ScorerError) Unwrap() error { return e.Err }

// cutoffSlack absorbs float noise when comparing scores with cutoffs.
const cutoffSlack = 1e-9

// PWMScanner runs a Scorer for every matrix over the part of the sequence
// that can hold a hit overlapping the given ranges.
type PWMScanner struct {
	Scorer Scorer
	Motifs []*motif.PWM
}

// Scan calls the scorer once per matrix with the hull of ranges padded by
// w-1, shifts sites back to full-sequence coordinates and keeps those at or
// above the cutoff that overlap a range.
func (ps *PWMScanner) Scan(ctx context.Context, seq []byte, ranges []span.Range) ([]Hit, error) {
	if ps == nil || len(ps.Motifs) == 0 || len(ranges) == 0 {
		return nil, nil
	}
	if ps.Scorer == nil {
		return nil, &ScorerError{MotifID: ps.Motifs[0].ID, Err: fmt.Errorf("no scorer configured")}
	}
	var out []Hit
	for _, m := range ps.Motifs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w := m.Width()
		region, ok := superset(ranges, w-1, len(seq))
		if !ok || region.Len() < w {
			continue
		}
		sub := seq[region.Start:region.End]
		sites, err := ps.Scorer.Score(ctx, sub, m)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &ScorerError{MotifID: m.ID, Err: err}
		}
		seen := map[hitKey]bool{}
		for _, s := range sites {
			if s.Pos < 0 || s.Pos+w > len(sub) {
				return nil, &ScorerError{MotifID: m.ID, Err: fmt.Errorf("site at %d outside scored region of %d bases", s.Pos, len(sub))}
			}
			if s.Strand != Plus && s.Strand != Minus {
				return nil, &ScorerError{MotifID: m.ID, Err: fmt.Errorf("bad strand %q", s.Strand)}
			}
			if s.Score < m.Cutoff-cutoffSlack {
				continue
			}
			h := Hit{
				Start:   region.Start + s.Pos,
				End:     region.Start + s.Pos + w,
				Strand:  s.Strand,
				MotifID: m.ID,
				Score:   s.Score,
			}
			if seen[h.key()] || !overlapsAny(h.Range(), ranges) {
				continue
			}
			seen[h.key()] = true
			out = append(out, h)
		}
	}
	Sort(out)
	return out, nil
}

// BuiltinScorer scores windows in process with the matrix log-odds weights.
// Windows holding a non-ACGT base are skipped.
type BuiltinScorer struct{}

func (BuiltinScorer) Score(ctx context.Context, seq []byte, m *motif.PWM) ([]Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Site
	for p := 0; p+m.Width() <= len(seq); p++ {
		if s, ok := m.Score(seq, p); ok && s >= m.Cutoff-cutoffSlack {
			out = append(out, Site{Pos: p, Strand: Plus, Score: s})
		}
		if s, ok := m.ScoreRC(seq, p); ok && s >= m.Cutoff-cutoffSlack {
			out = append(out, Site{Pos: p, Strand: Minus, Score: s})
		}
	}
	return out, nil
}
