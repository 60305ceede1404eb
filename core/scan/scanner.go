// core/scan/scanner.go
package scan

import (
	"context"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/span"
)

// Set runs the exact and PWM scanners together.
type Set struct {
	Explicit *ExplicitScanner
	PWM      *PWMScanner
}

// NewSet builds the scanners for a sealed catalog. A nil scorer disables
// PWM scanning.
func NewSet(cat *motif.Catalog, scorer Scorer) *Set {
	s := &Set{Explicit: NewExplicitScanner(cat.Explicit())}
	if scorer != nil && len(cat.PWMs()) > 0 {
		s.PWM = &PWMScanner{Scorer: scorer, Motifs: cat.PWMs()}
	}
	return s
}

// Scan returns all hits overlapping ranges, sorted.
func (s *Set) Scan(ctx context.Context, seq []byte, ranges []span.Range) ([]Hit, error) {
	var out []Hit
	if s.Explicit != nil {
		out = append(out, s.Explicit.Scan(seq, ranges)...)
	}
	if s.PWM != nil {
		hs, err := s.PWM.Scan(ctx, seq, ranges)
		if err != nil {
			return nil, err
		}
		out = append(out, hs...)
	}
	Sort(out)
	return out, nil
}
