// core/resolve/engine.go
//
// Package resolve removes motif hits from the spacers of a template by
// repeated scan and local mutation.
package resolve

import (
	"context"
	"fmt"

	"github.com/levantapatin/siteout/core/sampler"
	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/core/span"
	"github.com/levantapatin/siteout/core/template"
)

const (
	DefaultMaxRounds   = 1000
	DefaultZoneCeiling = 20
)

// Scanner reports hits overlapping ranges of seq. seq must not be retained.
type Scanner interface {
	Scan(ctx context.Context, seq []byte, ranges []span.Range) ([]scan.Hit, error)
}

// Config bounds the search.
type Config struct {
	// MaxRounds is the global mutation round budget.
	MaxRounds int
	// ZoneCeiling is how many times a position may be patched before its
	// whole zone is re-sampled.
	ZoneCeiling int
	// OnRound, if set, is called after every scan with the hits found.
	OnRound func(round int, hits []scan.Hit)
}

func (c Config) withDefaults() Config {
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	if c.ZoneCeiling <= 0 {
		c.ZoneCeiling = DefaultZoneCeiling
	}
	return c
}

// Engine owns nothing but its collaborators; the template it runs on is the
// only state it writes.
type Engine struct {
	cfg     Config
	scanner Scanner
	rng     *sampler.Sampler
}

func New(cfg Config, sc Scanner, rng *sampler.Sampler) *Engine {
	return &Engine{cfg: cfg.withDefaults(), scanner: sc, rng: rng}
}

type run struct {
	*Engine
	tpl     *template.Template
	spacers []span.Range
	touches []int
	res     *Result
}

// Run mutates tpl until a scan of its spacers comes back clean or the round
// budget is spent. On exhaustion tpl is rolled back to the sequence with the
// fewest hits seen. Errors from the scanner or ctx abort the run.
func (e *Engine) Run(ctx context.Context, tpl *template.Template) (*Result, error) {
	r := &run{
		Engine:  e,
		tpl:     tpl,
		spacers: tpl.SpacerRanges(),
		touches: make([]int, tpl.Len()),
		res:     &Result{State: Scanning},
	}

	var best []byte
	var bestHits []scan.Hit
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.res.State = Scanning
		hits, err := r.scan(ctx)
		if err != nil {
			return nil, err
		}
		if e.cfg.OnRound != nil {
			e.cfg.OnRound(r.res.Rounds, hits)
		}
		if best == nil || len(hits) < len(bestHits) {
			best = tpl.Assemble()
			bestHits = hits
		}
		if len(hits) == 0 {
			r.res.State = Converged
			break
		}
		if r.res.Rounds >= e.cfg.MaxRounds {
			r.res.State = Exhausted
			if err := r.restore(best); err != nil {
				return nil, err
			}
			hits = bestHits
			r.res.Unresolved = hits
			break
		}

		r.res.State = Mutating
		r.res.Rounds++
		for _, zone := range span.Merge(scan.Ranges(hits)) {
			if err := r.mutateZone(zone); err != nil {
				return nil, err
			}
		}
	}
	r.res.Sequence = tpl.Render()
	return r.res, nil
}

func (r *run) scan(ctx context.Context) ([]scan.Hit, error) {
	if len(r.spacers) == 0 {
		return nil, nil
	}
	return r.scanner.Scan(ctx, r.tpl.View(), r.spacers)
}

// mutable returns zone ∩ spacers.
func (r *run) mutable(zone span.Range) []span.Range {
	var out []span.Range
	for _, s := range r.spacers {
		if x := s.Intersect(zone); !x.Empty() {
			out = append(out, x)
		}
	}
	return out
}

func (r *run) mutateZone(zone span.Range) error {
	parts := r.mutable(zone)
	if len(parts) == 0 {
		// hit lies in functional sequence only; nothing to change
		return nil
	}
	attempts, total := 0, 0
	for _, p := range parts {
		total += p.Len()
		for pos := p.Start; pos < p.End; pos++ {
			if r.touches[pos] > attempts {
				attempts = r.touches[pos]
			}
		}
	}

	if attempts < r.cfg.ZoneCeiling {
		k := r.rng.Intn(total)
		pos := -1
		for _, p := range parts {
			if k < p.Len() {
				pos = p.Start + k
				break
			}
			k -= p.Len()
		}
		old := r.tpl.Base(pos)
		nb := r.rng.Replace(old, r.tpl.TargetGC(pos))
		if err := r.write(zone, pos, old, nb, Point); err != nil {
			return err
		}
		r.touches[pos]++
		return nil
	}

	for _, p := range parts {
		rec := &recorder{run: r, zone: zone}
		if err := r.rng.Resample(rec, p, r.tpl.TargetGC(p.Start)); err != nil {
			return err
		}
		for pos := p.Start; pos < p.End; pos++ {
			r.touches[pos] = 0
		}
	}
	return nil
}

func (r *run) write(zone span.Range, pos int, old, nb byte, kind MutationKind) error {
	if err := r.tpl.Mutate(pos, nb); err != nil {
		return fmt.Errorf("internal error: engine wrote outside a spacer: %w", err)
	}
	r.res.Mutations++
	r.res.Trace = append(r.res.Trace, Mutation{Round: r.res.Rounds, Zone: zone, Pos: pos, Old: old, New: nb, Kind: kind})
	return nil
}

// recorder routes sampler writes through the template and the trace.
type recorder struct {
	run  *run
	zone span.Range
}

func (rc *recorder) Mutate(pos int, b byte) error {
	return rc.run.write(rc.zone, pos, rc.run.tpl.Base(pos), b, Resample)
}

// restore rewrites the spacers back to snap.
func (r *run) restore(snap []byte) error {
	for _, s := range r.spacers {
		for pos := s.Start; pos < s.End; pos++ {
			if r.tpl.Base(pos) == snap[pos] {
				continue
			}
			if err := r.tpl.Mutate(pos, snap[pos]); err != nil {
				return fmt.Errorf("internal error: restore: %w", err)
			}
		}
	}
	return nil
}
