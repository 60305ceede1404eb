// internal/appcore/catalog.go
package appcore

import (
	"fmt"
	"io"
	"time"

	"github.com/levantapatin/siteout/core/motif"
	"github.com/levantapatin/siteout/core/patser"
	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/internal/cliutil"
	"github.com/levantapatin/siteout/internal/cmdutil"
	"github.com/levantapatin/siteout/internal/config"
)

// LoadCatalog reads explicit motifs and matrices named by cfg and seals the
// catalog. Matrices whose cutoff cannot be reached at the p-value are kept
// (they never hit) and reported as a warning.
func LoadCatalog(cfg config.Config, stderr io.Writer) (*motif.Catalog, error) {
	cat := motif.NewCatalog()

	files, err := cliutil.ExpandPaths(cfg.MotifFiles)
	if err != nil {
		return nil, &motif.LoadError{Err: err}
	}
	for _, f := range files {
		ms, err := motif.LoadMotifFile(f)
		if err != nil {
			return nil, err
		}
		if err := cat.AddExplicit(ms...); err != nil {
			return nil, err
		}
	}
	if err := cat.LoadExplicit(cfg.Motifs); err != nil {
		return nil, err
	}

	paths, err := cliutil.ExpandPaths(cfg.PWM)
	if err != nil {
		return nil, &motif.LoadError{Err: err}
	}
	if len(paths) > 0 {
		named, err := motif.LoadMatrixCollection(paths, cfg.Pseudocount)
		if err != nil {
			return nil, err
		}
		if cfg.Scorer == config.ScorerNone {
			// an unscored matrix must never look clean
			return nil, &motif.LoadError{Err: fmt.Errorf("--scorer none cannot scan %d matrices from --pwm; pick builtin or patser", len(named))}
		}
		specs := make([]motif.PWMSpec, len(named))
		for i, n := range named {
			specs[i] = motif.PWMSpec{
				ID:        n.ID,
				Freq:      n.Freq,
				PValue:    cfg.PValue,
				SpeciesGC: cfg.BackgroundGC,
				TargetGC:  cfg.GC,
			}
		}
		var cal motif.Calibrator = motif.ExactCalibrator{}
		if cfg.CutoffSet {
			cal = motif.FixedCalibrator{Score: cfg.Cutoff}
		}
		if err := cat.LoadPWM(specs, cal); err != nil {
			return nil, err
		}
	}
	cat.Seal()

	for _, m := range cat.Explicit() {
		cmdutil.Infof(stderr, cfg.Verbose, "motif %s %s (rc %s)", m.ID, m.Seq, m.RC)
	}
	for _, p := range cat.PWMs() {
		cmdutil.Infof(stderr, cfg.Verbose, "matrix %s width=%d entropy=%.2f bits cutoff=%.3f max=%.3f",
			p.ID, p.Width(), p.Entropy, p.Cutoff, p.MaxScore())
		if p.Cutoff > p.MaxScore() {
			cmdutil.Warnf(stderr, cfg.Quiet, "matrix %s cannot reach p-value %g; it will never hit", p.ID, cfg.PValue)
		}
	}
	if cat.Len() == 0 {
		cmdutil.Warnf(stderr, cfg.Quiet, "empty motif catalog; nothing to avoid")
	}
	return cat, nil
}

// NewScorer returns the configured PWM scorer, nil for "none". LoadCatalog
// refuses matrices under "none", so a nil scorer never hides a PWM.
func NewScorer(cfg config.Config) scan.Scorer {
	switch cfg.Scorer {
	case config.ScorerNone:
		return nil
	case config.ScorerPatser:
		timeout := cfg.ScorerTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		return &patser.Scorer{
			Path:      cfg.PatserPath,
			Timeout:   timeout,
			Args:      cfg.PatserArgs,
			KeepFiles: cfg.PatserKeep,
			MaxLnP:    cfg.MaxLnP,
		}
	}
	return scan.BuiltinScorer{}
}
