// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/levantapatin/siteout/core/fasta"
	"github.com/levantapatin/siteout/core/nucleotide"
	"github.com/levantapatin/siteout/core/resolve"
	"github.com/levantapatin/siteout/core/sampler"
	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/core/span"
	"github.com/levantapatin/siteout/core/template"
	"github.com/levantapatin/siteout/internal/cli"
	"github.com/levantapatin/siteout/internal/cmdutil"
	"github.com/levantapatin/siteout/internal/config"
	"github.com/levantapatin/siteout/internal/writers"
	"github.com/levantapatin/siteout/pkg/api"
)

// Run executes one command and returns its exit status. Fatal errors are
// printed to stderr and produce no output on stdout.
func Run(ctx context.Context, stdout, stderr io.Writer, mode cli.Mode, cfg config.Config) int {
	if !writers.Has(cfg.Output) {
		fmt.Fprintf(stderr, "error: invalid --output %q (%s)\n", cfg.Output, strings.Join(writers.Formats(), " | "))
		return cmdutil.ExitUsage
	}

	rep, code, err := execute(ctx, stderr, mode, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cmdutil.ExitCode(err)
	}

	outw := bufio.NewWriter(stdout)
	if werr := writers.WriteReport(cfg.Output, outw, rep); writers.IsBrokenPipe(werr) {
		return code
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return cmdutil.ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return code
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return cmdutil.ExitRuntime
	}
	return code
}

func execute(ctx context.Context, stderr io.Writer, mode cli.Mode, cfg config.Config) (api.ReportV1, int, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cmdutil.Infof(stderr, cfg.Verbose, "seed %d", seed)

	cat, err := LoadCatalog(cfg, stderr)
	if err != nil {
		return api.ReportV1{}, 0, err
	}
	specs, name, err := buildSpecs(ctx, mode, cfg)
	if err != nil {
		return api.ReportV1{}, 0, err
	}
	if cfg.Name != "" {
		name = cfg.Name
	}

	rng := sampler.New(seed)
	tpl, err := template.New(specs, rng)
	if err != nil {
		return api.ReportV1{}, 0, err
	}
	set := scan.NewSet(cat, NewScorer(cfg))

	rep := api.ReportV1{Name: name, Mode: string(mode), Seed: seed, Motifs: toAPIMotifs(cat)}
	code := cmdutil.ExitOK

	if mode == cli.ModeScan {
		seq := tpl.View()
		hits, err := set.Scan(ctx, seq, []span.Range{{Start: 0, End: len(seq)}})
		if err != nil {
			return api.ReportV1{}, 0, err
		}
		rep.State = "clean"
		if len(hits) > 0 {
			rep.State = "hits"
			code = cmdutil.ExitHits
		}
		rep.Hits = ToAPIHits(hits, seq, cat)
	} else {
		eng := resolve.New(resolve.Config{
			MaxRounds:   cfg.MaxRounds,
			ZoneCeiling: cfg.ZoneCeiling,
			OnRound: func(round int, hits []scan.Hit) {
				cmdutil.Infof(stderr, cfg.Verbose, "round %d: %d hits", round, len(hits))
			},
		}, set, rng)
		res, err := eng.Run(ctx, tpl)
		if err != nil {
			return api.ReportV1{}, 0, err
		}
		if err := tpl.CheckFunctional(); err != nil {
			return api.ReportV1{}, 0, fmt.Errorf("internal error: %w", err)
		}
		rep.State = res.State.String()
		rep.Rounds = res.Rounds
		rep.Mutations = res.Mutations
		rep.Hits = ToAPIHits(res.Unresolved, tpl.View(), cat)
		if res.Err() != nil {
			cmdutil.Warnf(stderr, cfg.Quiet, "%v: %d hits left after %d rounds", res.Err(), len(res.Unresolved), res.Rounds)
			code = cmdutil.ExitHits
		}
	}

	seq := tpl.View()
	rep.Sequence = string(seq)
	rep.Length = len(seq)
	rep.GC = nucleotide.GCFraction(seq)
	rep.Blocks = toAPIBlocks(tpl)
	return rep, code, nil
}

// buildSpecs reads the template input of mode and returns its blocks and a
// default sequence name.
func buildSpecs(ctx context.Context, mode cli.Mode, cfg config.Config) ([]template.BlockSpec, string, error) {
	switch mode {
	case cli.ModeGenerate:
		rc, err := fasta.Open(cfg.Design)
		if err != nil {
			return nil, "", inputErr(err)
		}
		defer func() { _ = rc.Close() }()
		specs, err := template.ParseDesign(rc, cfg.GC)
		if pe, ok := err.(*template.TemplateParseError); ok {
			pe.Source = cfg.Design
		}
		name := "design"
		if cfg.Design != "-" {
			base := filepath.Base(strings.TrimSuffix(cfg.Design, ".gz"))
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return specs, name, inputErr(err)

	case cli.ModeSpacer:
		return []template.BlockSpec{{Kind: template.Spacer, Length: cfg.Length, TargetGC: cfg.GC}}, "spacer", nil

	case cli.ModeRefine, cli.ModeScan:
		rec, err := fasta.ReadOne(ctx, cfg.Sequence)
		if err != nil {
			return nil, "", inputErr(err)
		}
		name := rec.ID
		if name == "" {
			name = "sequence"
		}
		if mode == cli.ModeScan {
			// the whole record is scanned; a single functional block keeps it read-only
			s, err := nucleotide.ValidateStrict(string(rec.Seq))
			if err != nil {
				return nil, "", &template.TemplateParseError{Source: cfg.Sequence, Reason: err.Error()}
			}
			return []template.BlockSpec{{Kind: template.Functional, Seq: s}}, name, nil
		}
		protect := make([]span.Range, 0, len(cfg.Protect))
		for _, p := range cfg.Protect {
			r, err := template.ParseRange(p)
			if err != nil {
				return nil, "", &template.TemplateParseError{Source: "--protect", Token: p, Reason: err.Error()}
			}
			protect = append(protect, r)
		}
		specs, err := template.FromRecord(rec.Seq, protect, cfg.GC)
		if pe, ok := err.(*template.TemplateParseError); ok {
			pe.Source = cfg.Sequence
		}
		return specs, name, err
	}
	return nil, "", fmt.Errorf("unknown mode %q", mode)
}

// inputErr turns a failure to read an input file into a parse error so it
// exits as a usage problem. Cancellation passes through.
func inputErr(err error) error {
	var pe *template.TemplateParseError
	switch {
	case err == nil, errors.As(err, &pe), errors.Is(err, context.Canceled):
		return err
	}
	return &template.TemplateParseError{Source: "input", Reason: err.Error()}
}
