// internal/cli/flags.go
package cli

import (
	"github.com/spf13/pflag"

	"github.com/levantapatin/siteout/core/patser"
	"github.com/levantapatin/siteout/core/resolve"
	"github.com/levantapatin/siteout/internal/config"
)

// Defaults shared by flags and tests.
const (
	DefaultPValue = 0.001
	DefaultGC     = 0.5
	DefaultOutput = "text"
)

// registerShared adds the flags every working command accepts.
func registerShared(fs *pflag.FlagSet) {
	// catalog
	fs.StringSlice("motifs", nil, "explicit motif file(s), one motif per line (repeatable)")
	fs.StringSliceP("motif", "m", nil, "explicit motif literal, IUPAC allowed (repeatable)")
	fs.StringSlice("pwm", nil, "matrix or .sites file, directory, .zip or glob (repeatable); ID is the name up to the first _ or . (the full stem on collision)")
	fs.Float64("pvalue", DefaultPValue, "per-strand p-value defining a significant PWM hit")
	fs.Float64("pseudocount", 0, "pseudocount added when converting count matrices")
	fs.Float64("cutoff", 0, "fixed PWM score cutoff; skips p-value calibration")

	// composition
	fs.Float64("gc", DefaultGC, "target GC fraction of synthesized spacers")
	fs.Float64("background-gc", DefaultGC, "GC fraction of the species background used for PWM weights")

	// engine
	fs.Int64("seed", 0, "random seed (0 = derive from the clock; the seed used is reported)")
	fs.Int("max-rounds", resolve.DefaultMaxRounds, "mutation round budget")
	fs.Int("zone-ceiling", resolve.DefaultZoneCeiling, "point mutations per position before a zone is re-sampled")

	// scorer
	fs.String("scorer", config.ScorerBuiltin, "PWM scorer: builtin | patser | none")
	fs.String("patser-path", patser.DefaultPath, "patser executable")
	fs.StringSlice("patser-args", nil, "extra arguments passed to patser")
	fs.Bool("patser-keep", false, "keep patser work directories")
	fs.Duration("scorer-timeout", patser.DefaultTimeout, "timeout of one external scorer call")
	fs.Float64("max-lnp", 0, "patser only: drop sites whose ln(p-value) is not below this (0 = keep all)")

	// output
	fs.StringP("output", "o", DefaultOutput, "output format: text | pretty | json | jsonl | fasta | csv")
	fs.String("name", "", "name of the output sequence")
	fs.BoolP("quiet", "q", false, "suppress warnings")
	fs.BoolP("verbose", "v", false, "log catalog and per-round progress to stderr")
}
