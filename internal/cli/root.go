// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/levantapatin/siteout/internal/config"
	"github.com/levantapatin/siteout/internal/version"
)

// Mode is the working subcommand.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeRefine   Mode = "refine"
	ModeSpacer   Mode = "spacer"
	ModeScan     Mode = "scan"
)

// Handler runs one validated command.
type Handler func(ctx context.Context, mode Mode, cfg config.Config) error

// UsageError marks bad flags or arguments.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usagef(format string, a ...any) error {
	return &UsageError{Err: fmt.Errorf(format, a...)}
}

// NewRoot builds the siteout command tree. h is called with the decoded
// configuration of the subcommand the user picked.
func NewRoot(h Handler) *cobra.Command {
	root := &cobra.Command{
		Use:   "siteout",
		Short: "Design DNA free of transcription factor binding sites",
		Long: `siteout synthesizes spacer DNA between fixed functional fragments so that
no spacer matches a forbidden motif: an explicit sequence (either strand) or a
significant hit of a position weight matrix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}
	root.PersistentFlags().String("config", "", "config file (default ./siteout.yaml or $HOME/.config/siteout/siteout.yaml)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &UsageError{Err: err} })

	generate := &cobra.Command{
		Use:   "generate --design FILE",
		Short: "Synthesize spacers for a design file",
		Long: `Build a sequence from a design: uppercase literals are functional blocks kept
verbatim, N is a spacer of N bases at --gc, N@0.4 a spacer with its own GC
target, and a lowercase literal a spacer that starts from that sequence.
Tokens are separated by whitespace or commas; '#' starts a comment.`,
		Example: `  siteout generate --design construct.txt --motif GGGG --pwm matrices.zip --seed 7
  echo '["ATGCGT", 10, "TTTAAA"]' > d.txt && siteout generate --design d.txt -m GGGG`,
	}
	generate.Flags().StringP("design", "d", "", "design file ('-' for stdin)")

	refine := &cobra.Command{
		Use:   "refine --sequence FILE",
		Short: "Remove motif hits from an existing sequence",
		Long: `Treat a FASTA record as mutable spacer, except for --protect ranges which are
kept verbatim, and remove motif hits from it.`,
		Example: `  siteout refine --sequence promoter.fa --protect 0-40 --protect 120-160 --pwm jaspar/`,
	}
	refine.Flags().StringP("sequence", "s", "", "FASTA file with one record ('-' for stdin, gzip ok)")
	refine.Flags().StringSlice("protect", nil, "0-based half-open range start-end kept verbatim (repeatable)")

	spacer := &cobra.Command{
		Use:     "spacer --length N",
		Short:   "Build one neutral spacer",
		Example: `  siteout spacer --length 200 --gc 0.45 --pwm matrices/ -o fasta`,
	}
	spacer.Flags().IntP("length", "l", 0, "spacer length")

	scanCmd := &cobra.Command{
		Use:   "scan --sequence FILE",
		Short: "Report motif hits without changing the sequence",
		Long:  `Scan a FASTA record for catalog hits. Exit status is 1 when any hit is found.`,
	}
	scanCmd.Flags().StringP("sequence", "s", "", "FASTA file with one record ('-' for stdin, gzip ok)")

	for mode, c := range map[Mode]*cobra.Command{
		ModeGenerate: generate, ModeRefine: refine, ModeSpacer: spacer, ModeScan: scanCmd,
	} {
		registerShared(c.Flags())
		c.Args = cobra.NoArgs
		c.RunE = runner(mode, h)
		root.AddCommand(c)
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "siteout version %s\n", version.Version)
			return err
		},
	})
	return root
}

func runner(mode Mode, h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cmd.Flags(), file)
		if err != nil {
			return &UsageError{Err: err}
		}
		if err := Validate(mode, cfg); err != nil {
			return err
		}
		return h(cmd.Context(), mode, cfg)
	}
}

// Validate checks cfg for mode.
func Validate(mode Mode, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return &UsageError{Err: err}
	}
	switch mode {
	case ModeGenerate:
		if cfg.Design == "" {
			return usagef("generate needs --design")
		}
	case ModeRefine, ModeScan:
		if cfg.Sequence == "" {
			return usagef("%s needs --sequence", mode)
		}
	case ModeSpacer:
		if cfg.Length < 0 {
			return usagef("--length must be ≥ 0")
		}
	default:
		return usagef("unknown mode %q", mode)
	}
	if mode != ModeRefine && len(cfg.Protect) > 0 {
		return usagef("--protect only applies to refine")
	}
	return nil
}

// SetIO points the command tree at the given writers.
func SetIO(root *cobra.Command, stdout, stderr io.Writer) {
	root.SetOut(stdout)
	root.SetErr(stderr)
}
