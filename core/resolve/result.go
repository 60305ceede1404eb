// core/resolve/result.go
package resolve

import (
	"errors"

	"github.com/levantapatin/siteout/core/scan"
	"github.com/levantapatin/siteout/core/span"
)

// ErrExhausted means the round budget ran out with hits left. The result
// still carries the best sequence found.
var ErrExhausted = errors.New("resolution exhausted: motif hits remain")

// State of the engine.
type State int

const (
	Scanning State = iota
	Mutating
	Converged
	Exhausted
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Mutating:
		return "mutating"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// MutationKind tells a single-base patch from a zone re-sample.
type MutationKind byte

const (
	Point    MutationKind = 'p'
	Resample MutationKind = 'r'
)

func (k MutationKind) String() string {
	if k == Resample {
		return "resample"
	}
	return "point"
}

// Mutation is one base write made by the engine.
type Mutation struct {
	Round int
	Zone  span.Range
	Pos   int
	Old   byte
	New   byte
	Kind  MutationKind
}

// Result of one engine run.
type Result struct {
	State State
	// Rounds is the number of mutation rounds performed.
	Rounds    int
	Mutations int
	Trace     []Mutation
	Sequence  string
	// Unresolved holds the hits left in Sequence; empty when Converged.
	Unresolved []scan.Hit
}

// Err is ErrExhausted for an exhausted run, nil otherwise.
func (r *Result) Err() error {
	if r.State == Exhausted {
		return ErrExhausted
	}
	return nil
}
