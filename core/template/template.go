// core/template/template.go
package template

import (
	"fmt"
	"sort"

	"github.com/levantapatin/siteout/core/nucleotide"
	"github.com/levantapatin/siteout/core/sampler"
	"github.com/levantapatin/siteout/core/span"
)

// Kind tags a block as immutable caller sequence or synthesized filler.
type Kind int

const (
	Functional Kind = iota
	Spacer
)

func (k Kind) String() string {
	if k == Functional {
		return "functional"
	}
	return "spacer"
}

// BlockSpec describes one block before the template is built.
//
// Functional specs carry Seq. Spacer specs carry Length and TargetGC, and an
// optional Seq to start from (refine mode); when Seq is set Length is ignored.
type BlockSpec struct {
	Kind     Kind
	Seq      string
	Length   int
	TargetGC float64
}

// Block is a built block occupying [Start, End) of the template.
type Block struct {
	Kind     Kind
	Start    int
	End      int
	TargetGC float64
}

func (b Block) Range() span.Range { return span.Range{Start: b.Start, End: b.End} }

func (b Block) Len() int { return b.End - b.Start }

// Template owns the working sequence. Only spacer positions may change, and
// only through Mutate.
type Template struct {
	blocks []Block
	seq    []byte
	// original functional content, kept to verify the invariant on render
	fixed map[int][]byte
}

// New builds a template from specs, synthesizing unseeded spacers with s.
func New(specs []BlockSpec, s *sampler.Sampler) (*Template, error) {
	t := &Template{fixed: make(map[int][]byte)}
	for i, sp := range specs {
		start := len(t.seq)
		switch sp.Kind {
		case Functional:
			lit, err := nucleotide.ValidateStrict(sp.Seq)
			if err != nil {
				return nil, &TemplateParseError{Line: 0, Token: sp.Seq, Reason: fmt.Sprintf("block %d: %v", i+1, err)}
			}
			if lit == "" {
				return nil, &TemplateParseError{Reason: fmt.Sprintf("block %d: empty functional sequence", i+1)}
			}
			t.seq = append(t.seq, lit...)
			t.fixed[len(t.blocks)] = []byte(lit)
		case Spacer:
			if sp.TargetGC < 0 || sp.TargetGC > 1 {
				return nil, &TemplateParseError{Reason: fmt.Sprintf("block %d: GC target %.3f outside [0,1]", i+1, sp.TargetGC)}
			}
			if sp.Seq != "" {
				lit, err := nucleotide.ValidateStrict(sp.Seq)
				if err != nil {
					return nil, &TemplateParseError{Token: sp.Seq, Reason: fmt.Sprintf("block %d: %v", i+1, err)}
				}
				t.seq = append(t.seq, lit...)
			} else {
				if sp.Length < 0 {
					return nil, &TemplateParseError{Reason: fmt.Sprintf("block %d: negative spacer length %d", i+1, sp.Length)}
				}
				t.seq = append(t.seq, s.Synthesize(sp.Length, sp.TargetGC)...)
			}
		default:
			return nil, fmt.Errorf("block %d: unknown kind %d", i+1, sp.Kind)
		}
		t.blocks = append(t.blocks, Block{Kind: sp.Kind, Start: start, End: len(t.seq), TargetGC: sp.TargetGC})
	}
	return t, nil
}

// Len returns the total sequence length.
func (t *Template) Len() int { return len(t.seq) }

// Blocks returns a copy of the block list.
func (t *Template) Blocks() []Block { return append([]Block(nil), t.blocks...) }

// Base returns the current base at pos.
func (t *Template) Base(pos int) byte { return t.seq[pos] }

// Assemble returns the blocks concatenated in order. The result is a copy.
func (t *Template) Assemble() []byte { return append([]byte(nil), t.seq...) }

// View returns the live buffer for read-only scanning. Callers must not
// retain it across a Mutate.
func (t *Template) View() []byte { return t.seq }

// Render returns the final immutable snapshot.
func (t *Template) Render() string { return string(t.seq) }

// SpacerRanges returns the mutable ranges in order; empty spacers are omitted.
func (t *Template) SpacerRanges() []span.Range {
	var out []span.Range
	for _, b := range t.blocks {
		if b.Kind == Spacer && b.Len() > 0 {
			out = append(out, b.Range())
		}
	}
	return out
}

// blockAt returns the index of the block containing pos, or -1.
func (t *Template) blockAt(pos int) int {
	i := sort.Search(len(t.blocks), func(i int) bool { return t.blocks[i].End > pos })
	if i < len(t.blocks) && t.blocks[i].Start <= pos {
		return i
	}
	return -1
}

// TargetGC returns the GC target of the spacer holding pos, or 0.5 when pos
// is not inside a spacer.
func (t *Template) TargetGC(pos int) float64 {
	if i := t.blockAt(pos); i >= 0 && t.blocks[i].Kind == Spacer {
		return t.blocks[i].TargetGC
	}
	return 0.5
}

// Mutate replaces the base at pos. It is the only way a template changes.
func (t *Template) Mutate(pos int, b byte) error {
	if pos < 0 || pos >= len(t.seq) {
		return &OutOfRangeError{Pos: pos, Len: len(t.seq), Base: b, Reason: "outside sequence bounds"}
	}
	if !nucleotide.IsBase(b) {
		return &OutOfRangeError{Pos: pos, Len: len(t.seq), Base: b, Reason: fmt.Sprintf("invalid base %q", b)}
	}
	i := t.blockAt(pos)
	if i < 0 || t.blocks[i].Kind != Spacer {
		return &OutOfRangeError{Pos: pos, Len: len(t.seq), Base: b, Reason: "inside a functional block"}
	}
	t.seq[pos] = b
	return nil
}

// CheckFunctional verifies every functional block still holds its input
// sequence.
func (t *Template) CheckFunctional() error {
	for i, want := range t.fixed {
		b := t.blocks[i]
		if string(t.seq[b.Start:b.End]) != string(want) {
			return fmt.Errorf("functional block %d (%d-%d) was modified", i+1, b.Start, b.End)
		}
	}
	return nil
}
