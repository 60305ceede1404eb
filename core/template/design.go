// core/template/design.go
package template

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/levantapatin/siteout/core/nucleotide"
	"github.com/levantapatin/siteout/core/span"
)

// ParseDesign reads alternating functional literals and spacer lengths.
//
// Tokens are separated by whitespace or commas; '#' starts a comment.
//
//	ATGCGT      functional block (upper case A/C/G/T)
//	10          spacer of 10 bases at defaultGC
//	10@0.6      spacer of 10 bases at GC 0.6
//	acgtac      spacer seeded with this content (refined, not regenerated)
//	acgtac@0.4  seeded spacer with its own GC target
//
// A JSON-style list such as ["ATGCGT", 10, "TTTAAA"] is read the same way.
func ParseDesign(r io.Reader, defaultGC float64) ([]BlockSpec, error) {
	var specs []BlockSpec
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			switch r {
			case ' ', '\t', '\r', ',', '[', ']':
				return true
			}
			return false
		})
		for _, raw := range fields {
			tok := strings.Trim(raw, `"'`)
			if tok == "" {
				continue
			}
			spec, err := parseToken(tok, defaultGC)
			if err != nil {
				return nil, &TemplateParseError{Line: ln, Token: tok, Reason: err.Error()}
			}
			specs = append(specs, spec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &TemplateParseError{Line: ln, Reason: err.Error()}
	}
	if len(specs) == 0 {
		return nil, &TemplateParseError{Reason: "design holds no blocks"}
	}
	return specs, nil
}

func parseToken(tok string, defaultGC float64) (BlockSpec, error) {
	body, gc := tok, defaultGC
	if at := strings.IndexByte(tok, '@'); at >= 0 {
		body = tok[:at]
		v, err := strconv.ParseFloat(tok[at+1:], 64)
		if err != nil {
			return BlockSpec{}, fmt.Errorf("bad GC target: %v", err)
		}
		if v < 0 || v > 1 {
			return BlockSpec{}, fmt.Errorf("GC target %v outside [0,1]", v)
		}
		gc = v
	}
	if body == "" {
		return BlockSpec{}, fmt.Errorf("empty block")
	}
	if n, err := strconv.Atoi(body); err == nil {
		if n < 0 {
			return BlockSpec{}, fmt.Errorf("negative spacer length")
		}
		return BlockSpec{Kind: Spacer, Length: n, TargetGC: gc}, nil
	}
	switch {
	case body == strings.ToUpper(body):
		if body != tok {
			return BlockSpec{}, fmt.Errorf("functional blocks take no GC target")
		}
		if _, err := nucleotide.ValidateStrict(body); err != nil {
			return BlockSpec{}, err
		}
		return BlockSpec{Kind: Functional, Seq: body}, nil
	case body == strings.ToLower(body):
		seq, err := nucleotide.ValidateStrict(body)
		if err != nil {
			return BlockSpec{}, err
		}
		return BlockSpec{Kind: Spacer, Seq: seq, Length: len(seq), TargetGC: gc}, nil
	}
	return BlockSpec{}, fmt.Errorf("mixed case: use upper case for functional and lower case for refinable sequence")
}

// FromRecord turns a whole sequence into block specs for refine mode: the
// protected ranges become functional blocks, everything else is a seeded
// spacer at gc.
func FromRecord(seq []byte, protect []span.Range, gc float64) ([]BlockSpec, error) {
	s, err := nucleotide.ValidateStrict(string(seq))
	if err != nil {
		return nil, &TemplateParseError{Reason: err.Error()}
	}
	if s == "" {
		return nil, &TemplateParseError{Reason: "empty sequence"}
	}
	ps := append([]span.Range(nil), protect...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Start < ps[j].Start })
	for i, p := range ps {
		if p.Empty() || p.Start < 0 || p.End > len(s) {
			return nil, &TemplateParseError{Token: p.String(), Reason: fmt.Sprintf("protected range outside 0-%d", len(s))}
		}
		if i > 0 && ps[i-1].Overlaps(p) {
			return nil, &TemplateParseError{Token: p.String(), Reason: "protected ranges overlap"}
		}
	}
	var specs []BlockSpec
	cur := 0
	for _, p := range ps {
		if p.Start > cur {
			specs = append(specs, BlockSpec{Kind: Spacer, Seq: s[cur:p.Start], TargetGC: gc})
		}
		specs = append(specs, BlockSpec{Kind: Functional, Seq: s[p.Start:p.End]})
		cur = p.End
	}
	if cur < len(s) {
		specs = append(specs, BlockSpec{Kind: Spacer, Seq: s[cur:], TargetGC: gc})
	}
	return specs, nil
}

// ParseRange reads "start-end" (0-based, end exclusive).
func ParseRange(s string) (span.Range, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return span.Range{}, fmt.Errorf("range %q: want start-end", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return span.Range{}, fmt.Errorf("range %q: %v", s, err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return span.Range{}, fmt.Errorf("range %q: %v", s, err)
	}
	if end <= start || start < 0 {
		return span.Range{}, fmt.Errorf("range %q: need 0 <= start < end", s)
	}
	return span.Range{Start: start, End: end}, nil
}
