package template

import "fmt"

// TemplateParseError reports a malformed design input. It is fatal: no
// synthesis starts from a design that did not parse.
type TemplateParseError struct {
	Source string
	Line   int
	Token  string
	Reason string
}

func (e *TemplateParseError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = "design"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: bad token %q: %s", loc, e.Token, e.Reason)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}

// OutOfRangeError reports a write outside the mutable part of a template.
// Reaching the caller means an internal invariant was broken.
type OutOfRangeError struct {
	Pos    int
	Len    int
	Base   byte
	Reason string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("mutate position %d (len %d): %s", e.Pos, e.Len, e.Reason)
}
