// core/nucleotide/rc.go
package nucleotide

import (
	"math"

	"github.com/bebop/poly/checks"
	"github.com/bebop/poly/transform"
)

// RevComp returns the reverse complement of an (IUPAC) DNA string.
func RevComp(seq string) string {
	if seq == "" {
		return ""
	}
	return transform.ReverseComplement(seq)
}

// RevCompBytes is RevComp for byte slices. nil in, nil out.
func RevCompBytes(seq []byte) []byte {
	if len(seq) == 0 {
		return nil
	}
	return []byte(transform.ReverseComplement(string(seq)))
}

// IsPalindrome reports whether seq equals its own reverse complement.
func IsPalindrome(seq string) bool { return seq != "" && RevComp(seq) == seq }

// GCFraction returns the G+C fraction of seq; 0 for an empty sequence.
func GCFraction(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := checks.GcContent(string(seq))
	if math.IsNaN(gc) {
		return 0
	}
	return gc
}
