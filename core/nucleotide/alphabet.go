// core/nucleotide/alphabet.go
package nucleotide

import (
	"fmt"
	"unicode"
)

// Bases is the synthesis alphabet in matrix column order.
const Bases = "ACGT"

var baseIndex [256]int8

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i := 0; i < len(Bases); i++ {
		baseIndex[Bases[i]] = int8(i)
		baseIndex[Bases[i]+('a'-'A')] = int8(i)
	}
}

// Index returns the matrix column of b (A=0 C=1 G=2 T=3) or -1.
func Index(b byte) int { return int(baseIndex[b]) }

// IsBase reports whether b is one of A, C, G, T (upper case only).
func IsBase(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

// IsGC reports whether b is G or C.
func IsGC(b byte) bool { return b == 'G' || b == 'C' }

// Normalize removes whitespace/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// ValidateStrict returns the normalized sequence or an error if it holds
// anything other than A/C/G/T.
func ValidateStrict(raw string) (string, error) {
	s := Normalize(raw)
	for i := 0; i < len(s); i++ {
		if !IsBase(s[i]) {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T", s[i], i+1)
		}
	}
	return s, nil
}

// ValidateIUPAC returns the normalized sequence or an error if any char is
// outside the IUPAC DNA alphabet. Empty input is rejected.
func ValidateIUPAC(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if iupacMask[s[i]] == 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N", s[i], i+1)
		}
	}
	return s, nil
}
