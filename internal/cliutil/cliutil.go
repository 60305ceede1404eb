// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPaths expands globs among motif and matrix path arguments, keeping
// the first occurrence of each path so a file named twice loads once. "-"
// passes through; a glob that matches nothing is an error.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(args))
	add := func(p string) {
		key := p
		if p != "-" {
			key = filepath.Clean(p)
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, p)
		}
	}
	for _, a := range args {
		if a == "-" || !hasGlobMeta(a) {
			add(a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		for _, p := range m {
			add(p)
		}
	}
	return out, nil
}
