// core/scan/ac.go
package scan

import "github.com/levantapatin/siteout/core/nucleotide"

// seed is the longest unambiguous run of one motif orientation. Matches of
// the seed are verified against the whole motif with IUPAC rules.
type seed struct {
	motif  int
	strand byte
	pat    []byte // full oriented motif
	run    []byte
	offset int // start of run within pat
}

// longestRun returns the longest A/C/G/T substring of p.
func longestRun(p []byte) (off, n int) {
	cur := 0
	for i := 0; i <= len(p); i++ {
		if i < len(p) && nucleotide.IsBase(p[i]) {
			cur++
			continue
		}
		if cur > n {
			off, n = i-cur, cur
		}
		cur = 0
	}
	return off, n
}

type acNode struct {
	next [4]int // -1 means no edge
	fail int
	out  []int // seed indices ending here
}

func buildAC(seeds []seed) []acNode {
	nodes := make([]acNode, 1)
	for i := range nodes[0].next {
		nodes[0].next[i] = -1
	}
	for si, s := range seeds {
		state := 0
		for _, b := range s.run {
			ix := nucleotide.Index(b)
			if nodes[state].next[ix] == -1 {
				nodes[state].next[ix] = len(nodes)
				var nn acNode
				for k := range nn.next {
					nn.next[k] = -1
				}
				nodes = append(nodes, nn)
			}
			state = nodes[state].next[ix]
		}
		nodes[state].out = append(nodes[state].out, si)
	}

	// failure links (BFS)
	queue := make([]int, 0, len(nodes))
	for ch := 0; ch < 4; ch++ {
		if nx := nodes[0].next[ch]; nx != -1 {
			nodes[nx].fail = 0
			queue = append(queue, nx)
		} else {
			nodes[0].next[ch] = 0
		}
	}
	for qh := 0; qh < len(queue); qh++ {
		r := queue[qh]
		for ch := 0; ch < 4; ch++ {
			s := nodes[r].next[ch]
			if s != -1 {
				queue = append(queue, s)
				f := nodes[r].fail
				nodes[s].fail = nodes[f].next[ch]
				nodes[s].out = append(nodes[s].out, nodes[nodes[s].fail].out...)
			} else {
				nodes[r].next[ch] = nodes[nodes[r].fail].next[ch]
			}
		}
	}
	return nodes
}

// scanAC calls fn with the motif start implied by every seed match in
// seq[lo:hi]. Non-ACGT bases reset the automaton.
func scanAC(seq []byte, lo, hi int, nodes []acNode, seeds []seed, fn func(si, start int)) {
	state := 0
	for i := lo; i < hi; i++ {
		ix := nucleotide.Index(seq[i])
		if ix < 0 {
			state = 0
			continue
		}
		state = nodes[state].next[ix]
		for _, si := range nodes[state].out {
			s := seeds[si]
			fn(si, i-(len(s.run)-1)-s.offset)
		}
	}
}

// verifyAt checks pat against seq[start:] base by base.
func verifyAt(seq []byte, start int, pat []byte) bool {
	if start < 0 || start+len(pat) > len(seq) {
		return false
	}
	for j := range pat {
		if !nucleotide.BaseMatch(seq[start+j], pat[j]) {
			return false
		}
	}
	return true
}
