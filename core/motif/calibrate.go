// core/motif/calibrate.go
package motif

import (
	"fmt"
	"math"
)

// Calibrator turns a p-value into a score cutoff for one matrix. It is a
// pluggable, externally verifiable step; see ExactCalibrator.
type Calibrator interface {
	Cutoff(p *PWM, pValue, targetGC float64) (float64, error)
}

// FixedCalibrator returns the same cutoff for every matrix.
type FixedCalibrator struct{ Score float64 }

func (f FixedCalibrator) Cutoff(*PWM, float64, float64) (float64, error) { return f.Score, nil }

// ExactCalibrator computes the single-strand score distribution of a matrix
// for windows drawn with the target GC composition and returns the lowest
// score whose upper tail probability is <= the p-value.
//
// Weights are rounded to multiples of Resolution before the convolution, so
// the cutoff is exact up to width*Resolution/2.
type ExactCalibrator struct {
	Resolution float64 // default 0.01
}

// Unreachable is added above the max score when no window reaches the
// p-value; such a matrix never produces a hit.
const Unreachable = 1e-6

func composition(gc float64) ([4]float64, error) {
	if gc < 0 || gc > 1 || math.IsNaN(gc) {
		return [4]float64{}, fmt.Errorf("target GC %v outside [0,1]", gc)
	}
	return [4]float64{(1 - gc) / 2, gc / 2, gc / 2, (1 - gc) / 2}, nil
}

func (c ExactCalibrator) Cutoff(p *PWM, pValue, targetGC float64) (float64, error) {
	res := c.Resolution
	if res <= 0 {
		res = 0.01
	}
	if p.Width() == 0 {
		return 0, fmt.Errorf("empty matrix")
	}
	q, err := composition(targetGC)
	if err != nil {
		return 0, err
	}

	// integer weights and their per-position min/max
	iw := make([][4]int, p.Width())
	minSum, maxSum := 0, 0
	for i, row := range p.Weights {
		lo, hi := math.MaxInt, math.MinInt
		for j := 0; j < 4; j++ {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				return 0, fmt.Errorf("non-finite weight at position %d", i+1)
			}
			v := int(math.Round(row[j] / res))
			iw[i][j] = v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		minSum += lo
		maxSum += hi
	}
	span := maxSum - minSum
	if span > 50_000_000 {
		return 0, fmt.Errorf("score range too wide for resolution %v", res)
	}

	dist := make([]float64, span+1)
	next := make([]float64, span+1)
	reach := make([]bool, span+1)
	nreach := make([]bool, span+1)
	dist[0] = 1 // offset by minSum
	reach[0] = true
	run := 0
	for i := range iw {
		lo, hi := math.MaxInt, math.MinInt
		for j := 0; j < 4; j++ {
			if iw[i][j] < lo {
				lo = iw[i][j]
			}
			if iw[i][j] > hi {
				hi = iw[i][j]
			}
		}
		for k := range next {
			next[k] = 0
			nreach[k] = false
		}
		for k := 0; k <= run; k++ {
			if !reach[k] {
				continue
			}
			pk := dist[k]
			for j := 0; j < 4; j++ {
				t := k + iw[i][j] - lo
				nreach[t] = true
				next[t] += pk * q[j]
			}
		}
		run += hi - lo
		dist, next = next, dist
		reach, nreach = nreach, reach
	}

	// walk the tail downwards; the cutoff is the lowest score a window of
	// the target composition takes with non-zero probability whose tail is
	// still within pValue
	tail := 0.0
	cut := -1
	for k := span; k >= 0; k-- {
		tail += dist[k]
		if tail > pValue*(1+1e-9) {
			break
		}
		if reach[k] && dist[k] > 0 {
			cut = k
		}
	}
	if cut < 0 {
		return p.MaxScore() + Unreachable, nil
	}
	// rounding can lift the top bin above the real maximum
	return math.Min(float64(cut+minSum)*res, p.MaxScore()), nil
}
