// core/motif/pwm.go
package motif

import (
	"fmt"

	"github.com/levantapatin/siteout/core/nucleotide"
)

// PWM is a calibrated position weight matrix motif.
type PWM struct {
	ID      string
	Freq    FrequencyMatrix
	Weights [][4]float64 // log2 odds vs species background
	// Cutoff is the minimum window score counted as a hit.
	Cutoff    float64
	PValue    float64
	SpeciesGC float64
	TargetGC  float64
	// Entropy is the matrix information content in bits.
	Entropy float64
}

// Width is the motif length.
func (p *PWM) Width() int { return len(p.Weights) }

// MaxScore is the best attainable window score.
func (p *PWM) MaxScore() float64 {
	s := 0.0
	for _, row := range p.Weights {
		best := row[0]
		for _, v := range row[1:] {
			if v > best {
				best = v
			}
		}
		s += best
	}
	return s
}

// Score returns the forward-strand score of the window starting at pos.
// ok is false when the window runs off seq or holds a non-ACGT base.
func (p *PWM) Score(seq []byte, pos int) (score float64, ok bool) {
	w := len(p.Weights)
	if pos < 0 || pos+w > len(seq) {
		return 0, false
	}
	for i := 0; i < w; i++ {
		j := nucleotide.Index(seq[pos+i])
		if j < 0 {
			return 0, false
		}
		score += p.Weights[i][j]
	}
	return score, true
}

// ScoreRC returns the score of the reverse-complement strand for the window
// starting at pos (forward coordinates).
func (p *PWM) ScoreRC(seq []byte, pos int) (score float64, ok bool) {
	w := len(p.Weights)
	if pos < 0 || pos+w > len(seq) {
		return 0, false
	}
	for i := 0; i < w; i++ {
		j := nucleotide.Index(seq[pos+w-1-i])
		if j < 0 {
			return 0, false
		}
		score += p.Weights[i][3-j] // A<->T, C<->G under the ACGT column order
	}
	return score, true
}

// PWMSpec is the load-time description of a PWM motif.
type PWMSpec struct {
	ID        string
	Freq      FrequencyMatrix
	PValue    float64
	SpeciesGC float64
	TargetGC  float64
}

// NewPWM builds the weight matrix and computes the cutoff once with cal.
func NewPWM(spec PWMSpec, cal Calibrator) (*PWM, error) {
	if err := spec.Freq.Validate(); err != nil {
		return nil, &LoadError{ID: spec.ID, Err: err}
	}
	if spec.PValue <= 0 || spec.PValue > 1 {
		return nil, &LoadError{ID: spec.ID, Err: fmt.Errorf("p-value %v must be in (0,1]", spec.PValue)}
	}
	wm, err := spec.Freq.WeightMatrix(spec.SpeciesGC)
	if err != nil {
		return nil, &LoadError{ID: spec.ID, Err: err}
	}
	kl, _ := spec.Freq.KLEntropy(spec.SpeciesGC)
	p := &PWM{
		ID:        spec.ID,
		Freq:      spec.Freq,
		Weights:   wm,
		PValue:    spec.PValue,
		SpeciesGC: spec.SpeciesGC,
		TargetGC:  spec.TargetGC,
		Entropy:   kl,
	}
	cut, err := cal.Cutoff(p, spec.PValue, spec.TargetGC)
	if err != nil {
		return nil, &LoadError{ID: spec.ID, Err: fmt.Errorf("calibrate cutoff: %w", err)}
	}
	p.Cutoff = cut
	return p, nil
}
