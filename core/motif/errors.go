package motif

import "fmt"

// LoadError reports a motif or matrix that could not be loaded or
// calibrated. A motif that cannot be scored cannot be avoided, so the run
// stops instead of skipping it.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("motif load: %v", e.Err)
	}
	return fmt.Sprintf("motif load %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
