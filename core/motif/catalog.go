// core/motif/catalog.go
package motif

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when a catalog is loaded after scanning started.
var ErrSealed = errors.New("catalog is sealed")

// Catalog holds the forbidden motifs of a run. It is filled once at startup
// and read-only afterwards.
type Catalog struct {
	explicit []Explicit
	pwms     []*PWM
	seen     map[string]bool // explicit Seq and RC already present
	sealed   bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{seen: map[string]bool{}}
}

// LoadExplicit normalizes, validates and adds literal motifs. A motif equal to
// an earlier one, or to its reverse complement, is dropped.
func (c *Catalog) LoadExplicit(list []string) error {
	ms := make([]Explicit, 0, len(list))
	for _, raw := range list {
		m, err := NewExplicit("", raw)
		if err != nil {
			return err
		}
		ms = append(ms, m)
	}
	return c.AddExplicit(ms...)
}

// AddExplicit adds already-built motifs, such as those from LoadMotifFile.
func (c *Catalog) AddExplicit(ms ...Explicit) error {
	if c.sealed {
		return ErrSealed
	}
	for _, m := range ms {
		if m.Seq == "" {
			return &LoadError{ID: m.ID, Err: fmt.Errorf("empty motif")}
		}
		if c.seen[m.Seq] {
			continue
		}
		c.seen[m.Seq] = true
		c.seen[m.RC] = true
		c.explicit = append(c.explicit, m)
	}
	return nil
}

// LoadPWM builds and calibrates every spec. The first failure aborts the load
// and leaves the catalog unchanged.
func (c *Catalog) LoadPWM(specs []PWMSpec, cal Calibrator) error {
	if c.sealed {
		return ErrSealed
	}
	if cal == nil {
		return &LoadError{Err: fmt.Errorf("no calibrator")}
	}
	built := make([]*PWM, 0, len(specs))
	ids := map[string]bool{}
	for _, p := range c.pwms {
		ids[p.ID] = true
	}
	for _, s := range specs {
		if ids[s.ID] {
			return &LoadError{ID: s.ID, Err: fmt.Errorf("duplicate matrix id")}
		}
		p, err := NewPWM(s, cal)
		if err != nil {
			return err
		}
		ids[s.ID] = true
		built = append(built, p)
	}
	c.pwms = append(c.pwms, built...)
	return nil
}

// Seal forbids further loads.
func (c *Catalog) Seal() { c.sealed = true }

// Explicit returns the literal motifs in load order.
func (c *Catalog) Explicit() []Explicit { return c.explicit }

// PWMs returns the matrix motifs in load order.
func (c *Catalog) PWMs() []*PWM { return c.pwms }

// Len is the total number of motifs.
func (c *Catalog) Len() int { return len(c.explicit) + len(c.pwms) }
