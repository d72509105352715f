package schema

import (
	"fmt"
	"time"
)

// Bond describes a fixed-income product. The CUSIP is the product key
// everywhere in the pipeline.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   float64
	Maturity time.Time
}

// Registry stores the tradable bond universe in a compact form.
// Lookups are explicit; an unknown CUSIP is reported, never auto-created.
type Registry struct {
	bonds       []Bond
	bondByCUSIP map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bondByCUSIP: make(map[string]int),
	}
}

// Add registers a new bond.
func (r *Registry) Add(bond Bond) error {
	if bond.CUSIP == "" {
		return fmt.Errorf("bond cusip is empty")
	}
	if bond.Ticker == "" {
		return fmt.Errorf("bond ticker is empty: %s", bond.CUSIP)
	}
	if _, ok := r.bondByCUSIP[bond.CUSIP]; ok {
		return fmt.Errorf("bond already exists: %s", bond.CUSIP)
	}
	r.bondByCUSIP[bond.CUSIP] = len(r.bonds)
	r.bonds = append(r.bonds, bond)
	return nil
}

// ByCUSIP returns the bond for a CUSIP.
func (r *Registry) ByCUSIP(cusip string) (Bond, bool) {
	idx, ok := r.bondByCUSIP[cusip]
	if !ok {
		return Bond{}, false
	}
	return r.bonds[idx], true
}

// Count returns the number of registered bonds.
func (r *Registry) Count() int {
	return len(r.bonds)
}

// At returns the bond by zero-based index, in registration order.
func (r *Registry) At(index int) (Bond, bool) {
	if index < 0 || index >= len(r.bonds) {
		return Bond{}, false
	}
	return r.bonds[index], true
}

// CUSIPs returns every registered CUSIP in registration order.
func (r *Registry) CUSIPs() []string {
	out := make([]string, len(r.bonds))
	for i, b := range r.bonds {
		out[i] = b.CUSIP
	}
	return out
}
