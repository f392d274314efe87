// Package units - Dimensional analysis and units-of-measure algebra
//
// A Registry maps unit symbols to definitions and dimensions to their SI
// reference. It is populated once, frozen, and then shared by every Measure
// built from it. Measures are immutable values; all operators return new
// instances.
package units

import (
	"sort"
	"strings"
)

// Dimension is a symbolic classification of a physical quantity
// (length, mass, speed, ...). The empty Dimension marks a pure scale
// factor such as a bare prefix.
type Dimension string

// NoDimension is the dimension of pure scale pseudo-units
const NoDimension Dimension = ""

// Term is one factor of a compound unit: a unit symbol raised to an
// integer exponent.
type Term struct {
	Symbol string
	Exp    int
}

// UnitMap maps each dimension present in a measure to the unit chosen to
// express it. Zero exponents are never stored.
type UnitMap map[Dimension]Term

// Clone returns a copy of u without zero-exponent terms
func (u UnitMap) Clone() UnitMap {
	out := make(UnitMap, len(u))
	for d, t := range u {
		if t.Exp != 0 {
			out[d] = t
		}
	}
	return out
}

// Equal reports whether both maps hold the same terms
func (u UnitMap) Equal(other UnitMap) bool {
	if len(u) != len(other) {
		return false
	}
	for d, t := range u {
		if o, ok := other[d]; !ok || o != t {
			return false
		}
	}
	return true
}

// Dimensions returns the dimensions of u in ascending order
func (u UnitMap) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(u))
	for d := range u {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// String renders the map in compact form (m/s**2)
func (u UnitMap) String() string {
	return describeUnits(u, nil)
}

// Definition describes one registered or prefix-synthesized unit.
type Definition struct {
	Symbol string
	Name   string

	// Dimension is NoDimension for pure scale factors
	Dimension Dimension

	// Factor is the ratio to the dimension's SI reference unit
	Factor float64

	// Bias is the additive offset of affine scales (°C, °F)
	Bias float64

	// Decomposition is the equivalent expression in more primitive units,
	// nil for primitive units
	Decomposition *Measure

	// Prefix is the prefix symbol when the definition was synthesized
	Prefix string
}

// IsScale reports whether the definition is a pure scale factor
func (d Definition) IsScale() bool {
	return d.Dimension == NoDimension
}

// Spec is a registration request. Which fields are set selects the form:
//
//	Expression set                 compound unit (Dimension optional, inferred when empty)
//	Reference set                  unit in terms of another (Factor, optional Bias, optional Dimension check)
//	neither                        base unit (Dimension and Factor required)
type Spec struct {
	Symbol     string
	Name       string
	Dimension  Dimension
	Factor     float64
	Reference  string
	Bias       float64
	Expression string

	// Value may be used instead of Expression when the measure is already built
	Value *Measure
}

// References returns the symbols a spec depends on: its reference unit and
// every identifier in its expression. Used to order batches of definitions.
func (s Spec) References() []string {
	var refs []string
	if s.Reference != "" {
		refs = append(refs, s.Reference)
	}
	if s.Expression != "" {
		refs = append(refs, Identifiers(s.Expression)...)
	}
	return refs
}

func (s Spec) form() string {
	switch {
	case s.Expression != "" || s.Value != nil:
		return "compound"
	case s.Reference != "":
		return "reference"
	default:
		return "base"
	}
}

func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Symbol)
	b.WriteString(" (")
	b.WriteString(s.form())
	b.WriteString(")")
	return b.String()
}
