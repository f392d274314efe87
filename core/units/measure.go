package units

import (
	"math"

	"units-system/internal/errors"
)

// equalTolerance is the relative tolerance of value equality
const equalTolerance = 1e-12

// Measure is a magnitude paired with a compound unit. The zero Measure is
// the dimensionless number 0 with no registry attached.
type Measure struct {
	reg       *Registry
	magnitude float64
	units     UnitMap
}

// Scalar builds a unitless measure
func (r *Registry) Scalar(x float64) Measure {
	return Measure{reg: r, magnitude: x}
}

// Unit builds 1 symbol. A pure scale pseudo-unit (a bare prefix) yields
// its factor as a plain number.
func (r *Registry) Unit(symbol string) (Measure, error) {
	return r.New(1, symbol)
}

// New builds x symbol
func (r *Registry) New(x float64, symbol string) (Measure, error) {
	def, err := r.Lookup(symbol)
	if err != nil {
		return Measure{}, err
	}
	if def.IsScale() {
		return Measure{reg: r, magnitude: x * def.Factor}, nil
	}
	return Measure{reg: r, magnitude: x, units: UnitMap{def.Dimension: {Symbol: symbol, Exp: 1}}}, nil
}

// FromUnits builds x units. Every symbol must resolve to the dimension it
// is filed under.
func (r *Registry) FromUnits(x float64, units UnitMap) (Measure, error) {
	for dim, t := range units {
		d, err := r.DimensionOf(t.Symbol)
		if err != nil {
			return Measure{}, err
		}
		if d != dim {
			return Measure{}, errors.InconsistentDimension(t.Symbol, string(dim), string(d))
		}
	}
	return Measure{reg: r, magnitude: x, units: units.Clone()}, nil
}

// MustParse is Parse that panics on error. Intended for literals in
// definitions and tests.
func (r *Registry) MustParse(expression string) Measure {
	m, err := r.Parse(expression)
	if err != nil {
		panic(err)
	}
	return m
}

// Registry returns the registry the measure was built from
func (m Measure) Registry() *Registry {
	return m.reg
}

// Magnitude returns the numeric value in the measure's own units
func (m Measure) Magnitude() float64 {
	return m.magnitude
}

// Units returns a copy of the unit map
func (m Measure) Units() UnitMap {
	return m.units.Clone()
}

// Term returns the unit term filed under dim
func (m Measure) Term(dim Dimension) (Term, bool) {
	t, ok := m.units[dim]
	return t, ok
}

// UnitOnly returns 1 in the same units (strips the magnitude)
func (m Measure) UnitOnly() Measure {
	return Measure{reg: m.reg, magnitude: 1, units: m.units}
}

// IsMagnitude reports a plain number: no unit terms at all, without
// decomposing anything
func (m Measure) IsMagnitude() bool {
	return len(m.units) == 0
}

// Dimensionless reports whether the fully decomposed measure has no unit
// terms. Angles are not dimensionless: rad is a primitive unit.
func (m Measure) Dimensionless() bool {
	if m.IsMagnitude() {
		return true
	}
	return m.Base().IsMagnitude()
}

// Equal is value equality: other converted into m's units has the same
// magnitude within a relative tolerance. Incompatible measures are unequal.
func (m Measure) Equal(other Measure) bool {
	v, err := other.In(m.UnitOnly(), Absolute)
	if err != nil {
		return false
	}
	return approxEqual(m.magnitude, v)
}

// Identical is structural equality: same magnitude and same raw unit map
func (m Measure) Identical(other Measure) bool {
	return m.magnitude == other.magnitude && m.units.Equal(other.units)
}

// Compare orders two measures of the same dimension. It returns -1, 0 or
// +1, treating values within the equality tolerance as equal.
func (m Measure) Compare(other Measure) (int, error) {
	v, err := other.In(m.UnitOnly(), Absolute)
	if err != nil {
		return 0, err
	}
	switch {
	case approxEqual(m.magnitude, v):
		return 0, nil
	case m.magnitude < v:
		return -1, nil
	default:
		return 1, nil
	}
}

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < math.SmallestNonzeroFloat64*1e10 {
		return diff < math.SmallestNonzeroFloat64*1e10
	}
	return diff <= equalTolerance*scale
}

func (m Measure) registry(other Measure) *Registry {
	if m.reg != nil {
		return m.reg
	}
	return other.reg
}
