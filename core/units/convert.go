package units

import (
	"math"

	"units-system/internal/errors"
)

// Mode selects how affine (biased) scales are converted
type Mode int

const (
	// Absolute converts levels: 0 °C is 273.15 K
	Absolute Mode = iota
	// Relative converts intervals: a 10 °C difference is 10 K
	Relative
)

func (m Mode) String() string {
	if m == Relative {
		return "relative"
	}
	return "absolute"
}

// combine files term (dim, symbol, exp) into units. When dim already holds
// a different symbol the incoming term is rescaled into it and the factor
// returned.
func (r *Registry) combine(units UnitMap, dim Dimension, symbol string, exp int) float64 {
	t, ok := units[dim]
	if !ok {
		units[dim] = Term{Symbol: symbol, Exp: exp}
		return 1
	}
	factor := 1.0
	if t.Symbol != symbol {
		factor = math.Pow(r.mustFactor(symbol, t.Symbol), float64(exp))
	}
	units[dim] = Term{Symbol: t.Symbol, Exp: t.Exp + exp}
	return factor
}

// detailed performs one substitution pass and reports whether any unit had
// a decomposition.
func (m Measure) detailed() (Measure, bool) {
	if len(m.units) == 0 {
		return m, false
	}
	reg := m.reg
	mag := m.magnitude
	units := make(UnitMap, len(m.units))
	compound := false

	for _, dim := range m.units.Dimensions() {
		t := m.units[dim]
		def, err := reg.Lookup(t.Symbol)
		if err != nil {
			panic("INVARIANT VIOLATED: " + err.Error())
		}
		if def.Decomposition == nil {
			mag *= reg.combine(units, dim, t.Symbol, t.Exp)
			continue
		}
		compound = true
		dec := def.Decomposition
		mag *= math.Pow(dec.magnitude, float64(t.Exp))
		for _, d := range dec.units.Dimensions() {
			dt := dec.units[d]
			mag *= reg.combine(units, d, dt.Symbol, dt.Exp*t.Exp)
		}
	}
	return Measure{reg: reg, magnitude: mag, units: units.Clone()}, compound
}

// DetailedUnits replaces every unit that has a decomposition by that
// decomposition, one level deep.
func (m Measure) DetailedUnits() Measure {
	d, _ := m.detailed()
	return d
}

// Base decomposes repeatedly until only primitive units remain.
// Decompositions only reference previously registered units, so this
// terminates.
func (m Measure) Base() Measure {
	cur := m
	for {
		next, compound := cur.detailed()
		if !compound {
			return next
		}
		cur = next
	}
}

// In returns the magnitude of m expressed in the units of target. Both
// sides are fully decomposed and must have identical dimensions and
// exponents. In Absolute mode a single first-power dimension also applies
// the affine bias.
func (m Measure) In(target Measure, mode Mode) (float64, error) {
	v, err := m.in(target, mode)
	if reg := m.registry(target); reg != nil {
		reg.observer.ObserveConversion(err)
	}
	return v, err
}

func (m Measure) in(target Measure, mode Mode) (float64, error) {
	this := m.Base()
	other := target.Base()

	if len(this.units) != len(other.units) {
		return 0, errors.InconsistentUnits(this.units.String(), other.units.String())
	}
	mag := this.magnitude / other.magnitude
	for dim, t := range this.units {
		o, ok := other.units[dim]
		if !ok || o.Exp != t.Exp {
			return 0, errors.InconsistentUnits(this.units.String(), other.units.String())
		}
		if t.Symbol != o.Symbol {
			f, err := this.reg.ConversionFactor(t.Symbol, o.Symbol)
			if err != nil {
				return 0, err
			}
			mag *= math.Pow(f, float64(t.Exp))
		}
	}

	if mode != Relative && len(this.units) == 1 {
		for dim, t := range this.units {
			if t.Exp != 1 {
				break
			}
			bias, err := this.reg.ConversionBias(t.Symbol, other.units[dim].Symbol)
			if err != nil {
				return 0, err
			}
			mag += bias
		}
	}
	return mag, nil
}

// Convert expresses m in the units of target; target's magnitude is ignored.
func (m Measure) Convert(target Measure, mode Mode) (Measure, error) {
	unit := target.UnitOnly()
	v, err := m.In(unit, mode)
	if err != nil {
		return Measure{}, err
	}
	return Measure{reg: m.registry(target), magnitude: v, units: unit.units}, nil
}

// ConvertTo parses a unit expression and converts m into it
func (m Measure) ConvertTo(expression string, mode Mode) (Measure, error) {
	if m.reg == nil {
		return Measure{}, errors.Input("measure has no registry")
	}
	target, err := m.reg.Parse(expression)
	if err != nil {
		return Measure{}, err
	}
	return m.Convert(target, mode)
}

// SIUnits maps each dimension of m to its SI reference. Dimensions without
// a reference keep their unit.
func (m Measure) SIUnits() UnitMap {
	units := make(UnitMap, len(m.units))
	for _, dim := range m.units.Dimensions() {
		t := m.units[dim]
		ref, ok := m.reg.si.Get(dim)
		switch {
		case !ok:
			m.reg.combine(units, dim, t.Symbol, t.Exp)
		case ref.IsCompound():
			for _, d := range ref.Units.Dimensions() {
				rt := ref.Units[d]
				m.reg.combine(units, d, rt.Symbol, rt.Exp*t.Exp)
			}
		default:
			m.reg.combine(units, dim, ref.Symbol, t.Exp)
		}
	}
	return units.Clone()
}

// ToSI converts m into the SI units of its dimensions
func (m Measure) ToSI() (Measure, error) {
	if m.IsMagnitude() {
		return m, nil
	}
	return m.Convert(Measure{reg: m.reg, magnitude: 1, units: m.SIUnits()}, Absolute)
}

// Dimension infers the dimension of m: the first dimension, in reference
// order, whose SI reference decomposes to the same SI base units as m.
// It returns NoDimension when nothing matches.
func (m Measure) Dimension() Dimension {
	if m.reg == nil || m.IsMagnitude() {
		return NoDimension
	}
	want := m.Base().SIUnits()
	var found Dimension
	m.reg.si.Range(func(dim Dimension, ref Reference) bool {
		refMeasure, ok := m.reg.referenceMeasure(ref)
		if !ok {
			return true
		}
		if refMeasure.Base().SIUnits().Equal(want) {
			found = dim
			return false
		}
		return true
	})
	return found
}

func (r *Registry) referenceMeasure(ref Reference) (Measure, bool) {
	if ref.IsCompound() {
		return Measure{reg: r, magnitude: 1, units: ref.Units}, true
	}
	m, err := r.Unit(ref.Symbol)
	if err != nil {
		return Measure{}, false
	}
	return m, true
}
