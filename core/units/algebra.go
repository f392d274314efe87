package units

import (
	"math"

	"units-system/internal/errors"
)

// Scale multiplies the magnitude by f
func (m Measure) Scale(f float64) Measure {
	return Measure{reg: m.reg, magnitude: m.magnitude * f, units: m.units}
}

// Negate flips the sign of the magnitude
func (m Measure) Negate() Measure {
	return m.Scale(-1)
}

// Abs returns the measure with a non-negative magnitude
func (m Measure) Abs() Measure {
	return Measure{reg: m.reg, magnitude: math.Abs(m.magnitude), units: m.units}
}

// Mul multiplies two measures. For a dimension present in both operands
// the left operand's unit is kept and the right contribution is rescaled
// into it.
func (m Measure) Mul(other Measure) Measure {
	reg := m.registry(other)
	mag := m.magnitude * other.magnitude
	units := make(UnitMap, len(m.units)+len(other.units))
	for dim, t := range m.units {
		units[dim] = t
	}
	for dim, o := range other.units {
		t, ok := units[dim]
		if !ok {
			units[dim] = o
			continue
		}
		if t.Symbol != o.Symbol {
			mag *= math.Pow(reg.mustFactor(o.Symbol, t.Symbol), float64(o.Exp))
		}
		units[dim] = Term{Symbol: t.Symbol, Exp: t.Exp + o.Exp}
	}
	return Measure{reg: reg, magnitude: mag, units: units.Clone()}
}

// Inverse returns 1/m
func (m Measure) Inverse() Measure {
	units := make(UnitMap, len(m.units))
	for dim, t := range m.units {
		units[dim] = Term{Symbol: t.Symbol, Exp: -t.Exp}
	}
	return Measure{reg: m.reg, magnitude: 1 / m.magnitude, units: units}
}

// Div divides m by other
func (m Measure) Div(other Measure) Measure {
	return m.Mul(other.Inverse())
}

// DivScalar divides the magnitude by x
func (m Measure) DivScalar(x float64) Measure {
	return m.Scale(1 / x)
}

// Pow raises m to an integer power: every exponent is multiplied by n and
// the magnitude raised to n.
func (m Measure) Pow(n int) Measure {
	if n == 0 {
		return Measure{reg: m.reg, magnitude: 1}
	}
	units := make(UnitMap, len(m.units))
	for dim, t := range m.units {
		units[dim] = Term{Symbol: t.Symbol, Exp: t.Exp * n}
	}
	return Measure{reg: m.reg, magnitude: math.Pow(m.magnitude, float64(n)), units: units}
}

// PowReal is Pow for a float exponent; only integral values are accepted.
func (m Measure) PowReal(x float64) (Measure, error) {
	if x != math.Trunc(x) || math.IsInf(x, 0) || math.Abs(x) > math.MaxInt32 {
		return Measure{}, errors.InvalidPower(x)
	}
	return m.Pow(int(x)), nil
}

// Add converts other into m's units and adds the magnitudes. The result
// keeps m's units.
func (m Measure) Add(other Measure) (Measure, error) {
	v, err := other.In(m.UnitOnly(), Absolute)
	if err != nil {
		return Measure{}, err
	}
	return Measure{reg: m.registry(other), magnitude: m.magnitude + v, units: m.units}, nil
}

// Sub is Add with the negated right operand
func (m Measure) Sub(other Measure) (Measure, error) {
	return m.Add(other.Negate())
}
