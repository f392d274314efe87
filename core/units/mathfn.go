package units

import (
	"math"

	"units-system/internal/errors"
)

// Sqrt takes the square root. Every exponent must be even, directly or
// after full decomposition.
func (m Measure) Sqrt() (Measure, error) {
	if m.IsMagnitude() {
		return Measure{reg: m.reg, magnitude: math.Sqrt(m.magnitude)}, nil
	}
	x := m
	if !allEven(x.units) {
		x = x.Base()
		if !allEven(x.units) {
			return Measure{}, errors.InvalidSqrt(m.units.String())
		}
	}
	units := make(UnitMap, len(x.units))
	for dim, t := range x.units {
		units[dim] = Term{Symbol: t.Symbol, Exp: t.Exp / 2}
	}
	return Measure{reg: x.reg, magnitude: math.Sqrt(x.magnitude), units: units}, nil
}

func allEven(units UnitMap) bool {
	for _, t := range units {
		if t.Exp%2 != 0 {
			return false
		}
	}
	return true
}

// radians returns the angle in radians; plain numbers are taken as radians
func (m Measure) radians() (float64, error) {
	if m.IsMagnitude() {
		return m.magnitude, nil
	}
	rad, err := m.reg.Unit("rad")
	if err != nil {
		return 0, err
	}
	return m.In(rad, Absolute)
}

// Sin of an angle measure
func Sin(x Measure) (float64, error) {
	v, err := x.radians()
	if err != nil {
		return 0, err
	}
	return math.Sin(v), nil
}

// Cos of an angle measure
func Cos(x Measure) (float64, error) {
	v, err := x.radians()
	if err != nil {
		return 0, err
	}
	return math.Cos(v), nil
}

// Tan of an angle measure
func Tan(x Measure) (float64, error) {
	v, err := x.radians()
	if err != nil {
		return 0, err
	}
	return math.Tan(v), nil
}

func inverseTrig(name string, fn func(float64) float64, x Measure) (Measure, error) {
	if !x.Dimensionless() {
		return Measure{}, errors.Newf(errors.TypeInconsistentUnits, "invalid dimensions for %s argument: %s", name, x.units)
	}
	if x.reg == nil {
		return Measure{}, errors.Input(name + ": measure has no registry")
	}
	return x.reg.New(fn(x.Base().magnitude), "rad")
}

// Asin returns an angle in rad
func Asin(x Measure) (Measure, error) { return inverseTrig("asin", math.Asin, x) }

// Acos returns an angle in rad
func Acos(x Measure) (Measure, error) { return inverseTrig("acos", math.Acos, x) }

// Atan returns an angle in rad
func Atan(x Measure) (Measure, error) { return inverseTrig("atan", math.Atan, x) }

// Atan2 returns the angle of the point (x, y) in rad. y is converted into
// x's units, so both must share dimensions.
func Atan2(y, x Measure) (Measure, error) {
	reg := x.registry(y)
	if reg == nil {
		return Measure{}, errors.Input("atan2: measures have no registry")
	}
	yv, err := y.In(x.UnitOnly(), Absolute)
	if err != nil {
		return Measure{}, err
	}
	return reg.New(math.Atan2(yv, x.magnitude), "rad")
}
