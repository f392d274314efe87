package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"units-system/core/units"
	"units-system/internal/errors"
)

func TestParse(t *testing.T) {
	r := standard(t)

	m := parse(t, r, "9.81*m/s**2")
	assert.Equal(t, 9.81, m.Magnitude())
	assert.True(t, m.Units().Equal(units.UnitMap{
		units.Length: {Symbol: "m", Exp: 1},
		units.Time:   {Symbol: "s", Exp: -2},
	}))

	assert.True(t, parse(t, r, "3 m/s").Identical(parse(t, r, "3*m/s")))
	assert.True(t, parse(t, r, "3 m s^-1").Equal(parse(t, r, "3*m/s")))
	assert.Equal(t, 8.0, parse(t, r, "2^3").Magnitude())
	assert.Equal(t, 8.0, parse(t, r, "2**3").Magnitude())
	assert.Equal(t, -1, parse(t, r, "s**-1").Units()[units.Time].Exp)
	assert.Equal(t, 7.0, parse(t, r, "1 + 2*3").Magnitude())
	assert.Equal(t, 9.0, parse(t, r, "(1 + 2)*3").Magnitude())
	assert.Equal(t, -3.0, parse(t, r, "-3*m").Magnitude())
	assert.Equal(t, 0.25, parse(t, r, "1/2/2").Magnitude())

	sum := parse(t, r, "3*m + 200*cm")
	assert.InDelta(t, 5, sum.Magnitude(), eps)

	assert.InDelta(t, 2e-3, parse(t, r, "2*m*k**-1*m**0").Magnitude(), eps)
}

func TestParseSymbols(t *testing.T) {
	r := standard(t)

	for _, expr := range []string{"Ω", "kΩ", "°C", "°F", "µs", "us", "′", "″", "arcmin", "mWC", "galUS", "g0", "Torr"} {
		_, err := r.Parse(expr)
		assert.NoError(t, err, expr)
	}

	assert.True(t, parse(t, r, "1*µs").Equal(parse(t, r, "1*us")))
	assert.True(t, parse(t, r, "1*ohm").Equal(parse(t, r, "1*Ω")))
}

func TestParseErrors(t *testing.T) {
	r := standard(t)

	tests := []struct {
		expr string
		typ  errors.Type
	}{
		{"", errors.TypeParsing},
		{"   ", errors.TypeParsing},
		{"(3*m", errors.TypeParsing},
		{"3*m)", errors.TypeParsing},
		{"3 * * m", errors.TypeParsing},
		{"m**s", errors.TypeParsing},
		{"sqrt(1, 2)", errors.TypeParsing},
		{"foo", errors.TypeUnknownUnit},
		{"Const.c", errors.TypeUnknownUnit},
		{"m**1.5", errors.TypeInvalidPower},
		{"m + s", errors.TypeInconsistentUnits},
		{"sqrt(m)", errors.TypeInvalidSqrt},
	}
	for _, tt := range tests {
		_, err := r.Parse(tt.expr)
		require.Error(t, err, tt.expr)
		assert.True(t, errors.IsType(err, tt.typ), "%q: %v", tt.expr, err)
	}
}

func TestParseWithResolver(t *testing.T) {
	r := standard(t)

	two := parse(t, r, "2*m")
	res := units.ResolverFunc(func(name string) (units.Measure, bool, error) {
		switch name {
		case "x", "Const.x":
			return two, true, nil
		case "broken":
			return units.Measure{}, false, errors.UnknownConstant(name)
		}
		return units.Measure{}, false, nil
	})

	m, err := r.ParseWith("x**2/s", res)
	require.NoError(t, err)
	assert.True(t, m.Equal(parse(t, r, "4*m**2/s")))

	m, err = r.ParseWith("Const.x*3", res)
	require.NoError(t, err)
	assert.True(t, m.Equal(parse(t, r, "6*m")))

	// unresolved names fall through to units
	m, err = r.ParseWith("x*km", res)
	require.NoError(t, err)
	assert.InDelta(t, 2000, m.Magnitude(), 1e-9)

	_, err = r.ParseWith("broken", res)
	assert.True(t, errors.IsType(err, errors.TypeUnknownConstant))
}

func TestParseFunctions(t *testing.T) {
	r := standard(t)

	assert.True(t, parse(t, r, "sqrt(4*m**2)").Equal(parse(t, r, "2*m")))
	assert.Equal(t, 3.0, parse(t, r, "sqrt(9)").Magnitude())
	assert.InDelta(t, 1, parse(t, r, "sin(90*°)").Magnitude(), eps)
	assert.InDelta(t, 1, parse(t, r, "cos(0)").Magnitude(), eps)
	assert.InDelta(t, 1, parse(t, r, "tan(45*deg)").Magnitude(), eps)

	a := parse(t, r, "atan2(1*m, 100*cm)")
	assert.Equal(t, "rad", a.Units()[units.Angle].Symbol)
	assert.InDelta(t, 0.7853981633974483, a.Magnitude(), eps)

	deg, err := parse(t, r, "asin(0.5)").ConvertTo("°", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 30, deg.Magnitude(), 1e-9)
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t,
		[]string{"Const.NA", "kB", "m", "°C"},
		units.Identifiers("2*Const.NA*kB/sqrt(m**2) + 3*°C"))
	assert.Empty(t, units.Identifiers("1.5e3 * (2 - 4)"))
}
