package units_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"units-system/core/units"
	"units-system/internal/errors"
)

func TestConstructors(t *testing.T) {
	r := standard(t)

	m, err := r.New(3, "m")
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.Magnitude())
	term, ok := m.Term(units.Length)
	require.True(t, ok)
	assert.Equal(t, units.Term{Symbol: "m", Exp: 1}, term)
	assert.Same(t, r, m.Registry())

	_, err = r.New(3, "parsec-ish")
	assert.True(t, errors.IsType(err, errors.TypeUnknownUnit))

	fu, err := r.FromUnits(2, units.UnitMap{units.Length: {Symbol: "km", Exp: 1}, units.Time: {Symbol: "h", Exp: -1}})
	require.NoError(t, err)
	assert.True(t, fu.Equal(parse(t, r, "2*km/h")))

	_, err = r.FromUnits(2, units.UnitMap{units.Mass: {Symbol: "m", Exp: 1}})
	assert.True(t, errors.IsType(err, errors.TypeInconsistentDimension))

	zero, err := r.FromUnits(1, units.UnitMap{units.Length: {Symbol: "m", Exp: 0}})
	require.NoError(t, err)
	assert.True(t, zero.IsMagnitude())

	assert.Panics(t, func() { r.MustParse("m +") })
}

func TestUnitsReturnsCopy(t *testing.T) {
	r := standard(t)
	m := parse(t, r, "3*m")
	u := m.Units()
	u[units.Length] = units.Term{Symbol: "km", Exp: 1}
	term, _ := m.Term(units.Length)
	assert.Equal(t, "m", term.Symbol)
}

func TestMultiplyKeepsLeftUnit(t *testing.T) {
	r := standard(t)

	a := parse(t, r, "2*km")
	b := parse(t, r, "500*m")
	p := a.Mul(b)
	term, ok := p.Term(units.Length)
	require.True(t, ok)
	assert.Equal(t, units.Term{Symbol: "km", Exp: 2}, term)
	assert.InDelta(t, 1.0, p.Magnitude(), eps)
}

func TestUnitCancellation(t *testing.T) {
	r := standard(t)

	for _, sym := range []string{"m", "km", "kg", "s", "N", "°C", "galUS", "hp"} {
		a, err := r.New(3, sym)
		require.NoError(t, err)
		b, err := r.New(7, sym)
		require.NoError(t, err)

		q := a.Mul(b.Inverse())
		assert.True(t, q.IsMagnitude(), sym)
		assert.True(t, q.Dimensionless(), sym)
		assert.InDelta(t, 3.0/7.0, q.Magnitude(), eps, sym)
	}

	q := parse(t, r, "km").Div(parse(t, r, "m"))
	assert.True(t, q.IsMagnitude())
	assert.InDelta(t, 1000, q.Magnitude(), 1e-9)
}

func TestDimensionlessVersusMagnitude(t *testing.T) {
	r := standard(t)

	rad := parse(t, r, "rad")
	assert.False(t, rad.IsMagnitude())
	assert.False(t, rad.Dimensionless())

	ratio := parse(t, r, "W/(J/s)")
	assert.False(t, ratio.IsMagnitude())
	assert.True(t, ratio.Dimensionless())
}

func TestAddAndSubtract(t *testing.T) {
	r := standard(t)

	sum, err := parse(t, r, "3*m").Add(parse(t, r, "200*cm"))
	require.NoError(t, err)
	assert.InDelta(t, 5, sum.Magnitude(), eps)
	assert.True(t, sum.Units().Equal(units.UnitMap{units.Length: {Symbol: "m", Exp: 1}}))

	diff, err := parse(t, r, "1*km").Sub(parse(t, r, "1*m"))
	require.NoError(t, err)
	assert.InDelta(t, 0.999, diff.Magnitude(), eps)

	speed, err := parse(t, r, "10*m/s").Add(parse(t, r, "270*km/h"))
	require.NoError(t, err)
	assert.InDelta(t, 85, speed.Magnitude(), 1e-9)

	_, err = parse(t, r, "m").Add(parse(t, r, "kg"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	_, err = parse(t, r, "m/s").Add(parse(t, r, "m/s**2"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))
}

func TestPow(t *testing.T) {
	r := standard(t)

	sq := parse(t, r, "3*m").Pow(2)
	assert.Equal(t, 9.0, sq.Magnitude())
	term, _ := sq.Term(units.Length)
	assert.Equal(t, 2, term.Exp)

	inv := parse(t, r, "2*s").Pow(-1)
	assert.Equal(t, 0.5, inv.Magnitude())
	term, _ = inv.Term(units.Time)
	assert.Equal(t, -1, term.Exp)

	one := parse(t, r, "5*m").Pow(0)
	assert.True(t, one.IsMagnitude())
	assert.Equal(t, 1.0, one.Magnitude())

	_, err := parse(t, r, "m").PowReal(0.5)
	assert.True(t, errors.IsType(err, errors.TypeInvalidPower))

	p, err := parse(t, r, "m").PowReal(3)
	require.NoError(t, err)
	assert.True(t, p.Equal(parse(t, r, "m**3")))
}

func TestScaleNegateAbsInverse(t *testing.T) {
	r := standard(t)
	m := parse(t, r, "4*m/s")

	assert.Equal(t, 8.0, m.Scale(2).Magnitude())
	assert.Equal(t, -4.0, m.Negate().Magnitude())
	assert.Equal(t, 4.0, m.Negate().Abs().Magnitude())
	assert.Equal(t, 2.0, m.DivScalar(2).Magnitude())

	inv := m.Inverse()
	assert.Equal(t, 0.25, inv.Magnitude())
	term, _ := inv.Term(units.Time)
	assert.Equal(t, 1, term.Exp)
}

func TestEquality(t *testing.T) {
	r := standard(t)

	a := parse(t, r, "100*cm")
	b := parse(t, r, "1*m")
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Identical(b))
	assert.True(t, b.Identical(parse(t, r, "1*m")))

	assert.True(t, parse(t, r, "km/h").Equal(parse(t, r, "km/(60*min)")))
	assert.False(t, parse(t, r, "km/h").Equal(parse(t, r, "km*s/(60*min)")))
	assert.False(t, parse(t, r, "m").Equal(parse(t, r, "kg")))
	assert.True(t, parse(t, r, "1000*m").Equal(parse(t, r, "km")))
	assert.True(t, parse(t, r, "N").Equal(parse(t, r, "kg*m/s**2")))
	assert.True(t, parse(t, r, "J").Equal(parse(t, r, "W*s")))
}

func TestCompare(t *testing.T) {
	r := standard(t)

	c, err := parse(t, r, "1*km").Compare(parse(t, r, "999*m"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = parse(t, r, "1*mi").Compare(parse(t, r, "2*km"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = parse(t, r, "1*m").Compare(parse(t, r, "100*cm"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = parse(t, r, "1*m").Compare(parse(t, r, "1*s"))
	assert.Error(t, err)
}

func TestZeroMeasure(t *testing.T) {
	var z units.Measure
	assert.True(t, z.IsMagnitude())
	assert.True(t, z.Dimensionless())
	assert.Equal(t, "0", z.String())
	assert.Nil(t, z.Registry())
	assert.False(t, math.IsNaN(z.Magnitude()))
}
