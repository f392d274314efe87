package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"units-system/core/units"
	"units-system/internal/errors"
)

func TestConvertUnitToItself(t *testing.T) {
	r := standard(t)

	for _, sym := range r.Symbols() {
		def, err := r.Lookup(sym)
		require.NoError(t, err)
		if def.IsScale() {
			continue
		}
		u, err := r.Unit(sym)
		require.NoError(t, err)
		v, err := u.In(u, units.Absolute)
		require.NoError(t, err, sym)
		assert.Equal(t, 1.0, v, sym)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	r := standard(t)

	pairs := [][2]string{
		{"km", "mi"},
		{"°C", "°F"},
		{"°F", "K"},
		{"Pa", "psi"},
		{"J", "eV"},
		{"W", "hp"},
		{"l", "galUS"},
		{"Torr", "atm"},
		{"rad", "arcsec"},
	}
	for _, p := range pairs {
		x, err := r.New(42, p[0])
		require.NoError(t, err)
		y, err := x.ConvertTo(p[1], units.Absolute)
		require.NoError(t, err, p)
		back, err := y.ConvertTo(p[0], units.Absolute)
		require.NoError(t, err, p)
		assert.InEpsilon(t, 42, back.Magnitude(), 1e-9, p)
	}
}

func TestConversions(t *testing.T) {
	r := standard(t)

	tests := []struct {
		from  string
		to    string
		want  float64
		delta float64
	}{
		{"100*km", "m", 1e5, 1e-9},
		{"10000*m", "km", 10, 1e-12},
		{"100*in", "cm", 254, 1e-9},
		{"270*km/h", "m/s", 75, 1e-9},
		{"1*h", "s", 3600, 1e-9},
		{"1*mi", "ft", 5280, 1e-8},
		{"1*l", "cm**3", 1000, 1e-9},
		{"1*atm", "Torr", 760, 1e-9},
		{"1*dyn", "g*cm/s**2", 1, 1e-12},
		{"1*N", "dyn", 1e5, 1e-6},
		{"180*°", "rad", 3.141592653589793, 1e-12},
	}
	for _, tt := range tests {
		m := parse(t, r, tt.from)
		got, err := m.ConvertTo(tt.to, units.Absolute)
		require.NoError(t, err, tt.from)
		assert.InDelta(t, tt.want, got.Magnitude(), tt.delta, "%s -> %s", tt.from, tt.to)
	}
}

func TestTemperatureModes(t *testing.T) {
	r := standard(t)

	abs, err := parse(t, r, "0*°C").ConvertTo("K", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 273.15, abs.Magnitude(), 1e-9)

	rel, err := parse(t, r, "10*°C").ConvertTo("K", units.Relative)
	require.NoError(t, err)
	assert.InDelta(t, 10, rel.Magnitude(), 1e-12)

	f, err := parse(t, r, "100*°C").ConvertTo("°F", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 212, f.Magnitude(), 1e-9)

	f, err = parse(t, r, "10*°C").ConvertTo("°F", units.Relative)
	require.NoError(t, err)
	assert.InDelta(t, 18, f.Magnitude(), 1e-9)

	c, err := parse(t, r, "300*K").ConvertTo("°C", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 26.85, c.Magnitude(), 1e-9)

	// bias only applies to a single first-power dimension
	area, err := parse(t, r, "1*°C**2").ConvertTo("K**2", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 1, area.Magnitude(), 1e-12)

	assert.Equal(t, "absolute", units.Absolute.String())
	assert.Equal(t, "relative", units.Relative.String())
}

func TestConvertIncompatible(t *testing.T) {
	r := standard(t)

	_, err := parse(t, r, "3*m").ConvertTo("s", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	_, err = parse(t, r, "3*m").ConvertTo("m**2", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	_, err = parse(t, r, "3").ConvertTo("m", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	_, err = parse(t, r, "3*m").ConvertTo("qq", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeUnknownUnit))

	var zero units.Measure
	_, err = zero.ConvertTo("m", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestConvertKeepsTargetUnits(t *testing.T) {
	r := standard(t)

	got, err := parse(t, r, "1*km").Convert(parse(t, r, "250*m"), units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 1000, got.Magnitude(), 1e-9)
	assert.Equal(t, "m", got.Units()[units.Length].Symbol)
}

func TestDetailedUnitsAndBase(t *testing.T) {
	r := standard(t)

	d := parse(t, r, "J").DetailedUnits()
	assert.True(t, d.Units().Equal(units.UnitMap{
		units.Force:  {Symbol: "N", Exp: 1},
		units.Length: {Symbol: "m", Exp: 1},
	}))

	b := parse(t, r, "J").Base()
	assert.True(t, b.Units().Equal(units.UnitMap{
		units.Mass:   {Symbol: "kg", Exp: 1},
		units.Length: {Symbol: "m", Exp: 2},
		units.Time:   {Symbol: "s", Exp: -2},
	}))
	assert.Equal(t, 1.0, b.Magnitude())

	// the unit's own exponent applies to its decomposition
	n2 := parse(t, r, "N**2").Base()
	assert.True(t, n2.Units().Equal(units.UnitMap{
		units.Mass:   {Symbol: "kg", Exp: 2},
		units.Length: {Symbol: "m", Exp: 2},
		units.Time:   {Symbol: "s", Exp: -4},
	}))

	kn := parse(t, r, "kN**2").Base()
	assert.InDelta(t, 1e6, kn.Magnitude(), 1e-6)

	bar := parse(t, r, "1*bar").Base()
	assert.InDelta(t, 1e5, bar.Magnitude(), 1e-6)

	plain := parse(t, r, "3*m")
	assert.True(t, plain.Base().Identical(plain))
}

func TestDimensionInference(t *testing.T) {
	r := standard(t)

	tests := []struct {
		expr string
		want units.Dimension
	}{
		{"m", units.Length},
		{"mi", units.Length},
		{"Mm", units.Length},
		{"g", units.Mass},
		{"kg", units.Mass},
		{"s", units.Time},
		{"A", units.ElectricCurrent},
		{"K", units.Temperature},
		{"cd", units.LuminousIntensity},
		{"mol", units.AmountOfSubstance},
		{"W", units.Power},
		{"Pa", units.Pressure},
		{"m/s", units.Speed},
		{"km/h", units.Speed},
		{"m**2/m", units.Length},
		{"(m*m)/m", units.Length},
		{"m*m**2", units.Volume},
		{"m*kg/s**2", units.Force},
		{"1/s", units.Frequency},
		{"J/kg", units.AbsorbedDose},
		{"kg*g0/m**2", units.Pressure},
		{"rad", units.Angle},
		{"3", units.NoDimension},
		{"m*kg*A*mol", units.NoDimension},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parse(t, r, tt.expr).Dimension(), tt.expr)
	}
}

func TestSIUnitsAndToSI(t *testing.T) {
	r := standard(t)

	m := parse(t, r, "36*km/h")
	assert.True(t, m.SIUnits().Equal(units.UnitMap{
		units.Length: {Symbol: "m", Exp: 1},
		units.Time:   {Symbol: "s", Exp: -1},
	}))
	si, err := m.ToSI()
	require.NoError(t, err)
	assert.InDelta(t, 10, si.Magnitude(), 1e-9)

	hp, err := parse(t, r, "1*hp").ToSI()
	require.NoError(t, err)
	assert.Equal(t, "W", hp.Units()[units.Power].Symbol)
	assert.InDelta(t, 745.69987158227022, hp.Magnitude(), 1e-9)

	n, err := parse(t, r, "5").ToSI()
	require.NoError(t, err)
	assert.Equal(t, 5.0, n.Magnitude())
}
