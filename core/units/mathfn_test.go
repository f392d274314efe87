package units_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"units-system/core/units"
	"units-system/internal/errors"
)

func TestSqrt(t *testing.T) {
	r := standard(t)

	s, err := parse(t, r, "16*m**2/s**4").Sqrt()
	require.NoError(t, err)
	assert.True(t, s.Identical(parse(t, r, "4*m/s**2")))

	// odd exponents that become even after decomposition
	s, err = parse(t, r, "J*kg").Sqrt()
	require.NoError(t, err)
	assert.True(t, s.Equal(parse(t, r, "kg*m/s")))

	_, err = parse(t, r, "m").Sqrt()
	assert.True(t, errors.IsType(err, errors.TypeInvalidSqrt))

	n, err := r.Scalar(2).Sqrt()
	require.NoError(t, err)
	assert.Equal(t, math.Sqrt2, n.Magnitude())
}

func TestTrig(t *testing.T) {
	r := standard(t)

	v, err := units.Sin(parse(t, r, "30*°"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, eps)

	v, err = units.Cos(r.Scalar(math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, -1, v, eps)

	v, err = units.Tan(parse(t, r, "0.25*rad").Scale(math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, 1, v, eps)

	_, err = units.Sin(parse(t, r, "1*m"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))
}

func TestInverseTrig(t *testing.T) {
	r := standard(t)

	a, err := units.Asin(r.Scalar(1))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, a.Magnitude(), eps)
	assert.Equal(t, units.Angle, a.Dimension())

	a, err = units.Acos(parse(t, r, "m/km"))
	require.NoError(t, err)
	assert.InDelta(t, math.Acos(0.001), a.Magnitude(), eps)

	a, err = units.Atan(r.Scalar(1))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, a.Magnitude(), eps)

	_, err = units.Asin(parse(t, r, "rad"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	_, err = units.Atan(parse(t, r, "3*m"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))
}

func TestAtan2(t *testing.T) {
	r := standard(t)

	a, err := units.Atan2(parse(t, r, "-1*km"), parse(t, r, "0*m"))
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi/2, a.Magnitude(), eps)

	_, err = units.Atan2(parse(t, r, "1*m"), parse(t, r, "1*s"))
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))

	var zero units.Measure
	_, err = units.Atan2(zero, zero)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}
