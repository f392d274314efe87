package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"units-system/core/units"
	"units-system/internal/errors"
	"units-system/internal/metrics"
)

func TestNewStandard(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.True(t, s.Units.IsFrozen())
	assert.True(t, s.Constants.IsFrozen())
	assert.Greater(t, s.Units.Len(), 60)
	assert.Equal(t, 1, logs.FilterMessage("unit system ready").Len())

	err = s.Units.Define(units.Spec{Symbol: "late", Dimension: units.Length, Factor: 2})
	assert.True(t, errors.IsType(err, errors.TypeFrozen))
}

func TestParseAndEval(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	m, err := s.Parse("Const.c*2*s")
	require.NoError(t, err)
	assert.Equal(t, 2*299792458.0, m.Magnitude())

	ctx, err := s.WithConstants(context.Background(), "c")
	require.NoError(t, err)
	m, err = s.Eval(ctx, "1*GeV/c**2")
	require.NoError(t, err)
	kg, err := m.ConvertTo("kg", units.Absolute)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.782661844855044e-27, kg.Magnitude(), 1e-12)

	v, err := s.Convert(context.Background(), "270*km/h", "m/s", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 75, v.Magnitude(), 1e-9)

	v, err = s.Convert(context.Background(), "10*°C", "°F", units.Relative)
	require.NoError(t, err)
	assert.InDelta(t, 18, v.Magnitude(), 1e-9)

	_, err = s.Convert(context.Background(), "1*m", "s", units.Absolute)
	assert.True(t, errors.IsType(err, errors.TypeInconsistentUnits))
}

func TestDefinitionFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nautical.hcl"), []byte(`
unit "nmi" {
  name      = "nautical mile"
  factor    = 1852
  reference = "m"
}
unit "kn" {
  name       = "knot"
  expression = "nmi/h"
}
constant "v0" {
  description = "cruise speed"
  value       = "12*kn"
}
`), 0o644))

	s, err := New(WithDefinitionPaths(filepath.Join(dir, "*.hcl")))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Loaded.Units)
	assert.Equal(t, 1, s.Loaded.Constants)

	v, err := s.Convert(context.Background(), "Const.v0", "km/h", units.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, 22.224, v.Magnitude(), 1e-9)
}

func TestDefinitionFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("units:\n  - symbol: m\n    dimension: length\n"), 0o644))

	_, err := New(WithDefinitionPaths(bad))
	assert.True(t, errors.IsType(err, errors.TypeDuplicateUnit))

	s, err := New(WithDefinitionPaths(bad), WithStrict(false))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Loaded.Skipped)
}

func TestMetrics(t *testing.T) {
	c := metrics.New()
	s, err := New(WithMetrics(c))
	require.NoError(t, err)

	_, err = s.Convert(context.Background(), "1*km", "m", units.Absolute)
	require.NoError(t, err)
	_, _ = s.Units.Lookup("nonsense")

	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, c.Dump(zap.New(core)))

	values := func(name, label string) map[string]float64 {
		out := make(map[string]float64)
		for _, e := range logs.FilterMessage(name).All() {
			fields := e.ContextMap()
			out[fields[label].(string)] = fields["value"].(float64)
		}
		return out
	}

	defs := values("units_definitions", "kind")
	assert.Equal(t, float64(s.Units.Len()), defs["units"])
	assert.Equal(t, float64(s.Constants.Len()), defs["constants"])
	assert.Equal(t, float64(len(s.Units.Dimensions())), defs["dimensions"])

	assert.Greater(t, values("units_conversions_total", "result")["ok"], 0.0)
	assert.GreaterOrEqual(t, values("units_lookups_total", "outcome")[metrics.LookupMiss], 1.0)
}
