package units_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"units-system/core/units"
)

const eps = 1e-12

// standard returns a frozen registry with the standard definitions
func standard(t *testing.T) *units.Registry {
	t.Helper()
	r := units.NewRegistry()
	require.NoError(t, units.RegisterStandard(r))
	r.Freeze()
	return r
}

func parse(t *testing.T, r *units.Registry, expr string) units.Measure {
	t.Helper()
	m, err := r.Parse(expr)
	require.NoError(t, err, expr)
	return m
}
