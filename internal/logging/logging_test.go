package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.log")
	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))
	t.Cleanup(InitializeDefault)

	Debug("unit registered", zap.String("symbol", "m"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"unit registered"`)
	assert.Contains(t, string(data), `"symbol":"m"`)
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestUnwritableOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
