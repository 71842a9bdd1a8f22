package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewCoreLevels(t *testing.T) {
	for i, tc := range []struct {
		level   string
		dropped string
		kept    string
	}{
		{"DEBUG", "", "debug line"},
		{"debug", "", "debug line"},
		{"INFO", "debug line", "info line"},
		{"WARN", "info line", "warn line"},
		{"ERROR", "warn line", "error line"},
		{"bogus", "debug line", "info line"},
		{"", "debug line", "info line"},
	} {
		buf := &bytes.Buffer{}
		core, err := newCore(zapcore.AddSync(buf), Parameters{Level: tc.level})
		require.NoError(t, err, i)
		logger := zap.New(core)
		logger.Debug("debug line")
		logger.Info("info line")
		logger.Warn("warn line")
		logger.Error("error line")
		require.NoError(t, logger.Sync(), i)
		if tc.dropped != "" {
			assert.NotContains(t, buf.String(), tc.dropped, i)
		}
		assert.Contains(t, buf.String(), tc.kept, i)
	}
}

func TestNewCoreFilterByNamespace(t *testing.T) {
	buf := &bytes.Buffer{}
	core, err := newCore(zapcore.AddSync(buf), Parameters{Level: "DEBUG", Filter: "*:api"})
	require.NoError(t, err)
	logger := zap.New(core)
	logger.Named("api").Info("api line")
	logger.Named("runtime").Info("runtime line")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "api line")
	assert.NotContains(t, buf.String(), "runtime line")
}

func TestNewCoreFilterByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	core, err := newCore(zapcore.AddSync(buf), Parameters{Level: "DEBUG", Filter: "warn+:*"})
	require.NoError(t, err)
	logger := zap.New(core)
	logger.Debug("debug line")
	logger.Warn("warn line")
	require.NoError(t, logger.Sync())
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "warn line")
}

func TestNewCoreInvalidFilter(t *testing.T) {
	_, err := newCore(zapcore.AddSync(&bytes.Buffer{}), Parameters{Level: "INFO", Filter: "nonsense-rule:::"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log filter")
}
