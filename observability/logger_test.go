package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/wellring/config"
)

func TestNewConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggerConfig{Level: "info", Format: config.FormatJSON, ServiceName: "wellring"}, zapcore.AddSync(&buf))

	log.Named("sim").Info("step", zap.Int("agents", 3))
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "wellring.sim", entry["logger"])
	assert.Equal(t, "step", entry["msg"])
	assert.EqualValues(t, 3, entry["agents"])
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggerConfig{Level: "debug", Format: config.FormatConsole, ServiceName: "wellring"}, zapcore.AddSync(&buf))
	log.Debug("visible")
	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "wellring.")
	assert.Contains(t, out, "visible")
}

func TestNewFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log := New(config.LoggerConfig{Level: "info", Format: config.FormatConsole, File: path, MaxSize: 1}, nil)
	log.Info("to file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}

func TestNewNoSinks(t *testing.T) {
	log := New(config.LoggerConfig{Level: "info"}, nil)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggerConfig{Level: "nope", Format: config.FormatJSON}, zapcore.AddSync(&buf))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var first, second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: config.FormatJSON}, zapcore.AddSync(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: config.FormatJSON}, zapcore.AddSync(&second))

	GetLogger().Info("hello")
	Sync()
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
}
