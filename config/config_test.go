package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/parameter"
)

func TestDefaultsValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.DefaultParams(), cfg.Params())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wellring.toml")
	content := `
[sim]
agents = 42
inner = 0.5
seed = 9

[render]
fps = 60
show_links = false
link_width = 4.0

[logger]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("WELLRING_SIM_WELLS", "8")
	t.Setenv("WELLRING_AUDIO_ENABLED", "true")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Sim.Agents)
	assert.Equal(t, 0.5, cfg.Sim.Inner)
	assert.Equal(t, uint64(9), cfg.Sim.Seed)
	assert.Equal(t, 8, cfg.Sim.Wells)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.False(t, cfg.Render.ShowLinks)
	assert.Equal(t, 4.0, cfg.Render.LinkWidth)
	assert.Equal(t, parameter.DefaultLinkAlpha, cfg.Render.LinkAlpha)
	assert.True(t, cfg.Render.ShowField)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, Defaults().Dynamics, cfg.Dynamics)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Render.FPS = 0
	cfg.Render.ColorMode = "sepia"
	cfg.Logger.Format = "xml"
	cfg.Logger.Level = "loud"
	cfg.Audio.Volume = 2
	cfg.Sim.Width = -1
	cfg.Render.LinkWidth = -3
	cfg.Render.LinkAlpha = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"fps", "color_mode", "format", "logger", "volume", "canvas", "link_width", "link_alpha"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateLeavesSimRangesToController(t *testing.T) {
	cfg := Defaults()
	cfg.Sim.Agents = -10
	cfg.Sim.Inner = 4
	assert.NoError(t, cfg.Validate())
}

func TestEncodeDecodeDefaults(t *testing.T) {
	cfg := Defaults()
	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "[sim]")
	assert.Contains(t, buf.String(), "[logger]")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)
}
