package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/parameter"
)

// EnvPrefix prefixes environment overrides, e.g. WELLRING_SIM_AGENTS
const EnvPrefix = "WELLRING"

// Config is the full program configuration
type Config struct {
	Sim      SimConfig      `mapstructure:"sim" toml:"sim"`
	Dynamics DynamicsConfig `mapstructure:"dynamics" toml:"dynamics"`
	Render   RenderConfig   `mapstructure:"render" toml:"render"`
	Audio    AudioConfig    `mapstructure:"audio" toml:"audio"`
	Logger   LoggerConfig   `mapstructure:"logger" toml:"logger"`
}

// SimConfig holds population, geometry and canvas settings
type SimConfig struct {
	Wells    int     `mapstructure:"wells" toml:"wells"`
	Agents   int     `mapstructure:"agents" toml:"agents"`
	Radius   float64 `mapstructure:"radius" toml:"radius"`
	Inner    float64 `mapstructure:"inner" toml:"inner"`
	Speed    float64 `mapstructure:"speed" toml:"speed"`
	Noise    float64 `mapstructure:"noise" toml:"noise"`
	Coupling float64 `mapstructure:"coupling" toml:"coupling"`
	Observe  float64 `mapstructure:"observe" toml:"observe"`
	Width    float64 `mapstructure:"width" toml:"width"`
	Height   float64 `mapstructure:"height" toml:"height"`
	Seed     uint64  `mapstructure:"seed" toml:"seed"`
}

// DynamicsConfig holds integrator tunables
type DynamicsConfig struct {
	Damping             float64 `mapstructure:"damping" toml:"damping"`
	Relax               float64 `mapstructure:"relax" toml:"relax"`
	CaptureDamping      float64 `mapstructure:"capture_damping" toml:"capture_damping"`
	TangentialDamping   float64 `mapstructure:"tangential_damping" toml:"tangential_damping"`
	CaptureThreshold    float64 `mapstructure:"capture_threshold" toml:"capture_threshold"`
	CollisionIterations int     `mapstructure:"collision_iterations" toml:"collision_iterations"`
}

// RenderConfig holds terminal viewer settings
type RenderConfig struct {
	FPS           int     `mapstructure:"fps" toml:"fps"`
	ColorMode     string  `mapstructure:"color_mode" toml:"color_mode"`
	ShowField     bool    `mapstructure:"show_field" toml:"show_field"`
	HeadingColors bool    `mapstructure:"heading_colors" toml:"heading_colors"`
	ShowLinks     bool    `mapstructure:"show_links" toml:"show_links"`
	LinkWidth     float64 `mapstructure:"link_width" toml:"link_width"`
	LinkAlpha     float64 `mapstructure:"link_alpha" toml:"link_alpha"`
}

// AudioConfig holds capture sonification settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
	Volume  float64 `mapstructure:"volume" toml:"volume"`
}

// LoggerConfig holds zap and file rotation settings
type LoggerConfig struct {
	Level       string `mapstructure:"level" toml:"level"`
	Format      string `mapstructure:"format" toml:"format"`
	File        string `mapstructure:"file" toml:"file"`
	MaxSize     int    `mapstructure:"max_size" toml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" toml:"max_age"`
	Compress    bool   `mapstructure:"compress" toml:"compress"`
	AddSource   bool   `mapstructure:"add_source" toml:"add_source"`
	ServiceName string `mapstructure:"service_name" toml:"service_name"`
}

// Color modes understood by the renderer
const (
	ColorTrue = "truecolor"
	Color256  = "256"
	ColorMono = "mono"
)

// Log formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// MaxFPS bounds the viewer frame rate
const MaxFPS = 240

// Defaults returns the stock configuration
func Defaults() Config {
	p := engine.DefaultParams()
	return Config{
		Sim: SimConfig{
			Wells:    p.Wells,
			Agents:   p.Agents,
			Radius:   p.ParticleRadius,
			Inner:    p.InnerFraction,
			Speed:    p.Speed,
			Noise:    p.Noise,
			Coupling: p.Coupling,
			Observe:  p.ObservationRadius,
			Width:    parameter.DefaultCanvasWidth,
			Height:   parameter.DefaultCanvasHeight,
			Seed:     parameter.DefaultSeed,
		},
		Dynamics: DynamicsConfig{
			Damping:             p.DampingBase,
			Relax:               p.DriveRelax,
			CaptureDamping:      p.CaptureDamping,
			TangentialDamping:   p.TangentialDamping,
			CaptureThreshold:    p.CaptureThreshold,
			CollisionIterations: p.CollisionIterations,
		},
		Render: RenderConfig{
			FPS:           30,
			ColorMode:     ColorTrue,
			ShowField:     true,
			HeadingColors: true,
			ShowLinks:     true,
			LinkWidth:     parameter.DefaultLinkWidth,
			LinkAlpha:     parameter.DefaultLinkAlpha,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.5,
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      FormatJSON,
			File:        "",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
			ServiceName: "wellring",
		},
	}
}

// SetDefaults registers every default key on v so env overrides and Unmarshal see them
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	defaults := map[string]any{
		"sim.wells":                     d.Sim.Wells,
		"sim.agents":                    d.Sim.Agents,
		"sim.radius":                    d.Sim.Radius,
		"sim.inner":                     d.Sim.Inner,
		"sim.speed":                     d.Sim.Speed,
		"sim.noise":                     d.Sim.Noise,
		"sim.coupling":                  d.Sim.Coupling,
		"sim.observe":                   d.Sim.Observe,
		"sim.width":                     d.Sim.Width,
		"sim.height":                    d.Sim.Height,
		"sim.seed":                      d.Sim.Seed,
		"dynamics.damping":              d.Dynamics.Damping,
		"dynamics.relax":                d.Dynamics.Relax,
		"dynamics.capture_damping":      d.Dynamics.CaptureDamping,
		"dynamics.tangential_damping":   d.Dynamics.TangentialDamping,
		"dynamics.capture_threshold":    d.Dynamics.CaptureThreshold,
		"dynamics.collision_iterations": d.Dynamics.CollisionIterations,
		"render.fps":                    d.Render.FPS,
		"render.color_mode":             d.Render.ColorMode,
		"render.show_field":             d.Render.ShowField,
		"render.heading_colors":         d.Render.HeadingColors,
		"render.show_links":             d.Render.ShowLinks,
		"render.link_width":             d.Render.LinkWidth,
		"render.link_alpha":             d.Render.LinkAlpha,
		"audio.enabled":                 d.Audio.Enabled,
		"audio.volume":                  d.Audio.Volume,
		"logger.level":                  d.Logger.Level,
		"logger.format":                 d.Logger.Format,
		"logger.file":                   d.Logger.File,
		"logger.max_size":               d.Logger.MaxSize,
		"logger.max_backups":            d.Logger.MaxBackups,
		"logger.max_age":                d.Logger.MaxAge,
		"logger.compress":               d.Logger.Compress,
		"logger.add_source":             d.Logger.AddSource,
		"logger.service_name":           d.Logger.ServiceName,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Load reads defaults, then the TOML file at path (if non-empty), then WELLRING_ env vars into v
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot be clamped into something usable
// Simulation tunables are not checked here; the controller clamps them
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		errs = append(errs, fmt.Errorf("sim: canvas must be positive, got %vx%v", c.Sim.Width, c.Sim.Height))
	}
	if c.Render.FPS <= 0 || c.Render.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("render: fps must be in [1, %d], got %d", MaxFPS, c.Render.FPS))
	}
	switch c.Render.ColorMode {
	case ColorTrue, Color256, ColorMono:
	default:
		errs = append(errs, fmt.Errorf("render: unknown color_mode %q", c.Render.ColorMode))
	}
	if !(c.Render.LinkWidth >= 0 && c.Render.LinkWidth <= parameter.MaxLinkWidth) {
		errs = append(errs, fmt.Errorf("render: link_width must be in [0, %v], got %v", parameter.MaxLinkWidth, c.Render.LinkWidth))
	}
	if !(c.Render.LinkAlpha >= 0 && c.Render.LinkAlpha <= 1) {
		errs = append(errs, fmt.Errorf("render: link_alpha must be in [0, 1], got %v", c.Render.LinkAlpha))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be in [0, 1], got %v", c.Audio.Volume))
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("logger: %w", err))
	}
	switch c.Logger.Format {
	case FormatJSON, FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logger: unknown format %q", c.Logger.Format))
	}
	return errors.Join(errs...)
}

// Params maps the sim and dynamics sections onto controller tunables
func (c *Config) Params() engine.Params {
	return engine.Params{
		Wells:               c.Sim.Wells,
		Agents:              c.Sim.Agents,
		ParticleRadius:      c.Sim.Radius,
		InnerFraction:       c.Sim.Inner,
		Speed:               c.Sim.Speed,
		Noise:               c.Sim.Noise,
		Coupling:            c.Sim.Coupling,
		ObservationRadius:   c.Sim.Observe,
		DampingBase:         c.Dynamics.Damping,
		DriveRelax:          c.Dynamics.Relax,
		CaptureDamping:      c.Dynamics.CaptureDamping,
		TangentialDamping:   c.Dynamics.TangentialDamping,
		CaptureThreshold:    c.Dynamics.CaptureThreshold,
		CollisionIterations: c.Dynamics.CollisionIterations,
	}
}

// Encode writes c as TOML
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Decode parses TOML from r over the defaults without viper, for tooling and tests
func Decode(r io.Reader) (*Config, error) {
	cfg := Defaults()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
