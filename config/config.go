// Package config provides configuration loading and access for the playground.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/particlelab/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all playground configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Playground   PlaygroundConfig   `yaml:"playground"`
	Engine       EngineConfig       `yaml:"engine"`
	Entropy      EntropyConfig      `yaml:"entropy"`
	Neural       NeuralConfig       `yaml:"neural"`
	Phase        PhaseConfig        `yaml:"phase"`
	Optimization OptimizationConfig `yaml:"optimization"`
	Autopilot    AutopilotConfig    `yaml:"autopilot"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlaygroundConfig holds the host's initial control values and their ranges.
type PlaygroundConfig struct {
	Mode            string  `yaml:"mode"`
	ParticleCount   int     `yaml:"particle_count"`
	GravityStrength float64 `yaml:"gravity_strength"`
	MinCount        int     `yaml:"min_count"`
	MaxCount        int     `yaml:"max_count"`
	CountStep       int     `yaml:"count_step"`
	GravityStep     float64 `yaml:"gravity_step"`
}

// RGBA is a colour as it appears in YAML: 8-bit channels plus a [0, 1] alpha.
type RGBA struct {
	R uint8   `yaml:"r"`
	G uint8   `yaml:"g"`
	B uint8   `yaml:"b"`
	A float64 `yaml:"a"`
}

// Color converts to the simulation colour type.
func (c RGBA) Color() components.Color {
	return components.RGBA(c.R, c.G, c.B, c.A)
}

// EngineConfig holds orchestrator parameters.
type EngineConfig struct {
	TimeStep                 float64 `yaml:"time_step"`
	MaxAddPerFrame           int     `yaml:"max_add_per_frame"`
	NeuralMaxParticles       int     `yaml:"neural_max_particles"`
	OptimizationMaxParticles int     `yaml:"optimization_max_particles"`
	BackgroundDefault        RGBA    `yaml:"background_default"`
	BackgroundTrails         RGBA    `yaml:"background_trails"`
	InterferenceIncrease     float64 `yaml:"interference_increase"`
	InterferenceDecay        float64 `yaml:"interference_decay"`
	InterferenceMax          float64 `yaml:"interference_max"`
}

// EntropyConfig holds the gravity well / explosion parameters.
type EntropyConfig struct {
	MinForceDistance   float64 `yaml:"min_force_distance"`
	InfluenceRadius    float64 `yaml:"influence_radius"`
	MaxGDown           float64 `yaml:"max_g_down"`
	MaxGBase           float64 `yaml:"max_g_base"`
	MaxGGravityScale   float64 `yaml:"max_g_gravity_scale"`
	PullDown           float64 `yaml:"pull_down"`
	PullHover          float64 `yaml:"pull_hover"`
	ForceDensityScale  float64 `yaml:"force_density_scale"`
	VelocityDamping    float64 `yaml:"velocity_damping"`
	ExplosionRadius    float64 `yaml:"explosion_radius"`
	ExplosionMinSpeed  float64 `yaml:"explosion_min_speed"`
	ExplosionSpeedSpan float64 `yaml:"explosion_speed_span"`
}

// NeuralConfig holds the lattice / interference parameters.
type NeuralConfig struct {
	ConnectionDistSq      float64 `yaml:"connection_dist_sq"`
	LineWidth             float64 `yaml:"line_width"`
	GlitchThreshold       float64 `yaml:"glitch_threshold"`
	TextThreshold         float64 `yaml:"text_threshold"`
	RepelThreshold        float64 `yaml:"repel_threshold"`
	GlitchProbability     float64 `yaml:"glitch_probability"`
	TextProbability       float64 `yaml:"text_probability"`
	TextSize              int     `yaml:"text_size"`
	IdleStrokeAlpha       float64 `yaml:"idle_stroke_alpha"`
	DisturbedStrokeAlpha  float64 `yaml:"disturbed_stroke_alpha"`
	JitterGain            float64 `yaml:"jitter_gain"`
	RadiusJitter          float64 `yaml:"radius_jitter"`
	RepelGain             float64 `yaml:"repel_gain"`
	ReturnGain            float64 `yaml:"return_gain"`
	ReturnDamping         float64 `yaml:"return_damping"`
	InterferenceMaxAssume float64 `yaml:"interference_max_assumed"`
}

// PhaseConfig holds the solid/liquid parameters.
type PhaseConfig struct {
	HeatRadiusSolid  float64 `yaml:"heat_radius_solid"`
	HeatRadiusLiquid float64 `yaml:"heat_radius_liquid"`
	LiquidViscosity  float64 `yaml:"liquid_viscosity"`
	SolidDamping     float64 `yaml:"solid_damping"`
	SolidElasticity  float64 `yaml:"solid_elasticity"`
	SolidShakeGain   float64 `yaml:"solid_shake_gain"`
	LiquidNoiseGain  float64 `yaml:"liquid_noise_gain"`
	LiquidPush       float64 `yaml:"liquid_push"`
	SolidPushStrong  float64 `yaml:"solid_push_strong"`
	SolidPushWeak    float64 `yaml:"solid_push_weak"`
	StrongPushSpeed  float64 `yaml:"strong_push_speed"`
	MaxStretch       float64 `yaml:"max_stretch"`
}

// OptimizationConfig holds the flow-field advection parameters.
type OptimizationConfig struct {
	InfluenceDown   float64 `yaml:"influence_down"`
	InfluenceIdle   float64 `yaml:"influence_idle"`
	Acceleration    float64 `yaml:"acceleration"`
	LimitMultiplier float64 `yaml:"limit_multiplier"`
	ResetDistance   float64 `yaml:"reset_distance"`
	DrawSizeDown    float64 `yaml:"draw_size_down"`
	DrawSizeIdle    float64 `yaml:"draw_size_idle"`
	ColorDown       RGBA    `yaml:"color_down"`
	ColorIdle       RGBA    `yaml:"color_idle"`
}

// AutopilotConfig drives the synthetic pointer used in headless runs.
type AutopilotConfig struct {
	OrbitRadius float64 `yaml:"orbit_radius"` // Fraction of the shorter surface side
	OrbitSpeed  float64 `yaml:"orbit_speed"`  // Radians per frame
	PressEvery  int     `yaml:"press_every"`  // Frames between presses (0 = never press)
	HoldFrames  int     `yaml:"hold_frames"`  // Frames the pointer stays down
	ModeEvery   int     `yaml:"mode_every"`   // Frames between mode switches (0 = fixed mode)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of frames per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
	ReportHistory       int     `yaml:"report_history"`        // Windows kept for the end-of-run plot
	BookmarkHistory     int     `yaml:"bookmark_history"`      // Windows the bookmark detector compares against
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Mode         components.Mode // Playground.Mode parsed
	WindowFrames int             // Telemetry.StatsWindow in frames at Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	mode, err := components.ParseMode(c.Playground.Mode)
	if err != nil {
		return fmt.Errorf("playground.mode: %w", err)
	}
	c.Derived.Mode = mode

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.WindowFrames = int(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.WindowFrames < 1 {
		c.Derived.WindowFrames = 1
	}
	return nil
}

// SimConfig returns the initial control snapshot described by the playground section.
func (c *Config) SimConfig() components.SimConfig {
	return components.SimConfig{
		Mode:            c.Derived.Mode,
		ParticleCount:   c.Playground.ParticleCount,
		GravityStrength: c.Playground.GravityStrength,
	}.Sanitize()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
