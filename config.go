package sprig

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Default values shared by the CLI, the ebiten runner and tests.
const (
	DefaultAngularFrequency = 20.0
	DefaultDampingRatio     = 0.7
	DefaultPositionEpsilon  = 0.1
	DefaultVelocityEpsilon  = 0.01
	DefaultStep             = 1.0 / 60.0

	// DefaultUnmovedRadius is the largest pointer displacement, in pixels,
	// that still counts as a tap.
	DefaultUnmovedRadius    = 40.0
	DefaultZoomSensitivity  = 0.005
	DefaultWheelSensitivity = 0.1

	// DefaultRootLayout anchors un-annotated content at the top-left with
	// one SVG unit per pixel.
	DefaultRootLayout = "{x='start', y='start'}"
)

// SpringConfig holds the parameters of every matrix spring.
type SpringConfig struct {
	AngularFrequency float64 `toml:"angular_frequency"`
	DampingRatio     float64 `toml:"damping_ratio"`
	PositionEpsilon  float64 `toml:"position_epsilon"`
	VelocityEpsilon  float64 `toml:"velocity_epsilon"`
	// Step is the fixed simulation step in seconds.
	Step float64 `toml:"step"`
}

// DefaultSpringConfig returns the default spring parameters.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		AngularFrequency: DefaultAngularFrequency,
		DampingRatio:     DefaultDampingRatio,
		PositionEpsilon:  DefaultPositionEpsilon,
		VelocityEpsilon:  DefaultVelocityEpsilon,
		Step:             DefaultStep,
	}
}

// Validate rejects damping ratios outside (0, 1] and non-positive
// frequencies, steps and epsilons.
func (c SpringConfig) Validate() error {
	if !(c.DampingRatio > 0 && c.DampingRatio <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDamping, c.DampingRatio)
	}
	for name, v := range map[string]float64{
		"angular_frequency": c.AngularFrequency,
		"position_epsilon":  c.PositionEpsilon,
		"velocity_epsilon":  c.VelocityEpsilon,
		"step":              c.Step,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidSpring, name, v)
		}
	}
	return nil
}

// GestureConfig holds the pan/zoom/tap heuristics.
type GestureConfig struct {
	UnmovedRadius    float64 `toml:"unmoved_radius"`
	ZoomSensitivity  float64 `toml:"zoom_sensitivity"`
	WheelSensitivity float64 `toml:"wheel_sensitivity"`
}

// DefaultGestureConfig returns the default gesture heuristics.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		UnmovedRadius:    DefaultUnmovedRadius,
		ZoomSensitivity:  DefaultZoomSensitivity,
		WheelSensitivity: DefaultWheelSensitivity,
	}
}

// Config is the complete runtime configuration, loadable from TOML:
//
//	root_layout = "{x='scale', y='scale'}"
//	log_level = "debug"
//
//	[spring]
//	damping_ratio = 0.8
//
//	[gesture]
//	unmoved_radius = 24
type Config struct {
	Spring  SpringConfig  `toml:"spring"`
	Gesture GestureConfig `toml:"gesture"`
	// RootLayout is the layout descriptor of transform slot 0, which carries
	// every element outside an annotated layout.
	RootLayout string `toml:"root_layout"`
	LogLevel   string `toml:"log_level"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Spring:     DefaultSpringConfig(),
		Gesture:    DefaultGestureConfig(),
		RootLayout: DefaultRootLayout,
		LogLevel:   "warn",
	}
}

// Validate checks every section of the config.
func (c Config) Validate() error {
	if err := c.Spring.Validate(); err != nil {
		return err
	}
	if c.Gesture.UnmovedRadius < 0 || c.Gesture.ZoomSensitivity < 0 || c.Gesture.WheelSensitivity < 0 {
		return fmt.Errorf("%w: gesture values must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseConstraint(c.RootLayout); err != nil {
		return fmt.Errorf("%w: root_layout: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return lvl, nil
}

// ParseConfig decodes TOML on top of DefaultConfig. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}
