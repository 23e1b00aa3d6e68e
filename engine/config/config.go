package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine"
	"gopkg.in/yaml.v3"
)

// failure policy names accepted in config files.
const (
	policyLogAndContinue = "log-and-continue"
	policyFatal          = "fatal"
)

// Config is the YAML-backed configuration of the prism driver binary.
// Every field is optional; zero values fall back to the engine defaults.
type Config struct {
	// Title is the window title.
	Title string `yaml:"title,omitempty"`

	// Width and Height are the initial window dimensions in pixels.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	// AmbientColor and AlternateColor are the surface clear colors, as
	// "#rrggbb" hex strings or SVG color names ("cornflowerblue").
	AmbientColor   string `yaml:"ambient_color,omitempty"`
	AlternateColor string `yaml:"alternate_color,omitempty"`

	// PlaceholderPipeline binds the degenerate placeholder pipeline each frame.
	PlaceholderPipeline bool `yaml:"placeholder_pipeline,omitempty"`

	// CursorToggle makes pointer presses toggle cursor visibility and the
	// clear color.
	CursorToggle bool `yaml:"cursor_toggle,omitempty"`

	// TouchLogging logs touch events.
	TouchLogging bool `yaml:"touch_logging,omitempty"`

	// FrameFailurePolicy is "log-and-continue" (default) or "fatal".
	FrameFailurePolicy string `yaml:"frame_failure_policy,omitempty"`

	// Profiling enables per-frame performance statistics in the log.
	Profiling bool `yaml:"profiling,omitempty"`
}

// DefaultConfig returns the stock configuration: an 800x600 window with the
// default color pair, no optional features, and the log-and-continue policy.
//
// Returns:
//   - *Config: the default configuration
func DefaultConfig() *Config {
	return &Config{
		Title:              "Prism",
		Width:              800,
		Height:             600,
		FrameFailurePolicy: policyLogAndContinue,
	}
}

// DefaultConfigPath returns the conventional config file location,
// ~/.config/prism/prism.yaml.
//
// Returns:
//   - string: the default config path
//   - error: an error if the home directory cannot be determined
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "prism", "prism.yaml"), nil
}

// Load reads the config file at the default location. A missing file is not
// an error; the defaults are returned.
//
// Returns:
//   - *Config: the loaded or default configuration
//   - error: an error if the file exists but cannot be read, parsed, or validated
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromPath(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFromPath reads a YAML config file and merges it over the defaults.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the merged, validated configuration
//   - error: an error if the file cannot be read, parsed, or validated
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine would reject.
//
// Returns:
//   - error: the first validation failure, or nil
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be greater than zero, got %dx%d", c.Width, c.Height)
	}
	switch c.FrameFailurePolicy {
	case "", policyLogAndContinue, policyFatal:
	default:
		return fmt.Errorf("unknown frame_failure_policy %q", c.FrameFailurePolicy)
	}
	if c.AmbientColor != "" {
		if _, err := common.ParseColor(c.AmbientColor); err != nil {
			return fmt.Errorf("ambient_color: %w", err)
		}
	}
	if c.AlternateColor != "" {
		if _, err := common.ParseColor(c.AlternateColor); err != nil {
			return fmt.Errorf("alternate_color: %w", err)
		}
	}
	return nil
}

// Features converts the config's feature toggles to an engine feature set.
//
// Returns:
//   - engine.Features: the selected features
func (c *Config) Features() engine.Features {
	return engine.Features{
		PlaceholderPipeline: c.PlaceholderPipeline,
		CursorToggle:        c.CursorToggle,
		TouchLogging:        c.TouchLogging,
	}
}

// FailurePolicy converts the config's policy name to an engine policy.
// Unset defaults to log-and-continue.
//
// Returns:
//   - engine.FailurePolicy: the selected policy
func (c *Config) FailurePolicy() engine.FailurePolicy {
	if c.FrameFailurePolicy == policyFatal {
		return engine.FailurePolicyFatal
	}
	return engine.FailurePolicyLogAndContinue
}

// ClearColors converts the config's color strings to an engine color pair,
// keeping the engine defaults for unset fields. Validate must have accepted
// the config first.
//
// Returns:
//   - engine.ClearColors: the selected color pair
func (c *Config) ClearColors() engine.ClearColors {
	colors := engine.DefaultClearColors()
	if c.AmbientColor != "" {
		colors.Ambient = common.Coalesce(mustColor(c.AmbientColor), colors.Ambient)
	}
	if c.AlternateColor != "" {
		colors.Alternate = common.Coalesce(mustColor(c.AlternateColor), colors.Alternate)
	}
	return colors
}

// mustColor parses a color string already accepted by Validate; a parse
// failure here yields the zero color, which Coalesce replaces with the default.
func mustColor(s string) common.Color {
	c, err := common.ParseColor(s)
	if err != nil {
		return common.Color{}
	}
	return c
}
