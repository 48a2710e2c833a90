// Package config loads jsonwatch settings: the embedded defaults merged with an
// optional user file in YAML or TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names an explicit config file and wins over the XDG locations.
const EnvConfigPath = "JSONWATCH_CONFIG"

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Config is the merged runtime configuration.
type Config struct {
	File         string                 `yaml:"file" toml:"file"`
	Title        string                 `yaml:"title" toml:"title"`
	PollInterval Duration               `yaml:"poll_interval" toml:"poll_interval"`
	HopInterval  Duration               `yaml:"hop_interval" toml:"hop_interval"`
	NoColor      bool                   `yaml:"no_color" toml:"no_color"`
	Layout       LayoutConfig           `yaml:"layout" toml:"layout"`
	Markers      MarkerConfig           `yaml:"markers" toml:"markers"`
	PaneSwitch   PaneSwitchConfig       `yaml:"pane_switch" toml:"pane_switch"`
	Log          LogConfig              `yaml:"log" toml:"log"`
	Theme        string                 `yaml:"theme" toml:"theme"`
	Themes       map[string]ThemeConfig `yaml:"themes" toml:"themes"`
}

// LayoutConfig controls the column split and scroll distance.
type LayoutConfig struct {
	KeyRatio      float64 `yaml:"key_ratio" toml:"key_ratio"`
	MinKeyWidth   int     `yaml:"min_key_width" toml:"min_key_width"`
	LineStepRatio float64 `yaml:"line_step_ratio" toml:"line_step_ratio"`
}

// MarkerConfig holds the two highlight glyphs.
type MarkerConfig struct {
	Default   string `yaml:"default" toml:"default"`
	Alternate string `yaml:"alternate" toml:"alternate"`
}

// PaneSwitchConfig is the command run by the switch-pane key. An empty
// command disables the key.
type PaneSwitchConfig struct {
	Command string   `yaml:"command" toml:"command"`
	Args    []string `yaml:"args" toml:"args"`
}

// LogConfig selects the log sink and level.
type LogConfig struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level"`
}

// ThemeConfig is a named color table. Colors are ANSI 256 numbers or hex strings.
type ThemeConfig struct {
	KeyColor     ColorValue `yaml:"key_color" toml:"key_color"`
	ChangedColor ColorValue `yaml:"changed_color" toml:"changed_color"`
	ValueColor   ColorValue `yaml:"value_color" toml:"value_color"`
	HeaderColor  ColorValue `yaml:"header_color" toml:"header_color"`
	TitleColor   ColorValue `yaml:"title_color" toml:"title_color"`
	BorderColor  ColorValue `yaml:"border_color" toml:"border_color"`
	BorderStyle  string     `yaml:"border_style" toml:"border_style"`
	SelectedFG   ColorValue `yaml:"selected_fg" toml:"selected_fg"`
	SelectedBG   ColorValue `yaml:"selected_bg" toml:"selected_bg"`
	FooterColor  ColorValue `yaml:"footer_color" toml:"footer_color"`
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	// Accept both ints and strings; store the literal value.
	*c = ColorValue(value.Value)
	return nil
}

func (c *ColorValue) UnmarshalText(text []byte) error {
	*c = ColorValue(strings.TrimSpace(string(text)))
	return nil
}

// Duration is a time.Duration written as a Go duration string ("250ms", "5s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load merges the file at path over the defaults and validates the result.
// An empty path returns the validated defaults. Files ending in .toml are
// decoded as TOML, anything else as YAML.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := decodeInto(path, data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeInto(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the viewer cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.PollInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}
	if c.HopInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("hop_interval must be positive, got %s", c.HopInterval))
	}
	if c.Layout.KeyRatio <= 0 || c.Layout.KeyRatio >= 1 {
		errs = append(errs, fmt.Errorf("layout.key_ratio must be between 0 and 1, got %v", c.Layout.KeyRatio))
	}
	if c.Layout.MinKeyWidth < 1 {
		errs = append(errs, fmt.Errorf("layout.min_key_width must be at least 1, got %d", c.Layout.MinKeyWidth))
	}
	if c.Layout.LineStepRatio <= 0 || c.Layout.LineStepRatio > 1 {
		errs = append(errs, fmt.Errorf("layout.line_step_ratio must be in (0, 1], got %v", c.Layout.LineStepRatio))
	}
	if c.Markers.Default == "" || c.Markers.Alternate == "" {
		errs = append(errs, errors.New("markers.default and markers.alternate must not be empty"))
	}
	if _, ok := c.Themes[c.Theme]; !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// Marker picks the highlight glyph for the creature argument: anything whose
// first character is w or W selects the alternate glyph.
func (c Config) Marker(creature string) string {
	r, _ := utf8.DecodeRuneInString(creature)
	if unicode.ToLower(r) == 'w' {
		return c.Markers.Alternate
	}
	return c.Markers.Default
}

// LogFile returns the configured log path, defaulting to a file in the
// system temp directory.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(os.TempDir(), "jsonwatch.log")
}

// ResolvePath finds the user config file. $JSONWATCH_CONFIG wins; otherwise
// config.yaml, config.yml or config.toml under $XDG_CONFIG_HOME/jsonwatch or
// ~/.config/jsonwatch is used. It returns "" when none exists.
func ResolvePath() string {
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "jsonwatch")
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "jsonwatch")
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
