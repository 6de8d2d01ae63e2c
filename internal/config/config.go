package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"sectionsnap/internal/eventbus"
	"sectionsnap/internal/snap"
)

// FileName is the per-directory configuration file
const FileName = ".sectionsnap.toml"

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version" koanf:"version"`
	Navigator NavigatorSettings `toml:"navigator" koanf:"navigator"`
	UI        UISettings        `toml:"ui" koanf:"ui"`
	Watch     WatchSettings     `toml:"watch" koanf:"watch"`
	Analytics AnalyticsSettings `toml:"analytics" koanf:"analytics"`
}

// NavigatorSettings mirrors snap.Config in file form
type NavigatorSettings struct {
	SnapDuration         Duration `toml:"snap_duration" koanf:"snap_duration"`
	SnapEasing           string   `toml:"snap_easing" koanf:"snap_easing"`
	SnapThreshold        float64  `toml:"snap_threshold" koanf:"snap_threshold"`
	WheelSensitivity     float64  `toml:"wheel_sensitivity" koanf:"wheel_sensitivity"`
	TouchSensitivity     float64  `toml:"touch_sensitivity" koanf:"touch_sensitivity"`
	KeyboardSensitivity  float64  `toml:"keyboard_sensitivity" koanf:"keyboard_sensitivity"`
	EnableParallax       bool     `toml:"enable_parallax" koanf:"enable_parallax"`
	EnableProgress       bool     `toml:"enable_progress" koanf:"enable_progress"`
	EnableNavigationDots bool     `toml:"enable_navigation_dots" koanf:"enable_navigation_dots"`
}

// UISettings represents terminal front end configuration
type UISettings struct {
	WheelNotchRows int  `toml:"wheel_notch_rows" koanf:"wheel_notch_rows"`
	FrameRate      int  `toml:"frame_rate" koanf:"frame_rate"`
	SectionLevel   int  `toml:"section_level" koanf:"section_level"`
	ShowHelp       bool `toml:"show_help" koanf:"show_help"`
}

// WatchSettings controls reloading the document when it changes on disk
type WatchSettings struct {
	Enabled  bool     `toml:"enabled" koanf:"enabled"`
	Debounce Duration `toml:"debounce" koanf:"debounce"`
}

// AnalyticsSettings controls recording of section views
type AnalyticsSettings struct {
	Enabled  bool   `toml:"enabled" koanf:"enabled"`
	Database string `toml:"database" koanf:"database"`
}

// Duration is a time.Duration written as a string such as "1s" or "150ms"
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the file at path. An empty
// path means FileName in the working directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = FileName
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	nav := snap.DefaultConfig()
	return &Config{
		Version: 1,
		Navigator: NavigatorSettings{
			SnapDuration:         Duration(nav.SnapDuration),
			SnapEasing:           nav.SnapEasing,
			SnapThreshold:        nav.SnapThreshold,
			WheelSensitivity:     nav.WheelSensitivity,
			TouchSensitivity:     nav.TouchSensitivity,
			KeyboardSensitivity:  nav.KeyboardSensitivity,
			EnableParallax:       nav.EnableParallax,
			EnableProgress:       nav.EnableProgress,
			EnableNavigationDots: nav.EnableNavigationDots,
		},
		UI: UISettings{
			WheelNotchRows: 3,
			FrameRate:      60,
			SectionLevel:   2,
			ShowHelp:       true,
		},
		Watch: WatchSettings{
			Debounce: Duration(150 * time.Millisecond),
		},
		Analytics: AnalyticsSettings{
			Database: ".sectionsnap.db",
		},
	}
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	n := c.Navigator
	if n.SnapThreshold <= 0 || n.SnapThreshold > 1 {
		return fmt.Errorf("navigator.snap_threshold must be within (0, 1], got %v", n.SnapThreshold)
	}
	if n.SnapDuration < 0 {
		return fmt.Errorf("navigator.snap_duration must be non-negative")
	}
	if n.WheelSensitivity < 0 || n.TouchSensitivity < 0 || n.KeyboardSensitivity < 0 {
		return fmt.Errorf("navigator sensitivities must be non-negative")
	}
	if _, err := snap.ParseEasing(n.SnapEasing); err != nil {
		return fmt.Errorf("navigator.snap_easing: %w", err)
	}
	if c.UI.FrameRate <= 0 {
		return fmt.Errorf("ui.frame_rate must be positive, got %d", c.UI.FrameRate)
	}
	if c.UI.WheelNotchRows <= 0 {
		return fmt.Errorf("ui.wheel_notch_rows must be positive, got %d", c.UI.WheelNotchRows)
	}
	if c.UI.SectionLevel < 1 || c.UI.SectionLevel > 6 {
		return fmt.Errorf("ui.section_level must be between 1 and 6, got %d", c.UI.SectionLevel)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be non-negative")
	}
	if c.Analytics.Enabled && c.Analytics.Database == "" {
		return fmt.Errorf("analytics.database is required when analytics is enabled")
	}
	return nil
}

// SnapConfig converts the navigator settings for snap.New
func (c *Config) SnapConfig() snap.Config {
	n := c.Navigator
	return snap.Config{
		SnapDuration:         time.Duration(n.SnapDuration),
		SnapEasing:           n.SnapEasing,
		SnapThreshold:        n.SnapThreshold,
		WheelSensitivity:     n.WheelSensitivity,
		TouchSensitivity:     n.TouchSensitivity,
		KeyboardSensitivity:  n.KeyboardSensitivity,
		EnableParallax:       n.EnableParallax,
		EnableProgress:       n.EnableProgress,
		EnableNavigationDots: n.EnableNavigationDots,
	}
}

// FrameInterval is the delay between animation frames
func (c *Config) FrameInterval() time.Duration {
	if c.UI.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.UI.FrameRate)
}
