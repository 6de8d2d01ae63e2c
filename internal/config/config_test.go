package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sectionsnap/internal/eventbus"
	"sectionsnap/internal/snap"
)

type captureBus struct {
	events []eventbus.DomainEvent
}

func (b *captureBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *captureBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}
func (b *captureBus) Close() {}

func TestDefaultConfigMatchesNavigatorDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, snap.DefaultConfig(), cfg.SnapConfig())
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", FileName)
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Navigator.SnapDuration = Duration(600 * time.Millisecond)
	cfg.Navigator.SnapEasing = "cubic-bezier(0.4, 0, 0.2, 1)"
	cfg.UI.SectionLevel = 1
	cfg.Watch.Enabled = true
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "600ms")
	assert.Contains(t, string(data), "[navigator]")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	bus := &captureBus{}
	path := filepath.Join(t.TempDir(), FileName)
	svc := NewConfigServiceWithBus(bus, path)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, []eventbus.DomainEvent{eventbus.ConfigLoadedEvent{Path: path}}, bus.events)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Load must not create the file")
}

func TestSavePublishesEvent(t *testing.T) {
	bus := &captureBus{}
	path := filepath.Join(t.TempDir(), FileName)
	svc := NewConfigServiceWithBus(bus, path)

	require.NoError(t, svc.Save(DefaultConfig()))
	assert.Equal(t, []eventbus.DomainEvent{eventbus.ConfigSavedEvent{Path: path}}, bus.events)
}

func TestLoadFromPathKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `version = 1
[navigator]
snap_threshold = 0.25
snap_duration = "2s"

[analytics]
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigService("").LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Navigator.SnapThreshold)
	assert.Equal(t, Duration(2*time.Second), cfg.Navigator.SnapDuration)
	assert.Equal(t, 1.2, cfg.Navigator.WheelSensitivity)
	assert.True(t, cfg.Navigator.EnableNavigationDots)
	assert.True(t, cfg.Analytics.Enabled)
	assert.Equal(t, ".sectionsnap.db", cfg.Analytics.Database)
	assert.Equal(t, 60, cfg.UI.FrameRate)
}

func TestLoadFromPathErrors(t *testing.T) {
	svc := NewConfigService("")

	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")

	bad := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(bad, []byte("[navigator\nsnap_threshold = "), 0644))
	_, err = svc.LoadFromPath(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	badDuration := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(badDuration, []byte("[navigator]\nsnap_duration = \"soon\"\n"), 0644))
	_, err = svc.LoadFromPath(badDuration)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero threshold", func(c *Config) { c.Navigator.SnapThreshold = 0 }, "snap_threshold"},
		{"threshold above one", func(c *Config) { c.Navigator.SnapThreshold = 1.5 }, "snap_threshold"},
		{"negative duration", func(c *Config) { c.Navigator.SnapDuration = Duration(-time.Second) }, "snap_duration"},
		{"negative sensitivity", func(c *Config) { c.Navigator.TouchSensitivity = -1 }, "sensitivities"},
		{"unknown easing", func(c *Config) { c.Navigator.SnapEasing = "bounce" }, "snap_easing"},
		{"zero frame rate", func(c *Config) { c.UI.FrameRate = 0 }, "frame_rate"},
		{"zero notch rows", func(c *Config) { c.UI.WheelNotchRows = 0 }, "wheel_notch_rows"},
		{"heading level", func(c *Config) { c.UI.SectionLevel = 7 }, "section_level"},
		{"analytics without db", func(c *Config) { c.Analytics.Enabled = true; c.Analytics.Database = "" }, "analytics.database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.FrameRate = 20
	assert.Equal(t, 50*time.Millisecond, cfg.FrameInterval())
}
