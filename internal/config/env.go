package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override file settings.
// A double underscore separates levels, so SECTIONSNAP_NAVIGATOR__SNAP_THRESHOLD
// sets navigator.snap_threshold.
const EnvPrefix = "SECTIONSNAP_"

// ApplyEnv overlays SECTIONSNAP_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("failed to load env overrides: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to apply env overrides: %w", err)
	}
	return nil
}

// envKey maps SECTIONSNAP_NAVIGATOR__SNAP_EASING to navigator.snap_easing.
// Variables without a level separator are not configuration keys and are
// dropped, which keeps SECTIONSNAP_E2E_TEST and friends out of the config.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key != "version" && !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

// ApplyNavigatorOverrides merges a document's frontmatter navigator block,
// keyed like the [navigator] table, onto cfg.
func ApplyNavigatorOverrides(cfg *Config, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	k := koanf.New(".")
	for key, val := range overrides {
		if err := k.Set("navigator."+key, val); err != nil {
			return fmt.Errorf("failed to set navigator.%s: %w", key, err)
		}
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to apply frontmatter overrides: %w", err)
	}
	return nil
}

// ForDocument returns a copy of c with the document's frontmatter navigator
// block applied. Environment overrides are re-applied on top so they keep
// the last word.
func (c *Config) ForDocument(frontmatter map[string]any) (*Config, error) {
	out := *c
	if nav, ok := frontmatter["navigator"].(map[string]any); ok {
		if err := ApplyNavigatorOverrides(&out, nav); err != nil {
			return nil, err
		}
		if err := ApplyEnv(&out); err != nil {
			return nil, err
		}
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid navigator settings in frontmatter: %w", err)
	}
	return &out, nil
}
