package snap

import "time"

// Config holds the navigator settings. It is read once by New and never
// modified afterwards.
type Config struct {
	SnapDuration  time.Duration
	SnapEasing    string
	SnapThreshold float64 // fraction of the viewport height

	WheelSensitivity    float64
	TouchSensitivity    float64
	KeyboardSensitivity float64 // accepted for compatibility, not used by any input path

	EnableParallax       bool
	EnableProgress       bool
	EnableNavigationDots bool
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		SnapDuration:         1000 * time.Millisecond,
		SnapEasing:           EaseOutCubicName,
		SnapThreshold:        0.1,
		WheelSensitivity:     1.2,
		TouchSensitivity:     0.8,
		KeyboardSensitivity:  100,
		EnableParallax:       true,
		EnableProgress:       true,
		EnableNavigationDots: true,
	}
}
