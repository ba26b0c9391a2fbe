package turn

import "time"

// Config holds the tuning knobs of the page-turn controller. All values
// are approximate by nature and safe to tune; zero-valued fields are
// replaced with defaults.
type Config struct {
	// IdleGap is the pause after which the next event starts a fresh
	// gesture. Default: 200ms.
	IdleGap time.Duration

	// Cooldown is the suppression window after a fired turn, absorbing
	// trailing events of the same physical gesture. Default: 700ms.
	Cooldown time.Duration

	// FadeDelay is how long the feedback indicator lingers after the
	// last update. Default: 500ms.
	FadeDelay time.Duration

	// WheelThreshold and TrackpadThreshold are the accumulated energy
	// needed to fire a turn. Defaults: 150 and 250.
	WheelThreshold    float64
	TrackpadThreshold float64

	// WheelScale and TrackpadScale multiply raw event magnitudes.
	// Trackpad deltas are small and noisy, so they are scaled up.
	// Defaults: 0.8 and 2.5.
	WheelScale    float64
	TrackpadScale float64

	// WheelCap and TrackpadCap bound a single event's scaled
	// contribution, so one fast fling cannot skip several pages.
	// Defaults: 50 and 10.
	WheelCap    float64
	TrackpadCap float64

	// TrackpadLineCutoff and TrackpadPixelCutoff drive the device
	// classifier: a first event below the cutoff for its delta mode is
	// read as a trackpad. Defaults: 4 and 50.
	TrackpadLineCutoff  float64
	TrackpadPixelCutoff float64

	// SwipeThreshold is the horizontal travel that qualifies a touch
	// swipe, in the caller's coordinate units. Default: 50.
	SwipeThreshold float64

	// NoiseFloor is the progress percentage below which the feedback
	// indicator stays hidden. Default: 5.
	NoiseFloor float64
}

// DefaultConfig returns a Config with the reference tuning
func DefaultConfig() Config {
	return Config{
		IdleGap:             200 * time.Millisecond,
		Cooldown:            700 * time.Millisecond,
		FadeDelay:           500 * time.Millisecond,
		WheelThreshold:      150,
		TrackpadThreshold:   250,
		WheelScale:          0.8,
		TrackpadScale:       2.5,
		WheelCap:            50,
		TrackpadCap:         10,
		TrackpadLineCutoff:  4,
		TrackpadPixelCutoff: 50,
		SwipeThreshold:      50,
		NoiseFloor:          5,
	}
}

// applyDefaults fills in zero-valued fields with defaults
func (c Config) applyDefaults() Config {
	d := DefaultConfig()
	if c.IdleGap <= 0 {
		c.IdleGap = d.IdleGap
	}
	if c.Cooldown <= 0 {
		c.Cooldown = d.Cooldown
	}
	if c.FadeDelay <= 0 {
		c.FadeDelay = d.FadeDelay
	}
	if c.WheelThreshold <= 0 {
		c.WheelThreshold = d.WheelThreshold
	}
	if c.TrackpadThreshold <= 0 {
		c.TrackpadThreshold = d.TrackpadThreshold
	}
	if c.WheelScale <= 0 {
		c.WheelScale = d.WheelScale
	}
	if c.TrackpadScale <= 0 {
		c.TrackpadScale = d.TrackpadScale
	}
	if c.WheelCap <= 0 {
		c.WheelCap = d.WheelCap
	}
	if c.TrackpadCap <= 0 {
		c.TrackpadCap = d.TrackpadCap
	}
	if c.TrackpadLineCutoff <= 0 {
		c.TrackpadLineCutoff = d.TrackpadLineCutoff
	}
	if c.TrackpadPixelCutoff <= 0 {
		c.TrackpadPixelCutoff = d.TrackpadPixelCutoff
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = d.SwipeThreshold
	}
	if c.NoiseFloor <= 0 {
		c.NoiseFloor = d.NoiseFloor
	}
	return c
}
