package turn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		delta float64
		mode  DeltaMode
		want  DeviceGuess
	}{
		{"small line delta is trackpad", 2, DeltaModeLine, DeviceTrackpad},
		{"small negative line delta is trackpad", -3, DeltaModeLine, DeviceTrackpad},
		{"line cutoff boundary is wheel", 4, DeltaModeLine, DeviceWheel},
		{"typical wheel notch is wheel", 100, DeltaModeLine, DeviceWheel},
		{"moderate pixel delta is trackpad", 30, DeltaModePixel, DeviceTrackpad},
		{"pixel cutoff boundary is wheel", 50, DeltaModePixel, DeviceWheel},
		{"large pixel delta is wheel", 120, DeltaModePixel, DeviceWheel},
		{"tiny pixel delta is trackpad", 1, DeltaModePixel, DeviceTrackpad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(WheelEvent{DeltaY: tt.delta, Mode: tt.mode}, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassificationHeldForGestureDuration(t *testing.T) {
	c := New(Config{}, Callbacks{})
	defer c.Close()
	c.SetPosition(5, 20)

	// First event pins the wheel classification; later small deltas
	// within the same gesture must not re-classify.
	base := time.Now()
	c.HandleWheel(wheelAt(100, base))
	assert.Equal(t, DeviceWheel, c.State().Device)

	c.HandleWheel(wheelAt(2, base.Add(50*time.Millisecond)))
	assert.Equal(t, DeviceWheel, c.State().Device)
}
