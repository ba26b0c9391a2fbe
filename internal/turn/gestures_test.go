package turn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapZoneNavigation(t *testing.T) {
	tests := []struct {
		name    string
		x       int
		width   int
		current int
		want    int // 0 means no intent
		wantDir Direction
	}{
		{"left half turns back", 10, 100, 5, 4, DirectionBackward},
		{"right half turns forward", 80, 100, 5, 6, DirectionForward},
		{"exact midpoint turns forward", 50, 100, 5, 6, DirectionForward},
		{"left edge at page 1 clamps silently", 0, 100, 1, 0, DirectionNone},
		{"right edge at last page clamps silently", 99, 100, 20, 0, DirectionNone},
		{"zero width is ignored", 10, 0, 5, 0, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := New(Config{}, rec.callbacks())
			defer c.Close()
			c.SetPosition(tt.current, 20)

			c.HandleClick(tt.x, tt.width)

			if tt.want == 0 {
				assert.Empty(t, rec.Intents())
				return
			}
			require.Len(t, rec.Intents(), 1)
			assert.Equal(t, Intent{Direction: tt.wantDir, TargetPage: tt.want}, rec.Intents()[0])
		})
	}
}

func TestSwipeDetection(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		endX   float64
		want   int // 0 means no intent
	}{
		{"leftward swipe turns forward", 120, 40, 6},
		{"rightward swipe turns back", 40, 120, 4},
		{"exact threshold qualifies", 100, 50, 4},
		{"short drag is ignored", 100, 70, 0},
		{"vertical-ish touch is ignored", 100, 99, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := New(Config{}, rec.callbacks())
			defer c.Close()
			c.SetPosition(5, 20)

			c.HandleTouchStart(tt.startX)
			c.HandleTouchEnd(tt.endX)

			if tt.want == 0 {
				assert.Empty(t, rec.Intents())
				return
			}
			require.Len(t, rec.Intents(), 1)
			assert.Equal(t, tt.want, rec.Intents()[0].TargetPage)
		})
	}
}

func TestSwipeFiresOnceAndLeavesAccumulatorAlone(t *testing.T) {
	rec := &recorder{}
	c := New(Config{}, rec.callbacks())
	defer c.Close()
	c.SetPosition(5, 20)

	// Build up some wheel energy first.
	base := time.Now()
	c.HandleWheel(wheelAt(100, base))
	c.HandleWheel(wheelAt(100, base.Add(50*time.Millisecond)))
	before := c.State().AccumulatedEnergy
	require.Equal(t, 100.0, before)

	c.HandleTouchStart(150)
	c.HandleTouchEnd(20)

	require.Len(t, rec.Intents(), 1, "a qualifying swipe fires exactly one turn")
	assert.Equal(t, 6, rec.Intents()[0].TargetPage)
	assert.Equal(t, before, c.State().AccumulatedEnergy, "swipe must not perturb the accumulator")
	assert.False(t, c.State().FiredThisGesture, "swipe bypasses the gesture guard")
}

func TestTouchEndWithoutStartIsIgnored(t *testing.T) {
	rec := &recorder{}
	c := New(Config{}, rec.callbacks())
	defer c.Close()
	c.SetPosition(5, 20)

	c.HandleTouchEnd(500)
	assert.Empty(t, rec.Intents())
}

func TestRequestPageClamps(t *testing.T) {
	tests := []struct {
		name    string
		request int
		current int
		total   int
		want    int // 0 means no intent
		wantDir Direction
	}{
		{"in range forward", 12, 5, 20, 12, DirectionForward},
		{"in range backward", 2, 5, 20, 2, DirectionBackward},
		{"above total clamps to last", 99, 5, 20, 20, DirectionForward},
		{"below one clamps to first", -3, 5, 20, 1, DirectionBackward},
		{"clamp onto current page emits nothing", 99, 20, 20, 0, DirectionNone},
		{"unknown total allows optimistic jump", 40, 5, 0, 40, DirectionForward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := New(Config{}, rec.callbacks())
			defer c.Close()
			c.SetPosition(tt.current, tt.total)

			c.RequestPage(tt.request)

			if tt.want == 0 {
				assert.Empty(t, rec.Intents())
				return
			}
			require.Len(t, rec.Intents(), 1)
			assert.Equal(t, Intent{Direction: tt.wantDir, TargetPage: tt.want}, rec.Intents()[0])
		})
	}
}

func TestTurnIsIndependentOfCooldown(t *testing.T) {
	rec := &recorder{}
	c := New(Config{}, rec.callbacks())
	defer c.Close()
	c.SetPosition(5, 20)

	// Fire via the accumulator, entering cooldown.
	base := time.Now()
	for i := 0; i < 4; i++ {
		c.HandleWheel(wheelAt(100, base.Add(time.Duration(i)*50*time.Millisecond)))
	}
	require.Len(t, rec.Intents(), 1)
	require.True(t, c.State().CoolingDown)
	c.SetPosition(6, 20)

	// A deliberate discrete gesture still works during cooldown.
	c.Turn(DirectionForward)
	require.Len(t, rec.Intents(), 2)
	assert.Equal(t, 7, rec.Intents()[1].TargetPage)
}
