package turn

import "time"

// Direction is the sign of a gesture or a turn intent
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// String returns the human-readable name of the direction
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// DeviceGuess is the heuristic classification of the input source for
// the current gesture
type DeviceGuess int

const (
	DeviceUnknown DeviceGuess = iota
	DeviceWheel
	DeviceTrackpad
)

// String returns the human-readable name of the device guess
func (g DeviceGuess) String() string {
	switch g {
	case DeviceWheel:
		return "wheel"
	case DeviceTrackpad:
		return "trackpad"
	default:
		return "unknown"
	}
}

// DeltaMode says how a wheel event reports its delta
type DeltaMode int

const (
	DeltaModeLine DeltaMode = iota
	DeltaModePixel
)

// WheelEvent is a single wheel-like input event. A positive DeltaY means
// scrolling toward the next page. A zero Time means "now".
type WheelEvent struct {
	DeltaY float64
	Mode   DeltaMode
	Time   time.Time
}

// Intent is an emitted page-turn request. TargetPage is already clamped
// against the position the controller was last told about.
type Intent struct {
	Direction  Direction
	TargetPage int
}

// Feedback is the progress tuple for the turn indicator overlay
type Feedback struct {
	Visible   bool
	Progress  float64 // 0-100
	Direction Direction
}

// GestureState is a snapshot of the controller's per-gesture state
type GestureState struct {
	AccumulatedEnergy float64
	Direction         Direction
	LastEventTime     time.Time
	LastTurnTime      time.Time
	FiredThisGesture  bool
	CoolingDown       bool
	Device            DeviceGuess
}
