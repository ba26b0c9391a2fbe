package turn

import "math"

// classify guesses the input device from a single event's magnitude and
// delta mode. Trackpads deliver many small deltas (often in pixel mode),
// discrete wheels deliver few large ones. The guess is made from the
// first event of a gesture and held fixed until the next reset, so a
// gesture never flaps between thresholds mid-flight.
func classify(ev WheelEvent, cfg Config) DeviceGuess {
	mag := math.Abs(ev.DeltaY)
	if mag < cfg.TrackpadLineCutoff {
		return DeviceTrackpad
	}
	if ev.Mode == DeltaModePixel && mag < cfg.TrackpadPixelCutoff {
		return DeviceTrackpad
	}
	return DeviceWheel
}
