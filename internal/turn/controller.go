// Package turn converts noisy, high-frequency scroll input into discrete,
// rate-limited page-turn intents.
//
// Raw wheel and trackpad deltas are bursty and device-dependent; a naive
// "any scroll turns a page" rule either does nothing (trackpad deltas too
// small) or flies through five pages (wheel flings). The controller
// accumulates scaled input per gesture, fires once a device-dependent
// threshold is crossed, then suppresses further turns for a cooldown
// window so the tail of the same physical gesture cannot cascade into
// multiple turns.
//
// Gesture lifecycle: Idle -> Accumulating -> Fired -> CoolingDown -> Idle.
// The accumulator resets on direction change, on an idle gap between
// events, or after a fired turn's cooldown expires. The input device is
// re-classified at every reset and held fixed for the gesture.
package turn

import (
	"sync"
	"time"
)

// Callbacks are the controller's outbound contract. OnTurn receives a
// clamped page-turn intent; OnFeedback receives every change of the
// progress indicator tuple. Both may be nil. Callbacks are invoked
// without the controller lock held, but always from the goroutine that
// delivered the triggering event or timer.
type Callbacks struct {
	OnTurn     func(Intent)
	OnFeedback func(Feedback)
}

// Controller is the continuous-input page-turn state machine. One
// controller serves one open document view; instances are independent.
type Controller struct {
	mu  sync.Mutex
	cfg Config
	cb  Callbacks

	// Reader position, read-only here: updated by the shell, consulted
	// for clamping intents.
	currentPage int
	totalPages  int

	gesture  GestureState
	feedback Feedback

	// In-flight swipe tracking
	touchActive bool
	touchStartX float64

	// Timer handles are stopped before every re-arm and on Close so a
	// stale callback can never fire against newer state.
	cooldownTimer *time.Timer
	fadeTimer     *time.Timer

	closed bool
}

// New creates a controller. Zero-valued config fields get defaults.
func New(cfg Config, cb Callbacks) *Controller {
	return &Controller{
		cfg:         cfg.applyDefaults(),
		cb:          cb,
		currentPage: 1,
	}
}

// SetPosition tells the controller where the reader is. total of 0 means
// the page count is still unknown.
func (c *Controller) SetPosition(current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current < 1 {
		current = 1
	}
	if total > 0 && current > total {
		current = total
	}
	c.currentPage = current
	c.totalPages = total
}

// Position returns the last reported reader position
func (c *Controller) Position() (current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage, c.totalPages
}

// Feedback returns the current indicator tuple
func (c *Controller) Feedback() Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback
}

// State returns a snapshot of the per-gesture state
func (c *Controller) State() GestureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture
}

// Config returns the effective configuration after defaulting
func (c *Controller) Config() Config {
	return c.cfg
}

// HandleWheel processes one wheel-like event through the accumulator
func (c *Controller) HandleWheel(ev WheelEvent) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	intent, fb := c.handleWheelLocked(ev)
	onTurn, onFeedback := c.cb.OnTurn, c.cb.OnFeedback
	c.mu.Unlock()

	if fb != nil && onFeedback != nil {
		onFeedback(*fb)
	}
	if intent != nil && onTurn != nil {
		onTurn(*intent)
	}
}

func (c *Controller) handleWheelLocked(ev WheelEvent) (*Intent, *Feedback) {
	now := ev.Time
	if now.IsZero() {
		now = time.Now()
	}

	// Zero deltas keep the gesture alive but carry no information.
	if ev.DeltaY == 0 {
		c.gesture.LastEventTime = now
		return nil, nil
	}

	dir := DirectionForward
	if ev.DeltaY < 0 {
		dir = DirectionBackward
	}

	// Lazy cooldown expiry, in case the event beats the timer.
	if c.gesture.FiredThisGesture && now.Sub(c.gesture.LastTurnTime) >= c.cfg.Cooldown {
		c.gesture.FiredThisGesture = false
		c.gesture.CoolingDown = false
		c.resetGesture(ev, dir)
	}

	// Reset condition: direction reversal or idle gap elapsed.
	if dir != c.gesture.Direction ||
		c.gesture.LastEventTime.IsZero() ||
		now.Sub(c.gesture.LastEventTime) > c.cfg.IdleGap {
		c.resetGesture(ev, dir)
	}

	c.gesture.LastEventTime = now

	// Anti-multi-jump guard: the gesture already produced its turn, so
	// trailing events are absorbed until cooldown clears.
	if c.gesture.FiredThisGesture {
		return nil, nil
	}

	c.gesture.AccumulatedEnergy += c.scaleDelta(ev)

	threshold := c.threshold()
	progress := c.gesture.AccumulatedEnergy / threshold * 100
	if progress > 100 {
		progress = 100
	}
	fb := c.updateFeedbackLocked(progress, dir)

	if c.gesture.AccumulatedEnergy >= threshold {
		intent := c.fireLocked(dir, now)
		// Completion flash: full bar until the fade timer hides it.
		flash := c.updateFeedbackLocked(100, dir)
		return intent, flash
	}
	return nil, fb
}

// resetGesture starts a fresh gesture: energy to zero, device
// re-classified from this event.
func (c *Controller) resetGesture(ev WheelEvent, dir Direction) {
	c.gesture.AccumulatedEnergy = 0
	c.gesture.Direction = dir
	c.gesture.Device = classify(ev, c.cfg)
}

// scaleDelta applies the device multiplier and per-event cap
func (c *Controller) scaleDelta(ev WheelEvent) float64 {
	mag := ev.DeltaY
	if mag < 0 {
		mag = -mag
	}
	scale, limit := c.cfg.WheelScale, c.cfg.WheelCap
	if c.gesture.Device == DeviceTrackpad {
		scale, limit = c.cfg.TrackpadScale, c.cfg.TrackpadCap
	}
	mag *= scale
	if mag > limit {
		mag = limit
	}
	return mag
}

func (c *Controller) threshold() float64 {
	if c.gesture.Device == DeviceTrackpad {
		return c.cfg.TrackpadThreshold
	}
	return c.cfg.WheelThreshold
}

// fireLocked emits the turn, arms the cooldown and resets the
// accumulator. Returns nil when the clamped target is the current page;
// the gesture is still consumed so a pinned gesture cannot respam.
func (c *Controller) fireLocked(dir Direction, now time.Time) *Intent {
	c.gesture.FiredThisGesture = true
	c.gesture.CoolingDown = true
	c.gesture.LastTurnTime = now
	c.gesture.AccumulatedEnergy = 0
	c.armCooldownTimer()

	target := c.clampedTarget(dir)
	if target == c.currentPage {
		return nil
	}
	return &Intent{Direction: dir, TargetPage: target}
}

// clampedTarget resolves a one-page move in dir against the known
// position. Unknown total (0) optimistically allows forward moves; the
// renderer rejects out-of-range requests once it knows the real bound.
func (c *Controller) clampedTarget(dir Direction) int {
	switch dir {
	case DirectionForward:
		if c.totalPages == 0 || c.currentPage < c.totalPages {
			return c.currentPage + 1
		}
	case DirectionBackward:
		if c.currentPage > 1 {
			return c.currentPage - 1
		}
	}
	return c.currentPage
}

// updateFeedbackLocked refreshes the indicator tuple and re-arms the
// fade timer. The fade timer is independent of the idle gap so the
// indicator lingers briefly after a completed turn.
func (c *Controller) updateFeedbackLocked(progress float64, dir Direction) *Feedback {
	c.feedback = Feedback{
		Visible:   progress >= c.cfg.NoiseFloor,
		Progress:  progress,
		Direction: dir,
	}
	if c.fadeTimer != nil {
		c.fadeTimer.Stop()
	}
	c.fadeTimer = time.AfterFunc(c.cfg.FadeDelay, c.onFadeExpired)
	fb := c.feedback
	return &fb
}

func (c *Controller) armCooldownTimer() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Stop()
	}
	c.cooldownTimer = time.AfterFunc(c.cfg.Cooldown, c.onCooldownExpired)
}

// onCooldownExpired clears the post-turn guard. The guard clears on
// timer expiry only, never on an event.
func (c *Controller) onCooldownExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.gesture.FiredThisGesture = false
	c.gesture.CoolingDown = false
}

// onFadeExpired hides the indicator after input stops
func (c *Controller) onFadeExpired() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.feedback = Feedback{}
	onFeedback := c.cb.OnFeedback
	c.mu.Unlock()

	if onFeedback != nil {
		onFeedback(Feedback{})
	}
}

// Reset discards all gesture state and pending timers. Called when the
// underlying document changes; the reader starts over at page 1.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimersLocked()
	c.gesture = GestureState{}
	c.feedback = Feedback{}
	c.touchActive = false
	c.currentPage = 1
	c.totalPages = 0
}

// Close drops all pending timers and makes the controller inert. Called
// when the view unmounts.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimersLocked()
}

func (c *Controller) stopTimersLocked() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Stop()
		c.cooldownTimer = nil
	}
	if c.fadeTimer != nil {
		c.fadeTimer.Stop()
		c.fadeTimer = nil
	}
}
