package turn

// Discrete gestures bypass the accumulator and the cooldown guard: a tap
// or a qualifying swipe is already a deliberate, self-limiting action.
// They share the clamping rules with the accumulator path and never
// perturb the running gesture state.

// Turn requests a single page turn in dir, clamped against the known
// position. Used by tap zones, swipes and direct key bindings.
func (c *Controller) Turn(dir Direction) {
	if dir == DirectionNone {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	target := c.clampedTarget(dir)
	current := c.currentPage
	onTurn := c.cb.OnTurn
	c.mu.Unlock()

	if target == current || onTurn == nil {
		return
	}
	onTurn(Intent{Direction: dir, TargetPage: target})
}

// RequestPage asks for an absolute page, clamped. Out-of-range requests
// are silently clamped; a request that lands on the current page emits
// nothing.
func (c *Controller) RequestPage(page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}
	if c.totalPages > 0 && page > c.totalPages {
		page = c.totalPages
	}
	current := c.currentPage
	onTurn := c.cb.OnTurn
	c.mu.Unlock()

	if page == current || onTurn == nil {
		return
	}
	dir := DirectionForward
	if page < current {
		dir = DirectionBackward
	}
	onTurn(Intent{Direction: dir, TargetPage: page})
}

// HandleClick maps a click to its tap zone: left half of the viewing
// area turns back, right half turns forward.
func (c *Controller) HandleClick(x, containerWidth int) {
	if containerWidth <= 0 {
		return
	}
	if x < containerWidth/2 {
		c.Turn(DirectionBackward)
	} else {
		c.Turn(DirectionForward)
	}
}

// HandleTouchStart records the origin of a potential swipe
func (c *Controller) HandleTouchStart(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.touchActive = true
	c.touchStartX = x
}

// HandleTouchEnd completes a swipe. A rightward swipe of at least the
// configured distance turns back, a leftward one turns forward; shorter
// travel is ignored.
func (c *Controller) HandleTouchEnd(x float64) {
	c.mu.Lock()
	if c.closed || !c.touchActive {
		c.mu.Unlock()
		return
	}
	c.touchActive = false
	delta := x - c.touchStartX
	threshold := c.cfg.SwipeThreshold
	c.mu.Unlock()

	switch {
	case delta >= threshold:
		c.Turn(DirectionBackward)
	case delta <= -threshold:
		c.Turn(DirectionForward)
	}
}
