package correlate

// Countdown is a tick-driven expiry window. A signal arms it, each game tick
// advances it, and it is either consumed before the limit or lapses silently.
type Countdown struct {
	limit   int
	armed   bool
	elapsed int
}

// Arm opens the window. Re-arming while armed resets the elapsed count.
func (c *Countdown) Arm() {
	c.armed = true
	c.elapsed = 0
}

// Tick advances the window by one tick and reports whether it lapsed on
// this tick. The window closes once more than limit ticks have elapsed.
func (c *Countdown) Tick() bool {
	if !c.armed {
		return false
	}
	if c.elapsed > c.limit {
		c.Reset()
		return true
	}
	c.elapsed++
	return false
}

// Armed reports whether the window is open.
func (c *Countdown) Armed() bool {
	return c.armed
}

// Reset closes the window without consuming it.
func (c *Countdown) Reset() {
	c.armed = false
	c.elapsed = 0
}
