package anim

import "time"

// Clock drives animators from the host's frame callback. It is not safe for
// concurrent use; all calls belong on the render goroutine.
type Clock struct {
	active []*Animator
}

// NewClock returns an empty clock.
func NewClock() *Clock {
	return &Clock{}
}

// New returns an idle animator bound to this clock.
func (c *Clock) New(duration time.Duration) *Animator {
	return &Animator{Duration: duration, clock: c}
}

// Advance ticks every scheduled animator by dt. Animators started from
// within a hook during this call are first ticked on the next Advance.
func (c *Clock) Advance(dt time.Duration) {
	if len(c.active) == 0 {
		return
	}
	snapshot := append([]*Animator(nil), c.active...)
	for _, a := range snapshot {
		if !a.Running() {
			continue
		}
		if a.advance(dt) {
			c.unschedule(a)
		}
	}
}

// Busy reports whether any animator is scheduled.
func (c *Clock) Busy() bool {
	return len(c.active) > 0
}

// CancelAll cancels every scheduled animator, in start order.
func (c *Clock) CancelAll() {
	for len(c.active) > 0 {
		a := c.active[0]
		if !a.Running() {
			c.unschedule(a)
			continue
		}
		a.Cancel()
	}
}

func (c *Clock) schedule(a *Animator) {
	for _, x := range c.active {
		if x == a {
			return
		}
	}
	c.active = append(c.active, a)
}

func (c *Clock) unschedule(a *Animator) {
	for i, x := range c.active {
		if x == a {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}
