package dots

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/iburimskiy/animated-dots/internal/anim"
	"github.com/iburimskiy/animated-dots/internal/config"
)

// Edge is where the incoming marker is drawn while the row shifts.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTrailing
	EdgeLeading
)

// Vertical travel of the shake, in dot sizes.
const shakeLift = 1.5

// Counter owns a row of dots and animates them through add and remove
// transitions. It is single-threaded: Increment, Decrement, Update and Draw
// must all be called from the host's render goroutine.
//
// Calling Increment or Decrement while a transition is still animating is
// not guarded; the new transition runs alongside the old one and the row may
// look wrong until both settle.
type Counter struct {
	cfg     config.Counter
	window  Window
	palette Palette
	clock   *anim.Clock
	log     logr.Logger

	active   int
	dots     []*Dot
	inflight []*anim.Animator

	xTranslation float64
	phantom      Edge
	dirty        bool
}

// Option configures a Counter.
type Option func(*Counter)

// WithLogger sets the logger used for ignored commands and transitions.
func WithLogger(l logr.Logger) Option {
	return func(c *Counter) { c.log = l }
}

// WithClock shares an animation clock between counters. The host must then
// advance that clock itself instead of calling Update on each counter.
func WithClock(clock *anim.Clock) Option {
	return func(c *Counter) { c.clock = clock }
}

// New creates a counter. The configuration is normalized, so an invalid one
// is clamped rather than rejected.
func New(cfg config.Counter, opts ...Option) *Counter {
	c := &Counter{log: logr.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = anim.NewClock()
	}
	c.apply(cfg.Normalize())
	c.active = c.cfg.InitialActive
	c.dirty = true
	return c
}

// Configure replaces the configuration. In-flight transitions are cancelled,
// the active count is clamped to the new dot count, and existing slots are
// kept while the slot list grows or shrinks to the new window.
func (c *Counter) Configure(cfg config.Counter) {
	c.cancelInflight()
	c.apply(cfg.Normalize())

	if c.active > c.cfg.DotCount {
		c.log.V(1).Info("active count clamped to new dot count", "active", c.active, "dotCount", c.cfg.DotCount)
		c.active = c.cfg.DotCount
	}
	if c.dots != nil {
		n := c.window.Drawn()
		for len(c.dots) < n {
			c.dots = append(c.dots, &Dot{})
		}
		c.dots = c.dots[:n]
		for _, d := range c.dots {
			d.rest()
		}
		c.recomputeDefaults()
	}
	c.requestRedraw()
}

func (c *Counter) apply(cfg config.Counter) {
	c.cfg = cfg
	c.window = WindowOf(cfg)
	c.palette = PaletteOf(cfg)
}

// Config returns the normalized configuration in use.
func (c *Counter) Config() config.Counter { return c.cfg }

// Active returns the current active count. It changes as soon as Increment
// or Decrement is called, not when the animation ends.
func (c *Counter) Active() int { return c.active }

// Dots returns a copy of the drawn slots.
func (c *Counter) Dots() []Dot {
	c.ensureDots()
	out := make([]Dot, len(c.dots))
	for i, d := range c.dots {
		out[i] = *d
	}
	return out
}

// XTranslation is the current horizontal shift of the row.
func (c *Counter) XTranslation() float64 { return c.xTranslation }

// Phantom reports which edge shows the incoming marker, if any.
func (c *Counter) Phantom() Edge { return c.phantom }

// Update advances the counter's animations by dt.
func (c *Counter) Update(dt time.Duration) {
	c.clock.Advance(dt)
}

// Animating reports whether any transition of this counter is in flight.
func (c *Counter) Animating() bool {
	for _, a := range c.inflight {
		if a.Running() {
			return true
		}
	}
	return false
}

// Detach cancels every in-flight transition. Cancel hooks put the dots back
// at rest and clear the row shift, without chaining further phases.
func (c *Counter) Detach() {
	c.cancelInflight()
}

// Dirty reports whether the row changed since the last ClearDirty.
func (c *Counter) Dirty() bool { return c.dirty }

// ClearDirty is called by the host after drawing.
func (c *Counter) ClearDirty() { c.dirty = false }

func (c *Counter) requestRedraw() { c.dirty = true }

// Increment activates one more dot. At capacity it only logs.
func (c *Counter) Increment() {
	c.ensureDots()
	if c.active >= c.cfg.DotCount {
		c.log.V(1).Info("increment ignored, counter is full", "active", c.active, "dotCount", c.cfg.DotCount)
		return
	}

	c.active++
	subject := c.dots[subjectIndex(c.active, c.window)]
	c.recomputeDefaults()
	subject.Role = RoleActive

	scale := c.scaleIn(subject)
	if c.window.Full(c.active) {
		c.log.V(2).Info("add: shifting row", "active", c.active)
		c.shiftLeft(subject, scale).Start()
	} else {
		c.log.V(2).Info("add: scaling in", "active", c.active)
		scale.Start()
	}
	c.requestRedraw()
}

// Decrement deactivates the last active dot. At zero it only logs.
func (c *Counter) Decrement() {
	c.ensureDots()
	if c.active <= 0 {
		c.log.V(1).Info("decrement ignored, counter is empty")
		return
	}

	subject := c.dots[subjectIndex(c.active, c.window)]
	c.active--
	if c.active < c.window.Drawn() {
		c.recomputeDefaults()
	}

	c.log.V(2).Info("remove: shaking", "active", c.active)
	c.shake(subject).Start()
	c.requestRedraw()
}

// shiftLeft slides the row one cell to the left to reveal the next dot:
// the second slot shrinks into the leading marker, the trailing marker grows
// to a full dot and a new marker slides in behind it.
func (c *Counter) shiftLeft(subject *Dot, next *anim.Animator) *anim.Animator {
	size, small := c.cfg.DotSize, c.cfg.SmallDotSize
	n := len(c.dots)
	// Nothing is hidden past the last dot once the count is complete.
	incoming := EdgeTrailing
	if c.active == c.cfg.DotCount {
		incoming = EdgeNone
	}

	a := c.track(c.clock.New(c.cfg.Timings.Translate)).
		Track("x", 0, size+c.cfg.Spacing).
		Track("entry", small, size).
		Track("exit", size, small)
	a.Easing = anim.AccelerateDecelerate
	a.OnUpdate = func(a *anim.Animator) {
		c.xTranslation = a.Value("x")
		c.phantom = incoming
		c.dots[n-1].Size = a.Value("entry")
		if n > 2 {
			c.dots[1].Size = a.Value("exit")
		}
		c.requestRedraw()
	}
	a.OnEnd = func() {
		c.settle(subject)
		next.Start()
	}
	a.OnCancel = func() { c.settle(subject) }
	return a
}

// shiftRight is the mirror of shiftLeft after a removal: the subject slides
// into the trailing marker's place and shrinks, the leading marker grows
// back to a full dot and a new marker slides in at the front.
func (c *Counter) shiftRight(subject *Dot) *anim.Animator {
	size, small := c.cfg.DotSize, c.cfg.SmallDotSize
	n := len(c.dots)

	a := c.track(c.clock.New(c.cfg.Timings.Translate)).
		Track("x", 0, size+c.cfg.Spacing).
		Track("entry", small, size).
		Track("exit", size, small)
	a.Easing = anim.AccelerateDecelerate
	a.OnStart = func() {
		subject.rest()
		subject.Role = RoleInactive
	}
	a.OnUpdate = func(a *anim.Animator) {
		c.xTranslation = -a.Value("x")
		c.phantom = EdgeLeading
		c.dots[0].Size = a.Value("entry")
		if n > 2 {
			c.dots[n-2].Size = a.Value("exit")
		}
		c.requestRedraw()
	}
	a.OnEnd = func() { c.settle(subject) }
	a.OnCancel = func() { c.settle(subject) }
	return a
}

// scaleIn shrinks the subject from three dot sizes down to one while its
// overlay fades in, then ripples when the style asks for it.
func (c *Counter) scaleIn(subject *Dot) *anim.Animator {
	size := c.cfg.DotSize

	a := c.track(c.clock.New(c.cfg.Timings.Scale)).
		Track("size", size*3, size).
		Track("alpha", 0, 255)
	a.OnUpdate = func(a *anim.Animator) {
		alpha := a.Value("alpha")
		c.xTranslation = 0
		c.phantom = EdgeNone
		subject.Size = size
		if alpha >= fadeThreshold {
			subject.Size = a.Value("size")
		}
		subject.Phase = Adding{Progress: a.Fraction(), Alpha: alpha}
		c.requestRedraw()
	}

	var ripple *anim.Animator
	if c.cfg.Style == config.StyleEmbellished {
		ripple = c.ripple(subject)
	}
	a.OnEnd = func() {
		c.settle(subject)
		if ripple != nil {
			ripple.Start()
		}
	}
	a.OnCancel = func() { c.settle(subject) }
	return a
}

// ripple draws a fading ring around the subject after a short delay.
func (c *Counter) ripple(subject *Dot) *anim.Animator {
	size := c.cfg.DotSize

	a := c.track(c.clock.New(c.cfg.Timings.Ripple)).
		Track("radius", size, size*4).
		Track("alpha", 200, 0)
	a.Delay = c.cfg.Timings.RippleDelay
	a.OnUpdate = func(a *anim.Animator) {
		subject.Phase = Rippling{Radius: a.Value("radius"), Alpha: a.Value("alpha")}
		c.requestRedraw()
	}
	a.OnEnd = func() {
		subject.rest()
		c.requestRedraw()
	}
	a.OnCancel = a.OnEnd
	return a
}

// shake wobbles the subject sideways, lifts and drops it, recolored as
// removing. The embellished style lets it reappear as an empty dot at the
// end. A full window then shifts back one cell.
func (c *Counter) shake(subject *Dot) *anim.Animator {
	size := c.cfg.DotSize
	h := c.cfg.Spacing / 2
	v := size * shakeLift

	a := c.track(c.clock.New(c.cfg.Timings.Shake)).
		Track("x", 0, h, -h, h, -h, 0, 0, 0, 0, 0, 0)
	if c.cfg.Style == config.StyleEmbellished {
		a.Track("y", 0, 0, 0, 0, 0, 0, v, -v, -v, -v, -v)
		a.Track("reappear", 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, size)
	} else {
		a.Track("y", 0, 0, 0, 0, 0, 0, v, -v, -v, -v, 0)
	}

	a.OnStart = func() {
		subject.Role = RoleRemoving
		subject.Alpha = 1
		subject.Phase = Removing{}
	}
	a.OnUpdate = func(a *anim.Animator) {
		offX, offY := a.Value("x"), a.Value("y")
		subject.Role = RoleRemoving
		if re := a.Value("reappear"); re != 0 {
			offY = 0
			subject.Size = re
			subject.Role = RoleInactive
		}
		subject.Phase = Removing{Progress: a.Fraction(), OffsetX: offX, OffsetY: offY}
		c.requestRedraw()
	}
	a.OnEnd = func() {
		if c.window.Full(c.active) {
			c.shiftRight(subject).Start()
			return
		}
		c.settle(subject)
	}
	a.OnCancel = func() { c.settle(subject) }
	return a
}

// settle ends a transition: the subject and the row go back to rest and
// every slot takes its resting size and color for the current count.
func (c *Counter) settle(subject *Dot) {
	c.xTranslation = 0
	c.phantom = EdgeNone
	subject.rest()
	c.recomputeDefaults()
	c.requestRedraw()
}

// recomputeDefaults restores every slot's resting size and color role.
func (c *Counter) recomputeDefaults() {
	sizes, roles := ComputeSlice(c.active, c.window)
	for i, d := range c.dots {
		d.Size = sizes[i]
		d.Role = roles[i]
	}
}

func (c *Counter) ensureDots() {
	if c.dots != nil {
		return
	}
	sizes, roles := ComputeSlice(c.active, c.window)
	c.dots = make([]*Dot, len(sizes))
	for i := range sizes {
		c.dots[i] = &Dot{Size: sizes[i], Role: roles[i], Alpha: 1, Phase: Normal{}}
	}
}

func (c *Counter) track(a *anim.Animator) *anim.Animator {
	live := c.inflight[:0]
	for _, x := range c.inflight {
		if !x.Finished() {
			live = append(live, x)
		}
	}
	c.inflight = append(live, a)
	return a
}

func (c *Counter) cancelInflight() {
	pending := c.inflight
	c.inflight = nil
	for _, a := range pending {
		a.Cancel()
	}
}
