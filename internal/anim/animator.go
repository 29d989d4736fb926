package anim

import (
	"math"
	"time"
)

// Easing maps linear progress to eased progress, both in [0, 1].
type Easing func(t float64) float64

// Linear is the default easing.
func Linear(t float64) float64 { return t }

// AccelerateDecelerate starts and ends slowly, matching the classic cosine curve.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

type status int

const (
	statusIdle status = iota
	statusDelayed
	statusRunning
	statusEnded
	statusCancelled
)

// Animator interpolates one or more named keyframe tracks over a fixed
// duration. Every track is sampled at the same fraction on each tick.
// It never advances on its own; a Clock drives it.
type Animator struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing

	OnStart  func()
	OnUpdate func(a *Animator)
	OnEnd    func()
	OnCancel func()

	clock    *Clock
	tracks   map[string][]float64
	elapsed  time.Duration
	waited   time.Duration
	fraction float64
	status   status
}

// Track registers a named keyframe track. Keyframes are spaced evenly over
// the duration; a single keyframe yields a constant.
func (a *Animator) Track(name string, keyframes ...float64) *Animator {
	if a.tracks == nil {
		a.tracks = make(map[string][]float64)
	}
	a.tracks[name] = append([]float64(nil), keyframes...)
	return a
}

// Value samples the named track at the current fraction.
func (a *Animator) Value(name string) float64 {
	return Sample(a.tracks[name], a.fraction)
}

// Fraction returns the eased progress of the last tick.
func (a *Animator) Fraction() float64 { return a.fraction }

// Running reports whether the animator is waiting on its delay or animating.
func (a *Animator) Running() bool {
	return a.status == statusDelayed || a.status == statusRunning
}

// Finished reports whether the last run ended or was cancelled.
func (a *Animator) Finished() bool {
	return a.status == statusEnded || a.status == statusCancelled
}

// Start schedules the animator on its clock. Restarting a running animator
// is a no-op. OnStart fires as soon as the delay has elapsed, which is
// immediately when there is no delay.
func (a *Animator) Start() {
	if a.Running() {
		return
	}
	a.elapsed, a.waited, a.fraction = 0, 0, 0
	if a.clock != nil {
		a.clock.schedule(a)
	}
	if a.Delay > 0 {
		a.status = statusDelayed
		return
	}
	a.begin()
}

// Cancel stops the animator early. OnCancel fires only if it was running;
// OnEnd never fires for a cancelled run.
func (a *Animator) Cancel() {
	if !a.Running() {
		return
	}
	a.status = statusCancelled
	if a.clock != nil {
		a.clock.unschedule(a)
	}
	if a.OnCancel != nil {
		a.OnCancel()
	}
}

func (a *Animator) begin() {
	a.status = statusRunning
	a.fraction = 0
	if a.OnStart != nil {
		a.OnStart()
	}
}

// advance moves the animator forward by dt and reports whether it is done.
func (a *Animator) advance(dt time.Duration) bool {
	if a.status == statusDelayed {
		a.waited += dt
		if a.waited < a.Delay {
			return false
		}
		dt = a.waited - a.Delay
		a.begin()
	}
	if a.status != statusRunning {
		return true
	}

	a.elapsed += dt
	t := 1.0
	if a.Duration > 0 {
		t = math.Min(float64(a.elapsed)/float64(a.Duration), 1)
	}
	ease := a.Easing
	if ease == nil {
		ease = Linear
	}
	a.fraction = ease(t)

	if a.OnUpdate != nil {
		a.OnUpdate(a)
	}
	if t < 1 || a.status != statusRunning {
		// OnUpdate may have cancelled us.
		return a.status != statusRunning
	}

	a.status = statusEnded
	if a.OnEnd != nil {
		a.OnEnd()
	}
	return true
}

// Sample interpolates evenly spaced keyframes linearly at t in [0, 1].
func Sample(keyframes []float64, t float64) float64 {
	switch len(keyframes) {
	case 0:
		return 0
	case 1:
		return keyframes[0]
	}
	t = clamp01(t)
	segments := float64(len(keyframes) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(keyframes)-1 {
		return keyframes[len(keyframes)-1]
	}
	frac := pos - float64(i)
	return keyframes[i] + (keyframes[i+1]-keyframes[i])*frac
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
