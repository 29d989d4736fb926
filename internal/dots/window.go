package dots

import "github.com/iburimskiy/animated-dots/internal/config"

// Window describes how many of a counter's dots are drawn and at what sizes.
type Window struct {
	DotCount     int
	Visible      int
	DotSize      float64
	SmallDotSize float64
}

// WindowOf extracts the window of a normalized configuration.
func WindowOf(cfg config.Counter) Window {
	return Window{
		DotCount:     cfg.DotCount,
		Visible:      cfg.VisibleDots,
		DotSize:      cfg.DotSize,
		SmallDotSize: cfg.SmallDotSize,
	}
}

// Drawn is the number of drawn slots, W.
func (w Window) Drawn() int {
	if w.Visible < w.DotCount {
		if w.Visible < 0 {
			return 0
		}
		return w.Visible
	}
	return w.DotCount
}

// TailShown reports whether some dots are hidden and the row shows
// truncation markers.
func (w Window) TailShown() bool {
	return w.Visible < w.DotCount
}

// Full reports whether the active count reaches past the end of the window,
// which is when the row has to shift to reveal the next dot.
func (w Window) Full(active int) bool {
	return w.TailShown() && active >= w.Drawn()
}

// ComputeSlice returns the resting size and color role of every drawn slot
// for the given active count. It is pure.
func ComputeSlice(active int, w Window) ([]float64, []ColorRole) {
	n := w.Drawn()
	sizes := make([]float64, n)
	roles := make([]ColorRole, n)

	for i := 0; i < n; i++ {
		slot := i + 1
		sizes[i] = w.DotSize
		roles[i] = RoleInactive

		if !w.TailShown() {
			if slot <= active {
				roles[i] = RoleActive
			}
			continue
		}

		switch {
		case active < n:
			if slot <= active {
				roles[i] = RoleActive
			}
			if slot == n && active != 0 {
				sizes[i] = w.SmallDotSize
			}
		case active == w.DotCount:
			roles[i] = RoleActive
			if slot == 1 {
				sizes[i] = w.SmallDotSize
			}
		default:
			roles[i] = RoleActive
			if slot == 1 || slot == n {
				sizes[i] = w.SmallDotSize
			}
		}
	}
	return sizes, roles
}

// subjectIndex picks the 0-based slot a transition at the given active
// count acts on. Normally that is the slot of the active-th dot; once the
// window is full it is the second-to-last slot so the last slot stays the
// truncation marker, unless the count is complete.
func subjectIndex(active int, w Window) int {
	n := w.Drawn()
	var i int
	switch {
	case active < n-1:
		i = active - 1
	case active == w.DotCount:
		i = n - 1
	default:
		i = n - 2
	}
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}
