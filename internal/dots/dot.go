package dots

// ColorRole names which configured color a dot is painted with.
type ColorRole int

const (
	RoleInactive ColorRole = iota
	RoleActive
	RoleRemoving
)

func (r ColorRole) String() string {
	switch r {
	case RoleActive:
		return "active"
	case RoleInactive:
		return "inactive"
	case RoleRemoving:
		return "removing"
	}
	return "unknown"
}

// State is the render path a dot takes.
type State int

const (
	StateNormal State = iota
	StateAdding
	StateRemoving
	StateRipple
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateAdding:
		return "adding"
	case StateRemoving:
		return "removing"
	case StateRipple:
		return "ripple"
	}
	return "unknown"
}

// Phase is the transition a dot is in, carrying only the values that
// transition needs. The concrete types are Normal, Adding, Removing and
// Rippling.
type Phase interface {
	State() State
	phase()
}

// Normal is a dot at rest.
type Normal struct{}

// Adding is the scale/fade-in of a newly activated dot. Alpha is the
// overlay opacity in 0..255.
type Adding struct {
	Progress float64
	Alpha    float64
}

// Removing is the shake of a dot being taken away. Offsets are subtracted
// from the dot's resting center.
type Removing struct {
	Progress float64
	OffsetX  float64
	OffsetY  float64
}

// Rippling is the decaying ring drawn around a newly activated dot.
// Radius is the ring diameter, Alpha its opacity in 0..255.
type Rippling struct {
	Radius float64
	Alpha  float64
}

func (Normal) State() State   { return StateNormal }
func (Adding) State() State   { return StateAdding }
func (Removing) State() State { return StateRemoving }
func (Rippling) State() State { return StateRipple }

func (Normal) phase()   {}
func (Adding) phase()   {}
func (Removing) phase() {}
func (Rippling) phase() {}

// Dot is one drawn slot. Size is the diameter.
type Dot struct {
	Size  float64
	Alpha float64
	Role  ColorRole
	Phase Phase
}

// State returns the render path of the dot's current phase.
func (d *Dot) State() State {
	if d.Phase == nil {
		return StateNormal
	}
	return d.Phase.State()
}

func (d *Dot) rest() {
	d.Phase = Normal{}
	d.Alpha = 1
}
