package config

import "time"

const (
	WindowWidth  = 640
	WindowHeight = 400

	// Frame cadence of the hosts
	TicksPerSecond = 60
	FrameDuration  = time.Second / TicksPerSecond

	// Button dimensions
	ButtonWidth  = 40
	ButtonHeight = 32
	ButtonGap    = 12

	// Toolbar (open config / style / sound)
	ToolbarX      = 20
	ToolbarY      = 40
	ToolbarWidth  = 120
	ToolbarHeight = 28

	// Rows
	RowLeft   = 20
	RowTop    = 100
	RowGap    = 24
	LabelSize = 16
)
