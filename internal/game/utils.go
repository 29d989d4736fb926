package game

import (
	"fmt"
	"math"

	"github.com/iburimskiy/animated-dots/internal/config"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clamp01(s), clamp01(v)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
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

// formatCount formats a row label as "active / total".
func formatCount(active, total int) string {
	return fmt.Sprintf("%2d / %d", active, total)
}

func styleLabel(s config.Style) string {
	switch s {
	case config.StyleBasic:
		return "Style: basic"
	case config.StyleEmbellished:
		return "Style: fancy"
	default:
		return "Style: file"
	}
}

func soundLabel(muted bool) string {
	if muted {
		return "Sound: off"
	}
	return "Sound: on"
}
