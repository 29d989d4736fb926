package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Style selects which transition variant a counter plays.
type Style string

const (
	// StyleBasic adds with translate+scale and removes with shake+translate.
	StyleBasic Style = "basic"
	// StyleEmbellished also ripples on add and reappears the dot on remove.
	StyleEmbellished Style = "embellished"
)

// ParseStyle accepts the style names case-insensitively; empty means embellished.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StyleEmbellished):
		return StyleEmbellished, nil
	case string(StyleBasic):
		return StyleBasic, nil
	default:
		return "", fmt.Errorf("unknown transition style %q (expected basic or embellished)", s)
	}
}

// NextStyle cycles a style override: configured ("") -> basic ->
// embellished -> configured.
func NextStyle(s Style) Style {
	switch s {
	case "":
		return StyleBasic
	case StyleBasic:
		return StyleEmbellished
	default:
		return ""
	}
}

// Color is a non-premultiplied color that reads and writes as "#rrggbb" or
// "#rrggbbaa" in YAML.
type Color color.NRGBA

// NRGBA returns the color as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

// ParseColor parses "#rrggbb" (opaque) or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// String formats the color as hex.
func (c Color) String() string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A != 0xff {
		hex += fmt.Sprintf("%02x", c.A)
	}
	return hex
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Timings holds the phase durations of both transitions.
type Timings struct {
	Translate   time.Duration `yaml:"translate"`
	Scale       time.Duration `yaml:"scale"`
	RippleDelay time.Duration `yaml:"rippleDelay"`
	Ripple      time.Duration `yaml:"ripple"`
	Shake       time.Duration `yaml:"shake"`
}

// DefaultTimings returns the stock phase durations.
func DefaultTimings() Timings {
	return Timings{
		Translate:   400 * time.Millisecond,
		Scale:       450 * time.Millisecond,
		RippleDelay: 150 * time.Millisecond,
		Ripple:      500 * time.Millisecond,
		Shake:       1200 * time.Millisecond,
	}
}

// Counter configures one row of dots.
type Counter struct {
	DotCount      int     `yaml:"dotCount"`
	VisibleDots   int     `yaml:"visibleDots"`
	InitialActive int     `yaml:"initialActive"`
	DotSize       float64 `yaml:"dotSize"`
	SmallDotSize  float64 `yaml:"smallDotSize"`
	Spacing       float64 `yaml:"spacing"`
	ActiveColor   Color   `yaml:"activeColor"`
	InactiveColor Color   `yaml:"inactiveColor"`
	RemoveColor   Color   `yaml:"removeColor"`
	Style         Style   `yaml:"style"`
	Timings       Timings `yaml:"timings"`
}

// DefaultCounter returns a ten dot row with no tail.
func DefaultCounter() Counter {
	return Counter{
		DotCount:      10,
		VisibleDots:   10,
		DotSize:       20,
		SmallDotSize:  15,
		Spacing:       10,
		ActiveColor:   Color{R: 0x3f, G: 0x51, B: 0xb5, A: 0xff},
		InactiveColor: Color{R: 0xc5, G: 0xca, B: 0xe9, A: 0xff},
		RemoveColor:   Color{R: 0xf4, G: 0x43, B: 0x36, A: 0xff},
		Style:         StyleEmbellished,
		Timings:       DefaultTimings(),
	}
}

// Normalize clamps out-of-range values instead of rejecting them. Zero
// sizes, colors and timings fall back to the defaults.
func (c Counter) Normalize() Counter {
	def := DefaultCounter()

	if c.DotCount < 0 {
		c.DotCount = 0
	}
	if c.VisibleDots < 1 || c.VisibleDots > c.DotCount {
		c.VisibleDots = c.DotCount
	}
	if c.InitialActive < 0 {
		c.InitialActive = 0
	}
	if c.InitialActive > c.DotCount {
		c.InitialActive = c.DotCount
	}
	if c.DotSize <= 0 {
		c.DotSize = def.DotSize
	}
	if c.SmallDotSize <= 0 {
		c.SmallDotSize = c.DotSize * 3 / 4
	}
	if c.SmallDotSize > c.DotSize {
		c.SmallDotSize = c.DotSize
	}
	if c.Spacing < 0 {
		c.Spacing = 0
	}
	if c.ActiveColor == (Color{}) {
		c.ActiveColor = def.ActiveColor
	}
	if c.InactiveColor == (Color{}) {
		c.InactiveColor = def.InactiveColor
	}
	if c.RemoveColor == (Color{}) {
		c.RemoveColor = def.RemoveColor
	}
	if c.Style != StyleBasic {
		c.Style = StyleEmbellished
	}

	t := &c.Timings
	if t.Translate <= 0 {
		t.Translate = def.Timings.Translate
	}
	if t.Scale <= 0 {
		t.Scale = def.Timings.Scale
	}
	if t.RippleDelay < 0 {
		t.RippleDelay = 0
	}
	if t.Ripple <= 0 {
		t.Ripple = def.Timings.Ripple
	}
	if t.Shake <= 0 {
		t.Shake = def.Timings.Shake
	}
	return c
}
