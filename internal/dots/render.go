package dots

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/animated-dots/internal/config"
)

const (
	// Overlay alpha below which an adding dot is drawn as a plain inactive dot.
	fadeThreshold = 100
	rippleStroke  = 4
)

// Paint is how a single circle is drawn. Stroke 0 fills the circle,
// anything else strokes its outline with that width.
type Paint struct {
	Color  color.NRGBA
	Stroke float64
}

// Canvas is the painting surface a host hands to Draw.
type Canvas interface {
	DrawCircle(cx, cy, radius float64, p Paint)
}

// Palette resolves color roles to concrete colors at draw time.
type Palette struct {
	Active   color.NRGBA
	Inactive color.NRGBA
	Removing color.NRGBA
}

// PaletteOf extracts the palette of a configuration.
func PaletteOf(cfg config.Counter) Palette {
	return Palette{
		Active:   cfg.ActiveColor.NRGBA(),
		Inactive: cfg.InactiveColor.NRGBA(),
		Removing: cfg.RemoveColor.NRGBA(),
	}
}

// Resolve returns the color of a role.
func (p Palette) Resolve(r ColorRole) color.NRGBA {
	switch r {
	case RoleActive:
		return p.Active
	case RoleRemoving:
		return p.Removing
	}
	return p.Inactive
}

// Fill returns a fill paint for the role with its alpha scaled by opacity (0..1).
func (p Palette) Fill(r ColorRole, opacity float64) Paint {
	return Paint{Color: withOpacity(p.Resolve(r), opacity)}
}

// Overlay returns the paint of a dot fading in at the given alpha (0..255):
// opaque inactive below the threshold, then a cross-fade into active.
func (p Palette) Overlay(alpha float64) Paint {
	if alpha < fadeThreshold {
		return Paint{Color: p.Inactive}
	}
	t := (alpha - fadeThreshold) / (255 - fadeThreshold)
	return Paint{Color: blend(p.Inactive, p.Active, t)}
}

// Ripple returns the ring paint at the given alpha (0..255).
func (p Palette) Ripple(alpha float64) Paint {
	c := p.Active
	c.A = uint8(math.Round(clamp(alpha, 0, 255) * float64(c.A) / 255))
	return Paint{Color: c, Stroke: rippleStroke}
}

// Draw issues one circle per drawn slot, plus the incoming marker while the
// row is shifting. (x, y) is the top-left corner of the counter's box.
func (c *Counter) Draw(cv Canvas, x, y float64) {
	c.ensureDots()

	size, spacing := c.cfg.DotSize, c.cfg.Spacing
	cell := size + spacing
	cy := y + c.height()/2
	cx := x + spacing + size/2

	for _, d := range c.dots {
		switch p := d.Phase.(type) {
		case Removing:
			cv.DrawCircle(cx-p.OffsetX, cy-p.OffsetY, d.Size/2, c.palette.Fill(d.Role, d.Alpha))
		case Adding:
			cv.DrawCircle(cx, cy, d.Size/2, c.palette.Overlay(p.Alpha))
		case Rippling:
			cv.DrawCircle(cx, cy, p.Radius/2, c.palette.Ripple(p.Alpha))
			cv.DrawCircle(cx, cy, d.Size/2, c.palette.Fill(d.Role, d.Alpha))
		default:
			cv.DrawCircle(cx-c.xTranslation, cy, d.Size/2, c.palette.Fill(d.Role, d.Alpha))
		}
		cx += cell
	}

	small := c.cfg.SmallDotSize / 2
	switch c.phantom {
	case EdgeTrailing:
		cv.DrawCircle(cx-c.xTranslation, cy, small, c.palette.Fill(RoleInactive, 1))
	case EdgeLeading:
		lead := x + spacing + size/2 - cell
		cv.DrawCircle(lead-c.xTranslation, cy, small, c.palette.Fill(RoleActive, 1))
	}
}

// PreferredSize is the size the row asks for: every drawn dot with spacing
// on both sides, and four dots of height for the shake and ripple.
func (c *Counter) PreferredSize() (float64, float64) {
	n := float64(c.window.Drawn())
	return c.cfg.DotSize*n + c.cfg.Spacing*(n+1), c.height()
}

func (c *Counter) height() float64 {
	return c.cfg.DotSize * 4
}

// MeasureMode says how a parent constrains one dimension.
type MeasureMode int

const (
	Unspecified MeasureMode = iota
	Exactly
	AtMost
)

// MeasureSpec is a parent's constraint on one dimension.
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

func (s MeasureSpec) resolve(desired float64) int {
	switch s.Mode {
	case Exactly:
		return s.Size
	case AtMost:
		if d := int(desired); d < s.Size {
			return d
		}
		return s.Size
	}
	return int(desired)
}

// Measure resolves the preferred size against the parent's constraints.
func (c *Counter) Measure(width, height MeasureSpec) (int, int) {
	w, h := c.PreferredSize()
	return width.resolve(w), height.resolve(h)
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp(opacity, 0, 1)))
	return c
}

func blend(from, to color.NRGBA, t float64) color.NRGBA {
	t = clamp(t, 0, 1)
	a, _ := colorful.MakeColor(opaque(from))
	b, _ := colorful.MakeColor(opaque(to))
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	alpha := float64(from.A) + (float64(to.A)-float64(from.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
