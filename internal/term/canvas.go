package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/animated-dots/internal/config"
	"github.com/iburimskiy/animated-dots/internal/dots"
)

// cellWriter is the part of tcell.Screen the canvas draws with.
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type cell struct{ col, row int }

// canvas maps a counter's pixel space onto terminal cells. A dot cell
// (dot plus spacing) spans three columns and a line is two columns tall.
type canvas struct {
	out        cellWriter
	left, top  int
	cols, rows int

	cellW, cellH float64
	dotSize      float64
	bg           color.NRGBA
}

func newCanvas(out cellWriter, left, top int, cfg config.Counter, width, height float64, bg color.NRGBA) *canvas {
	cellW := (cfg.DotSize + cfg.Spacing) / 3
	if cellW <= 0 {
		cellW = 1
	}
	cellH := cellW * 2
	return &canvas{
		out:     out,
		left:    left,
		top:     top,
		cols:    int(math.Ceil(width / cellW)),
		rows:    int(math.Ceil(height / cellH)),
		cellW:   cellW,
		cellH:   cellH,
		dotSize: cfg.DotSize,
		bg:      bg,
	}
}

func (c *canvas) cellAt(x, y float64) (cell, bool) {
	p := cell{col: int(math.Floor(x / c.cellW)), row: int(math.Floor(y / c.cellH))}
	return p, p.col >= 0 && p.col < c.cols && p.row >= 0 && p.row < c.rows
}

func (c *canvas) DrawCircle(cx, cy, radius float64, p dots.Paint) {
	if radius <= 0 || p.Color.A == 0 {
		return
	}
	style := tcell.StyleDefault.
		Foreground(toTcell(blendOver(p.Color, c.bg))).
		Background(toTcell(c.bg))

	if p.Stroke > 0 {
		for _, pt := range c.ring(cx, cy, radius) {
			c.out.SetContent(c.left+pt.col, c.top+pt.row, '·', nil, style)
		}
		return
	}
	if pt, ok := c.cellAt(cx, cy); ok {
		glyph := glyphFor(2 * radius / c.dotSize)
		c.out.SetContent(c.left+pt.col, c.top+pt.row, glyph, nil, style)
	}
}

// ring returns the visible cells on a circle outline, without the center cell.
func (c *canvas) ring(cx, cy, radius float64) []cell {
	const steps = 24
	center, _ := c.cellAt(cx, cy)
	seen := map[cell]bool{center: true}
	var out []cell
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		pt, ok := c.cellAt(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
		if !ok || seen[pt] {
			continue
		}
		seen[pt] = true
		out = append(out, pt)
	}
	return out
}

// glyphFor picks a glyph by the drawn diameter relative to the dot size.
func glyphFor(ratio float64) rune {
	switch {
	case ratio > 1.5:
		return '⬤'
	case ratio >= 0.9:
		return '●'
	case ratio >= 0.5:
		return '•'
	default:
		return '·'
	}
}

// blendOver composites c over an opaque background.
func blendOver(c, bg color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	mix := func(fg, b uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(b)*(1-a)))
	}
	return color.NRGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xff}
}

func toTcell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
