package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/animated-dots/internal/dots"
)

// canvas paints counter circles onto an ebiten image.
type canvas struct {
	dst *ebiten.Image
}

func (c canvas) DrawCircle(cx, cy, radius float64, p dots.Paint) {
	if radius <= 0 || p.Color.A == 0 {
		return
	}
	if p.Stroke > 0 {
		vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(radius), float32(p.Stroke), p.Color, true)
		return
	}
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(radius), p.Color, true)
}
