package gal

import (
	"image/color"
	"math"
)

// Color4D is an RGBA colour with components in the range 0.0-1.0.
type Color4D struct {
	R, G, B, A float64
}

// Common colours used by the grid renderer.
var (
	ColorWhite       = Color4D{R: 1, G: 1, B: 1, A: 1}
	ColorTransparent = Color4D{}
	ColorGridDefault = Color4D{R: 0.4, G: 0.4, B: 0.4, A: 1}
)

// WithAlpha returns a copy with the alpha component replaced.
func (c Color4D) WithAlpha(a float64) Color4D {
	c.A = clamp01(a)
	return c
}

// Brightened moves every colour component towards white by factor (0-1).
func (c Color4D) Brightened(factor float64) Color4D {
	f := clamp01(factor)
	return Color4D{
		R: c.R*(1-f) + f,
		G: c.G*(1-f) + f,
		B: c.B*(1-f) + f,
		A: c.A,
	}
}

// NRGBA converts to the 8-bit non-premultiplied form used by image backends.
func (c Color4D) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(c.A) * 255)),
	}
}

// ColorFromNRGBA converts an 8-bit colour.
func ColorFromNRGBA(c color.NRGBA) Color4D {
	return Color4D{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
