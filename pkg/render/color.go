package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/models"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack  = Color{0, 0, 0, 255}
	ColorWhite  = models.White
	ColorRed    = models.Red
	ColorGreen  = models.Green
	ColorBlue   = models.Blue
	ColorYellow = models.Yellow
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// lerpColor interpolates each channel from a (t = 0) to b (t = 1).
func lerpColor(a, b Color, t float64) Color {
	s := 1 - t
	return Color{
		R: channel(float64(a.R)*s + float64(b.R)*t),
		G: channel(float64(a.G)*s + float64(b.G)*t),
		B: channel(float64(a.B)*s + float64(b.B)*t),
		A: channel(float64(a.A)*s + float64(b.A)*t),
	}
}

// blendColor mixes three colours with barycentric weights.
func blendColor(c0, c1, c2 Color, w0, w1, w2 float64) Color {
	return Color{
		R: channel(float64(c0.R)*w0 + float64(c1.R)*w1 + float64(c2.R)*w2),
		G: channel(float64(c0.G)*w0 + float64(c1.G)*w1 + float64(c2.G)*w2),
		B: channel(float64(c0.B)*w0 + float64(c1.B)*w1 + float64(c2.B)*w2),
		A: channel(float64(c0.A)*w0 + float64(c1.A)*w1 + float64(c2.A)*w2),
	}
}

// channel clamps v to [0, 255] and rounds to the nearest integer.
func channel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
