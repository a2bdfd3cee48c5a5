package reui

import (
	"image/color"
	"math"
)

// Color is a straight (non-premultiplied) RGBA color.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8(nc.R, nc.G, nc.B, nc.A)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA(0, 0, 0, 0)
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// ScaleAlpha returns c with its alpha multiplied by s.
func (c Color) ScaleAlpha(s float32) Color {
	c.A *= s
	return c
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Premultiplied returns the color premultiplied by alpha and packed to
// 8 bits per channel, the form the uniform block carries.
func (c Color) Premultiplied() [4]uint8 {
	a := clamp01(c.A)
	return [4]uint8{
		unorm8(clamp01(c.R) * a),
		unorm8(clamp01(c.G) * a),
		unorm8(clamp01(c.B) * a),
		unorm8(a),
	}
}

// HSLA creates a color from hue, saturation and lightness (all in [0, 1])
// and an alpha.
func HSLA(h, s, l, a float32) Color {
	h = float32(math.Mod(float64(h), 1))
	if h < 0 {
		h++
	}
	s = clamp01(s)
	l = clamp01(l)
	var m2 float32
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return Color{
		R: clamp01(hue(h+1.0/3, m1, m2)),
		G: clamp01(hue(h, m1, m2)),
		B: clamp01(hue(h-1.0/3, m1, m2)),
		A: a,
	}
}

func hue(h, m1, m2 float32) float32 {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 3.0/6:
		return m2
	case h < 4.0/6:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func unorm8(x float32) uint8 {
	return uint8(x*255 + 0.5)
}
