package colors

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is linear RGBA in [0..1].
type Color [4]float32

var (
	White     = Color{1, 1, 1, 1}
	Black     = Color{0, 0, 0, 1}
	Blank     = Color{0, 0, 0, 0}
	Red       = Color{0.90, 0.16, 0.22, 1}
	Green     = Color{0, 0.89, 0.19, 1}
	Blue      = Color{0, 0.47, 0.95, 1}
	SkyBlue   = Color{0.40, 0.75, 1, 1}
	Yellow    = Color{0.99, 0.98, 0, 1}
	Gold      = Color{1, 0.80, 0, 1}
	Orange    = Color{1, 0.63, 0, 1}
	Brown     = Color{0.50, 0.42, 0.31, 1}
	Magenta   = Color{1, 0, 1, 1}
	Cyan      = Color{0, 1, 1, 1}
	LightGray = Color{0.78, 0.78, 0.78, 1}
	Gray      = Color{0.51, 0.51, 0.51, 1}
	DarkGray  = Color{0.08, 0.10, 0.12, 1}
)

// RGBA8 builds a color from 0..255 channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels by f, leaving alpha untouched.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] *= f
		if c[i] > 1 {
			c[i] = 1
		}
	}
	return c
}

func (c Color) IsZero() bool  { return c == Color{} }
func (c Color) Visible() bool { return c[3] > 0 }

// Hex parses "#rrggbb" or "#rgb" as an opaque color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("colors: %w", err)
	}
	return fromColorful(c, 1), nil
}

// MustHex is Hex for package-level palettes. It panics on malformed input.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Blend mixes c toward d by t in CIE-Lab space. Alpha is mixed linearly.
func (c Color) Blend(d Color, t float32) Color {
	out := c.colorful().BlendLab(d.colorful(), float64(t))
	return fromColorful(out, c[3]+(d[3]-c[3])*t)
}

// Lighten shifts HSL lightness by dl, clamped to [0,1]. Negative darkens.
func (c Color) Lighten(dl float32) Color {
	h, s, l := c.colorful().Hsl()
	l += float64(dl)
	if l < 0 {
		l = 0
	} else if l > 1 {
		l = 1
	}
	return fromColorful(colorful.Hsl(h, s, l), c[3])
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}

func fromColorful(c colorful.Color, alpha float32) Color {
	c = c.Clamped()
	return Color{float32(c.R), float32(c.G), float32(c.B), alpha}
}
