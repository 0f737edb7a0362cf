package scene

import (
	"math"

	"github.com/hubastard/cratepush/engine/geom"
)

// OrthoCamera2D is an orthographic camera centered on (X,Y) in a y-down
// pixel world, with rotation and zoom.
type OrthoCamera2D struct {
	Width, Height float32 // viewport in pixels
	Near, Far     float32
	X, Y          float32
	RotationRad   float32
	Zoom          float32 // 1 = one world pixel per screen pixel
	vp            [16]float32
	dirty         bool
}

const minZoom = 0.05

func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{
		Width:  float32(width),
		Height: float32(height),
		Near:   -1,
		Far:    1,
		Zoom:   1,
	}
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) Move(dx, dy float32) {
	c.X += dx
	c.Y += dy
	c.dirty = true
}

func (c *OrthoCamera2D) SetPosition(p geom.Vec2) {
	c.X, c.Y = p.X, p.Y
	c.dirty = true
}

func (c *OrthoCamera2D) Position() geom.Vec2 { return geom.V2(c.X, c.Y) }

func (c *OrthoCamera2D) Rotate(dRad float32) {
	c.RotationRad += dRad
	c.dirty = true
}

func (c *OrthoCamera2D) SetZoom(z float32) {
	if z < minZoom {
		z = minZoom
	}
	c.Zoom = z
	c.dirty = true
}

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	halfW := c.Width * 0.5 / c.Zoom
	halfH := c.Height * 0.5 / c.Zoom
	// bottom is +halfH so that world Y grows downward on screen
	proj := ortho(-halfW, halfW, halfH, -halfH, c.Near, c.Far)

	// view = R(-rot) * T(-pos) for column vectors
	view := mul(
		rotateZ(-c.RotationRad),
		translate(-c.X, -c.Y, 0),
	)

	c.vp = mul(proj, view)
	c.dirty = false
}

// ViewRect is the world-space rectangle visible through the camera,
// ignoring rotation.
func (c *OrthoCamera2D) ViewRect() geom.Rect {
	w, h := c.Width/c.Zoom, c.Height/c.Zoom
	return geom.Rect{X: c.X - w*0.5, Y: c.Y - h*0.5, W: w, H: h}
}

// ScreenToWorld maps a window pixel position to world space, ignoring rotation.
func (c *OrthoCamera2D) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	return geom.V2(
		c.X+(p.X-c.Width*0.5)/c.Zoom,
		c.Y+(p.Y-c.Height*0.5)/c.Zoom,
	)
}

// ScreenVP maps window pixels (top-left origin) to clip space. UI is drawn
// with it.
func ScreenVP(width, height int) [16]float32 {
	return ortho(0, float32(width), float32(height), 0, -1, 1)
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func rotateZ(a float32) [16]float32 {
	c := float32(math.Cos(float64(a)))
	s := float32(math.Sin(float64(a)))
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}

// Apply transforms the point (x,y,0,1) by the column-major matrix m.
func Apply(m [16]float32, p geom.Vec2) geom.Vec2 {
	x := m[0]*p.X + m[4]*p.Y + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[13]
	w := m[3]*p.X + m[7]*p.Y + m[15]
	if w != 0 && w != 1 {
		x, y = x/w, y/w
	}
	return geom.V2(x, y)
}
