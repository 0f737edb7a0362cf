package geom

import "math"

// Epsilon is the tolerance used for layout comparisons, in pixels.
const Epsilon float32 = 1e-3

func Approximately(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < Epsilon
}

// Smoothstep eases t in [0,1] with zero slope at both ends.
func Smoothstep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 3*t*t - 2*t*t*t
}

// ===== Int2 =====

// Int2 is a grid coordinate or an integer direction.
type Int2 struct{ X, Y int }

var (
	Zero  = Int2{0, 0}
	One   = Int2{1, 1}
	Up    = Int2{0, -1}
	Down  = Int2{0, 1}
	Left  = Int2{-1, 0}
	Right = Int2{1, 0}
)

func I2(x, y int) Int2 { return Int2{x, y} }

func (a Int2) Add(b Int2) Int2  { return Int2{a.X + b.X, a.Y + b.Y} }
func (a Int2) Sub(b Int2) Int2  { return Int2{a.X - b.X, a.Y - b.Y} }
func (a Int2) Mul(b Int2) Int2  { return Int2{a.X * b.X, a.Y * b.Y} }
func (a Int2) Div(b Int2) Int2  { return Int2{a.X / b.X, a.Y / b.Y} }
func (a Int2) Mod(b Int2) Int2  { return Int2{floorMod(a.X, b.X), floorMod(a.Y, b.Y)} }
func (a Int2) Scale(s int) Int2 { return Int2{a.X * s, a.Y * s} }
func (a Int2) Neg() Int2        { return Int2{-a.X, -a.Y} }
func (a Int2) Dot(b Int2) int   { return a.X*b.X + a.Y*b.Y }
func (a Int2) LenSq() int       { return a.X*a.X + a.Y*a.Y }
func (a Int2) IsZero() bool     { return a.X == 0 && a.Y == 0 }
func (a Int2) Vec2() Vec2       { return Vec2{float32(a.X), float32(a.Y)} }

// FloorDiv divides component-wise, rounding toward negative infinity.
func (a Int2) FloorDiv(b Int2) Int2 {
	return Int2{floorDiv(a.X, b.X), floorDiv(a.Y, b.Y)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// ===== Vec2 =====

type Vec2 struct{ X, Y float32 }

func V2(x, y float32) Vec2 { return Vec2{x, y} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(b Vec2) Vec2      { return Vec2{a.X * b.X, a.Y * b.Y} }
func (a Vec2) Div(b Vec2) Vec2      { return Vec2{a.X / b.X, a.Y / b.Y} }
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Approx(b Vec2) bool   { return Approximately(a.X, b.X) && Approximately(a.Y, b.Y) }
func (a Vec2) LenSq() float32       { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float32         { return float32(math.Sqrt(float64(a.LenSq()))) }

// Floor converts to the grid cell containing a, rounding toward negative infinity.
func (a Vec2) Floor() Int2 {
	return Int2{int(math.Floor(float64(a.X))), int(math.Floor(float64(a.Y)))}
}

// ===== Rect =====

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct{ X, Y, W, H float32 }

func RectFrom(pos, size Vec2) Rect { return Rect{pos.X, pos.Y, size.X, size.Y} }

func (r Rect) Pos() Vec2  { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2 { return Vec2{r.W, r.H} }
func (r Rect) Max() Vec2  { return Vec2{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W*0.5, r.Y + r.H*0.5}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks r by d on every side. The result never has negative size.
func (r Rect) Inset(d float32) Rect {
	out := Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// ClampRadius resolves a corner radius for r. Negative radii mean fully rounded.
func ClampRadius(r Rect, radius float32) float32 {
	half := r.W
	if r.H < half {
		half = r.H
	}
	half *= 0.5
	if half < 0 {
		return 0
	}
	if radius < 0 || radius > half {
		return half
	}
	return radius
}

// PointInRoundedRect reports whether p lies inside r with corners rounded by radius.
func PointInRoundedRect(p Vec2, r Rect, radius float32) bool {
	if !r.Contains(p) {
		return false
	}
	rad := ClampRadius(r, radius)
	if rad <= 0 {
		return true
	}

	// Nearest point on the inner rect shrunk by the radius.
	cx := clampf(p.X, r.X+rad, r.X+r.W-rad)
	cy := clampf(p.Y, r.Y+rad, r.Y+r.H-rad)
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx+dy*dy <= rad*rad
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
