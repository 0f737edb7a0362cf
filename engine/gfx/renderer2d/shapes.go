package renderer2d

import (
	"math"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/geom"
)

// DrawRect fills the top-left anchored rectangle r.
func (rd *Renderer2D) DrawRect(r geom.Rect, c colors.Color) {
	rd.DrawQuad(r.X+r.W*0.5, r.Y+r.H*0.5, r.W, r.H, c, 0)
}

// DrawRoundedRect fills r with corners rounded by radius. A negative radius
// rounds fully.
func (rd *Renderer2D) DrawRoundedRect(r geom.Rect, radius float32, c colors.Color) {
	rad := geom.ClampRadius(r, radius)
	if rad < 0.5 {
		rd.DrawRect(r, c)
		return
	}

	rd.path = outline(rd.path[:0], r, rad, arcSegments(rad))
	n := len(rd.path)
	rd.reserve(n+1, n*3)
	slot := rd.texSlot(rd.white)

	ctr := r.Center()
	center := rd.vertex(ctr.X, ctr.Y, c, 0, 0, slot)
	for _, p := range rd.path {
		rd.vertex(p.X, p.Y, c, 0, 0, slot)
	}
	for i := 0; i < n; i++ {
		rd.index(center, center+1+uint32(i), center+1+uint32((i+1)%n))
	}
	rd.stats.ShapeCount++
}

// DrawRoundedRectLines strokes the inside edge of r with the given width.
func (rd *Renderer2D) DrawRoundedRectLines(r geom.Rect, radius, width float32, c colors.Color) {
	if width <= 0 || r.W <= 0 || r.H <= 0 {
		return
	}
	rad := geom.ClampRadius(r, radius)
	segs := arcSegments(rad)
	in := r.Inset(width)
	inRad := rad - width
	if inRad < 0 {
		inRad = 0
	}

	rd.path = outline(rd.path[:0], r, rad, segs)
	rd.inner = outline(rd.inner[:0], in, inRad, segs)
	n := len(rd.path)
	rd.reserve(2*n, 6*n)
	slot := rd.texSlot(rd.white)

	var start uint32
	for i := 0; i < n; i++ {
		o, p := rd.path[i], rd.inner[i]
		idx := rd.vertex(o.X, o.Y, c, 0, 0, slot)
		rd.vertex(p.X, p.Y, c, 0, 0, slot)
		if i == 0 {
			start = idx
		}
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		o0, i0 := start+uint32(2*i), start+uint32(2*i+1)
		o1, i1 := start+uint32(2*j), start+uint32(2*j+1)
		rd.index(o0, i0, o1, o1, i0, i1)
	}
	rd.stats.ShapeCount++
}

func arcSegments(rad float32) int {
	if rad <= 0 {
		return 0
	}
	n := int(rad/2) + 2
	if n > 16 {
		n = 16
	}
	return n
}

// outline appends the perimeter of r clockwise (y down) starting at the
// top-left arc. Every corner contributes segs+1 points, so outlines with the
// same segs pair up point for point.
func outline(dst []geom.Vec2, r geom.Rect, rad float32, segs int) []geom.Vec2 {
	corners := [4]struct {
		cx, cy float32
		start  float64
	}{
		{r.X + rad, r.Y + rad, math.Pi},
		{r.X + r.W - rad, r.Y + rad, 1.5 * math.Pi},
		{r.X + r.W - rad, r.Y + r.H - rad, 0},
		{r.X + rad, r.Y + r.H - rad, 0.5 * math.Pi},
	}
	for _, k := range corners {
		for s := 0; s <= segs; s++ {
			a := k.start
			if segs > 0 {
				a += 0.5 * math.Pi * float64(s) / float64(segs)
			}
			dst = append(dst, geom.V2(
				k.cx+rad*float32(math.Cos(a)),
				k.cy+rad*float32(math.Sin(a)),
			))
		}
	}
	return dst
}
