package tilemap

import "github.com/hubastard/cratepush/engine/geom"

// TileDrawer draws one tile image into a world-space rectangle. rotation is
// in degrees, clockwise about the rectangle center.
type TileDrawer interface {
	DrawTile(info TileInfo, dst geom.Rect, flags uint8, rotation float32)
}

// Render draws the tiles of layer that intersect view. A zero view draws
// every chunk.
func (m *Map) Render(layer int, view geom.Rect, d TileDrawer) {
	l, ok := m.Layer(layer)
	if !ok {
		return
	}
	ts := m.TileSize.Vec2()
	for i := range l.Chunks {
		ch := &l.Chunks[i]
		if !overlaps(view, geom.RectFrom(m.GridToWorld(ch.Pos, layer), ch.Size.Vec2().Mul(ts))) {
			continue
		}
		ch.each(func(cell geom.Int2, t Tile) {
			if t.Empty() {
				return
			}
			info, ok := m.TileInfo(t.GID)
			if !ok {
				return
			}
			d.DrawTile(info, geom.RectFrom(m.GridToWorld(cell, layer), ts), t.Flags, 0)
		})
	}
}

// RenderObjects draws every visible object at its cell plus its move offset.
func (m *Map) RenderObjects(d TileDrawer) {
	for _, o := range m.Objects() {
		if !o.Visible {
			continue
		}
		info, ok := m.TileInfo(o.GID)
		if !ok {
			continue
		}
		pos := m.GridToWorld(o.Pos, 0).Add(o.Offset)
		d.DrawTile(info, geom.RectFrom(pos, o.Size.Vec2()), 0, o.Rotation)
	}
}

func overlaps(view, r geom.Rect) bool {
	if view.W <= 0 || view.H <= 0 {
		return true
	}
	return r.X < view.X+view.W && r.X+r.W > view.X && r.Y < view.Y+view.H && r.Y+r.H > view.Y
}
