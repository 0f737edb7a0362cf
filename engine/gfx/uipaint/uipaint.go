// Package uipaint draws ui frames and tile maps through renderer2d.
package uipaint

import (
	"math"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/gfx/renderer2d"
	"github.com/hubastard/cratepush/engine/text"
	"github.com/hubastard/cratepush/engine/tilemap"
	"github.com/hubastard/cratepush/engine/ui"
)

var (
	_ ui.Painter         = (*Painter)(nil)
	_ tilemap.TileDrawer = (*Painter)(nil)
	_ ui.Font            = (*text.Font)(nil)
)

type Painter struct {
	R2D *renderer2d.Renderer2D
	// Tint multiplies every tile. Zero means white.
	Tint colors.Color
}

func New(r2d *renderer2d.Renderer2D) *Painter { return &Painter{R2D: r2d} }

func (p *Painter) DrawRect(r geom.Rect, radius float32, c colors.Color) {
	if radius == 0 {
		p.R2D.DrawRect(r, c)
		return
	}
	p.R2D.DrawRoundedRect(r, radius, c)
}

func (p *Painter) DrawRectLines(r geom.Rect, radius, width float32, c colors.Color) {
	p.R2D.DrawRoundedRectLines(r, radius, width, c)
}

func (p *Painter) DrawImage(r geom.Rect, img ui.Image, tint colors.Color) {
	p.R2D.DrawSubTexRect(r, renderer2d.FromRect(img.Texture, img.Src), tint)
}

// DrawText draws with f when it is a text.Font. Other fonts only measure.
func (p *Painter) DrawText(f ui.Font, s string, pos geom.Vec2, size, spacing float32, c colors.Color) {
	tf, ok := f.(*text.Font)
	if !ok {
		return
	}
	text.DrawText(p.R2D, tf, pos, s, size, spacing, c)
}

// DrawTile applies the tile's flip flags, diagonal first, then rotation.
func (p *Painter) DrawTile(info tilemap.TileInfo, dst geom.Rect, flags uint8, rotation float32) {
	if info.Tileset == nil || info.Tileset.Texture == nil {
		return
	}
	sub := renderer2d.FromRect(info.Tileset.Texture, info.Src)
	h := flags&tilemap.FlipHorizontal != 0
	v := flags&tilemap.FlipVertical != 0
	w, ht := dst.W, dst.H
	rad := float64(rotation) * math.Pi / 180

	if flags&tilemap.FlipDiagonal != 0 {
		// A transpose is a quarter turn clockwise after a vertical flip,
		// so the remaining flips swap axes.
		h, v = v, !h
		w, ht = ht, w
		rad += math.Pi / 2
	}
	if h {
		sub = sub.FlipH()
	}
	if v {
		sub = sub.FlipV()
	}

	tint := p.Tint
	if tint.IsZero() {
		tint = colors.White
	}
	c := dst.Center()
	p.R2D.DrawSubTexQuad(c.X, c.Y, w, ht, sub, tint, float32(rad))
}
