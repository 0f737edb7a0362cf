package ui

import (
	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/geom"
)

// Painter draws resolved elements. Radii follow the Style convention:
// negative means fully rounded.
type Painter interface {
	DrawRect(r geom.Rect, radius float32, color colors.Color)
	DrawRectLines(r geom.Rect, radius, width float32, color colors.Color)
	DrawImage(r geom.Rect, img Image, tint colors.Color)
	DrawText(f Font, text string, pos geom.Vec2, size, spacing float32, color colors.Color)
}

// Render draws the last completed frame, parents before children so later
// siblings paint over earlier ones.
func (c *Context) Render(p Painter) {
	if c.building || !c.root.Valid() {
		return
	}
	c.render(p, c.root)
}

func (c *Context) render(p Painter, h arena.Handle) {
	e := c.elements.Get(h)
	s := &e.Style
	r := e.Rect()

	switch {
	case s.Image.Valid():
		tint := s.Background
		if tint.IsZero() {
			tint = colors.White
		}
		p.DrawImage(r, s.Image, tint)
	case s.Background.Visible():
		p.DrawRect(r, s.Radius, s.Background)
	}
	if s.BorderWidth > 0 && s.BorderColor.Visible() {
		p.DrawRectLines(r, s.Radius, s.BorderWidth, s.BorderColor)
	}
	if e.IsText() && e.Text != "" && s.TextColor.Visible() {
		p.DrawText(s.Font, e.DisplayText(), geom.V2(r.X+s.Padding.Left, r.Y+s.Padding.Top), s.FontSize, s.LetterSpacing, s.TextColor)
	}

	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		c.render(p, ch)
	}
}
