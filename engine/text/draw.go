package text

import (
	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at pos. Positive Y goes downward
// (matching the 2D projection). spacing is added between glyphs in pixels.
func DrawText(r2d *renderer2d.Renderer2D, f *Font, pos geom.Vec2, s string, size, spacing float32, color colors.Color) {
	if f == nil || f.Texture == nil {
		return
	}
	sc := f.scale(size)
	penX := pos.X
	baseY := pos.Y + f.Ascent*sc
	lineH := f.LineHeight(size)
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = pos.X
			baseY += lineH
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += spacing
		}
		penX += f.kerning(prev, r) * sc

		g, ok := f.glyph(r)
		if ok && g.W > 0 && g.H > 0 {
			// top = baseline - BearingY
			w, h := float32(g.W)*sc, float32(g.H)*sc
			left := penX + g.BearingX*sc
			top := baseY - g.BearingY*sc
			r2d.DrawTexturedQuadUV(
				left+w*0.5, top+h*0.5,
				w, h,
				f.Texture, color, 0,
				g.U0, g.V0, g.U1, g.V1,
			)
		}

		penX += g.Advance * sc
		prev = r
	}
}

// Measure returns the size of s drawn at size with spacing between glyphs.
// Every line counts toward the height, including an empty string's.
func (f *Font) Measure(s string, size, spacing float32) (width, height float32) {
	sc := f.scale(size)
	lineH := f.LineHeight(size)
	height = lineH

	var lineW, lineSpacing float32
	var prev rune = -1
	for _, r := range s {
		if r == '\n' {
			if w := lineW*sc + lineSpacing; w > width {
				width = w
			}
			lineW, lineSpacing = 0, 0
			height += lineH
			prev = -1
			continue
		}
		if prev >= 0 {
			lineSpacing += spacing
		}
		g, _ := f.glyph(r)
		lineW += f.kerning(prev, r) + g.Advance
		prev = r
	}

	if w := lineW*sc + lineSpacing; w > width {
		width = w
	}
	return width, height
}
