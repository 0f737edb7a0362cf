package renderer2d

import (
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
)

// SubTexture2D describes a UV sub-rect of a full texture. V grows downward,
// matching the top-row-first pixel upload.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(tex core.Texture, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	u0 := float32(x) / float32(atlasW)
	v0 := float32(y) / float32(atlasH)
	u1 := float32(x+w) / float32(atlasW)
	v1 := float32(y+h) / float32(atlasH)
	return SubTexture2D{Texture: tex, U0: u0, V0: v0, U1: u1, V1: v1}
}

// FromGrid builds a subtexture from tile grid coordinates (cx,cy) of cell size (cw,ch).
func FromGrid(tex core.Texture, cx, cy, cw, ch, atlasW, atlasH int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}

// FromRect builds a subtexture from a pixel rectangle of tex. A zero rect
// means the whole texture.
func FromRect(tex core.Texture, src geom.Rect) SubTexture2D {
	if src.W <= 0 || src.H <= 0 {
		return SubTexture2D{Texture: tex, U1: 1, V1: 1}
	}
	w, h := float32(tex.Width()), float32(tex.Height())
	return SubTexture2D{
		Texture: tex,
		U0:      src.X / w,
		V0:      src.Y / h,
		U1:      (src.X + src.W) / w,
		V1:      (src.Y + src.H) / h,
	}
}

// FlipH mirrors the sub-rect horizontally.
func (s SubTexture2D) FlipH() SubTexture2D {
	s.U0, s.U1 = s.U1, s.U0
	return s
}

// FlipV mirrors the sub-rect vertically.
func (s SubTexture2D) FlipV() SubTexture2D {
	s.V0, s.V1 = s.V1, s.V0
	return s
}
