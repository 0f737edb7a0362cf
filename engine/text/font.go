package text

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hubastard/cratepush/engine/core"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a rasterised glyph atlas at SizePx. Drawing and measuring at other
// sizes scales the atlas metrics.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  core.Texture
	AtlasW, AtlasH           int

	kern   map[[2]rune]float32
	pixels *image.Alpha // coverage until Upload
	face   font.Face
}

// Default rasterises the embedded Go Regular font.
func Default(sizePx float32) (*Font, error) {
	return Parse(goregular.TTF, sizePx)
}

// LoadTTF reads and rasterises a TrueType/OpenType file.
func LoadTTF(path string, sizePx float32) (*Font, error) {
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(ttf, sizePx)
}

// Parse builds a single-channel coverage atlas for Latin-1 in CPU memory.
// Call Upload before drawing.
func Parse(ttf []byte, sizePx float32) (*Font, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size %v must be positive", sizePx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, 224)
	for rr := rune(32); rr <= rune(255); rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()), // distance from baseline to top
		})
	}

	// Shelf packer (rows). Start with 256^2 and grow until everything fits.
	const padding = 2
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			_ = face.Close()
			return nil, fmt.Errorf("font atlas too large (>%d)", 4096)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
	}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{
			Rune:     g.r,
			Advance:  g.adv,
			BearingX: g.bx,
			BearingY: g.by,
			W:        g.w,
			H:        g.h,
		}
		if p, ok := pos[g.r]; ok {
			// The drawer's dot sits on the baseline, shifted left by the bearing.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))

			gl.U0 = float32(p.X) / float32(atlasSize)
			gl.V0 = float32(p.Y) / float32(atlasSize)
			gl.U1 = float32(p.X+g.w) / float32(atlasSize)
			gl.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = gl
	}

	kern := make(map[[2]rune]float32)
	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				kern[[2]rune{a.r, b.r}] = float32(dx.Round())
			}
		}
	}

	return &Font{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		AtlasW:  atlasSize,
		AtlasH:  atlasSize,
		kern:    kern,
		pixels:  dst,
		face:    face,
	}, nil
}

// Upload creates the atlas texture. The CPU copy is released afterwards.
func (f *Font) Upload(r core.Renderer) error {
	if f.Texture != nil {
		return nil
	}
	if f.pixels == nil {
		return fmt.Errorf("font atlas already released")
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: f.AtlasW, Height: f.AtlasH,
		Format:    core.TextureR8,
		Pixels:    f.pixels.Pix,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return fmt.Errorf("upload font atlas: %w", err)
	}
	f.Texture = tex
	f.pixels = nil
	return nil
}

func (f *Font) Close() {
	if f != nil && f.face != nil {
		_ = f.face.Close()
		f.face = nil
	}
}

// LineHeight is the baseline-to-baseline distance at size.
func (f *Font) LineHeight(size float32) float32 {
	return (f.Ascent - f.Descent + f.LineGap) * f.scale(size)
}

// Baseline-to-top distance (useful to position text by top-left).
func (f *Font) BaselineToTop(size float32) float32    { return f.Ascent * f.scale(size) }
func (f *Font) BaselineToBottom(size float32) float32 { return -f.Descent * f.scale(size) }

func (f *Font) scale(size float32) float32 {
	if size <= 0 {
		return 1
	}
	return size / f.SizePx
}

// glyph returns the glyph for r, falling back to the space advance for
// runes outside the atlas.
func (f *Font) glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	sp := f.Glyphs[' ']
	return Glyph{Rune: r, Advance: sp.Advance}, false
}

func (f *Font) kerning(prev, r rune) float32 {
	if prev < 0 {
		return 0
	}
	return f.kern[[2]rune{prev, r}]
}
