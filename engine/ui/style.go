package ui

import (
	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
)

// ===== Sizing =====

type SizingMode uint8

const (
	SizeFit     SizingMode = iota // wrap children (or text/image) plus padding
	SizeGrow                      // share the parent's leftover space
	SizePercent                   // fraction of the parent's inner size
	SizeFixed                     // exact pixels
)

type Sizing struct {
	Mode  SizingMode
	Value float32 // pixels for SizeFixed, [0..1] for SizePercent
}

func Fit() Sizing              { return Sizing{Mode: SizeFit} }
func Grow() Sizing             { return Sizing{Mode: SizeGrow} }
func Fixed(px float32) Sizing  { return Sizing{Mode: SizeFixed, Value: px} }
func Percent(p float32) Sizing { return Sizing{Mode: SizePercent, Value: clamp01(p)} }

// Dim holds the sizing of both axes.
type Dim struct {
	Width  Sizing
	Height Sizing
}

func FixedDim(w, h float32) Dim { return Dim{Fixed(w), Fixed(h)} }
func GrowDim() Dim              { return Dim{Grow(), Grow()} }

func (d Dim) axis(ax axis) Sizing {
	if ax == axisX {
		return d.Width
	}
	return d.Height
}

// ===== Spacing =====

type Spacing struct{ Left, Top, Right, Bottom float32 }

func All(v float32) Spacing            { return Spacing{v, v, v, v} }
func Symmetric(h, v float32) Spacing   { return Spacing{h, v, h, v} }
func Edges(l, t, r, b float32) Spacing { return Spacing{l, t, r, b} }

func (s Spacing) start(ax axis) float32 {
	if ax == axisX {
		return s.Left
	}
	return s.Top
}

func (s Spacing) sum(ax axis) float32 {
	if ax == axisX {
		return s.Left + s.Right
	}
	return s.Top + s.Bottom
}

// ===== Positioning & flow =====

type PositionMode uint8

const (
	Relative PositionMode = iota // laid out in the parent's flow
	Absolute                     // placed at X,Y inside the parent box
)

type Position struct {
	Mode PositionMode
	X, Y float32
}

func At(x, y float32) Position { return Position{Mode: Absolute, X: x, Y: y} }

type FlexDir uint8

const (
	Row FlexDir = iota
	Column
)

func (d FlexDir) main() axis {
	if d == Column {
		return axisY
	}
	return axisX
}

type AlignX uint8

const (
	Left AlignX = iota
	CenterX
	Right
)

type AlignY uint8

const (
	Top AlignY = iota
	CenterY
	Bottom
)

// Corner radius presets in pixels.
const (
	RoundedSm   float32 = 2
	Rounded     float32 = 4
	RoundedMd   float32 = 6
	RoundedLg   float32 = 8
	RoundedXl   float32 = 12
	Rounded2xl  float32 = 16
	Rounded3xl  float32 = 24
	RoundedFull float32 = -1 // pill / circle
)

const DefaultFontSize float32 = 24

// ===== Collaborators =====

// Font measures text. Implementations must be deterministic for a given
// string, size and spacing.
type Font interface {
	Measure(s string, size, spacing float32) (w, h float32)
}

// Image is a texture region drawn instead of a background color.
// A zero Src means the whole texture.
type Image struct {
	Texture core.Texture
	Src     geom.Rect
}

func (im Image) Valid() bool { return im.Texture != nil }

// Size is the native pixel size of the region.
func (im Image) Size() geom.Vec2 {
	if im.Texture == nil {
		return geom.Vec2{}
	}
	if im.Src.W > 0 && im.Src.H > 0 {
		return im.Src.Size()
	}
	return geom.V2(float32(im.Texture.Width()), float32(im.Texture.Height()))
}

// ===== Style =====

// Style is the resolved configuration of one element.
type Style struct {
	Sizing    Dim
	Padding   Spacing
	Margin    Spacing
	Position  Position
	Direction FlexDir
	AlignX    AlignX
	AlignY    AlignY
	Gap       float32

	Radius      float32
	Background  colors.Color
	BorderWidth float32
	BorderColor colors.Color
	Image       Image

	Font          Font
	FontSize      float32
	TextColor     colors.Color
	LetterSpacing float32
	Wrap          bool
}

func (s *Style) normalize() {
	if s.Sizing.Width.Mode == SizePercent {
		s.Sizing.Width.Value = clamp01(s.Sizing.Width.Value)
	}
	if s.Sizing.Height.Mode == SizePercent {
		s.Sizing.Height.Value = clamp01(s.Sizing.Height.Value)
	}
}

// PanelStyle configures a container. Label gives the panel an identity so it
// can be hot, active and clicked.
type PanelStyle struct {
	Label string

	Sizing    Dim
	Padding   Spacing
	Margin    Spacing
	Position  Position
	Direction FlexDir
	AlignX    AlignX
	AlignY    AlignY
	Gap       float32

	Radius      float32
	Background  colors.Color
	BorderWidth float32
	BorderColor colors.Color
	Image       Image
}

func (p PanelStyle) Style() Style {
	return Style{
		Sizing:      p.Sizing,
		Padding:     p.Padding,
		Margin:      p.Margin,
		Position:    p.Position,
		Direction:   p.Direction,
		AlignX:      p.AlignX,
		AlignY:      p.AlignY,
		Gap:         p.Gap,
		Radius:      p.Radius,
		Background:  p.Background,
		BorderWidth: p.BorderWidth,
		BorderColor: p.BorderColor,
		Image:       p.Image,
	}
}

// TextStyle configures a text element. Text grows to the available width and
// fits its height to the (possibly wrapped) lines.
type TextStyle struct {
	Label string

	Font          Font
	FontSize      float32 // 0 means DefaultFontSize
	Color         colors.Color
	LetterSpacing float32
	NoWrap        bool

	Position Position
	AlignX   AlignX
	AlignY   AlignY
	Margin   Spacing
	Padding  Spacing
}

func (t TextStyle) Style() Style {
	size := t.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	col := t.Color
	if col.IsZero() {
		col = colors.Black
	}
	return Style{
		Sizing:        Dim{Width: Grow(), Height: Fit()},
		Margin:        t.Margin,
		Padding:       t.Padding,
		Position:      t.Position,
		AlignX:        t.AlignX,
		AlignY:        t.AlignY,
		Font:          t.Font,
		FontSize:      size,
		TextColor:     col,
		LetterSpacing: t.LetterSpacing,
		Wrap:          !t.NoWrap,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
