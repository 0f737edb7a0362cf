package ui

import (
	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/geom"
)

// Element is one node of the frame tree. Links are arena handles, so the
// whole tree is discarded by resetting the arena.
type Element struct {
	Parent      arena.Handle
	FirstChild  arena.Handle
	LastChild   arena.Handle
	NextSibling arena.Handle
	Children    int

	// ID is zero for unlabeled elements, which never become hot or active.
	ID    uint64
	Label string
	Text  string
	Style Style

	Pos  geom.Vec2
	Size geom.Vec2

	scope    uint64    // identity inherited by children
	textSize geom.Vec2 // measured text block, without padding
	wrapped  string    // Text with line breaks inserted by the wrap pass
}

func (e *Element) Rect() geom.Rect { return geom.RectFrom(e.Pos, e.Size) }
func (e *Element) IsText() bool    { return e.Style.Font != nil }
func (e *Element) absolute() bool  { return e.Style.Position.Mode == Absolute }

// DisplayText is the text as drawn, including wrap breaks.
func (e *Element) DisplayText() string {
	if e.wrapped != "" {
		return e.wrapped
	}
	return e.Text
}

// ContentRect is the element box minus its padding.
func (e *Element) ContentRect() geom.Rect {
	p := e.Style.Padding
	r := geom.Rect{X: e.Pos.X + p.Left, Y: e.Pos.Y + p.Top, W: e.Size.X - p.Left - p.Right, H: e.Size.Y - p.Top - p.Bottom}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// ===== axis helpers =====

type axis uint8

const (
	axisX axis = iota
	axisY
)

func get(v geom.Vec2, ax axis) float32 {
	if ax == axisX {
		return v.X
	}
	return v.Y
}

func set(v *geom.Vec2, ax axis, f float32) {
	if ax == axisX {
		v.X = f
	} else {
		v.Y = f
	}
}

// ===== identity =====

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// hashLabel is 64-bit FNV-1a over the seed bytes followed by label, so the
// result depends on both and on their order.
func hashLabel(label string, seed uint64) uint64 {
	h := foldSeed(fnvOffset64, seed)
	for i := 0; i < len(label); i++ {
		h ^= uint64(label[i])
		h *= fnvPrime64
	}
	if h == 0 {
		h = 1
	}
	return h
}

// hashIndex scopes an unlabeled element by its position among its siblings.
func hashIndex(index int, seed uint64) uint64 {
	return foldSeed(foldSeed(fnvOffset64, seed), uint64(index)+1)
}

func foldSeed(h, seed uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= seed & 0xff
		h *= fnvPrime64
		seed >>= 8
	}
	return h
}
