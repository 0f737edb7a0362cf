package puzzle

import (
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/tilemap"
)

// DefaultMoveDuration is the time in seconds one cell of movement takes.
const DefaultMoveDuration float32 = 0.2

// Actor is the player: a grid position plus the same move state as a box.
type Actor struct {
	Pos  geom.Int2
	Move tilemap.Pushable
}

// World drives the player and the boxes from one shared move clock.
type World struct {
	Map          *tilemap.Map
	Player       Actor
	MoveDuration float32

	Moves  int
	Pushes int
}

func NewWorld(m *tilemap.Map, start geom.Int2) *World {
	return &World{Map: m, Player: Actor{Pos: start}, MoveDuration: DefaultMoveDuration}
}

// Busy reports whether a move is still animating. Input is ignored until it
// finishes.
func (w *World) Busy() bool { return w.Player.Move.Moving }

// TryMove starts a player move in dir, pushing any chain of boxes ahead.
func (w *World) TryMove(dir geom.Int2) bool {
	if w.Busy() || dir.LenSq() != 1 {
		return false
	}
	target := w.Player.Pos.Add(dir)
	if w.Map.IsSolid(target) {
		return false
	}
	_, pushing := w.Map.Object(target)
	if !TryPush(w.Map, w.Player.Pos, dir) {
		return false
	}

	Push(&w.Player.Move, dir)
	w.Moves++
	if pushing {
		w.Pushes++
	}
	return true
}

// Update advances the clock by dt seconds. dir is the held direction, or
// zero.
func (w *World) Update(dt float32, dir geom.Int2) error {
	step := float32(1)
	if w.MoveDuration > 0 {
		step = dt / w.MoveDuration
	}

	if !dir.IsZero() {
		w.TryMove(dir)
	}

	if p := &w.Player.Move; p.Moving {
		p.Progress += step
		if p.Progress >= 1 {
			w.Player.Pos = w.Player.Pos.Add(p.Dir)
			reset(p)
		}
	}
	return Advance(w.Map, step)
}

// PlayerWorldPos is the pixel position of the player's cell corner,
// interpolated along the current move.
func (w *World) PlayerWorldPos() geom.Vec2 {
	pos := w.Map.GridToWorld(w.Player.Pos, 0)
	if p := w.Player.Move; p.Moving {
		pos = pos.Add(p.Dir.Mul(w.Map.TileSize).Vec2().Scale(geom.Smoothstep(p.Progress)))
	}
	return pos
}
