// Package puzzle implements chain pushing on a tilemap: an actor walking
// into a box shoves the whole contiguous row of boxes ahead of it, provided
// the row ends in a free cell.
package puzzle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/tilemap"
)

// Push starts a one-cell move in dir.
func Push(p *tilemap.Pushable, dir geom.Int2) {
	p.Dir = dir
	p.Progress = 0
	p.Moving = true
}

func reset(p *tilemap.Pushable) {
	p.Dir = geom.Zero
	p.Progress = 0
	p.Moving = false
}

// Chain walks from from+dir along dir and returns the cells of the
// contiguous boxes found, nearest first. ok is false when the row ends
// against a solid cell, an object that cannot be pushed, or a box that is
// already moving.
func Chain(m *tilemap.Map, from, dir geom.Int2) (cells []geom.Int2, ok bool) {
	for cell := from.Add(dir); ; cell = cell.Add(dir) {
		if m.IsSolid(cell) {
			return nil, false
		}
		if _, occupied := m.Object(cell); !occupied {
			return cells, true
		}
		b, isBox := m.Box(cell)
		if !isBox || b.Push.Moving {
			return nil, false
		}
		cells = append(cells, cell)
	}
}

// TryPush pushes the chain ahead of from in dir. The far box is pushed
// first. It returns false, and pushes nothing, when the chain is blocked.
// An empty chain counts as success.
func TryPush(m *tilemap.Map, from, dir geom.Int2) bool {
	if dir.LenSq() != 1 {
		return false
	}
	cells, ok := Chain(m, from, dir)
	if !ok {
		return false
	}
	for i := len(cells) - 1; i >= 0; i-- {
		b, _ := m.Box(cells[i])
		Push(&b.Push, dir)
	}
	return true
}

// Advance moves every moving box forward by step (a fraction of one move),
// updating its pixel offset. Boxes that finish are re-keyed to their new
// cell, leading boxes first so a follower never lands on an occupied key.
// A box that cannot commit holds in place; the others still advance and the
// failures are returned together.
func Advance(m *tilemap.Map, step float32) error {
	cells := m.BoxCells(nil)
	moving := cells[:0]
	for _, c := range cells {
		if b, _ := m.Box(c); b.Push.Moving {
			moving = append(moving, c)
		}
	}
	sort.Slice(moving, func(i, j int) bool {
		bi, _ := m.Box(moving[i])
		bj, _ := m.Box(moving[j])
		ki, kj := moving[i].Dot(bi.Push.Dir), moving[j].Dot(bj.Push.Dir)
		if ki != kj {
			return ki > kj
		}
		if moving[i].Y != moving[j].Y {
			return moving[i].Y < moving[j].Y
		}
		return moving[i].X < moving[j].X
	})

	var errs []error
	for _, cell := range moving {
		b, _ := m.Box(cell)
		o, ok := m.Object(cell)
		if !ok {
			errs = append(errs, fmt.Errorf("puzzle: box %d at %v has no object", b.ID, cell))
			continue
		}

		p := &b.Push
		p.Progress += step
		if p.Progress < 1 {
			o.Offset = p.Dir.Mul(o.Size).Vec2().Scale(geom.Smoothstep(p.Progress))
			continue
		}

		if err := m.MoveObject(cell, cell.Add(p.Dir)); err != nil {
			// Hold at the end of the move and retry next tick.
			p.Progress = 1
			o.Offset = p.Dir.Mul(o.Size).Vec2()
			errs = append(errs, fmt.Errorf("puzzle: commit box %d: %w", b.ID, err))
			continue
		}
		reset(p)
		o.Offset = geom.Vec2{}
	}
	return errors.Join(errs...)
}
