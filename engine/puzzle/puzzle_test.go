package puzzle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/tilemap"
)

func newMap(t *testing.T) *tilemap.Map {
	t.Helper()
	m, err := tilemap.New(tilemap.MapData{TileSize: geom.I2(16, 16)})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func addBox(t *testing.T, m *tilemap.Map, cell geom.Int2) {
	t.Helper()
	if _, err := m.AddObject(tilemap.Object{Pos: cell, Type: tilemap.ObjectBox, GID: 1, Visible: true}); err != nil {
		t.Fatal(err)
	}
}

// occupied lists the cells holding objects, checked against the box index.
func occupied(t *testing.T, m *tilemap.Map) []geom.Int2 {
	t.Helper()
	var cells []geom.Int2
	for _, o := range m.Objects() {
		if _, ok := m.Box(o.Pos); !ok && o.Type == tilemap.ObjectBox {
			t.Fatalf("box index lost object %d at %v", o.ID, o.Pos)
		}
		cells = append(cells, o.Pos)
	}
	return cells
}

func TestPushCommitsAndRekeys(t *testing.T) {
	m := newMap(t)
	addBox(t, m, geom.I2(2, 2))

	if !TryPush(m, geom.I2(1, 2), geom.Right) {
		t.Fatal("push refused")
	}
	b, _ := m.Box(geom.I2(2, 2))
	if want := (tilemap.Pushable{Dir: geom.Right, Moving: true}); b.Push != want {
		t.Fatalf("push state = %+v", b.Push)
	}

	if err := Advance(m, 0.5); err != nil {
		t.Fatal(err)
	}
	o, _ := m.Object(geom.I2(2, 2))
	if o.Offset != geom.V2(8, 0) {
		t.Errorf("halfway offset = %v, want (8,0)", o.Offset)
	}

	if err := Advance(m, 0.5); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Object(geom.I2(2, 2)); ok {
		t.Errorf("object still keyed at (2,2)")
	}
	o, ok := m.Object(geom.I2(3, 2))
	if !ok {
		t.Fatal("object not keyed at (3,2)")
	}
	if o.Offset != (geom.Vec2{}) || o.Pos != geom.I2(3, 2) {
		t.Errorf("after commit: pos %v offset %v", o.Pos, o.Offset)
	}
	b, ok = m.Box(geom.I2(3, 2))
	if !ok || b.Push != (tilemap.Pushable{}) {
		t.Errorf("box after commit = %+v, %v", b, ok)
	}
}

func TestChainOfNBoxesMovesTogether(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d boxes", n), func(t *testing.T) {
			m := newMap(t)
			var start, want []geom.Int2
			for i := 1; i <= n; i++ {
				addBox(t, m, geom.I2(i, 0))
				start = append(start, geom.I2(i, 0))
				want = append(want, geom.I2(i+1, 0))
			}
			m.SetSolid(geom.I2(n+2, 0), true)

			cells, ok := Chain(m, geom.I2(0, 0), geom.Right)
			if !ok {
				t.Fatal("chain blocked")
			}
			if diff := cmp.Diff(start, cells); diff != "" {
				t.Fatalf("chain (-want +got):\n%s", diff)
			}
			if !TryPush(m, geom.I2(0, 0), geom.Right) {
				t.Fatal("push refused")
			}

			for i := 0; i < 4; i++ {
				if err := Advance(m, 0.3); err != nil {
					t.Fatal(err)
				}
				if got := len(occupied(t, m)); got != n {
					t.Fatalf("step %d: %d objects, want %d", i, got, n)
				}
			}
			got := m.BoxCells(nil)
			if diff := cmp.Diff(want, got, sortCells); diff != "" {
				t.Errorf("final cells (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChainBlocked(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, m *tilemap.Map)
	}{
		{"wall after chain", func(t *testing.T, m *tilemap.Map) {
			addBox(t, m, geom.I2(1, 0))
			addBox(t, m, geom.I2(2, 0))
			m.SetSolid(geom.I2(3, 0), true)
		}},
		{"fixed object", func(t *testing.T, m *tilemap.Map) {
			addBox(t, m, geom.I2(1, 0))
			if _, err := m.AddObject(tilemap.Object{Pos: geom.I2(2, 0), Type: tilemap.ObjectUnknown}); err != nil {
				t.Fatal(err)
			}
		}},
		{"box already moving", func(t *testing.T, m *tilemap.Map) {
			addBox(t, m, geom.I2(1, 0))
			addBox(t, m, geom.I2(2, 0))
			b, _ := m.Box(geom.I2(2, 0))
			Push(&b.Push, geom.Down)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMap(t)
			tt.setup(t, m)
			if TryPush(m, geom.I2(0, 0), geom.Right) {
				t.Fatal("push accepted")
			}
			if b, _ := m.Box(geom.I2(1, 0)); b.Push.Moving {
				t.Errorf("first box started moving")
			}
		})
	}
}

func TestAdvanceCommitsLeadingBoxFirst(t *testing.T) {
	for _, dir := range []geom.Int2{geom.Left, geom.Right, geom.Up, geom.Down} {
		m := newMap(t)
		origin := geom.I2(10, 10)
		for i := 1; i <= 3; i++ {
			addBox(t, m, origin.Add(dir.Scale(i)))
		}
		if !TryPush(m, origin, dir) {
			t.Fatalf("%v: push refused", dir)
		}
		// One step finishes every move in the same tick.
		if err := Advance(m, 1); err != nil {
			t.Fatalf("%v: %v", dir, err)
		}
		for i := 2; i <= 4; i++ {
			if _, ok := m.Box(origin.Add(dir.Scale(i))); !ok {
				t.Errorf("%v: no box at %v", dir, origin.Add(dir.Scale(i)))
			}
		}
	}
}

func TestAdvanceHoldsOnBlockedCommit(t *testing.T) {
	m := newMap(t)
	addBox(t, m, geom.I2(1, 0))
	if !TryPush(m, geom.I2(0, 0), geom.Right) {
		t.Fatal("push refused")
	}
	// Something lands in the target mid-move.
	if _, err := m.AddObject(tilemap.Object{Pos: geom.I2(2, 0), Type: tilemap.ObjectUnknown}); err != nil {
		t.Fatal(err)
	}
	if err := Advance(m, 1); !errors.Is(err, tilemap.ErrObjectOverlap) {
		t.Fatalf("err = %v, want overlap", err)
	}
	b, ok := m.Box(geom.I2(1, 0))
	if !ok || !b.Push.Moving || b.Push.Progress != 1 {
		t.Errorf("box state after failed commit = %+v, %v", b, ok)
	}
}

func TestAdvanceKeepsGoingPastBlockedCommit(t *testing.T) {
	m := newMap(t)
	addBox(t, m, geom.I2(10, 0))
	addBox(t, m, geom.I2(0, 0))
	if !TryPush(m, geom.I2(9, 0), geom.Right) || !TryPush(m, geom.I2(-1, 0), geom.Right) {
		t.Fatal("push refused")
	}
	if _, err := m.AddObject(tilemap.Object{Pos: geom.I2(11, 0), Type: tilemap.ObjectUnknown}); err != nil {
		t.Fatal(err)
	}

	// The leading box sorts first and fails; the other still commits.
	if err := Advance(m, 1); !errors.Is(err, tilemap.ErrObjectOverlap) {
		t.Fatalf("err = %v, want overlap", err)
	}
	b, ok := m.Box(geom.I2(1, 0))
	if !ok || b.Push.Moving {
		t.Fatalf("unblocked box did not commit: %+v, %v", b, ok)
	}
	if _, ok := m.Box(geom.I2(0, 0)); ok {
		t.Errorf("unblocked box still keyed at its old cell")
	}
	held, ok := m.Box(geom.I2(10, 0))
	if !ok || held.Push.Progress != 1 {
		t.Errorf("blocked box state = %+v, %v", held, ok)
	}
}

func TestWorldMovesPlayerAndBoxes(t *testing.T) {
	m := newMap(t)
	addBox(t, m, geom.I2(2, 2))
	w := NewWorld(m, geom.I2(1, 2))

	if err := w.Update(0.1, geom.Right); err != nil {
		t.Fatal(err)
	}
	if !w.Busy() {
		t.Fatal("player not moving")
	}
	if got := w.PlayerWorldPos(); got != geom.V2(24, 32) {
		t.Errorf("halfway player pos = %v, want (24,32)", got)
	}

	// Input is ignored while a move is animating.
	if err := w.Update(0.1, geom.Down); err != nil {
		t.Fatal(err)
	}
	if w.Busy() || w.Player.Pos != geom.I2(2, 2) {
		t.Errorf("player = %+v", w.Player)
	}
	if _, ok := m.Box(geom.I2(3, 2)); !ok {
		t.Errorf("box not pushed to (3,2)")
	}
	if w.Moves != 1 || w.Pushes != 1 {
		t.Errorf("moves=%d pushes=%d", w.Moves, w.Pushes)
	}
}

func TestWorldRefusesBlockedMoves(t *testing.T) {
	m := newMap(t)
	m.SetSolid(geom.I2(0, 1), true)
	addBox(t, m, geom.I2(1, 0))
	m.SetSolid(geom.I2(2, 0), true)
	w := NewWorld(m, geom.I2(0, 0))

	for _, dir := range []geom.Int2{geom.Down, geom.Right, geom.I2(1, 1), geom.Zero} {
		if w.TryMove(dir) {
			t.Errorf("move %v accepted", dir)
		}
	}
	if w.Busy() || w.Moves != 0 {
		t.Errorf("world changed: %+v", w.Player)
	}
	if !w.TryMove(geom.Up) {
		t.Errorf("free move refused")
	}
}

var sortCells = cmpopts.SortSlices(func(a, b geom.Int2) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})
