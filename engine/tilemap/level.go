package tilemap

import (
	"fmt"

	"github.com/hubastard/cratepush/engine/geom"
)

// Exits flags the sides of a level that connect to neighbours.
type Exits uint8

const (
	ExitTop Exits = 1 << iota
	ExitBottom
	ExitLeft
	ExitRight

	ExitNone Exits = 0
)

func (e Exits) Has(x Exits) bool { return e&x == x }

// Level is a prefab region with the same shape as a Map but no place in the
// world. It is stamped onto a Map with PlaceLevel.
type Level struct {
	TileSize  geom.Int2
	ChunkSize geom.Int2
	Layers    []Layer
	Solid     []geom.Int2
	Objects   []Object
	Size      geom.Int2 // bounding box of all chunks, in cells
	Exits     Exits
}

func NewLevel(data MapData) (*Level, error) {
	c, err := parse(data)
	if err != nil {
		return nil, err
	}
	lv := &Level{
		TileSize:  c.tileSize,
		ChunkSize: c.chunkSize,
		Layers:    c.layers,
		Objects:   c.objects,
		Exits:     data.Exits,
	}
	for cell := range c.solid {
		lv.Solid = append(lv.Solid, cell)
	}

	first := true
	var lo, hi geom.Int2
	for _, l := range lv.Layers {
		for _, ch := range l.Chunks {
			end := ch.Pos.Add(ch.Size)
			if first {
				lo, hi, first = ch.Pos, end, false
				continue
			}
			lo = geom.I2(min(lo.X, ch.Pos.X), min(lo.Y, ch.Pos.Y))
			hi = geom.I2(max(hi.X, end.X), max(hi.Y, end.Y))
		}
	}
	lv.Size = hi.Sub(lo)
	return lv, nil
}

// CheckPlacement reports why lv cannot be stamped with its origin at cell
// at, or nil if it can.
func (m *Map) CheckPlacement(lv *Level, at geom.Int2) error {
	if len(lv.Layers) != len(m.layers) {
		return fmt.Errorf("%w: level has %d, map has %d", ErrLayerCount, len(lv.Layers), len(m.layers))
	}
	if lv.TileSize != m.TileSize {
		return fmt.Errorf("%w: tile size %v, map uses %v", ErrMisaligned, lv.TileSize, m.TileSize)
	}
	grid := m.ChunkSize
	if grid.IsZero() {
		grid = lv.ChunkSize
	}
	if !lv.ChunkSize.IsZero() && lv.ChunkSize != grid {
		return fmt.Errorf("%w: chunk size %v, map uses %v", ErrMisaligned, lv.ChunkSize, grid)
	}
	if !grid.IsZero() && !at.Mod(grid).IsZero() {
		return fmt.Errorf("%w: %v", ErrMisaligned, at)
	}

	for i := range lv.Layers {
		for _, ch := range lv.Layers[i].Chunks {
			if origin := ch.Pos.Add(at); m.layers[i].hasChunk(origin) {
				return fmt.Errorf("%w: layer %d at %v", ErrChunkOverlap, i, origin)
			}
		}
	}
	for _, o := range lv.Objects {
		if cell := o.Pos.Add(at); m.objects[cell] != nil {
			return fmt.Errorf("%w: %v", ErrObjectOverlap, cell)
		}
	}
	return nil
}

func (m *Map) CanPlaceLevel(lv *Level, at geom.Int2) bool {
	return m.CheckPlacement(lv, at) == nil
}

// PlaceLevel stamps lv onto the map. Nothing changes unless every check
// passes. Level object IDs are reassigned.
func (m *Map) PlaceLevel(lv *Level, at geom.Int2) error {
	if err := m.CheckPlacement(lv, at); err != nil {
		return err
	}
	if m.ChunkSize.IsZero() {
		m.ChunkSize = lv.ChunkSize
	}

	for i := range lv.Layers {
		for _, ch := range lv.Layers[i].Chunks {
			ch = cloneChunk(ch)
			ch.Pos = ch.Pos.Add(at)
			// Cannot collide: CheckPlacement looked at every origin.
			_ = m.layers[i].insert(ch)
		}
	}
	for _, cell := range lv.Solid {
		m.solid[cell.Add(at)] = struct{}{}
	}
	for _, o := range lv.Objects {
		o.ID = 0
		o.Pos = o.Pos.Add(at)
		o.Offset = geom.Vec2{}
		if _, err := m.AddObject(o); err != nil {
			return err
		}
	}
	return nil
}
