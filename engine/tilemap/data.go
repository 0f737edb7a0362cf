package tilemap

import (
	"fmt"

	"github.com/hubastard/cratepush/engine/geom"
)

// CollisionClass marks a tile layer whose non-empty tiles are solid cells.
// Such a layer is not drawn.
const CollisionClass = "CollisionMap"

// MapData is the shape a map source (an editor export, or code) hands to
// New and NewLevel. Nothing in this package reads files.
type MapData struct {
	TileSize geom.Int2
	Tilesets []Tileset
	Layers   []LayerData
	Objects  []ObjectData
	Exits    Exits
}

type LayerData struct {
	Name   string
	Class  string
	Offset geom.Vec2
	Chunks []Chunk
}

// ObjectData is a tile object as placed in an editor: Pos is in pixels and
// anchored at the tile's bottom-left corner.
type ObjectData struct {
	ID       uint32
	Class    string
	Pos      geom.Vec2
	GID      uint32
	Rotation float32
	Visible  bool
}

// content is what a MapData resolves to, shared by Map and Level.
type content struct {
	tileSize  geom.Int2
	chunkSize geom.Int2
	tilesets  []Tileset
	layers    []Layer
	solid     map[geom.Int2]struct{}
	objects   []Object
}

func parse(data MapData) (*content, error) {
	if data.TileSize.X <= 0 || data.TileSize.Y <= 0 {
		return nil, fmt.Errorf("%w: tile size %v", ErrInvalidMap, data.TileSize)
	}

	c := &content{
		tileSize: data.TileSize,
		tilesets: append([]Tileset(nil), data.Tilesets...),
		solid:    make(map[geom.Int2]struct{}),
	}
	for i := 1; i < len(c.tilesets); i++ {
		if c.tilesets[i].FirstGID < c.tilesets[i-1].FirstGID+uint32(c.tilesets[i-1].TileCount) {
			return nil, fmt.Errorf("%w: tileset %q overlaps GIDs of %q", ErrInvalidMap, c.tilesets[i].Name, c.tilesets[i-1].Name)
		}
	}

	for _, ld := range data.Layers {
		for _, ch := range ld.Chunks {
			if err := c.checkChunk(ch); err != nil {
				return nil, fmt.Errorf("layer %q: %w", ld.Name, err)
			}
		}

		if ld.Class == CollisionClass {
			for _, ch := range ld.Chunks {
				ch.each(func(cell geom.Int2, t Tile) {
					if !t.Empty() {
						c.solid[cell] = struct{}{}
					}
				})
			}
			continue
		}

		layer := Layer{Name: ld.Name, Offset: ld.Offset}
		for _, ch := range ld.Chunks {
			if err := layer.insert(cloneChunk(ch)); err != nil {
				return nil, fmt.Errorf("layer %q: %w", ld.Name, err)
			}
		}
		c.layers = append(c.layers, layer)
	}

	seen := make(map[geom.Int2]bool, len(data.Objects))
	for _, od := range data.Objects {
		typ := ParseObjectType(od.Class)
		if od.GID == 0 || typ == ObjectUnknown {
			continue
		}
		pos := od.Pos.Div(data.TileSize.Vec2()).Floor().Add(geom.Up)
		if seen[pos] {
			return nil, fmt.Errorf("%w: %s at %v", ErrObjectOverlap, od.Class, pos)
		}
		seen[pos] = true
		c.objects = append(c.objects, Object{
			ID:       od.ID,
			Pos:      pos,
			Size:     data.TileSize,
			Type:     typ,
			GID:      od.GID,
			Rotation: od.Rotation,
			Visible:  od.Visible,
		})
	}
	return c, nil
}

// checkChunk enforces one chunk size per map and chunk-aligned origins.
func (c *content) checkChunk(ch Chunk) error {
	if ch.Size.X <= 0 || ch.Size.Y <= 0 || len(ch.Tiles) != ch.Size.X*ch.Size.Y {
		return fmt.Errorf("%w: chunk at %v has size %v and %d tiles", ErrInvalidMap, ch.Pos, ch.Size, len(ch.Tiles))
	}
	if c.chunkSize.IsZero() {
		c.chunkSize = ch.Size
	}
	if ch.Size != c.chunkSize {
		return fmt.Errorf("%w: chunk size %v, map uses %v", ErrMisaligned, ch.Size, c.chunkSize)
	}
	if !ch.Pos.Mod(c.chunkSize).IsZero() {
		return fmt.Errorf("%w: chunk origin %v", ErrMisaligned, ch.Pos)
	}
	return nil
}

func cloneChunk(ch Chunk) Chunk {
	ch.Tiles = append([]Tile(nil), ch.Tiles...)
	return ch
}
