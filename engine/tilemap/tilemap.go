package tilemap

import (
	"errors"
	"sort"

	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
)

var (
	ErrInvalidMap    = errors.New("tilemap: invalid map data")
	ErrLayerCount    = errors.New("tilemap: layer count mismatch")
	ErrMisaligned    = errors.New("tilemap: not aligned to the chunk grid")
	ErrChunkOverlap  = errors.New("tilemap: chunk already present")
	ErrObjectOverlap = errors.New("tilemap: cell already holds an object")
	ErrNoObject      = errors.New("tilemap: no object at cell")
)

// Tile flip flags, as stored in the high bits of an editor GID.
const (
	FlipHorizontal uint8 = 1 << iota
	FlipVertical
	FlipDiagonal
)

type Tile struct {
	GID   uint32
	Flags uint8
}

func (t Tile) Empty() bool { return t.GID == 0 }

// Chunk is a Size.X × Size.Y block of tiles, row-major, with its top-left
// cell at Pos.
type Chunk struct {
	Pos   geom.Int2
	Size  geom.Int2
	Tiles []Tile
}

func (c *Chunk) Contains(cell geom.Int2) bool {
	d := cell.Sub(c.Pos)
	return d.X >= 0 && d.Y >= 0 && d.X < c.Size.X && d.Y < c.Size.Y
}

func (c *Chunk) At(cell geom.Int2) Tile {
	d := cell.Sub(c.Pos)
	return c.Tiles[d.X+d.Y*c.Size.X]
}

func (c *Chunk) each(fn func(cell geom.Int2, t Tile)) {
	for i, t := range c.Tiles {
		fn(c.Pos.Add(geom.I2(i%c.Size.X, i/c.Size.X)), t)
	}
}

// Layer is a drawable set of chunks, indexed by chunk origin.
type Layer struct {
	Name   string
	Offset geom.Vec2
	Chunks []Chunk

	index map[geom.Int2]int
}

func (l *Layer) insert(ch Chunk) error {
	if l.index == nil {
		l.index = make(map[geom.Int2]int)
	}
	if _, dup := l.index[ch.Pos]; dup {
		return ErrChunkOverlap
	}
	l.index[ch.Pos] = len(l.Chunks)
	l.Chunks = append(l.Chunks, ch)
	return nil
}

func (l *Layer) hasChunk(origin geom.Int2) bool {
	_, ok := l.index[origin]
	return ok
}

type Tileset struct {
	Name      string
	FirstGID  uint32
	TileCount int
	Columns   int
	TileSize  geom.Int2
	Texture   core.Texture
	Props     map[int]map[string]string // per local tile id
}

func (ts *Tileset) owns(gid uint32) bool {
	return gid >= ts.FirstGID && gid < ts.FirstGID+uint32(ts.TileCount)
}

// TileInfo locates a GID inside its tileset image.
type TileInfo struct {
	GID     uint32
	Tileset *Tileset
	Src     geom.Rect
	Props   map[string]string
}

// Map is the live world: tile layers, the collision set and the objects
// standing on the grid.
type Map struct {
	TileSize  geom.Int2
	ChunkSize geom.Int2

	tilesets []Tileset
	layers   []Layer
	solid    map[geom.Int2]struct{}

	objects map[geom.Int2]*Object
	boxes   map[geom.Int2]*Box
	byID    map[uint32]*Object
	nextID  uint32
}

func New(data MapData) (*Map, error) {
	c, err := parse(data)
	if err != nil {
		return nil, err
	}
	m := &Map{
		TileSize:  c.tileSize,
		ChunkSize: c.chunkSize,
		tilesets:  c.tilesets,
		layers:    c.layers,
		solid:     c.solid,
		objects:   make(map[geom.Int2]*Object, len(c.objects)),
		boxes:     make(map[geom.Int2]*Box),
		byID:      make(map[uint32]*Object, len(c.objects)),
	}
	for _, o := range c.objects {
		if _, err := m.AddObject(o); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Map) LayerCount() int { return len(m.layers) }

func (m *Map) Layer(i int) (*Layer, bool) {
	if i < 0 || i >= len(m.layers) {
		return nil, false
	}
	return &m.layers[i], true
}

// Chunk returns the chunk of layer covering cell.
func (m *Map) Chunk(cell geom.Int2, layer int) (*Chunk, bool) {
	l, ok := m.Layer(layer)
	if !ok || m.ChunkSize.IsZero() {
		return nil, false
	}
	origin := cell.FloorDiv(m.ChunkSize).Mul(m.ChunkSize)
	i, ok := l.index[origin]
	if !ok {
		return nil, false
	}
	return &l.Chunks[i], true
}

// Tile returns the tile at cell. Empty cells and cells outside every chunk
// report false.
func (m *Map) Tile(cell geom.Int2, layer int) (Tile, bool) {
	ch, ok := m.Chunk(cell, layer)
	if !ok {
		return Tile{}, false
	}
	t := ch.At(cell)
	return t, !t.Empty()
}

func (m *Map) TileInfo(gid uint32) (TileInfo, bool) {
	if gid == 0 {
		return TileInfo{}, false
	}
	for i := range m.tilesets {
		ts := &m.tilesets[i]
		if !ts.owns(gid) {
			continue
		}
		size := ts.TileSize
		if size.IsZero() {
			size = m.TileSize
		}
		cols := ts.Columns
		if cols <= 0 {
			cols = 1
		}
		local := int(gid - ts.FirstGID)
		src := geom.Rect{
			X: float32(local%cols) * float32(size.X),
			Y: float32(local/cols) * float32(size.Y),
			W: float32(size.X),
			H: float32(size.Y),
		}
		return TileInfo{GID: gid, Tileset: ts, Src: src, Props: ts.Props[local]}, true
	}
	return TileInfo{}, false
}

func (m *Map) IsSolid(cell geom.Int2) bool {
	_, ok := m.solid[cell]
	return ok
}

func (m *Map) SetSolid(cell geom.Int2, solid bool) {
	if solid {
		m.solid[cell] = struct{}{}
	} else {
		delete(m.solid, cell)
	}
}

// GridToWorld returns the pixel position of cell's top-left corner.
func (m *Map) GridToWorld(cell geom.Int2, layer int) geom.Vec2 {
	p := cell.Mul(m.TileSize).Vec2()
	if l, ok := m.Layer(layer); ok {
		p = p.Add(l.Offset)
	}
	return p
}

// WorldToGrid returns the cell containing the pixel position world.
func (m *Map) WorldToGrid(world geom.Vec2, layer int) geom.Int2 {
	if l, ok := m.Layer(layer); ok {
		world = world.Sub(l.Offset)
	}
	return world.Div(m.TileSize.Vec2()).Floor()
}

// Bounds is the cell rectangle covered by all chunks, as (min, max exclusive).
func (m *Map) Bounds() (lo, hi geom.Int2, ok bool) {
	for _, l := range m.layers {
		for _, ch := range l.Chunks {
			if !ok {
				lo, hi, ok = ch.Pos, ch.Pos.Add(ch.Size), true
				continue
			}
			lo = geom.I2(min(lo.X, ch.Pos.X), min(lo.Y, ch.Pos.Y))
			end := ch.Pos.Add(ch.Size)
			hi = geom.I2(max(hi.X, end.X), max(hi.Y, end.Y))
		}
	}
	return lo, hi, ok
}

// Objects returns every object ordered by ID.
func (m *Map) Objects() []*Object {
	out := make([]*Object, 0, len(m.objects))
	for _, o := range m.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
