package tilemap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/cratepush/engine/geom"
)

const ts = 16

// chunk returns a 4×4 chunk at origin whose tiles all carry gid.
func chunk(origin geom.Int2, gid uint32) Chunk {
	tiles := make([]Tile, 16)
	for i := range tiles {
		tiles[i] = Tile{GID: gid}
	}
	return Chunk{Pos: origin, Size: geom.I2(4, 4), Tiles: tiles}
}

func solidChunk(origin geom.Int2, cells ...geom.Int2) Chunk {
	ch := chunk(origin, 0)
	for _, c := range cells {
		d := c.Sub(origin)
		ch.Tiles[d.X+d.Y*4] = Tile{GID: 1}
	}
	return ch
}

func boxAt(id uint32, cell geom.Int2) ObjectData {
	// Tile objects are anchored bottom-left.
	return ObjectData{ID: id, Class: "Box", Pos: geom.V2(float32(cell.X*ts), float32((cell.Y+1)*ts)), GID: 3, Visible: true}
}

func testData() MapData {
	ground := chunk(geom.I2(0, 0), 2)
	ground.Tiles[0] = Tile{} // (0,0) empty
	return MapData{
		TileSize: geom.I2(ts, ts),
		Tilesets: []Tileset{{Name: "tiles", FirstGID: 1, TileCount: 16, Columns: 4, TileSize: geom.I2(ts, ts)}},
		Layers: []LayerData{
			{Name: "ground", Chunks: []Chunk{ground, chunk(geom.I2(4, 0), 5)}},
			{Name: "walls", Class: CollisionClass, Chunks: []Chunk{solidChunk(geom.I2(0, 0), geom.I2(1, 1))}},
		},
		Objects: []ObjectData{
			boxAt(7, geom.I2(2, 2)),
			{ID: 8, Class: "Lamp", Pos: geom.V2(0, 16), GID: 4},
			{ID: 9, Class: "Box", Pos: geom.V2(0, 32)},
		},
	}
}

func mustMap(t *testing.T, data MapData) *Map {
	t.Helper()
	m, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewSplitsCollisionLayer(t *testing.T) {
	m := mustMap(t, testData())

	if m.LayerCount() != 1 {
		t.Fatalf("layers = %d, want 1", m.LayerCount())
	}
	if m.ChunkSize != geom.I2(4, 4) {
		t.Errorf("chunk size = %v", m.ChunkSize)
	}
	if !m.IsSolid(geom.I2(1, 1)) || m.IsSolid(geom.I2(2, 1)) {
		t.Errorf("collision set wrong")
	}
	// Unknown classes and objects without a tile are skipped.
	if got := len(m.Objects()); got != 1 {
		t.Errorf("objects = %d, want 1", got)
	}
}

func TestLookups(t *testing.T) {
	m := mustMap(t, testData())

	tests := []struct {
		cell     geom.Int2
		layer    int
		wantGID  uint32
		wantTile bool
		wantCh   bool
	}{
		{geom.I2(1, 1), 0, 2, true, true},
		{geom.I2(0, 0), 0, 0, false, true},
		{geom.I2(5, 3), 0, 5, true, true},
		{geom.I2(8, 0), 0, 0, false, false},
		{geom.I2(-1, 0), 0, 0, false, false},
		{geom.I2(1, 1), 3, 0, false, false},
	}
	for _, tt := range tests {
		ch, ok := m.Chunk(tt.cell, tt.layer)
		if ok != tt.wantCh {
			t.Errorf("Chunk(%v, %d) ok = %v", tt.cell, tt.layer, ok)
		}
		if ok && !ch.Contains(tt.cell) {
			t.Errorf("Chunk(%v) = chunk at %v", tt.cell, ch.Pos)
		}
		tile, ok := m.Tile(tt.cell, tt.layer)
		if ok != tt.wantTile || tile.GID != tt.wantGID {
			t.Errorf("Tile(%v, %d) = %v, %v", tt.cell, tt.layer, tile, ok)
		}
	}
}

func TestTileInfo(t *testing.T) {
	m := mustMap(t, testData())

	info, ok := m.TileInfo(6)
	if !ok {
		t.Fatal("gid 6 not found")
	}
	if want := (geom.Rect{X: 16, Y: 16, W: 16, H: 16}); info.Src != want {
		t.Errorf("src = %v, want %v", info.Src, want)
	}
	if info.Tileset.Name != "tiles" {
		t.Errorf("tileset = %q", info.Tileset.Name)
	}
	for _, gid := range []uint32{0, 17, 400} {
		if _, ok := m.TileInfo(gid); ok {
			t.Errorf("gid %d found", gid)
		}
	}
}

func TestCoordinateTransforms(t *testing.T) {
	data := testData()
	data.Layers[0].Offset = geom.V2(8, 0)
	m := mustMap(t, data)

	if got := m.GridToWorld(geom.I2(2, 3), 0); got != geom.V2(40, 48) {
		t.Errorf("GridToWorld = %v", got)
	}
	tests := []struct {
		world geom.Vec2
		want  geom.Int2
	}{
		{geom.V2(40, 48), geom.I2(2, 3)},
		{geom.V2(55.9, 63.9), geom.I2(2, 3)},
		{geom.V2(7.9, 0), geom.I2(-1, 0)},
		{geom.V2(8, -0.5), geom.I2(0, -1)},
	}
	for _, tt := range tests {
		if got := m.WorldToGrid(tt.world, 0); got != tt.want {
			t.Errorf("WorldToGrid(%v) = %v, want %v", tt.world, got, tt.want)
		}
	}
}

func TestObjectsAreKeyedByCell(t *testing.T) {
	m := mustMap(t, testData())

	o, ok := m.Object(geom.I2(2, 2))
	if !ok {
		t.Fatal("box not at (2,2)")
	}
	want := &Object{ID: 7, Pos: geom.I2(2, 2), Size: geom.I2(ts, ts), Type: ObjectBox, GID: 3, Visible: true}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("object (-want +got):\n%s", diff)
	}
	if b, ok := m.Box(geom.I2(2, 2)); !ok || b.ID != 7 {
		t.Errorf("box = %v, %v", b, ok)
	}
	if byID, ok := m.ObjectByID(7); !ok || byID != o {
		t.Errorf("ObjectByID(7) = %v, %v", byID, ok)
	}
	if _, ok := m.Object(geom.I2(0, 0)); ok {
		t.Errorf("unexpected object at (0,0)")
	}
}

func TestInvalidMaps(t *testing.T) {
	misaligned := testData()
	misaligned.Layers[0].Chunks[1].Pos = geom.I2(3, 0)

	duplicate := testData()
	duplicate.Layers[0].Chunks[1].Pos = geom.I2(0, 0)

	short := testData()
	short.Layers[0].Chunks[0].Tiles = short.Layers[0].Chunks[0].Tiles[:3]

	stacked := testData()
	stacked.Objects = append(stacked.Objects, boxAt(12, geom.I2(2, 2)))

	tests := []struct {
		name string
		data MapData
		want error
	}{
		{"misaligned", misaligned, ErrMisaligned},
		{"duplicate chunk", duplicate, ErrChunkOverlap},
		{"short chunk", short, ErrInvalidMap},
		{"stacked objects", stacked, ErrObjectOverlap},
		{"no tile size", MapData{}, ErrInvalidMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMoveObjectRekeys(t *testing.T) {
	m := mustMap(t, testData())
	from, to := geom.I2(2, 2), geom.I2(3, 2)

	if err := m.MoveObject(from, to); err != nil {
		t.Fatalf("MoveObject: %v", err)
	}
	if _, ok := m.Object(from); ok {
		t.Errorf("object still at %v", from)
	}
	if _, ok := m.Box(from); ok {
		t.Errorf("box still at %v", from)
	}
	o, ok := m.Object(to)
	if !ok || o.Pos != to {
		t.Fatalf("object at %v = %v, %v", to, o, ok)
	}
	if b, ok := m.Box(to); !ok || b.ID != o.ID {
		t.Errorf("box at %v = %v, %v", to, b, ok)
	}
	if byID, _ := m.ObjectByID(o.ID); byID.Pos != to {
		t.Errorf("id index not updated: %v", byID.Pos)
	}
}

func TestMoveObjectFailuresChangeNothing(t *testing.T) {
	m := mustMap(t, testData())
	if _, err := m.AddObject(Object{Pos: geom.I2(3, 2), Type: ObjectBox, GID: 3}); err != nil {
		t.Fatal(err)
	}

	if err := m.MoveObject(geom.I2(2, 2), geom.I2(3, 2)); !errors.Is(err, ErrObjectOverlap) {
		t.Errorf("err = %v, want overlap", err)
	}
	if err := m.MoveObject(geom.I2(9, 9), geom.I2(10, 9)); !errors.Is(err, ErrNoObject) {
		t.Errorf("err = %v, want no object", err)
	}
	for _, cell := range []geom.Int2{geom.I2(2, 2), geom.I2(3, 2)} {
		o, ok := m.Object(cell)
		if !ok || o.Pos != cell {
			t.Errorf("object at %v disturbed", cell)
		}
		if _, ok := m.Box(cell); !ok {
			t.Errorf("box at %v disturbed", cell)
		}
	}
}

func TestAddObjectAssignsIDs(t *testing.T) {
	m := mustMap(t, testData())
	a, err := m.AddObject(Object{Pos: geom.I2(0, 3), Type: ObjectBox})
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.AddObject(Object{ID: 7, Pos: geom.I2(1, 3), Type: ObjectBox})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == 0 || a.ID == 7 || b.ID == 7 || a.ID == b.ID {
		t.Errorf("ids = %d, %d", a.ID, b.ID)
	}
	if !m.RemoveObject(a.Pos) {
		t.Errorf("RemoveObject failed")
	}
	if _, ok := m.ObjectByID(a.ID); ok {
		t.Errorf("removed object still indexed")
	}
}

func levelData() MapData {
	return MapData{
		TileSize: geom.I2(ts, ts),
		Layers: []LayerData{
			{Name: "ground", Chunks: []Chunk{chunk(geom.I2(0, 0), 9), chunk(geom.I2(4, 0), 9)}},
			{Name: "walls", Class: CollisionClass, Chunks: []Chunk{solidChunk(geom.I2(0, 0), geom.I2(3, 3))}},
		},
		Objects: []ObjectData{boxAt(1, geom.I2(1, 1))},
		Exits:   ExitLeft | ExitRight,
	}
}

func TestNewLevel(t *testing.T) {
	lv, err := NewLevel(levelData())
	if err != nil {
		t.Fatal(err)
	}
	if lv.Size != geom.I2(8, 4) {
		t.Errorf("size = %v, want 8x4", lv.Size)
	}
	if !lv.Exits.Has(ExitLeft) || lv.Exits.Has(ExitTop) {
		t.Errorf("exits = %b", lv.Exits)
	}
	if diff := cmp.Diff([]geom.Int2{geom.I2(3, 3)}, lv.Solid); diff != "" {
		t.Errorf("solid (-want +got):\n%s", diff)
	}
}

func TestPlaceLevel(t *testing.T) {
	m := mustMap(t, testData())
	lv, err := NewLevel(levelData())
	if err != nil {
		t.Fatal(err)
	}

	at := geom.I2(8, 0)
	if !m.CanPlaceLevel(lv, at) {
		t.Fatalf("cannot place: %v", m.CheckPlacement(lv, at))
	}
	if err := m.PlaceLevel(lv, at); err != nil {
		t.Fatal(err)
	}

	if tile, ok := m.Tile(geom.I2(12, 2), 0); !ok || tile.GID != 9 {
		t.Errorf("placed tile = %v, %v", tile, ok)
	}
	if !m.IsSolid(geom.I2(11, 3)) {
		t.Errorf("placed collision missing")
	}
	o, ok := m.Object(geom.I2(9, 1))
	if !ok {
		t.Fatal("placed box missing")
	}
	if o.ID == 1 || o.ID == 7 {
		t.Errorf("placed object kept a clashing id %d", o.ID)
	}
	if _, ok := m.Box(geom.I2(9, 1)); !ok {
		t.Errorf("placed box not indexed")
	}
	if lo, hi, _ := m.Bounds(); lo != geom.I2(0, 0) || hi != geom.I2(16, 4) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
}

func TestPlaceLevelRejectsWithoutMutation(t *testing.T) {
	lv, err := NewLevel(levelData())
	if err != nil {
		t.Fatal(err)
	}
	twoLayers := levelData()
	twoLayers.Layers = append(twoLayers.Layers, LayerData{Name: "deco", Chunks: []Chunk{chunk(geom.I2(0, 0), 1)}})
	wide, err := NewLevel(twoLayers)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		lv   *Level
		at   geom.Int2
		want error
	}{
		{"chunk overlap", lv, geom.I2(4, 0), ErrChunkOverlap},
		{"misaligned", lv, geom.I2(2, 8), ErrMisaligned},
		{"layer count", wide, geom.I2(8, 0), ErrLayerCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMap(t, testData())
			if m.CanPlaceLevel(tt.lv, tt.at) {
				t.Fatalf("CanPlaceLevel = true")
			}
			if err := m.PlaceLevel(tt.lv, tt.at); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			l, _ := m.Layer(0)
			if len(l.Chunks) != 2 || len(m.Objects()) != 1 || m.IsSolid(tt.at.Add(geom.I2(3, 3))) {
				t.Errorf("map mutated by rejected placement")
			}
		})
	}
}

func TestPlaceLevelRejectsObjectOverlap(t *testing.T) {
	m := mustMap(t, testData())
	lv, err := NewLevel(levelData())
	if err != nil {
		t.Fatal(err)
	}
	// The level box lands on (9,1); occupy it without adding a chunk there.
	if _, err := m.AddObject(Object{Pos: geom.I2(9, 1), Type: ObjectBox}); err != nil {
		t.Fatal(err)
	}
	if err := m.CheckPlacement(lv, geom.I2(8, 0)); !errors.Is(err, ErrObjectOverlap) {
		t.Errorf("err = %v, want object overlap", err)
	}
}

type drawCall struct {
	GID uint32
	Dst geom.Rect
}

type drawRecorder struct{ calls []drawCall }

func (r *drawRecorder) DrawTile(info TileInfo, dst geom.Rect, _ uint8, _ float32) {
	r.calls = append(r.calls, drawCall{info.GID, dst})
}

func TestRender(t *testing.T) {
	m := mustMap(t, testData())

	var all drawRecorder
	m.Render(0, geom.Rect{}, &all)
	if len(all.calls) != 31 {
		t.Errorf("draws = %d, want 31 (one empty cell)", len(all.calls))
	}

	var culled drawRecorder
	m.Render(0, geom.Rect{X: 70, Y: 0, W: 10, H: 10}, &culled)
	for _, c := range culled.calls {
		if c.GID != 5 {
			t.Fatalf("culled render drew gid %d from the first chunk", c.GID)
		}
	}
	if len(culled.calls) != 16 {
		t.Errorf("culled draws = %d, want 16", len(culled.calls))
	}

	var objs drawRecorder
	o, _ := m.Object(geom.I2(2, 2))
	o.Offset = geom.V2(4, 0)
	m.RenderObjects(&objs)
	want := []drawCall{{3, geom.Rect{X: 36, Y: 32, W: 16, H: 16}}}
	if diff := cmp.Diff(want, objs.calls); diff != "" {
		t.Errorf("object draws (-want +got):\n%s", diff)
	}
}
