package main

import (
	"fmt"

	"github.com/hubastard/cratepush/engine/assets"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/tilemap"
)

const chunkSize = 8

// Map layers, in draw order. The collision layer is folded into the solid
// set and never drawn.
const (
	layerGround = iota
	layerGoals
)

// room is a level in the usual text notation:
//
//	#  wall       .  goal
//	$  box        *  box on a goal
//	@  player     +  player on a goal
//
// Spaces, '-' and '_' are floor. A room without a player is placed with
// PlaceLevel next to the first one.
type room struct {
	at   geom.Int2 // top-left cell, chunk aligned
	rows []string
}

var rooms = []room{
	{
		at: geom.I2(0, 0),
		rows: []string{
			"################",
			"#     #        #",
			"# @ $ #  .     #",
			"#     $        #",
			"#  .  #   $  . -",
			"#     #        #",
			"#  $  .        #",
			"#     #        #",
			"################",
		},
	},
	{
		at: geom.I2(16, 0),
		rows: []string{
			"################",
			"#        #     #",
			"#  $  .  #  .  #",
			"#        $     #",
			"-  $  .        #",
			"#     #  $  .  #",
			"#     #        #",
			"################",
		},
	},
}

// roomData is what a room expands to.
type roomData struct {
	data     tilemap.MapData
	start    geom.Int2
	hasStart bool
	goals    []geom.Int2
}

// chunkGrid collects tiles into chunks keyed by chunk origin.
type chunkGrid map[geom.Int2]*tilemap.Chunk

func (g chunkGrid) set(cell geom.Int2, gid uint32) {
	size := geom.I2(chunkSize, chunkSize)
	origin := cell.FloorDiv(size).Mul(size)
	ch, ok := g[origin]
	if !ok {
		ch = &tilemap.Chunk{Pos: origin, Size: size, Tiles: make([]tilemap.Tile, chunkSize*chunkSize)}
		g[origin] = ch
	}
	d := cell.Sub(origin)
	ch.Tiles[d.X+d.Y*chunkSize] = tilemap.Tile{GID: gid}
}

func (g chunkGrid) chunks() []tilemap.Chunk {
	out := make([]tilemap.Chunk, 0, len(g))
	for _, ch := range g {
		out = append(out, *ch)
	}
	return out
}

// parseRoom expands rows into map data in room-local cells.
func parseRoom(rows []string, tileSize int, ts tilemap.Tileset) (roomData, error) {
	var rd roomData
	gid := func(tile int) uint32 { return ts.FirstGID + uint32(tile) }
	ground, goals, walls := chunkGrid{}, chunkGrid{}, chunkGrid{}
	var nextID uint32

	for y, row := range rows {
		for x, ch := range []rune(row) {
			cell := geom.I2(x, y)
			if ch == '#' {
				ground.set(cell, gid(assets.TileWall))
				walls.set(cell, gid(assets.TileWall))
				continue
			}
			ground.set(cell, gid(assets.TileFloor))

			switch ch {
			case ' ', '-', '_':
			case '.', '*', '+':
				goals.set(cell, gid(assets.TileGoal))
				rd.goals = append(rd.goals, cell)
			case '$', '@':
			default:
				return roomData{}, fmt.Errorf("room row %d col %d: unknown cell %q", y, x, ch)
			}

			switch ch {
			case '$', '*':
				nextID++
				rd.data.Objects = append(rd.data.Objects, tilemap.ObjectData{
					ID:      nextID,
					Class:   tilemap.ObjectBox.String(),
					Pos:     geom.I2(x*tileSize, (y+1)*tileSize).Vec2(), // bottom-left anchor
					GID:     gid(assets.TileBox),
					Visible: true,
				})
			case '@', '+':
				if rd.hasStart {
					return roomData{}, fmt.Errorf("room row %d col %d: second player", y, x)
				}
				rd.start, rd.hasStart = cell, true
			}
		}
	}

	rd.data.TileSize = geom.I2(tileSize, tileSize)
	rd.data.Tilesets = []tilemap.Tileset{ts}
	rd.data.Layers = []tilemap.LayerData{
		{Name: "ground", Chunks: ground.chunks()},
		{Name: "goals", Chunks: goals.chunks()},
		{Name: "collision", Class: tilemap.CollisionClass, Chunks: walls.chunks()},
	}
	return rd, nil
}
