package main

import (
	"fmt"

	"github.com/hubastard/cratepush/engine/assets"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/puzzle"
	"github.com/hubastard/cratepush/engine/tilemap"
)

// Game is the puzzle state behind the layers: the stitched map, the player
// world and the goal cells.
type Game struct {
	TileSize     int
	Tileset      tilemap.Tileset
	MoveDuration float32

	Map   *tilemap.Map
	World *puzzle.World
	Goals []geom.Int2
}

func NewGame(ts tilemap.Tileset, tileSize int, moveDuration float32) (*Game, error) {
	g := &Game{TileSize: tileSize, Tileset: ts, MoveDuration: moveDuration}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewTileset describes the generated atlas layout for a texture.
func NewTileset(tileSize int) tilemap.Tileset {
	return tilemap.Tileset{
		Name:      "crates",
		FirstGID:  1,
		TileCount: assets.TilesetColumns,
		Columns:   assets.TilesetColumns,
		TileSize:  geom.I2(tileSize, tileSize),
	}
}

// Reset rebuilds the map from the rooms and puts the player back.
func (g *Game) Reset() error {
	var (
		m        *tilemap.Map
		start    geom.Int2
		hasStart bool
		goals    []geom.Int2
	)
	for i, r := range rooms {
		rd, err := parseRoom(r.rows, g.TileSize, g.Tileset)
		if err != nil {
			return fmt.Errorf("room %d: %w", i, err)
		}
		for _, c := range rd.goals {
			goals = append(goals, c.Add(r.at))
		}
		if rd.hasStart {
			if hasStart {
				return fmt.Errorf("room %d: second player start", i)
			}
			start, hasStart = rd.start.Add(r.at), true
		}

		if m == nil {
			if !r.at.IsZero() {
				return fmt.Errorf("room %d: first room must sit at the origin", i)
			}
			if m, err = tilemap.New(rd.data); err != nil {
				return fmt.Errorf("room %d: %w", i, err)
			}
			continue
		}
		lv, err := tilemap.NewLevel(rd.data)
		if err != nil {
			return fmt.Errorf("room %d: %w", i, err)
		}
		if err := m.PlaceLevel(lv, r.at); err != nil {
			return fmt.Errorf("room %d: %w", i, err)
		}
	}
	if m == nil || !hasStart {
		return fmt.Errorf("no room with a player start")
	}

	w := puzzle.NewWorld(m, start)
	if g.MoveDuration > 0 {
		w.MoveDuration = g.MoveDuration
	}
	g.Map, g.World, g.Goals = m, w, goals
	return nil
}

func (g *Game) Update(dt float32, dir geom.Int2) error {
	return g.World.Update(dt, dir)
}

// Covered counts goals with a box resting on them.
func (g *Game) Covered() int {
	n := 0
	for _, goal := range g.Goals {
		if b, ok := g.Map.Box(goal); ok && !b.Push.Moving {
			n++
		}
	}
	return n
}

// Solved reports whether every goal holds a box and nothing is moving.
func (g *Game) Solved() bool {
	return len(g.Goals) > 0 && g.Covered() == len(g.Goals) && !g.World.Busy()
}

// PlayerRect is the player's interpolated tile rectangle in world pixels.
func (g *Game) PlayerRect() geom.Rect {
	ts := float32(g.TileSize)
	return geom.RectFrom(g.World.PlayerWorldPos(), geom.V2(ts, ts))
}

// PlayerInfo is the tile drawn for the player.
func (g *Game) PlayerInfo() (tilemap.TileInfo, bool) {
	return g.Map.TileInfo(g.Tileset.FirstGID + assets.TilePlayer)
}
