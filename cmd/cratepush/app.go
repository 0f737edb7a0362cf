package main

import (
	"log"
	"time"

	"github.com/hubastard/cratepush/engine/assets"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/gfx/renderer2d"
	"github.com/hubastard/cratepush/engine/gfx/uipaint"
	"github.com/hubastard/cratepush/engine/profiler"
	"github.com/hubastard/cratepush/engine/text"
)

type App struct {
	layers  core.LayerStack
	r2d     *renderer2d.Renderer2D
	painter *uipaint.Painter
	font    *text.Font
	tileTex core.Texture
	game    *Game

	stats     renderer2d.Statistics
	lastFrame time.Time
	frameMS   float32
	tick      int
}

func (a *App) OnStart(e *core.Engine) {
	vs, fs, err := assets.QuadShaders()
	if err != nil {
		panic(err)
	}
	a.r2d, err = renderer2d.New(e.Renderer, vs, fs, 10000)
	if err != nil {
		panic(err)
	}
	a.painter = uipaint.New(a.r2d)

	if a.font, err = loadFont(e.Config); err != nil {
		panic(err)
	}
	if err := a.font.Upload(e.Renderer); err != nil {
		panic(err)
	}

	ts := e.Config.Game.TileSize
	if a.tileTex, err = loadTileset(e, ts); err != nil {
		panic(err)
	}
	tileset := NewTileset(ts)
	tileset.Texture = a.tileTex
	if a.game, err = NewGame(tileset, ts, e.Config.Game.MoveDuration); err != nil {
		panic(err)
	}

	a.layers.Push(e, &WorldLayer{game: a.game, r2d: a.r2d, painter: a.painter})
	a.layers.Push(e, &HUDLayer{game: a.game, r2d: a.r2d, painter: a.painter, font: a.font})
	a.layers.Push(e, &DebugLayer{app: a})
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++
	a.layers.Update(e, dt)
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("frame")
	defer end()

	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.frameMS = float32(now.Sub(a.lastFrame).Seconds() * 1000)
	}
	a.lastFrame = now

	a.r2d.ResetStats()
	a.layers.Render(e, alpha)
	a.stats = a.r2d.Stats()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if _, ok := ev.(core.EventCloseRequested); ok {
		e.Quit()
		return
	}
	a.layers.Dispatch(e, ev)
}

func (a *App) OnShutdown(e *core.Engine) {
	a.layers.Clear(e)
	if a.tileTex != nil {
		e.Renderer.DeleteTexture(a.tileTex)
	}
	if a.font != nil {
		if a.font.Texture != nil {
			e.Renderer.DeleteTexture(a.font.Texture)
		}
		a.font.Close()
	}
}

func loadFont(cfg core.Config) (*text.Font, error) {
	// Rasterise at twice the UI size so scaled text stays sharp.
	size := cfg.UI.FontSize * 2
	if cfg.UI.FontPath != "" {
		return text.LoadTTF(cfg.UI.FontPath, size)
	}
	return text.Default(size)
}

func loadTileset(e *core.Engine, tileSize int) (core.Texture, error) {
	var (
		w, h int
		pix  []byte
	)
	if path := e.Config.Game.TilesetPath; path != "" {
		var err error
		if w, h, pix, err = assets.LoadPNG(path); err != nil {
			return nil, err
		}
		log.Printf("tileset: %s (%dx%d)", path, w, h)
	} else {
		w, h, pix = assets.Pixels(assets.GenerateTileset(tileSize))
	}
	return e.Renderer.CreateTexture(core.TextureDesc{
		Width:     w,
		Height:    h,
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
}
