package main

import (
	"log"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/gfx/renderer2d"
	"github.com/hubastard/cratepush/engine/gfx/uipaint"
	"github.com/hubastard/cratepush/engine/profiler"
	"github.com/hubastard/cratepush/engine/scene"
)

// WorldLayer runs the puzzle and draws the map under a following camera.
type WorldLayer struct {
	game    *Game
	r2d     *renderer2d.Renderer2D
	painter *uipaint.Painter

	cam    *scene.OrthoCamera2D
	follow *scene.FollowController
}

func (l *WorldLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.cam.SetZoom(e.Config.Game.Zoom)
	l.follow = scene.NewFollowController(l.cam)
	l.follow.Snap(l.game.PlayerRect().Center())
}

func (l *WorldLayer) OnDetach(e *core.Engine) {}

func (l *WorldLayer) OnUpdate(e *core.Engine, dt float64) {
	if err := l.game.Update(float32(dt), heldDirection(e.Input)); err != nil {
		log.Printf("world: %v", err)
	}
	l.follow.Update(l.game.PlayerRect().Center(), float32(dt))
}

func (l *WorldLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("world.render")
	defer end()

	m := l.game.Map
	l.r2d.BeginScene(l.cam.VP())
	view := l.cam.ViewRect()
	for i := 0; i < m.LayerCount(); i++ {
		m.Render(i, view, l.painter)
	}
	m.RenderObjects(l.painter)
	if info, ok := l.game.PlayerInfo(); ok {
		l.painter.DrawTile(info, l.game.PlayerRect(), 0, 0)
	} else {
		l.r2d.DrawRoundedRect(l.game.PlayerRect(), -1, colors.SkyBlue)
	}
	l.r2d.EndScene()
}

func (l *WorldLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if !v.Down {
			return false
		}
		switch v.Key {
		case core.KeyR:
			l.reset()
			return true
		case core.KeyEscape:
			e.Quit()
			return true
		}
	case core.EventResize:
		w, h := e.Window.FramebufferSize()
		l.cam.SetViewportPixels(w, h)
	}
	return false
}

func (l *WorldLayer) reset() {
	if err := l.game.Reset(); err != nil {
		log.Printf("world: reset: %v", err)
		return
	}
	l.follow.Snap(l.game.PlayerRect().Center())
}

// heldDirection maps the arrow keys and WASD to a unit step, or zero.
func heldDirection(in *core.Input) geom.Int2 {
	switch {
	case in.IsKeyDown(core.KeyUp) || in.IsKeyDown(core.KeyW):
		return geom.Up
	case in.IsKeyDown(core.KeyDown) || in.IsKeyDown(core.KeyS):
		return geom.Down
	case in.IsKeyDown(core.KeyLeft) || in.IsKeyDown(core.KeyA):
		return geom.Left
	case in.IsKeyDown(core.KeyRight) || in.IsKeyDown(core.KeyD):
		return geom.Right
	}
	return geom.Zero
}
