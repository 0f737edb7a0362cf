package main

import (
	"fmt"
	"log"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/gfx/renderer2d"
	"github.com/hubastard/cratepush/engine/gfx/uipaint"
	"github.com/hubastard/cratepush/engine/profiler"
	"github.com/hubastard/cratepush/engine/scene"
	"github.com/hubastard/cratepush/engine/text"
	"github.com/hubastard/cratepush/engine/ui"
)

var (
	hudBackground = colors.Black.WithAlpha(0.6)
	buttonIdle    = colors.MustHex("#2d3a4a")
	buttonHover   = buttonIdle.Lighten(0.1)
	buttonDown    = buttonIdle.Lighten(-0.08)
	solvedGlow    = colors.Gold.Blend(colors.White, 0.35)
)

// HUDLayer shows the move counters and the reset and help buttons.
type HUDLayer struct {
	game    *Game
	r2d     *renderer2d.Renderer2D
	painter *uipaint.Painter
	font    *text.Font

	ui       *ui.Context
	fontSize float32
	help     bool

	resetID, helpID uint64
}

func (l *HUDLayer) OnAttach(e *core.Engine) {
	l.fontSize = e.Config.UI.FontSize
	l.ui = ui.NewContext(ui.Options{
		Capacity:    e.Config.UI.Capacity,
		DefaultFont: l.font,
		Logger:      log.Default(),
	})
}

func (l *HUDLayer) OnDetach(e *core.Engine)             {}
func (l *HUDLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *HUDLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("hud")
	defer end()

	fw, fh := e.Window.FramebufferSize()
	l.ui.BeginFrame(geom.V2(float32(fw), float32(fh)), pointer(e), ui.Column)
	l.build()
	l.ui.EndFrame()

	if l.ui.Clicked(l.resetID) {
		if err := l.game.Reset(); err != nil {
			log.Printf("hud: reset: %v", err)
		}
	}
	if l.ui.Clicked(l.helpID) {
		l.help = !l.help
	}

	l.r2d.BeginScene(scene.ScreenVP(fw, fh))
	l.ui.Render(l.painter)
	l.r2d.EndScene()
}

func (l *HUDLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyF1 {
		l.help = !l.help
		return true
	}
	return false
}

func (l *HUDLayer) build() {
	c := l.ui
	w := l.game.World
	label := func(s string, color colors.Color) {
		c.Text(s, ui.TextStyle{FontSize: l.fontSize, Color: color, NoWrap: true})
	}

	c.Panel(ui.PanelStyle{
		Sizing:     ui.Dim{Width: ui.Grow(), Height: ui.Fit()},
		Padding:    ui.Symmetric(16, 8),
		Gap:        24,
		Background: hudBackground,
	}, func() {
		label(fmt.Sprintf("Moves %d", w.Moves), colors.White)
		label(fmt.Sprintf("Pushes %d", w.Pushes), colors.White)
		label(fmt.Sprintf("Goals %d/%d", l.game.Covered(), len(l.game.Goals)), colors.Gold)
		c.Spacer()
		l.helpID = l.button("help", "Help (F1)")
		l.resetID = l.button("reset", "Reset (R)")
	})

	if l.game.Solved() {
		c.Panel(ui.PanelStyle{
			Position:   ui.At(0, 0),
			AlignX:     ui.CenterX,
			AlignY:     ui.CenterY,
			Padding:    ui.Symmetric(32, 16),
			Radius:     ui.RoundedLg,
			Background: hudBackground,
		}, func() {
			c.Text("Solved!", ui.TextStyle{FontSize: l.fontSize * 2, Color: solvedGlow, NoWrap: true})
		})
	}

	if l.help {
		c.Panel(ui.PanelStyle{
			Label:       "help-panel",
			Sizing:      ui.Dim{Width: ui.Percent(0.4), Height: ui.Fit()},
			Position:    ui.At(0, -24), // lifted off the bottom edge
			AlignX:      ui.CenterX,
			AlignY:      ui.Bottom,
			Padding:     ui.All(16),
			Direction:   ui.Column,
			Gap:         8,
			Radius:      ui.RoundedMd,
			Background:  hudBackground,
			BorderWidth: 1,
			BorderColor: colors.White.WithAlpha(0.3),
		}, func() {
			label("How to play", colors.Gold)
			c.Text("Arrows or WASD walk. Walk into a crate to push it, along with every crate lined up behind it, unless a wall blocks the line. Cover every goal to win.",
				ui.TextStyle{FontSize: l.fontSize * 0.75, Color: colors.White})
			c.Text("R resets, F3 shows stats, Esc quits.",
				ui.TextStyle{FontSize: l.fontSize * 0.75, Color: colors.LightGray})
		})
	}
}

// button draws a labeled panel shaded by last frame's interaction and
// returns its identity.
func (l *HUDLayer) button(id, caption string) uint64 {
	c := l.ui
	bg := buttonIdle
	switch key := c.ID(id); {
	case c.Pressed(key):
		bg = buttonDown
	case c.Hovered(key):
		bg = buttonHover
	}
	return c.Panel(ui.PanelStyle{
		Label:       id,
		Padding:     ui.Symmetric(12, 4),
		Radius:      ui.Rounded,
		Background:  bg,
		BorderWidth: 1,
		BorderColor: colors.White.WithAlpha(0.4),
	}, func() {
		c.Text(caption, ui.TextStyle{FontSize: l.fontSize * 0.8, Color: colors.White, NoWrap: true})
	})
}

// pointer converts the cursor from window to framebuffer pixels.
func pointer(e *core.Engine) ui.Pointer {
	mx, my := e.Input.Mouse()
	fw, fh := e.Window.FramebufferSize()
	ww, wh := e.Window.WindowSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	b := e.Input.MouseButton(core.MouseLeft)
	return ui.Pointer{
		Pos:      geom.V2(float32(mx*sx), float32(my*sy)),
		Down:     b.Down,
		Pressed:  b.Pressed,
		Released: b.Released,
	}
}
