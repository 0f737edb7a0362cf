package main

import (
	"fmt"
	"log"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
	"github.com/hubastard/cratepush/engine/profiler"
	"github.com/hubastard/cratepush/engine/scene"
	"github.com/hubastard/cratepush/engine/ui"
)

// DebugLayer is the F3 overlay with frame, renderer and runtime stats.
// Ctrl+P writes the profiler capture.
type DebugLayer struct {
	app     *App
	ui      *ui.Context
	visible bool
	lines   []string
}

func (l *DebugLayer) OnAttach(e *core.Engine) {
	l.ui = ui.NewContext(ui.Options{Capacity: 64, DefaultFont: l.app.font, Logger: log.Default()})
}

func (l *DebugLayer) OnDetach(e *core.Engine)             {}
func (l *DebugLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *DebugLayer) OnRender(e *core.Engine, alpha float64) {
	if !l.visible {
		return
	}
	a := l.app
	st := a.stats
	rt := profiler.ReadRuntime()
	fps := float32(0)
	if a.frameMS > 0 {
		fps = 1000 / a.frameMS
	}
	l.lines = append(l.lines[:0],
		fmt.Sprintf("Frame %d  %.2f ms (%.0f FPS)", a.tick, a.frameMS, fps),
		fmt.Sprintf("Draw calls %d  Quads %d  Shapes %d", st.DrawCalls, st.QuadCount, st.ShapeCount),
		fmt.Sprintf("Vertices %d  Indices %d  Textures %d", st.TotalVertexCount(), st.TotalIndexCount(), st.TextureCount),
		fmt.Sprintf("Heap %.2f MB  Mallocs %d  GC %d", float32(rt.HeapAlloc)/(1<<20), rt.Mallocs, rt.NumGC),
		fmt.Sprintf("Goroutines %d  CPUs %d  Profiler %v", rt.Goroutines, rt.CPUs, profiler.Enabled()),
	)

	fw, fh := e.Window.FramebufferSize()
	size := e.Config.UI.FontSize * 0.7
	c := l.ui
	c.BeginFrame(geom.V2(float32(fw), float32(fh)), ui.Pointer{}, ui.Column)
	c.Panel(ui.PanelStyle{
		Position:   ui.At(8, 0),
		AlignY:     ui.Bottom,
		Margin:     ui.Edges(0, 0, 0, 8),
		Padding:    ui.All(12),
		Direction:  ui.Column,
		Gap:        4,
		Radius:     ui.Rounded,
		Background: colors.Black.WithAlpha(0.6),
	}, func() {
		for i, s := range l.lines {
			color := colors.White
			if i == 0 {
				color = colors.Yellow
			}
			c.Text(s, ui.TextStyle{FontSize: size, Color: color, NoWrap: true})
		}
	})
	c.EndFrame()

	a.r2d.BeginScene(scene.ScreenVP(fw, fh))
	c.Render(a.painter)
	a.r2d.EndScene()
}

func (l *DebugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyF3:
		l.visible = !l.visible
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		if path, err := profiler.DumpFile(); err != nil {
			log.Printf("profiler: %v", err)
		} else {
			log.Printf("profiler: speedscope capture written to %s", path)
		}
		return true
	}
	return false
}
