package core

import "time"

// App defines the game hooks.
type App interface {
	OnStart(e *Engine)                 // after window/renderer init
	OnUpdate(e *Engine, dt float64)    // fixed tick
	OnRender(e *Engine, alpha float64) // alpha is the interpolation factor [0..1]
	OnEvent(e *Engine, ev Event)
	OnShutdown(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Config   Config
	start    time.Time
	quit     bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Quit ends the main loop after the current frame.
func (e *Engine) Quit() { e.quit = true }

type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	WindowSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// ===== Events =====

type Event interface{ isEvent() }

type EventCloseRequested struct{}

type EventResize struct{ W, H int }

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

// EventMouseMove carries the cursor position in window coordinates.
type EventMouseMove struct{ X, Y float64 }

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventCloseRequested) isEvent() {}
func (EventResize) isEvent()         {}
func (EventKey) isEvent()            {}
func (EventMouseMove) isEvent()      {}
func (EventMouseButton) isEvent()    {}
func (EventScroll) isEvent()         {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyBackspace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyP
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF3
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)
