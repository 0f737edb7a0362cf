package core

import "testing"

func TestInputEdges(t *testing.T) {
	in := NewInput()

	in.Handle(EventKey{Key: KeyUp, Down: true})
	if got := in.Key(KeyUp); got != (ButtonState{Down: true, Pressed: true}) {
		t.Errorf("after press: %+v", got)
	}
	in.EndFrame()
	if got := in.Key(KeyUp); got != (ButtonState{Down: true}) {
		t.Errorf("held: %+v", got)
	}

	// Key repeat events do not re-trigger the edge.
	in.Handle(EventKey{Key: KeyUp, Down: true})
	if in.Key(KeyUp).Pressed {
		t.Errorf("repeat produced a press edge")
	}

	in.Handle(EventKey{Key: KeyUp, Down: false})
	if got := in.Key(KeyUp); got != (ButtonState{Released: true}) {
		t.Errorf("after release: %+v", got)
	}
	in.EndFrame()
	if got := in.Key(KeyUp); got != (ButtonState{}) {
		t.Errorf("idle: %+v", got)
	}
}

func TestInputTapWithinOneFrame(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: false})

	got := in.MouseButton(MouseLeft)
	if got.Down || !got.Pressed || !got.Released {
		t.Errorf("tap = %+v, want both edges and not down", got)
	}
	if got := in.MouseButton(MouseButton(42)); got != (ButtonState{}) {
		t.Errorf("out of range button = %+v", got)
	}
}

func TestInputMouseAndScroll(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseMove{X: 10, Y: 20})
	in.Handle(EventScroll{Yoff: 1})
	in.Handle(EventScroll{Yoff: 2})

	if x, y := in.Mouse(); x != 10 || y != 20 {
		t.Errorf("mouse = %v,%v", x, y)
	}
	if _, y := in.Scroll(); y != 3 {
		t.Errorf("scroll = %v, want 3", y)
	}
	in.EndFrame()
	if _, y := in.Scroll(); y != 0 {
		t.Errorf("scroll not reset")
	}
}
