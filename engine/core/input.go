package core

// ButtonState is one key or button sampled for a frame. Pressed and Released
// are edges: true only in the frame the transition happened.
type ButtonState struct {
	Down     bool
	Pressed  bool
	Released bool
}

// Input accumulates window events between EndFrame calls.
type Input struct {
	keys           map[Key]ButtonState
	buttons        [mouseButtonCount]ButtonState
	mouseX, mouseY float64
	scrollX        float64
	scrollY        float64
}

func NewInput() *Input { return &Input{keys: map[Key]ButtonState{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = press(in.keys[e.Key], e.Down)
	case EventMouseButton:
		if e.Button >= 0 && e.Button < mouseButtonCount {
			in.buttons[e.Button] = press(in.buttons[e.Button], e.Down)
		}
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventScroll:
		in.scrollX += e.Xoff
		in.scrollY += e.Yoff
	}
}

func press(s ButtonState, down bool) ButtonState {
	switch {
	case down && !s.Down:
		s.Pressed = true
	case !down && s.Down:
		s.Released = true
	}
	s.Down = down
	return s
}

// EndFrame clears edges and scroll. Call once after the frame consumed them.
func (in *Input) EndFrame() {
	for k, s := range in.keys {
		s.Pressed, s.Released = false, false
		in.keys[k] = s
	}
	for i := range in.buttons {
		in.buttons[i].Pressed, in.buttons[i].Released = false, false
	}
	in.scrollX, in.scrollY = 0, 0
}

func (in *Input) Key(k Key) ButtonState { return in.keys[k] }
func (in *Input) IsKeyDown(k Key) bool  { return in.keys[k].Down }

func (in *Input) MouseButton(b MouseButton) ButtonState {
	if b < 0 || b >= mouseButtonCount {
		return ButtonState{}
	}
	return in.buttons[b]
}

func (in *Input) Mouse() (float64, float64)  { return in.mouseX, in.mouseY }
func (in *Input) Scroll() (float64, float64) { return in.scrollX, in.scrollY }
