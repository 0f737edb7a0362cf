package ui

import (
	"io"
	"log"

	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/geom"
)

// DefaultCapacity is the element budget per frame when Options.Capacity is unset.
const DefaultCapacity = 1024

type Options struct {
	Capacity    int
	DefaultFont Font
	Logger      *log.Logger
}

// Pointer is the mouse state sampled for one frame.
type Pointer struct {
	Pos      geom.Vec2
	Down     bool // held this frame
	Pressed  bool // went down this frame
	Released bool // went up this frame
}

// Context owns the frame arena and the interaction state that survives
// between frames. It is not safe for concurrent use.
type Context struct {
	elements *arena.Arena[Element]
	stack    []arena.Handle
	ids      []uint64
	root     arena.Handle
	building bool
	dropped  int
	growBuf  []arena.Handle

	screen  geom.Vec2
	pointer Pointer
	hot     uint64
	active  uint64
	release arena.Handle // element under the pointer on release, if it was active
	events  []Event

	font Font
	log  *log.Logger
}

func NewContext(opts Options) *Context {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Context{
		elements: arena.New[Element](capacity),
		stack:    make([]arena.Handle, 0, 32),
		root:     arena.Nil,
		events:   make([]Event, 0, 16),
		font:     opts.DefaultFont,
		log:      lg,
	}
}

func (c *Context) SetDefaultFont(f Font) { c.font = f }
func (c *Context) DefaultFont() Font     { return c.font }

// BeginFrame discards the previous tree and opens a root sized to the screen.
func (c *Context) BeginFrame(screen geom.Vec2, p Pointer, dir FlexDir) {
	c.elements.Reset()
	c.stack = c.stack[:0]
	c.ids = c.ids[:0]
	c.dropped = 0
	c.screen = screen
	c.pointer = p
	c.building = true
	c.root = c.open("", Style{Sizing: FixedDim(screen.X, screen.Y), Direction: dir})
}

// EndFrame closes the root, runs layout and resolves pointer interaction.
// Events stay readable until the next EndFrame.
func (c *Context) EndFrame() {
	if !c.building {
		return
	}
	if n := len(c.stack); n > 1 {
		c.log.Printf("ui: %d element(s) left open at end of frame", n-1)
	}
	for len(c.stack) > 0 {
		c.Close()
	}
	c.building = false
	if c.dropped > 0 {
		c.log.Printf("ui: element capacity %d exhausted, dropped %d element(s)", c.elements.Cap(), c.dropped)
	}

	c.layout()
	c.resolvePointer()
}

// Open starts a child of the current element. Every Open must be matched by
// Close. When the arena is full the element and its subtree are dropped.
func (c *Context) Open(style Style) arena.Handle { return c.open("", style) }

// OpenID is Open with an identity label.
func (c *Context) OpenID(label string, style Style) arena.Handle { return c.open(label, style) }

func (c *Context) open(label string, style Style) arena.Handle {
	if !c.building {
		return arena.Nil
	}

	parent := arena.Nil
	if n := len(c.stack); n > 0 {
		parent = c.stack[n-1]
		if !parent.Valid() {
			c.dropped++
			c.stack = append(c.stack, arena.Nil)
			return arena.Nil
		}
	}

	h, e, ok := c.elements.Alloc()
	if !ok {
		c.dropped++
		c.stack = append(c.stack, arena.Nil)
		return arena.Nil
	}

	style.normalize()
	e.Parent = parent
	e.FirstChild = arena.Nil
	e.LastChild = arena.Nil
	e.NextSibling = arena.Nil
	e.Style = style
	e.Label = label

	index := 0
	p := c.elements.Get(parent)
	if p != nil {
		index = p.Children
		if p.LastChild.Valid() {
			c.elements.Get(p.LastChild).NextSibling = h
		} else {
			p.FirstChild = h
		}
		p.LastChild = h
		p.Children++
	}
	seed := c.seed(p)
	if label != "" {
		e.ID = hashLabel(label, seed)
		e.scope = e.ID
	} else {
		e.scope = hashIndex(index, seed)
	}

	if style.Position.Mode == Absolute {
		e.Pos = geom.V2(style.Position.X, style.Position.Y)
	}
	if style.Sizing.Width.Mode == SizeFixed {
		e.Size.X = style.Sizing.Width.Value
	}
	if style.Sizing.Height.Mode == SizeFixed {
		e.Size.Y = style.Sizing.Height.Value
	}

	c.stack = append(c.stack, h)
	return h
}

// Close finishes the current element and computes its fit size from the
// children closed so far.
func (c *Context) Close() {
	n := len(c.stack)
	if !c.building || n == 0 {
		return
	}
	h := c.stack[n-1]
	c.stack = c.stack[:n-1]

	e := c.elements.Get(h)
	if e == nil {
		return
	}

	if e.IsText() {
		w, th := e.Style.Font.Measure(e.Text, e.Style.FontSize, e.Style.LetterSpacing)
		e.textSize = geom.V2(w, th)
		if m := e.Style.Sizing.Width.Mode; m == SizeFit || m == SizeGrow {
			e.Size.X = w + e.Style.Padding.sum(axisX)
		}
		if m := e.Style.Sizing.Height.Mode; m == SizeFit || m == SizeGrow {
			e.Size.Y = th + e.Style.Padding.sum(axisY)
		}
		return
	}

	if e.Style.Sizing.Width.Mode == SizeFit {
		e.Size.X = c.fitSize(e, axisX)
	}
}

// PushID scopes the identity of every labeled element opened until PopID.
func (c *Context) PushID(label string) {
	var seed uint64
	if n := len(c.ids); n > 0 {
		seed = c.ids[n-1]
	}
	c.ids = append(c.ids, hashLabel(label, seed))
}

func (c *Context) PopID() {
	if n := len(c.ids); n > 0 {
		c.ids = c.ids[:n-1]
	}
}

// ID returns the identity a child labeled label would get if opened now.
func (c *Context) ID(label string) uint64 {
	var p *Element
	if n := len(c.stack); n > 0 {
		p = c.elements.Get(c.stack[n-1])
	}
	return hashLabel(label, c.seed(p))
}

// seed is the identity scope for children of p under the current PushID.
func (c *Context) seed(p *Element) uint64 {
	var s uint64
	if p != nil {
		s = p.scope
	}
	if n := len(c.ids); n > 0 {
		s = foldSeed(foldSeed(fnvOffset64, c.ids[n-1]), s)
	}
	return s
}

// ===== Convenience wrappers =====

// Panel opens a container, runs children inside it and closes it. It returns
// the panel's identity, zero when unlabeled.
func (c *Context) Panel(ps PanelStyle, children func()) uint64 {
	var id uint64
	if ps.Label != "" {
		id = c.ID(ps.Label)
	}
	c.open(ps.Label, ps.Style())
	if children != nil {
		children()
	}
	c.Close()
	return id
}

// Text adds a text leaf. A nil font in ts falls back to the context default.
func (c *Context) Text(s string, ts TextStyle) uint64 {
	if ts.Font == nil {
		ts.Font = c.font
	}
	var id uint64
	if ts.Label != "" {
		id = c.ID(ts.Label)
	}
	h := c.open(ts.Label, ts.Style())
	if e := c.elements.Get(h); e != nil {
		e.Text = s
	}
	c.Close()
	return id
}

// Spacer grows along both axes, pushing its siblings apart.
func (c *Context) Spacer() {
	c.open("", Style{Sizing: GrowDim()})
	c.Close()
}

// ===== Tree access =====

func (c *Context) Root() arena.Handle              { return c.root }
func (c *Context) Element(h arena.Handle) *Element { return c.elements.Get(h) }
func (c *Context) Len() int                        { return c.elements.Len() }
func (c *Context) Dropped() int                    { return c.dropped }
func (c *Context) Screen() geom.Vec2               { return c.screen }

// Children appends the children of h to buf in document order.
func (c *Context) Children(h arena.Handle, buf []arena.Handle) []arena.Handle {
	e := c.elements.Get(h)
	if e == nil {
		return buf
	}
	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		buf = append(buf, ch)
	}
	return buf
}

// Find returns the element with the given identity, or nil.
func (c *Context) Find(id uint64) *Element {
	var found *Element
	c.elements.All(func(_ arena.Handle, e *Element) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}
