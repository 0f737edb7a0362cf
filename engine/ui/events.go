package ui

import (
	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/geom"
)

type EventKind uint8

const (
	EventHover  EventKind = iota // pointer is over the element
	EventActive                  // pointer is held down over the element
	EventClick                   // pointer released over the element that took the press
)

func (k EventKind) String() string {
	switch k {
	case EventHover:
		return "hover"
	case EventActive:
		return "active"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// Event is an interaction resolved at the end of a frame.
type Event struct {
	ID    uint64
	Label string
	Kind  EventKind
	Rect  geom.Rect
}

// resolvePointer hit-tests every labeled element against the pointer, using
// its rounded shape, and updates hot and active. A click goes to the element
// that was active on press when the release lands on it, including a press
// and release within the same frame.
func (c *Context) resolvePointer() {
	c.events = c.events[:0]
	c.hot = 0
	c.release = arena.Nil
	if c.root.Valid() {
		c.hitTest(c.root)
	}
	if c.pointer.Released {
		if e := c.elements.Get(c.release); e != nil && e.ID == c.active {
			c.emit(e, EventClick)
		}
		c.active = 0
	}
}

func (c *Context) hitTest(h arena.Handle) {
	e := c.elements.Get(h)
	if e.ID != 0 && geom.PointInRoundedRect(c.pointer.Pos, e.Rect(), e.Style.Radius) {
		c.hot = e.ID
		c.emit(e, EventHover)
		if c.pointer.Down || c.pointer.Pressed {
			c.active = e.ID
			c.emit(e, EventActive)
		}
		if c.pointer.Released && c.active == e.ID {
			c.release = h
		}
	}
	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		c.hitTest(ch)
	}
}

func (c *Context) emit(e *Element, kind EventKind) {
	c.events = append(c.events, Event{ID: e.ID, Label: e.Label, Kind: kind, Rect: e.Rect()})
}

// Events returns the interactions of the last completed frame. The slice is
// reused by the next EndFrame.
func (c *Context) Events() []Event { return c.events }

func (c *Context) Hot() uint64    { return c.hot }
func (c *Context) Active() uint64 { return c.active }

func (c *Context) Clicked(id uint64) bool { return c.has(id, EventClick) }
func (c *Context) Hovered(id uint64) bool { return c.has(id, EventHover) }
func (c *Context) Pressed(id uint64) bool { return c.has(id, EventActive) }

func (c *Context) has(id uint64, kind EventKind) bool {
	if id == 0 {
		return false
	}
	for _, ev := range c.events {
		if ev.ID == id && ev.Kind == kind {
			return true
		}
	}
	return false
}
