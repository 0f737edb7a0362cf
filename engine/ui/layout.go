package ui

import (
	"math"

	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/geom"
)

// layout runs after the tree is closed. Fit widths were computed on close.
func (c *Context) layout() {
	if !c.root.Valid() {
		return
	}
	c.grow(c.root, axisX)
	c.wrapText(c.root)
	c.fitHeights(c.root)
	c.grow(c.root, axisY)
	c.place(c.root)
}

// fitSize is the size an element wants along ax from its flow children,
// text or image, including padding.
func (c *Context) fitSize(e *Element, ax axis) float32 {
	if e.Style.Image.Valid() {
		return get(e.Style.Image.Size(), ax)
	}
	pad := e.Style.Padding.sum(ax)
	if e.IsText() {
		return get(e.textSize, ax) + pad
	}

	along := e.Style.Direction.main() == ax
	var content float32
	flow := 0
	for h := e.FirstChild; h.Valid(); {
		ch := c.elements.Get(h)
		h = ch.NextSibling
		if ch.absolute() {
			continue
		}
		size := get(ch.Size, ax) + ch.Style.Margin.sum(ax)
		if along {
			content += size
		} else if size > content {
			content = size
		}
		flow++
	}
	if along && flow > 1 {
		content += e.Style.Gap * float32(flow-1)
	}
	return content + pad
}

func (c *Context) fitHeights(h arena.Handle) {
	e := c.elements.Get(h)
	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		c.fitHeights(ch)
	}
	if e.Style.Sizing.Height.Mode == SizeFit {
		e.Size.Y = c.fitSize(e, axisY)
	}
}

// grow resolves percent and grow children along ax, parents before children.
func (c *Context) grow(h arena.Handle, ax axis) {
	e := c.elements.Get(h)
	if e.Children == 0 {
		return
	}

	inner := get(e.Size, ax) - e.Style.Padding.sum(ax)
	if inner < 0 {
		inner = 0
	}
	along := e.Style.Direction.main() == ax
	remaining := inner
	flow := 0
	grow := c.growBuf[:0]

	for ch := e.FirstChild; ch.Valid(); {
		child := c.elements.Get(ch)
		sz := child.Style.Sizing.axis(ax)
		margin := child.Style.Margin.sum(ax)

		if sz.Mode == SizePercent {
			set(&child.Size, ax, inner*sz.Value)
		}

		if child.absolute() {
			if sz.Mode == SizeGrow {
				set(&child.Size, ax, nonNeg(inner-margin))
			}
		} else {
			flow++
			if along {
				remaining -= get(child.Size, ax) + margin
			}
			if sz.Mode == SizeGrow {
				if along {
					grow = append(grow, ch)
				} else {
					set(&child.Size, ax, nonNeg(inner-margin))
				}
			}
		}
		ch = child.NextSibling
	}

	if along && len(grow) > 0 {
		if flow > 1 {
			remaining -= e.Style.Gap * float32(flow-1)
		}
		c.waterFill(grow, ax, remaining)
	}
	c.growBuf = grow[:0]

	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		c.grow(ch, ax)
	}
}

// waterFill hands remaining space to the smallest items first, raising them
// in lockstep until they meet the next size band or the space runs out.
// Items whose sizes differ by less than geom.Epsilon count as the same band,
// so every round either exhausts the space or merges a band.
func (c *Context) waterFill(items []arena.Handle, ax axis, remaining float32) {
	inf := float32(math.Inf(1))
	for remaining > geom.Epsilon {
		smallest := inf
		for _, h := range items {
			if v := get(c.elements.Get(h).Size, ax); v < smallest {
				smallest = v
			}
		}
		second := inf
		tied := 0
		for _, h := range items {
			v := get(c.elements.Get(h).Size, ax)
			if v-smallest < geom.Epsilon {
				tied++
			} else if v < second {
				second = v
			}
		}

		add := remaining / float32(tied)
		last := true
		if second < inf && second-smallest < add {
			add = second - smallest
			last = false
		}
		for _, h := range items {
			e := c.elements.Get(h)
			if v := get(e.Size, ax); v-smallest < geom.Epsilon {
				set(&e.Size, ax, v+add)
				remaining -= add
			}
		}
		if last {
			return
		}
	}
}

// place assigns absolute positions, parents before children.
func (c *Context) place(h arena.Handle) {
	e := c.elements.Get(h)
	if h == c.root {
		e.Pos = geom.V2(e.Style.Margin.Left, e.Style.Margin.Top)
	}

	main := e.Style.Direction.main()
	cursor := e.Style.Padding.start(main)
	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		child := c.elements.Get(ch)
		m := child.Style.Margin

		if child.absolute() {
			pos := geom.V2(child.Style.Position.X+m.Left, child.Style.Position.Y+m.Top)
			switch child.Style.AlignX {
			case CenterX:
				pos.X += (e.Size.X - child.Size.X) * 0.5
			case Right:
				pos.X += e.Size.X - child.Size.X
			}
			switch child.Style.AlignY {
			case CenterY:
				pos.Y += (e.Size.Y - child.Size.Y) * 0.5
			case Bottom:
				pos.Y += e.Size.Y - child.Size.Y
			}
			child.Pos = e.Pos.Add(pos)
		} else {
			var off geom.Vec2
			cross := axisY
			if main == axisY {
				cross = axisX
			}
			set(&off, main, cursor+m.start(main))
			set(&off, cross, e.Style.Padding.start(cross)+m.start(cross))
			child.Pos = e.Pos.Add(off)
			cursor += get(child.Size, main) + m.sum(main) + e.Style.Gap
		}

		c.place(ch)
	}
}

func nonNeg(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
