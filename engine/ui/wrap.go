package ui

import (
	"strings"

	"github.com/hubastard/cratepush/engine/arena"
	"github.com/hubastard/cratepush/engine/geom"
)

// wrapText breaks wrapping text elements that overflow the width granted by
// the horizontal grow pass, and refits their height to the new line count.
func (c *Context) wrapText(h arena.Handle) {
	e := c.elements.Get(h)
	for ch := e.FirstChild; ch.Valid(); ch = c.elements.Get(ch).NextSibling {
		c.wrapText(ch)
	}
	if !e.IsText() || !e.Style.Wrap || e.Text == "" {
		return
	}

	avail := e.Size.X - e.Style.Padding.sum(axisX)
	if avail <= 0 || e.textSize.X <= avail+geom.Epsilon {
		return
	}

	s := e.Style
	e.wrapped = wrapWords(s.Font, e.Text, s.FontSize, s.LetterSpacing, avail)
	w, th := s.Font.Measure(e.wrapped, s.FontSize, s.LetterSpacing)
	e.textSize = geom.V2(w, th)
	if m := s.Sizing.Height.Mode; m == SizeFit || m == SizeGrow {
		e.Size.Y = th + s.Padding.sum(axisY)
	}
}

// wrapWords greedily packs words into lines no wider than maxWidth. Explicit
// newlines are kept. A word wider than maxWidth gets a line of its own.
func wrapWords(f Font, text string, size, spacing, maxWidth float32) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	for i, raw := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		words := strings.Fields(raw)
		if len(words) == 0 {
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if w, _ := f.Measure(candidate, size, spacing); w > maxWidth {
				b.WriteString(line)
				b.WriteByte('\n')
				line = word
				continue
			}
			line = candidate
		}
		b.WriteString(line)
	}
	return b.String()
}
