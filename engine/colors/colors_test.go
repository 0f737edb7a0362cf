package colors

import (
	"math"
	"testing"
)

func near(a, b Color) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-3 {
			return false
		}
	}
	return true
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", White},
		{"#000", Black},
		{"#ff0000", Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := Hex(tt.in)
		if err != nil {
			t.Fatalf("Hex(%q): %v", tt.in, err)
		}
		if !near(got, tt.want) {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := Hex("nope"); err == nil {
		t.Error("malformed hex accepted")
	}
}

func TestBlend(t *testing.T) {
	a, b := Black.WithAlpha(0), White
	if got := a.Blend(b, 0); !near(got, a) {
		t.Errorf("t=0 gives %v", got)
	}
	if got := a.Blend(b, 1); !near(got, b) {
		t.Errorf("t=1 gives %v", got)
	}
	if got := a.Blend(b, 0.5); got[3] != 0.5 || got[0] <= 0 || got[0] >= 1 {
		t.Errorf("t=0.5 gives %v", got)
	}
}

func TestLighten(t *testing.T) {
	c := RGBA8(0x40, 0x40, 0x80, 0x80)
	up, down := c.Lighten(0.2), c.Lighten(-0.2)
	if up[2] <= c[2] || down[2] >= c[2] {
		t.Errorf("lighten %v / darken %v around %v", up, down, c)
	}
	if up[3] != c[3] {
		t.Errorf("alpha changed to %v", up[3])
	}
	if got := White.Lighten(0.5); !near(got, White) {
		t.Errorf("lightening white gives %v", got)
	}
}

func TestScaleAndVisibility(t *testing.T) {
	if got := Gray.Scale(10); got[0] != 1 || got[3] != 1 {
		t.Errorf("Scale clamps RGB only: %v", got)
	}
	if Blank.Visible() || !Blank.IsZero() || !Red.Visible() {
		t.Error("visibility flags wrong")
	}
}
