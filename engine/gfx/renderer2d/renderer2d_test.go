package renderer2d

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
)

type fakeTex struct{ w, h int }

func (t *fakeTex) Width() int  { return t.w }
func (t *fakeTex) Height() int { return t.h }

type drawCall struct {
	verts    []float32
	inds     []uint32
	samplers int
	uniforms []string
}

type fakeRenderer struct {
	verts []float32
	inds  []uint32
	draws []drawCall
}

func (f *fakeRenderer) Init() error              { return nil }
func (f *fakeRenderer) Resize(w, h int)          {}
func (f *fakeRenderer) Clear(r, g, b, a float32) {}
func (f *fakeRenderer) Shutdown()                {}

func (f *fakeRenderer) UpdateTexture(core.Texture, int, int, int, int, []byte) error {
	return nil
}

func (f *fakeRenderer) DeleteTexture(core.Texture) {}

func (f *fakeRenderer) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	return struct{}{}, nil
}

func (f *fakeRenderer) CreateMesh(core.MeshDesc) (core.Mesh, error) {
	return struct{}{}, nil
}

func (f *fakeRenderer) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	return &fakeTex{d.Width, d.Height}, nil
}

func (f *fakeRenderer) UpdateMesh(_ core.Mesh, v []float32, i []uint32) error {
	f.verts = append([]float32(nil), v...)
	f.inds = append([]uint32(nil), i...)
	return nil
}

func (f *fakeRenderer) Draw(cmd core.DrawCmd) {
	var names []string
	for k := range cmd.Uniforms {
		names = append(names, k)
	}
	f.draws = append(f.draws, drawCall{
		verts:    f.verts,
		inds:     f.inds[:cmd.IndexCount],
		samplers: len(cmd.Samplers),
		uniforms: names,
	})
}

func newTestRenderer(t *testing.T, maxQuads int) (*Renderer2D, *fakeRenderer) {
	t.Helper()
	f := &fakeRenderer{}
	rd, err := New(f, "vs", "fs", maxQuads)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rd, f
}

func positions(verts []float32) []geom.Vec2 {
	var out []geom.Vec2
	for i := 0; i+1 < len(verts); i += vStride {
		out = append(out, geom.V2(verts[i], verts[i+1]))
	}
	return out
}

func TestDrawRectTopLeft(t *testing.T) {
	rd, f := newTestRenderer(t, 0)
	rd.BeginScene([16]float32{})
	rd.DrawRect(geom.Rect{X: 10, Y: 20, W: 30, H: 40}, colors.Red)
	rd.EndScene()

	if len(f.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(f.draws))
	}
	want := []geom.Vec2{{X: 10, Y: 20}, {X: 40, Y: 20}, {X: 10, Y: 60}, {X: 40, Y: 60}}
	if diff := cmp.Diff(want, positions(f.draws[0].verts)); diff != "" {
		t.Errorf("corners (-want +got):\n%s", diff)
	}
	if got := len(f.draws[0].inds); got != 6 {
		t.Errorf("indices = %d, want 6", got)
	}
	if c := f.draws[0].verts[2:6]; c[0] != colors.Red[0] || c[3] != colors.Red[3] {
		t.Errorf("vertex color = %v, want %v", c, colors.Red)
	}
}

func TestRoundedShapesVertexCounts(t *testing.T) {
	tests := []struct {
		name      string
		draw      func(rd *Renderer2D)
		wantVerts int
		wantInds  int
	}{
		// 6 segments per corner, 7 points each, plus the center
		{
			name:      "fill radius 8",
			draw:      func(rd *Renderer2D) { rd.DrawRoundedRect(geom.Rect{W: 100, H: 50}, 8, colors.White) },
			wantVerts: 29,
			wantInds:  84,
		},
		{
			name:      "fill fully rounded",
			draw:      func(rd *Renderer2D) { rd.DrawRoundedRect(geom.Rect{W: 20, H: 10}, -1, colors.White) },
			wantVerts: 21,
			wantInds:  60,
		},
		{
			name:      "fill square falls back to quad",
			draw:      func(rd *Renderer2D) { rd.DrawRoundedRect(geom.Rect{W: 20, H: 10}, 0, colors.White) },
			wantVerts: 4,
			wantInds:  6,
		},
		{
			name:      "square outline",
			draw:      func(rd *Renderer2D) { rd.DrawRoundedRectLines(geom.Rect{W: 20, H: 10}, 0, 2, colors.White) },
			wantVerts: 8,
			wantInds:  24,
		},
		{
			name:      "rounded outline",
			draw:      func(rd *Renderer2D) { rd.DrawRoundedRectLines(geom.Rect{W: 100, H: 50}, 8, 2, colors.White) },
			wantVerts: 56,
			wantInds:  168,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd, f := newTestRenderer(t, 0)
			rd.BeginScene([16]float32{})
			tt.draw(rd)
			rd.EndScene()
			if len(f.draws) != 1 {
				t.Fatalf("draws = %d, want 1", len(f.draws))
			}
			if got := len(f.draws[0].verts) / vStride; got != tt.wantVerts {
				t.Errorf("verts = %d, want %d", got, tt.wantVerts)
			}
			if got := len(f.draws[0].inds); got != tt.wantInds {
				t.Errorf("inds = %d, want %d", got, tt.wantInds)
			}
			s := rd.Stats()
			if s.TotalVertexCount() != tt.wantVerts || s.TotalIndexCount() != tt.wantInds {
				t.Errorf("stats = %+v", s)
			}
		})
	}
}

func TestRoundedRectStaysInsideBounds(t *testing.T) {
	rd, f := newTestRenderer(t, 0)
	r := geom.Rect{X: 5, Y: 5, W: 40, H: 20}
	rd.BeginScene([16]float32{})
	rd.DrawRoundedRect(r, 6, colors.White)
	rd.EndScene()

	outer := geom.Rect{X: r.X - 0.01, Y: r.Y - 0.01, W: r.W + 0.02, H: r.H + 0.02}
	for _, p := range positions(f.draws[0].verts) {
		if !outer.Contains(p) {
			t.Errorf("vertex %v outside %v", p, r)
		}
	}
}

func TestOutlineEmptyWidthDrawsNothing(t *testing.T) {
	rd, f := newTestRenderer(t, 0)
	rd.BeginScene([16]float32{})
	rd.DrawRoundedRectLines(geom.Rect{W: 10, H: 10}, 2, 0, colors.White)
	rd.EndScene()
	if len(f.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(f.draws))
	}
}

func TestBatchFlushesWhenFull(t *testing.T) {
	rd, f := newTestRenderer(t, 2)
	rd.BeginScene([16]float32{})
	for i := 0; i < 3; i++ {
		rd.DrawQuad(float32(i), 0, 1, 1, colors.White, 0)
	}
	rd.EndScene()

	if len(f.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(f.draws))
	}
	if got := len(f.draws[1].verts) / vStride; got != 4 {
		t.Errorf("second batch verts = %d, want 4", got)
	}
	if got := rd.Stats().QuadCount; got != 3 {
		t.Errorf("QuadCount = %d, want 3", got)
	}
}

func TestTextureSlotsFlush(t *testing.T) {
	rd, f := newTestRenderer(t, 0)
	rd.BeginScene([16]float32{})
	// slot 0 is the white texture, so the 16th texture starts a new batch
	for i := 0; i < maxTexSlots; i++ {
		rd.DrawTexturedQuad(0, 0, 1, 1, &fakeTex{1, 1}, colors.White, 0)
	}
	rd.EndScene()

	if len(f.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(f.draws))
	}
	if f.draws[0].samplers != maxTexSlots {
		t.Errorf("first batch samplers = %d, want %d", f.draws[0].samplers, maxTexSlots)
	}
	if f.draws[1].samplers != 2 {
		t.Errorf("second batch samplers = %d, want 2", f.draws[1].samplers)
	}
}

func TestExtraUniforms(t *testing.T) {
	rd, f := newTestRenderer(t, 0)
	rd.SetUniform("uTime", float32(1))
	rd.BeginScene([16]float32{})
	rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	rd.Flush()
	rd.SetUniform("uTime", nil)
	rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	rd.EndScene()

	has := func(names []string, n string) bool {
		for _, s := range names {
			if s == n {
				return true
			}
		}
		return false
	}
	if !has(f.draws[0].uniforms, "uTime") || !has(f.draws[0].uniforms, "uVP") {
		t.Errorf("first draw uniforms = %v", f.draws[0].uniforms)
	}
	if has(f.draws[1].uniforms, "uTime") {
		t.Errorf("uTime still set after removal")
	}
}

func TestSubTextureFromRect(t *testing.T) {
	tex := &fakeTex{64, 32}
	got := FromRect(tex, geom.Rect{X: 16, Y: 8, W: 16, H: 8})
	want := SubTexture2D{Texture: tex, U0: 0.25, V0: 0.25, U1: 0.5, V1: 0.5}
	if got != want {
		t.Errorf("FromRect = %+v, want %+v", got, want)
	}
	if f := got.FlipH(); f.U0 != 0.5 || f.U1 != 0.25 || f.V0 != 0.25 {
		t.Errorf("FlipH = %+v", f)
	}
	if f := got.FlipV(); f.V0 != 0.5 || f.V1 != 0.25 || f.U0 != 0.25 {
		t.Errorf("FlipV = %+v", f)
	}
	if whole := FromRect(tex, geom.Rect{}); whole.U1 != 1 || whole.V1 != 1 {
		t.Errorf("zero rect = %+v, want full texture", whole)
	}
	if g := FromGrid(tex, 1, 1, 16, 16, 64, 32); g.U0 != 0.25 || g.V0 != 0.5 {
		t.Errorf("FromGrid = %+v", g)
	}
}
