package renderer2d

import (
	"math"
	"strconv"

	"github.com/hubastard/cratepush/engine/colors"
	"github.com/hubastard/cratepush/engine/core"
	"github.com/hubastard/cratepush/engine/geom"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	ShapeCount   int // rounded fills and outlines
	TextureCount int
	Vertices     int
	Indices      int
}

func (s Statistics) TotalVertexCount() int { return s.Vertices }
func (s Statistics) TotalIndexCount() int  { return s.Indices }

type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts    []float32
	inds     []uint32
	maxVerts int
	maxInds  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp            [16]float32
	stats         Statistics
	extraUniforms map[string]any

	path  []geom.Vec2 // scratch for shape outlines
	inner []geom.Vec2
}

// New creates the renderer and compiles the shader pipeline.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white,
		maxVerts: maxQuads * vertsPerQuad,
		maxInds:  maxQuads * indsPerQuad,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// One reusable mesh large enough for the biggest batch.
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()
	return rd, nil
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Flush submits the pending batch, e.g. before switching projection.
func (rd *Renderer2D) Flush() { rd.flush() }

// Stats accumulates across scenes until ResetStats.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }
func (rd *Renderer2D) ResetStats()       { rd.stats = Statistics{} }

// White is the 1x1 texture used for untextured draws.
func (rd *Renderer2D) White() core.Texture { return rd.white }

// SetUniform queues an additional uniform to be sent on every draw call.
// The uniform persists until overwritten; call with nil to remove.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if rd.extraUniforms == nil {
		rd.extraUniforms = make(map[string]any)
	}
	if value == nil {
		delete(rd.extraUniforms, name)
		return
	}
	rd.extraUniforms[name] = value
}

// DrawQuad draws a solid quad centered at (x,y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, color, rotationRad, rd.white, 0, 0, 1, 1)
}

func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, tex, 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws a textured sub-rect (UV rect: u0,v0 -> u1,v1).
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, tex, u0, v0, u1, v1)
}

// DrawSubTexQuad draws a quad using a SubTexture2D (tint + rotation optional).
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, sub.Texture, sub.U0, sub.V0, sub.U1, sub.V1)
}

// DrawSubTexRect draws sub into the top-left anchored rectangle r.
func (rd *Renderer2D) DrawSubTexRect(r geom.Rect, sub SubTexture2D, tint colors.Color) {
	c := r.Center()
	rd.DrawSubTexQuad(c.X, c.Y, r.W, r.H, sub, tint, 0)
}

// --- internals ---

// reserve flushes when nv vertices and ni indices would overflow the batch.
func (rd *Renderer2D) reserve(nv, ni int) {
	if len(rd.verts)/vStride+nv > rd.maxVerts || len(rd.inds)+ni > rd.maxInds {
		rd.flush()
	}
}

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	if t == nil {
		t = rd.white
	}
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= maxTexSlots {
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	if rd.texCnt > rd.stats.TextureCount {
		rd.stats.TextureCount = rd.texCnt
	}
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) vertex(x, y float32, c colors.Color, u, v, tex float32) uint32 {
	i := uint32(len(rd.verts) / vStride)
	rd.verts = append(rd.verts, x, y, c[0], c[1], c[2], c[3], u, v, tex)
	rd.stats.Vertices++
	return i
}

func (rd *Renderer2D) index(is ...uint32) {
	rd.inds = append(rd.inds, is...)
	rd.stats.Indices += len(is)
}

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, rotationRad float32, tex core.Texture, u0, v0, u1, v1 float32) {
	rd.reserve(vertsPerQuad, indsPerQuad)
	slot := rd.texSlot(tex)

	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(1), float32(0)
	if rotationRad != 0 {
		c, s = float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))
	}

	var start uint32
	for i, p := range corners {
		idx := rd.vertex(p[0]*c-p[1]*s+x, p[0]*s+p[1]*c+y, color, p[2], p[3], slot)
		if i == 0 {
			start = idx
		}
	}
	rd.index(
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if len(rd.inds) == 0 {
		rd.resetBatch()
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		panic(err)
	}

	for k := range rd.samplers {
		delete(rd.samplers, k)
	}
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	for k := range rd.uniforms {
		delete(rd.uniforms, k)
	}
	rd.uniforms["uVP"] = rd.vp
	for k, v := range rd.extraUniforms {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
		IndexCount: len(rd.inds),
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}
