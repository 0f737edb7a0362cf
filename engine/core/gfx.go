package core

// Renderer is the GPU backend. Handles it returns are only meaningful to the
// renderer that created them.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, x, y, w, h int, pixels []byte) error
	DeleteTexture(t Texture)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)
}

// Texture is a GPU image.
type Texture interface {
	Width() int
	Height() int
}

// Pipeline is a compiled shader program plus fixed-function state.
type Pipeline interface{}

// Mesh is a vertex/index buffer pair.
type Mesh interface{}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureR8
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // may be nil for an uninitialised texture
	MinFilter     string // "nearest" | "linear"
	MagFilter     string
	WrapU, WrapV  string // "clamp" | "repeat"
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int // components
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd draws the first IndexCount indices of Mesh (all when zero).
// Uniform values may be float32, int32, [2]float32, [4]float32 or
// [16]float32. Sampler names bind to consecutive texture units.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	Uniforms   map[string]any
	Samplers   map[string]Texture
	IndexCount int
}
