package glbackend

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/cratepush/engine/core"
)

type texture struct {
	id     uint32
	w, h   int
	format core.TextureFormat
}

func (t *texture) Width() int  { return t.w }
func (t *texture) Height() int { return t.h }

type pipeline struct {
	program   uint32
	depthTest bool
	blend     bool
	locations map[string]int32
}

type mesh struct {
	vao, vbo, ebo uint32
	vbytes        int
	ibytes        int
	count         int32
}

// RendererGL implements core.Renderer on OpenGL 3.3 core.
type RendererGL struct {
	win       core.Window
	textures  []*texture
	pipelines []*pipeline
	meshes    []*mesh
	units     []string // scratch for sorted sampler names
}

// New matches the constructor signature core.Run expects.
func New(win core.Window, cfg core.Config) (core.Renderer, error) { return NewRendererGL(win, cfg) }

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl: init error 0x%x", e)
	}
	return nil
}

func (r *RendererGL) Shutdown() {
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t.id)
	}
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.program)
	}
	r.textures, r.meshes, r.pipelines = nil, nil, nil
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ===== Textures =====

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gl: texture size %dx%d", desc.Width, desc.Height)
	}
	internal, format, bpp := formatOf(desc.Format)
	if desc.Pixels != nil && len(desc.Pixels) < desc.Width*desc.Height*bpp {
		return nil, fmt.Errorf("gl: texture %dx%d needs %d bytes, got %d", desc.Width, desc.Height, desc.Width*desc.Height*bpp, len(desc.Pixels))
	}

	t := &texture{w: desc.Width, h: desc.Height, format: desc.Format}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, ptrOrNil(desc.Pixels))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterOf(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterOf(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapOf(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapOf(desc.WrapV))
	if desc.Format == core.TextureR8 {
		// Single-channel textures sample as white with alpha = red.
		swizzle := [4]int32{gl.ONE, gl.ONE, gl.ONE, gl.RED}
		gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures = append(r.textures, t)
	return t, nil
}

func (r *RendererGL) UpdateTexture(ct core.Texture, x, y, w, h int, pixels []byte) error {
	t, ok := ct.(*texture)
	if !ok {
		return fmt.Errorf("gl: foreign texture %T", ct)
	}
	_, format, bpp := formatOf(t.format)
	if x < 0 || y < 0 || x+w > t.w || y+h > t.h || len(pixels) < w*h*bpp {
		return fmt.Errorf("gl: texture update %d,%d %dx%d out of range", x, y, w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h), format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) DeleteTexture(ct core.Texture) {
	t, ok := ct.(*texture)
	if !ok {
		return
	}
	for i, have := range r.textures {
		if have == t {
			gl.DeleteTextures(1, &t.id)
			r.textures = append(r.textures[:i], r.textures[i+1:]...)
			return
		}
	}
}

func formatOf(f core.TextureFormat) (internal int32, format uint32, bpp int) {
	if f == core.TextureR8 {
		return gl.R8, gl.RED, 1
	}
	return gl.RGBA8, gl.RGBA, 4
}

func filterOf(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrapOf(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

// ===== Pipelines & meshes =====

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(cstr(desc.VertexSource), cstr(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	p := &pipeline{program: prog, depthTest: desc.DepthTest, blend: desc.Blend, locations: map[string]int32{}}
	r.pipelines = append(r.pipelines, p)
	return p, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 {
		return nil, fmt.Errorf("gl: mesh layout stride %d", desc.Layout.Stride)
	}
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vbytes = len(desc.Vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, m.vbytes, ptrOrNil(desc.Vertices), gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	m.ibytes = len(desc.Indices) * 4
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.ibytes, ptrOrNil(desc.Indices), gl.DYNAMIC_DRAW)
	m.count = int32(len(desc.Indices))

	for _, a := range desc.Layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("gl: foreign mesh %T", cm)
	}
	gl.BindVertexArray(m.vao)

	if n := len(vertices) * 4; n > m.vbytes {
		m.vbytes = n
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, n, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	} else if n > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n, gl.Ptr(vertices))
	}

	if n := len(indices) * 4; n > m.ibytes {
		m.ibytes = n
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, n, gl.Ptr(indices), gl.DYNAMIC_DRAW)
	} else if n > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n, gl.Ptr(indices))
	}
	m.count = int32(len(indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok {
		return
	}
	count := m.count
	if cmd.IndexCount > 0 && int32(cmd.IndexCount) < count {
		count = int32(cmd.IndexCount)
	}
	if count == 0 {
		return
	}

	gl.UseProgram(p.program)
	setCap(gl.DEPTH_TEST, p.depthTest)
	setCap(gl.BLEND, p.blend)

	// Sorted so texture units are stable between draws.
	r.units = r.units[:0]
	for name := range cmd.Samplers {
		r.units = append(r.units, name)
	}
	sort.Strings(r.units)
	for unit, name := range r.units {
		t, ok := cmd.Samplers[name].(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.Uniform1i(p.location(name), int32(unit))
	}

	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		switch v := v.(type) {
		case float32:
			gl.Uniform1f(loc, v)
		case int32:
			gl.Uniform1i(loc, v)
		case int:
			gl.Uniform1i(loc, int32(v))
		case [2]float32:
			gl.Uniform2f(loc, v[0], v[1])
		case [4]float32:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		}
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(cstr(name)))
	p.locations[name] = loc
	return loc
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func ptrOrNil[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

// cstr null-terminates s for the GL string helpers.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
