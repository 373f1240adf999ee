// Package renderer draws the scene's grass point meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/engine/lighting"
	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/internal/engine/shader"
	"github.com/Faultbox/grassland/internal/engine/shaders"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Sun    lighting.Sun
}

// gpuMesh is a point mesh uploaded to a VAO/VBO pair.
type gpuMesh struct {
	vao   uint32
	vbo   uint32
	count int32
	mr    *scene.MeshRenderer
}

// Renderer uploads grass meshes and draws them as blades.
type Renderer struct {
	config Config

	program uint32

	// Uniform locations
	locViewProj int32
	locModel    int32
	locTime     int32
	locSunDir   int32
	locAmbient  int32

	// Material properties the program exposes, by name
	props map[string]int32

	meshes   []gpuMesh
	uploaded map[*scene.MeshRenderer]bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		props:    make(map[string]int32),
		uploaded: make(map[*scene.MeshRenderer]bool),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.55, 0.7, 0.85, 1.0) // Sky
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(shader.Sources{
		Vertex:   shaders.GrassVertexShader,
		Geometry: shaders.GrassGeometryShader,
		Fragment: shaders.GrassFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("grass shader: %w", err)
	}
	r.program = program

	r.locViewProj = shader.GetUniform(program, "uViewProj")
	r.locModel = shader.GetUniform(program, "uModel")
	r.locTime = shader.GetUniform(program, "uTime")
	r.locSunDir = shader.GetUniform(program, "uSunDir")
	r.locAmbient = shader.GetUniform(program, "uAmbient")

	for _, name := range []string{scene.PropHeight, scene.PropWidth} {
		if loc := shader.GetUniform(program, name); loc >= 0 {
			r.props[name] = loc
		}
	}

	logger.Debug("grass program ready",
		zap.Uint32("program", program),
		zap.Strings("uniforms", shader.ActiveUniforms(program)),
	)
	return r, nil
}

// GrassMaterial returns a material template exposing exactly the
// properties the grass program reads.
func (r *Renderer) GrassMaterial(name string) *scene.Material {
	var props []string
	for _, p := range []string{scene.PropHeight, scene.PropWidth} {
		if _, ok := r.props[p]; ok {
			props = append(props, p)
		}
	}
	return scene.NewMaterial(name, props...)
}

// Upload creates GPU buffers for every mesh in the graph not uploaded yet.
func (r *Renderer) Upload(g *scene.Graph) {
	for _, mr := range g.Renderers() {
		if r.uploaded[mr] || len(mr.Mesh.Vertices) == 0 {
			continue
		}
		r.meshes = append(r.meshes, r.uploadMesh(mr))
		r.uploaded[mr] = true
	}
}

func (r *Renderer) uploadMesh(mr *scene.MeshRenderer) gpuMesh {
	m := gpuMesh{count: int32(len(mr.Mesh.Vertices)), mr: mr}
	verts := mr.Mesh.Vertices

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(unsafe.Sizeof(verts[0])), unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(unsafe.Sizeof(verts[0])), nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("grass mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int32("points", m.count),
	)
	return m
}

// MeshCount returns the number of uploaded meshes.
func (r *Renderer) MeshCount() int {
	return len(r.meshes)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// SetSun changes the light used from the next Draw on.
func (r *Renderer) SetSun(sun lighting.Sun) {
	r.config.Sun = sun
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every uploaded mesh. time drives the wind sway in seconds.
func (r *Renderer) Draw(viewProj math.Mat4, time float32) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform1f(r.locTime, time)

	sunDir := r.config.Sun.Direction()
	gl.Uniform3f(r.locSunDir, sunDir.X, sunDir.Y, sunDir.Z)
	gl.Uniform1f(r.locAmbient, r.config.Sun.Ambient)

	for _, m := range r.meshes {
		model := math.TranslateVec3(m.mr.Node.WorldPosition())
		gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())

		for name, loc := range r.props {
			if v, ok := m.mr.Material.Float(name); ok {
				gl.Uniform1f(loc, v)
			}
		}

		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.POINTS, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	r.meshes = nil
	clear(r.uploaded)
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
