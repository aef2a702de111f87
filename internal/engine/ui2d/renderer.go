// Package ui2d draws screen-space overlays: solid panels and texture
// previews on top of the 3D frame.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/engine/shader"
)

const (
	solidStride   = 6 // x, y, r, g, b, a
	texturedStride = 4 // x, y, u, v
)

type texturedDraw struct {
	tex   gfx.Texture
	first int32
}

// Renderer batches overlay quads and flushes them in End.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solidShader   uint32
	textureShader uint32

	solidVAO, solidVBO       uint32
	texturedVAO, texturedVBO uint32

	solidVertices    []float32
	texturedVertices []float32
	textures         []texturedDraw
}

// New creates an overlay renderer for a screen of the given size.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:  width,
		screenHeight: height,
	}

	var err error
	if r.solidShader, err = shader.CompileProgram(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	if r.textureShader, err = shader.CompileProgram(textureVertexShader, textureFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("create texture shader: %w", err)
	}

	r.solidVAO, r.solidVBO = createBuffers(2, 4)
	r.texturedVAO, r.texturedVBO = createBuffers(2, 2)
	return r, nil
}

// createBuffers makes a VAO with two float attributes at locations 0 and 1.
func createBuffers(first, second int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := (first + second) * 4
	gl.VertexAttribPointerWithOffset(0, first, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, second, gl.FLOAT, false, stride, uintptr(first*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (r *Renderer) ScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new overlay frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.texturedVertices = r.texturedVertices[:0]
	r.textures = r.textures[:0]
}

// DrawRect queues a filled rectangle.
func (r *Renderer) DrawRect(rect Rect, color Color) {
	r.solidVertices = appendQuad(r.solidVertices, rect, color)
}

// DrawPanel queues a filled rectangle with a one pixel border.
func (r *Renderer) DrawPanel(rect Rect, bg, border Color) {
	r.solidVertices = appendQuad(r.solidVertices, rect, bg)
	r.solidVertices = appendOutline(r.solidVertices, rect, 1, border)
}

// DrawTexture queues an opaque textured quad. Zero textures are skipped.
func (r *Renderer) DrawTexture(rect Rect, tex gfx.Texture) {
	if tex == 0 {
		return
	}
	first := int32(len(r.texturedVertices) / texturedStride)
	r.texturedVertices = append(r.texturedVertices, texturedQuad(rect)...)
	r.textures = append(r.textures, texturedDraw{tex: tex, first: first})
}

// End draws everything queued since Begin, panels first, with depth
// testing and culling off. The GL state it touches is restored.
func (r *Renderer) End() {
	if len(r.solidVertices) == 0 && len(r.textures) == 0 {
		return
	}

	var prevBlend, prevDepth, prevCull bool
	prevBlend = gl.IsEnabled(gl.BLEND)
	prevDepth = gl.IsEnabled(gl.DEPTH_TEST)
	prevCull = gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := orthoMatrix(r.screenWidth, r.screenHeight)

	if len(r.solidVertices) > 0 {
		gl.UseProgram(r.solidShader)
		gl.UniformMatrix4fv(shader.GetUniform(r.solidShader, "uProjection"), 1, false, &proj[0])
		upload(r.solidVAO, r.solidVBO, r.solidVertices)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.solidVertices)/solidStride))
	}

	if len(r.textures) > 0 {
		gl.UseProgram(r.textureShader)
		gl.UniformMatrix4fv(shader.GetUniform(r.textureShader, "uProjection"), 1, false, &proj[0])
		gl.Uniform1i(shader.GetUniform(r.textureShader, "uTexture"), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		upload(r.texturedVAO, r.texturedVBO, r.texturedVertices)
		for _, d := range r.textures {
			gl.BindTexture(gl.TEXTURE_2D, uint32(d.tex))
			gl.DrawArrays(gl.TRIANGLES, d.first, 6)
		}
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)

	if !prevBlend {
		gl.Disable(gl.BLEND)
	}
	if prevDepth {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull {
		gl.Enable(gl.CULL_FACE)
	}
}

func upload(vao, vbo uint32, vertices []float32) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	for _, vao := range []*uint32{&r.solidVAO, &r.texturedVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&r.solidVBO, &r.texturedVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	for _, p := range []*uint32{&r.solidShader, &r.textureShader} {
		if *p != 0 {
			gl.DeleteProgram(*p)
			*p = 0
		}
	}
}

const solidVertexShader = `#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
`

const solidFragmentShader = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`

const textureVertexShader = `#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProjection;

out vec2 vTexCoord;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
`

const textureFragmentShader = `#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uTexture, vTexCoord).rgb, 1.0);
}
`
