package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
)

// Mesh is an indexed triangle list in a VAO with its own buffers.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 { return m.count }

// Destroy releases the GL buffers.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// CreateMesh uploads interleaved vertices laid out as layout, plus indices.
func (r *Renderer) CreateMesh(layout gfx.VertexLayout, vertices []float32, indices []uint32) (gfx.Mesh, error) {
	stride := layout.Stride()
	if stride == 0 || len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("empty mesh: %d floats, %d indices", len(vertices), len(indices))
	}
	if len(vertices)%int(stride) != 0 {
		return nil, fmt.Errorf("vertex data of %d floats is not a multiple of stride %d", len(vertices), stride)
	}

	m := &Mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	var offset int32
	for _, a := range layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride*4, uintptr(offset*4))
		gl.EnableVertexAttribArray(a.Location)
		offset += a.Components
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("mesh created",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(vertices)/int(stride)),
		zap.Int("indices", len(indices)),
	)
	return m, nil
}

// DrawIndexed draws mesh with whatever program is in use.
func (r *Renderer) DrawIndexed(mesh gfx.Mesh) {
	m, ok := mesh.(*Mesh)
	if !ok || m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
