// Package gfx defines the narrow GPU device surface used by the water and
// scene code, so render passes can be driven by the OpenGL renderer in the
// application and by a recording device in tests.
package gfx

import (
	"github.com/Faultbox/waterflow/pkg/math"
)

// Texture is an opaque GPU texture handle. Zero means "no texture".
type Texture uint32

// CullMode selects which faces the rasterizer discards.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

func (m CullMode) String() string {
	switch m {
	case CullNone:
		return "none"
	case CullBack:
		return "back"
	case CullFront:
		return "front"
	default:
		return "unknown"
	}
}

// Winding is the vertex order that defines a front face.
type Winding int

const (
	CounterClockwise Winding = iota
	Clockwise
)

// Flip returns the opposite winding.
func (w Winding) Flip() Winding {
	if w == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

func (w Winding) String() string {
	if w == Clockwise {
		return "cw"
	}
	return "ccw"
}

// TargetFormat describes the pixel layout of a render target.
type TargetFormat struct {
	Samples int32 // 0 or 1 disables multisampling
}

// RenderTarget is an off-screen colour + depth surface whose colour can be
// sampled as a texture once it is no longer bound.
type RenderTarget interface {
	Texture() Texture
	Size() (width, height int32)
	Destroy()
}

// Mesh is indexed geometry resident on the GPU.
type Mesh interface {
	IndexCount() int32
	Destroy()
}

// Attribute is one vertex attribute inside an interleaved float32 buffer.
type Attribute struct {
	Location   uint32
	Components int32
}

// VertexLayout lists the interleaved attributes of a vertex, in order.
type VertexLayout []Attribute

// Stride returns the number of float32 values per vertex.
func (l VertexLayout) Stride() int32 {
	var n int32
	for _, a := range l {
		n += a.Components
	}
	return n
}

// StateDevice is the mutable render state touched by capture passes.
type StateDevice interface {
	CullMode() CullMode
	SetCullMode(mode CullMode)
	FrontFace() Winding
	SetFrontFace(w Winding)

	// ClipPlane returns the plane stored in slot and whether it is enabled.
	// Planes are in homogeneous clip space.
	ClipPlane(slot int) (plane math.Vec4, enabled bool)
	SetClipPlane(slot int, plane math.Vec4)
	EnableClipPlane(slot int, enabled bool)

	// RenderTarget returns the bound target, nil for the back buffer.
	RenderTarget() RenderTarget
	SetRenderTarget(rt RenderTarget)
	Clear(color math.Vec4, depth float32)
}

// ResourceDevice allocates GPU resources.
type ResourceDevice interface {
	BackBufferFormat() TargetFormat
	CreateRenderTarget(width, height int32, format TargetFormat) (RenderTarget, error)
	CreateMesh(layout VertexLayout, vertices []float32, indices []uint32) (Mesh, error)
}

// Device is the full device surface: state, resources and draw submission.
type Device interface {
	StateDevice
	ResourceDevice
	DrawIndexed(mesh Mesh)
}

// ParameterTable is a shader's named-parameter table.
type ParameterTable interface {
	SetTexture(name string, tex Texture)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetMat4(name string, m math.Mat4)
}

// Effect is a shader with named techniques sharing one parameter table.
type Effect interface {
	ParameterTable
	Technique() string
	SetTechnique(name string) error
	// Apply activates the current technique and flushes parameters.
	Apply()
}
