// Package gfxtest provides an in-memory gfx.Device and gfx.Effect that record
// every call, for testing render passes without a GPU.
package gfxtest

import (
	"errors"
	"fmt"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// ErrInjected is returned by allocations the test asked to fail.
var ErrInjected = errors.New("gfxtest: injected allocation failure")

// Target is a recorded render target.
type Target struct {
	Name          string
	Width, Height int32
	Format        gfx.TargetFormat
	Tex           gfx.Texture
	Destroyed     bool
	Clears        int
}

func (t *Target) Texture() gfx.Texture { return t.Tex }
func (t *Target) Size() (width, height int32) { return t.Width, t.Height }
func (t *Target) Destroy() { t.Destroyed = true }
func (t *Target) String() string { return t.Name }

// Mesh is a recorded mesh upload.
type Mesh struct {
	Layout    gfx.VertexLayout
	Vertices  []float32
	Indices   []uint32
	Destroyed bool
}

func (m *Mesh) IndexCount() int32 { return int32(len(m.Indices)) }
func (m *Mesh) Destroy() { m.Destroyed = true }

// Snapshot is the device state at the moment of a draw or clear.
type Snapshot struct {
	Target      gfx.RenderTarget
	Cull        gfx.CullMode
	FrontFace   gfx.Winding
	ClipPlane   math.Vec4
	ClipEnabled bool
}

// Recorder implements gfx.Device. Clip slot 0 is the one captured in
// snapshots; other slots are stored but not reported.
type Recorder struct {
	Format gfx.TargetFormat

	// FailTargetAfter makes CreateRenderTarget fail once this many targets
	// exist. Negative disables injection.
	FailTargetAfter int
	FailMesh        bool

	Targets []*Target
	Meshes  []*Mesh
	Draws   []Snapshot
	Clears  []Snapshot
	Log     []string

	cull       gfx.CullMode
	front      gfx.Winding
	planes     map[int]math.Vec4
	clipOn     map[int]bool
	target     gfx.RenderTarget
	nextTex    gfx.Texture
	clipEvents int
}

// NewRecorder returns a device in the default GL state: back-face culling,
// counter-clockwise fronts, no clip planes, back buffer bound.
func NewRecorder() *Recorder {
	return &Recorder{
		FailTargetAfter: -1,
		cull:            gfx.CullBack,
		front:           gfx.CounterClockwise,
		planes:          make(map[int]math.Vec4),
		clipOn:          make(map[int]bool),
		nextTex:         100,
	}
}

func (r *Recorder) logf(format string, args ...any) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

func (r *Recorder) snapshot() Snapshot {
	return Snapshot{
		Target:      r.target,
		Cull:        r.cull,
		FrontFace:   r.front,
		ClipPlane:   r.planes[0],
		ClipEnabled: r.clipOn[0],
	}
}

func (r *Recorder) CullMode() gfx.CullMode { return r.cull }

func (r *Recorder) SetCullMode(mode gfx.CullMode) {
	r.cull = mode
	r.logf("cull %s", mode)
}

func (r *Recorder) FrontFace() gfx.Winding { return r.front }

func (r *Recorder) SetFrontFace(w gfx.Winding) {
	r.front = w
	r.logf("front %s", w)
}

func (r *Recorder) ClipPlane(slot int) (math.Vec4, bool) {
	return r.planes[slot], r.clipOn[slot]
}

func (r *Recorder) SetClipPlane(slot int, plane math.Vec4) {
	r.planes[slot] = plane
}

func (r *Recorder) EnableClipPlane(slot int, enabled bool) {
	r.clipOn[slot] = enabled
	if enabled {
		r.clipEvents++
	}
	r.logf("clip %d %t", slot, enabled)
}

// ClipEnables returns how many times any clip plane was switched on.
func (r *Recorder) ClipEnables() int { return r.clipEvents }

func (r *Recorder) RenderTarget() gfx.RenderTarget { return r.target }

func (r *Recorder) SetRenderTarget(rt gfx.RenderTarget) {
	r.target = rt
	if rt == nil {
		r.logf("target backbuffer")
		return
	}
	r.logf("target %v", rt)
}

func (r *Recorder) Clear(color math.Vec4, depth float32) {
	if t, ok := r.target.(*Target); ok {
		t.Clears++
	}
	r.Clears = append(r.Clears, r.snapshot())
	r.logf("clear")
}

func (r *Recorder) BackBufferFormat() gfx.TargetFormat { return r.Format }

func (r *Recorder) CreateRenderTarget(width, height int32, format gfx.TargetFormat) (gfx.RenderTarget, error) {
	if r.FailTargetAfter >= 0 && len(r.Targets) >= r.FailTargetAfter {
		return nil, ErrInjected
	}
	r.nextTex++
	t := &Target{
		Name:   fmt.Sprintf("rt%d", len(r.Targets)),
		Width:  width,
		Height: height,
		Format: format,
		Tex:    r.nextTex,
	}
	r.Targets = append(r.Targets, t)
	return t, nil
}

func (r *Recorder) CreateMesh(layout gfx.VertexLayout, vertices []float32, indices []uint32) (gfx.Mesh, error) {
	if r.FailMesh {
		return nil, ErrInjected
	}
	m := &Mesh{Layout: layout, Vertices: vertices, Indices: indices}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Recorder) DrawIndexed(mesh gfx.Mesh) {
	r.Draws = append(r.Draws, r.snapshot())
	r.logf("draw %d", mesh.IndexCount())
}

// Effect records parameter writes and technique switches.
type Effect struct {
	Techniques []string
	Params     map[string]any
	Applies    int

	technique string
}

// NewEffect returns an effect exposing the given techniques; the first one is
// current.
func NewEffect(techniques ...string) *Effect {
	e := &Effect{Techniques: techniques, Params: make(map[string]any)}
	if len(techniques) > 0 {
		e.technique = techniques[0]
	}
	return e
}

func (e *Effect) SetTexture(name string, tex gfx.Texture) { e.Params[name] = tex }
func (e *Effect) SetFloat(name string, v float32) { e.Params[name] = v }
func (e *Effect) SetVec3(name string, v math.Vec3) { e.Params[name] = v }
func (e *Effect) SetVec4(name string, v math.Vec4) { e.Params[name] = v }
func (e *Effect) SetMat4(name string, m math.Mat4) { e.Params[name] = m }

func (e *Effect) Technique() string { return e.technique }

func (e *Effect) SetTechnique(name string) error {
	for _, t := range e.Techniques {
		if t == name {
			e.technique = name
			return nil
		}
	}
	return fmt.Errorf("technique %q not found", name)
}

func (e *Effect) Apply() { e.Applies++ }
