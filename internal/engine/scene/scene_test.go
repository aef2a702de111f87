package scene

import (
	"testing"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/waterflow/pkg/math"
)

// applyLog keeps a copy of the parameters seen at every Apply.
type applyLog struct {
	*gfxtest.Effect
	seen []map[string]any
}

func (e *applyLog) Apply() {
	snap := make(map[string]any, len(e.Params))
	for k, v := range e.Params {
		snap[k] = v
	}
	e.seen = append(e.seen, snap)
	e.Effect.Apply()
}

func newTestScene(t *testing.T) (*Scene, *gfxtest.Recorder, *applyLog) {
	t.Helper()
	dev := gfxtest.NewRecorder()
	fx := &applyLog{Effect: gfxtest.NewEffect("Scene")}
	return New(dev, fx), dev, fx
}

func uploadBox(t *testing.T, dev gfx.ResourceDevice) gfx.Mesh {
	t.Helper()
	m := Box(math.Vec3{X: 1, Y: 1, Z: 1})
	mesh, err := m.Upload(dev)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	return mesh
}

func TestDrawObjectsAppliesExtraWorld(t *testing.T) {
	s, dev, fx := newTestScene(t)
	s.Add(NewObject("box", uploadBox(t, dev), Transform{Position: math.Vec3{X: 1, Y: 5, Z: 2}}, Material{Color: math.Vec4{1, 0, 0, 1}}))
	viewProj := math.Scale(2, 2, 2)
	s.SetCamera(viewProj, math.Vec3{})

	extra := math.Reflection(math.Vec4{0, 1, 0, 0})
	s.DrawObjects(extra)

	if len(dev.Draws) != 1 || len(fx.seen) != 1 {
		t.Fatalf("draws = %d, applies = %d, want 1 each", len(dev.Draws), len(fx.seen))
	}
	world := fx.seen[0]["World"].(math.Mat4)
	if p := world.TransformPoint(math.Vec3{}); p != (math.Vec3{X: 1, Y: -5, Z: 2}) {
		t.Errorf("mirrored origin = %v, want (1,-5,2)", p)
	}
	wvp := fx.seen[0]["WorldViewProj"].(math.Mat4)
	if wvp != viewProj.Mul(world) {
		t.Errorf("WorldViewProj = %v, want viewProj * world", wvp)
	}
	if c := fx.seen[0]["Color"].(math.Vec4); c != (math.Vec4{1, 0, 0, 1}) {
		t.Errorf("Color = %v", c)
	}
}

func TestDrawObjectsMirrorsClipPlane(t *testing.T) {
	s, dev, fx := newTestScene(t)
	s.Add(NewObject("box", uploadBox(t, dev), Transform{}, Material{}))

	s.Draw()
	if got := fx.seen[0]["ClipPlane"].(math.Vec4); got != (math.Vec4{}) {
		t.Errorf("ClipPlane without clipping = %v, want zero", got)
	}

	plane := math.Vec4{0, -1, 0, 2}
	restore := gfx.PushClipPlane(dev, 0, plane)
	s.Draw()
	restore()
	if got := fx.seen[1]["ClipPlane"].(math.Vec4); got != plane {
		t.Errorf("ClipPlane = %v, want %v", got, plane)
	}
}

func TestDoubleSidedDisablesCulling(t *testing.T) {
	s, dev, _ := newTestScene(t)
	s.Add(
		NewObject("solid", uploadBox(t, dev), Transform{}, Material{}),
		NewObject("sky", uploadBox(t, dev), Transform{}, Material{DoubleSided: true, Unlit: true}),
	)
	s.Draw()

	if len(dev.Draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(dev.Draws))
	}
	if dev.Draws[0].Cull != gfx.CullBack {
		t.Errorf("solid cull = %v, want back", dev.Draws[0].Cull)
	}
	if dev.Draws[1].Cull != gfx.CullNone {
		t.Errorf("double-sided cull = %v, want none", dev.Draws[1].Cull)
	}
	if dev.CullMode() != gfx.CullBack {
		t.Errorf("cull after draw = %v, want back", dev.CullMode())
	}
}

func TestFollowEye(t *testing.T) {
	sky := NewObject("sky", nil, Transform{Scale: math.Vec3{X: 500, Y: 500, Z: 500}}, Material{})
	sky.FollowEye = true
	eye := math.Vec3{X: 3, Y: 4, Z: 5}
	if p := sky.WorldMatrix(eye).TransformPoint(math.Vec3{}); p != eye {
		t.Errorf("sky centre = %v, want eye %v", p, eye)
	}
}

func TestLights(t *testing.T) {
	s, dev, fx := newTestScene(t)
	s.Add(NewObject("box", uploadBox(t, dev), Transform{}, Material{}))
	s.Ambient = math.Vec3{X: 0.15, Y: 0.15, Z: 0.15}
	s.SetLights(
		DirectionalLight{Direction: math.Vec3{X: 2}, Color: math.Vec3{X: 1}},
		DirectionalLight{Direction: math.Vec3{Y: 1}},
		DirectionalLight{Direction: math.Vec3{Z: 1}},
		DirectionalLight{Direction: math.Vec3{X: 1}},
	)
	s.Draw()

	p := fx.seen[0]
	if got := p["LightDirection0"].(math.Vec3); got != (math.Vec3{X: 1}) {
		t.Errorf("LightDirection0 = %v, want normalised", got)
	}
	if got := p["LightColor0"].(math.Vec3); got != (math.Vec3{X: 1}) {
		t.Errorf("LightColor0 = %v", got)
	}
	if _, ok := p["LightDirection3"]; ok {
		t.Error("fourth light was bound")
	}
	if got := p["AmbientColor"].(math.Vec3); got != s.Ambient {
		t.Errorf("AmbientColor = %v", got)
	}
}

func TestSkipsNilMeshAndDestroy(t *testing.T) {
	s, dev, _ := newTestScene(t)
	s.Add(NewObject("empty", nil, Transform{}, Material{}), NewObject("box", uploadBox(t, dev), Transform{}, Material{}))
	s.Draw()
	if len(dev.Draws) != 1 {
		t.Errorf("draws = %d, want 1", len(dev.Draws))
	}

	s.Destroy()
	if !dev.Meshes[0].Destroyed {
		t.Error("mesh not destroyed")
	}
	if len(s.Objects()) != 0 {
		t.Error("objects kept after Destroy")
	}
}
