// Package scene holds the opaque geometry around the water: procedural
// shapes, glTF models and the draw callback used by the capture passes.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/logger"
	"github.com/Faultbox/waterflow/pkg/math"
)

// MaxLights is the number of directional lights the scene shader reads.
const MaxLights = 3

// DirectionalLight shines along Direction.
type DirectionalLight struct {
	Direction math.Vec3
	Color     math.Vec3
}

// Scene draws a list of renderables with one effect. It is not safe for
// concurrent use.
type Scene struct {
	dev    gfx.Device
	effect gfx.Effect
	log    *zap.Logger

	objects []Renderable

	// Ambient is added to every lit fragment.
	Ambient math.Vec3
	lights  []DirectionalLight

	// ClipSlot is the device clip plane mirrored into the ClipPlane uniform.
	ClipSlot int

	viewProj math.Mat4
	eye      math.Vec3
}

// New returns an empty scene drawn through dev with effect.
func New(dev gfx.Device, effect gfx.Effect) *Scene {
	return &Scene{
		dev:      dev,
		effect:   effect,
		log:      logger.Named("scene"),
		viewProj: math.Identity(),
	}
}

// Add appends objects to the draw list.
func (s *Scene) Add(objects ...Renderable) {
	s.objects = append(s.objects, objects...)
}

// Objects returns the draw list.
func (s *Scene) Objects() []Renderable {
	return s.objects
}

// SetLights replaces the directional lights. Extra lights are dropped.
func (s *Scene) SetLights(lights ...DirectionalLight) {
	if len(lights) > MaxLights {
		s.log.Warn("too many lights, extra ignored",
			zap.Int("count", len(lights)), zap.Int("max", MaxLights))
		lights = lights[:MaxLights]
	}
	s.lights = append(s.lights[:0], lights...)
}

// SetCamera records the view for the next draws.
func (s *Scene) SetCamera(viewProj math.Mat4, eye math.Vec3) {
	s.viewProj = viewProj
	s.eye = eye
}

// Draw renders the scene as seen by the camera.
func (s *Scene) Draw() {
	s.DrawObjects(math.Identity())
}

// DrawObjects renders every object with extra applied on top of its own
// world matrix. It matches water.SceneDrawFunc.
func (s *Scene) DrawObjects(extra math.Mat4) {
	if len(s.objects) == 0 {
		return
	}

	// Core profile has no fixed-function clip planes; the shader writes
	// gl_ClipDistance from this uniform. A zero plane clips nothing.
	var clip math.Vec4
	if plane, on := s.dev.ClipPlane(s.ClipSlot); on {
		clip = plane
	}
	s.effect.SetVec4("ClipPlane", clip)
	s.effect.SetVec3("AmbientColor", s.Ambient)
	for i := 0; i < MaxLights; i++ {
		var l DirectionalLight
		if i < len(s.lights) {
			l = s.lights[i]
		}
		s.effect.SetVec3(lightParam("LightDirection", i), l.Direction.Normalize())
		s.effect.SetVec3(lightParam("LightColor", i), l.Color)
	}

	for _, obj := range s.objects {
		mesh := obj.Mesh()
		if mesh == nil {
			continue
		}
		world := extra.Mul(obj.WorldMatrix(s.eye))
		mat := obj.Material()

		s.effect.SetMat4("World", world)
		s.effect.SetMat4("WorldViewProj", s.viewProj.Mul(world))
		s.effect.SetVec4("Color", mat.Color)
		unlit := float32(0)
		if mat.Unlit {
			unlit = 1
		}
		s.effect.SetFloat("Unlit", unlit)
		s.effect.Apply()

		s.drawMesh(mesh, mat.DoubleSided)
	}
}

func (s *Scene) drawMesh(mesh gfx.Mesh, doubleSided bool) {
	if doubleSided {
		defer gfx.PushCullMode(s.dev, gfx.CullNone)()
	}
	s.dev.DrawIndexed(mesh)
}

// Destroy releases every object mesh.
func (s *Scene) Destroy() {
	for _, obj := range s.objects {
		if m := obj.Mesh(); m != nil {
			m.Destroy()
		}
	}
	s.log.Debug("scene destroyed", zap.Int("objects", len(s.objects)))
	s.objects = nil
}

func lightParam(name string, i int) string {
	return name + string(rune('0'+i))
}
