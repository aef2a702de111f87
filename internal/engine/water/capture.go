package water

import (
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// SceneDrawFunc draws every opaque scene object with its world matrix
// pre-multiplied by extraWorld. It must only issue draws; render target and
// clip-plane state belong to the caller.
type SceneDrawFunc func(extraWorld math.Mat4)

// Camera is the view the water is captured for.
type Camera struct {
	ViewProj math.Mat4
	Eye      math.Vec3
}

// PassReport describes what a capture pass did.
type PassReport struct {
	Ran     bool // false when the pass was skipped
	Clipped bool // the clip plane was active while drawing
	Drew    bool // the scene callback was invoked
	Planes  ClipPlanes
	Reflect math.Mat4 // reflection transform; identity for refraction
}

// Capture renders the scene into the reflection and refraction targets.
type Capture struct {
	dev        gfx.StateDevice
	reflection gfx.RenderTarget
	refraction gfx.RenderTarget
	clearColor math.Vec4

	// External skips the refraction pass.
	External bool
}

// NewCapture returns a Capture drawing into the given targets, clearing them
// to clearColor.
func NewCapture(dev gfx.StateDevice, reflection, refraction gfx.RenderTarget, clearColor math.Vec4) *Capture {
	return &Capture{
		dev:        dev,
		reflection: reflection,
		refraction: refraction,
		clearColor: clearColor,
	}
}

// SetTargets swaps the targets, after a resize.
func (c *Capture) SetTargets(reflection, refraction gfx.RenderTarget) {
	c.reflection = reflection
	c.refraction = refraction
}

// Reflection renders the scene mirrored across the water plane into the
// reflection target. Geometry that ends up above the mirrored plane (the
// underwater part of the scene) is clipped away.
func (c *Capture) Reflection(world math.Mat4, cam Camera, draw SceneDrawFunc) PassReport {
	planes := WaterClipPlanes(world, cam.ViewProj, 0)
	reflect := math.Reflection(planes.World)

	// Mirroring flips handedness, so fronts become backs.
	defer gfx.PushFrontFace(c.dev, c.dev.FrontFace().Flip())()
	defer gfx.PushClipPlane(c.dev, ClipSlot, planes.Homogeneous)()
	defer gfx.PushRenderTarget(c.dev, c.reflection)()

	c.dev.Clear(c.clearColor, 1)

	report := PassReport{Ran: true, Clipped: true, Planes: planes, Reflect: reflect}
	if draw != nil {
		draw(reflect)
		report.Drew = true
	}
	return report
}

// Refraction renders the scene below the water into the refraction target.
// It does nothing when External is set. Clipping is only applied while the
// eye is above the water; from below everything visible is refracted.
func (c *Capture) Refraction(world math.Mat4, cam Camera, draw SceneDrawFunc) PassReport {
	if c.External {
		return PassReport{Reflect: math.Identity()}
	}

	defer gfx.PushRenderTarget(c.dev, c.refraction)()
	c.dev.Clear(c.clearColor, 1)

	report := PassReport{Ran: true, Reflect: math.Identity()}
	if cam.Eye.Y > world.Translation().Y {
		report.Planes = WaterClipPlanes(world, cam.ViewProj, RefractionClipBias)
		report.Clipped = true
		defer gfx.PushClipPlane(c.dev, ClipSlot, report.Planes.Homogeneous)()
	}

	if draw != nil {
		draw(math.Identity())
		report.Drew = true
	}
	return report
}
