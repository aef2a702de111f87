package water

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/logger"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Surface is the water plane: a static grid, two capture targets, the flow
// animation and the effect that composites them.
type Surface struct {
	dev    gfx.Device
	effect gfx.Effect
	opts   Options
	log    *zap.Logger

	mesh       gfx.Mesh
	reflection gfx.RenderTarget
	refraction gfx.RenderTarget
	targetSize int32
	external   gfx.Texture

	flow    *FlowAnimator
	capture *Capture
	binder  *Binder

	world   math.Mat4
	camera  Camera
	draw    SceneDrawFunc
	enabled bool

	lastReflection PassReport
	lastRefraction PassReport
}

// NewSurface validates opts, uploads the grid and allocates both capture
// targets in the back buffer's format. Any failure releases what was already
// allocated.
func NewSurface(dev gfx.Device, effect gfx.Effect, opts Options) (*Surface, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if effect == nil {
		return nil, ErrNilEffect
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	binder, err := NewBinder(opts)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		dev:     dev,
		effect:  effect,
		opts:    opts,
		log:     logger.Named("water"),
		flow:    NewFlowAnimator(),
		binder:  binder,
		world:   math.Identity(),
		camera:  Camera{ViewProj: math.Identity()},
		enabled: !opts.Disabled,
	}

	vertices, indices := BuildGrid(opts.Height, opts.Width, opts.CellSpacing, opts.CellSpacing, math.Vec3{})
	s.mesh, err = dev.CreateMesh(GridLayout, FlattenGrid(vertices), indices)
	if err != nil {
		return nil, fmt.Errorf("creating water grid: %w", err)
	}

	if err := s.createTargets(opts.RenderTargetSize); err != nil {
		s.Destroy()
		return nil, err
	}

	s.capture = NewCapture(dev, s.reflection, s.refraction, opts.WaterColor)
	s.capture.External = opts.ExternalRefraction

	if err := effect.SetTechnique(opts.technique()); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("selecting water technique: %w", err)
	}

	s.log.Info("water surface created",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Float32("spacing", opts.CellSpacing),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", len(indices)/3),
		zap.Int32("targetSize", opts.RenderTargetSize),
		zap.String("technique", effect.Technique()),
		zap.Any("sun", binder.SunDirection()),
	)
	return s, nil
}

func (s *Surface) createTargets(size int32) error {
	format := s.dev.BackBufferFormat()

	reflection, err := s.dev.CreateRenderTarget(size, size, format)
	if err != nil {
		return fmt.Errorf("creating reflection target: %w", err)
	}
	refraction, err := s.dev.CreateRenderTarget(size, size, format)
	if err != nil {
		reflection.Destroy()
		return fmt.Errorf("creating refraction target: %w", err)
	}

	s.reflection = reflection
	s.refraction = refraction
	s.targetSize = size
	return nil
}

// Resize recreates both capture targets at size x size pixels. On failure the
// previous targets stay in use.
func (s *Surface) Resize(size int32) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetSize, size)
	}
	if size == s.targetSize {
		return nil
	}

	oldReflection, oldRefraction := s.reflection, s.refraction
	if err := s.createTargets(size); err != nil {
		return err
	}
	oldReflection.Destroy()
	oldRefraction.Destroy()

	s.capture.SetTargets(s.reflection, s.refraction)
	s.log.Debug("water targets resized", zap.Int32("size", size))
	return nil
}

// SetWorld sets the water's world transform. The water plane is the local
// XZ plane moved by this transform.
func (s *Surface) SetWorld(world math.Mat4) {
	s.world = world
}

// World returns the water's world transform.
func (s *Surface) World() math.Mat4 {
	return s.world
}

// SetSceneDrawer sets the callback used by both capture passes. A nil drawer
// leaves the passes clearing their targets only.
func (s *Surface) SetSceneDrawer(draw SceneDrawFunc) {
	s.draw = draw
}

// SetCamera sets the view-projection matrix and eye position for the next
// capture and draw.
func (s *Surface) SetCamera(viewProj math.Mat4, eye math.Vec3) {
	s.camera = Camera{ViewProj: viewProj, Eye: eye}
}

// Update advances the flow animation by dt seconds.
func (s *Surface) Update(dt float32) {
	s.flow.Advance(dt)
}

// UpdateWaterMaps advances the flow by dt seconds, then renders the
// reflection pass followed by the refraction pass.
func (s *Surface) UpdateWaterMaps(dt float32) {
	s.Update(dt)
	if !s.enabled {
		return
	}

	s.lastReflection = s.capture.Reflection(s.world, s.camera, s.draw)
	s.lastRefraction = s.capture.Refraction(s.world, s.camera, s.draw)
}

// LastPasses returns the reports of the most recent capture passes.
func (s *Surface) LastPasses() (reflection, refraction PassReport) {
	return s.lastReflection, s.lastRefraction
}

// Draw binds the water parameters and draws the grid with culling disabled,
// so the surface shows from above and below.
func (s *Surface) Draw() {
	if !s.enabled {
		return
	}

	defer gfx.PushCullMode(s.dev, gfx.CullNone)()

	s.binder.Bind(s.effect, s.Surfaces(), s.flow.Offsets(), s.world, s.camera.ViewProj, s.camera.Eye)
	s.effect.Apply()
	s.dev.DrawIndexed(s.mesh)
}

// Surfaces returns the textures the water samples. The refraction comes from
// the host-supplied source when one is set.
func (s *Surface) Surfaces() CapturedSurfaces {
	out := CapturedSurfaces{
		Reflection: s.reflection.Texture(),
		Refraction: s.refraction.Texture(),
	}
	if s.capture.External && s.external != 0 {
		out.Refraction = s.external
	}
	return out
}

// SetRefractionSource makes the water sample tex as its refraction and skips
// the refraction pass. Passing 0 returns to capturing refraction internally.
func (s *Surface) SetRefractionSource(tex gfx.Texture) {
	s.external = tex
	s.capture.External = tex != 0
}

// SetTechnique switches the effect technique.
func (s *Surface) SetTechnique(name string) error {
	if err := s.effect.SetTechnique(name); err != nil {
		return fmt.Errorf("selecting water technique: %w", err)
	}
	s.log.Debug("water technique changed", zap.String("technique", name))
	return nil
}

// Technique returns the active effect technique.
func (s *Surface) Technique() string {
	return s.effect.Technique()
}

// SetEnabled turns capturing and drawing on or off. The flow keeps animating.
func (s *Surface) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether the surface captures and draws.
func (s *Surface) Enabled() bool {
	return s.enabled
}

// Offsets returns the current flow offsets.
func (s *Surface) Offsets() FlowOffsets {
	return s.flow.Offsets()
}

// ResetFlow returns the flow animation to its starting phase.
func (s *Surface) ResetFlow() {
	s.flow.Reset()
}

// SetFlowRate changes the flow speed in texture units per second.
func (s *Surface) SetFlowRate(rate float32) {
	s.flow.SetRate(rate)
}

// Destroy releases the grid and capture targets. It is safe to call twice.
func (s *Surface) Destroy() {
	if s.mesh != nil {
		s.mesh.Destroy()
		s.mesh = nil
	}
	if s.reflection != nil {
		s.reflection.Destroy()
		s.reflection = nil
	}
	if s.refraction != nil {
		s.refraction.Destroy()
		s.refraction = nil
	}
	s.log.Debug("water surface destroyed")
}
