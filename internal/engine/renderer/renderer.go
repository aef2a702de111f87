// Package renderer provides the OpenGL implementation of gfx.Device.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/engine/framebuffer"
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/logger"
	"github.com/Faultbox/waterflow/pkg/math"
)

// MaxClipPlanes is the number of gl_ClipDistance slots tracked.
const MaxClipPlanes = 8

// Config holds renderer configuration.
type Config struct {
	Width   int
	Height  int
	Samples int // back buffer MSAA samples, as requested from the window
}

// Renderer handles all OpenGL rendering. GL state that render passes touch
// is mirrored here so it can be queried and restored without glGet calls.
type Renderer struct {
	config Config
	log    *zap.Logger

	cull   gfx.CullMode
	front  gfx.Winding
	planes [MaxClipPlanes]math.Vec4
	clipOn [MaxClipPlanes]bool
	target gfx.RenderTarget
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("samples", cfg.Samples),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.Samples > 1 {
		gl.Enable(gl.MULTISAMPLE)
	}

	// Start from the state NewRecorder and the capture code assume.
	r.SetCullMode(gfx.CullBack)
	r.SetFrontFace(gfx.CounterClockwise)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.SetRenderTarget(nil)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	if r.target == nil {
		gl.Viewport(0, 0, int32(width), int32(height))
	}
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the back buffer size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the back buffer aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame on the back buffer.
func (r *Renderer) Begin(clearColor math.Vec4) {
	r.SetRenderTarget(nil)
	r.Clear(clearColor, 1)
}

// End finishes the current frame.
func (r *Renderer) End() {
	if err := gl.GetError(); err != gl.NO_ERROR {
		r.log.Warn("OpenGL error during frame", zap.Uint32("code", err))
	}
}

func (r *Renderer) CullMode() gfx.CullMode { return r.cull }

func (r *Renderer) SetCullMode(mode gfx.CullMode) {
	r.cull = mode
	switch mode {
	case gfx.CullNone:
		gl.Disable(gl.CULL_FACE)
	case gfx.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

func (r *Renderer) FrontFace() gfx.Winding { return r.front }

func (r *Renderer) SetFrontFace(w gfx.Winding) {
	r.front = w
	if w == gfx.Clockwise {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

// ClipPlane returns the plane stored in slot. Core profile GL has no fixed
// function clip planes; shaders read the plane from here and write it to
// gl_ClipDistance, which the enable flag switches on.
func (r *Renderer) ClipPlane(slot int) (math.Vec4, bool) {
	if slot < 0 || slot >= MaxClipPlanes {
		return math.Vec4{}, false
	}
	return r.planes[slot], r.clipOn[slot]
}

func (r *Renderer) SetClipPlane(slot int, plane math.Vec4) {
	if slot < 0 || slot >= MaxClipPlanes {
		r.log.Warn("clip plane slot out of range", zap.Int("slot", slot))
		return
	}
	r.planes[slot] = plane
}

func (r *Renderer) EnableClipPlane(slot int, enabled bool) {
	if slot < 0 || slot >= MaxClipPlanes {
		r.log.Warn("clip plane slot out of range", zap.Int("slot", slot))
		return
	}
	r.clipOn[slot] = enabled
	if enabled {
		gl.Enable(gl.CLIP_DISTANCE0 + uint32(slot))
	} else {
		gl.Disable(gl.CLIP_DISTANCE0 + uint32(slot))
	}
}

func (r *Renderer) RenderTarget() gfx.RenderTarget { return r.target }

// SetRenderTarget binds rt, or the back buffer when rt is nil. The target
// being unbound is resolved so its texture can be sampled.
func (r *Renderer) SetRenderTarget(rt gfx.RenderTarget) {
	if prev, ok := r.target.(*framebuffer.Framebuffer); ok && prev != rt {
		prev.Resolve()
	}
	r.target = rt

	if rt == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
		return
	}
	fb, ok := rt.(*framebuffer.Framebuffer)
	if !ok {
		r.log.Error("render target not created by this renderer", zap.Any("target", rt))
		return
	}
	fb.Bind()
}

func (r *Renderer) Clear(color math.Vec4, depth float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepth(float64(depth))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) BackBufferFormat() gfx.TargetFormat {
	return gfx.TargetFormat{Samples: int32(r.config.Samples)}
}

func (r *Renderer) CreateRenderTarget(width, height int32, format gfx.TargetFormat) (gfx.RenderTarget, error) {
	fb, err := framebuffer.New(width, height, format.Samples)
	if err != nil {
		return nil, err
	}
	r.log.Debug("render target created",
		zap.Int32("width", width),
		zap.Int32("height", height),
		zap.Int32("samples", format.Samples),
	)
	return fb, nil
}

var _ gfx.Device = (*Renderer)(nil)
