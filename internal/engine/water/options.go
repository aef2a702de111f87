// Package water renders a planar, flow-mapped water surface.
//
// A Surface owns a static vertex grid and two off-screen targets. Every frame
// it captures the scene reflected across the water plane and the scene below
// it, each clipped by an oblique clip plane, then draws the grid with a shader
// that blends the two captures under two scrolling normal layers.
package water

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Technique names exposed by the water effect.
const (
	TechniqueFull      = "WaterTech"
	TechniqueNoFlow    = "WaterTechNoFlow"
	TechniqueFlowDebug = "WaterTechFlowDebug"
)

var (
	ErrInvalidGrid       = errors.New("water: grid needs at least 2x2 vertices")
	ErrInvalidSpacing    = errors.New("water: cell spacing must be positive")
	ErrInvalidTargetSize = errors.New("water: render target size must be positive")
	ErrZeroSunDirection  = errors.New("water: sun direction has zero length")
	ErrNilDevice         = errors.New("water: nil device")
	ErrNilEffect         = errors.New("water: nil effect")
)

// Options configures a Surface. They are read once by NewSurface.
type Options struct {
	// Vertex counts along X and Z. Sizes of the form 2^n+1 (129, 257, ...)
	// are conventional but not required.
	Width  int
	Height int

	// Distance between neighbouring vertices, in world units.
	CellSpacing float32

	// Tiling of the wave maps; values above 1 repeat them for finer normals.
	WaveMapScale float32

	// Width and height of the reflection and refraction targets, in pixels.
	RenderTargetSize int32

	FlowMap  gfx.Texture
	NoiseMap gfx.Texture
	WaveMap0 gfx.Texture
	WaveMap1 gfx.Texture

	WaterColor   math.Vec4
	SunColor     math.Vec4
	SunDirection math.Vec3
	SunFactor    float32 // specular intensity
	SunPower     float32 // specular exponent

	// ExternalRefraction skips the refraction pass; the host hands in its own
	// texture through Surface.SetRefractionSource.
	ExternalRefraction bool

	// Technique selects the effect technique; empty means TechniqueFull.
	Technique string

	// Disabled skips both capture passes and the final draw.
	Disabled bool
}

// DefaultOptions returns the stock configuration: a 257x257 grid at half-unit
// spacing with 512 pixel capture targets.
func DefaultOptions() Options {
	return Options{
		Width:            257,
		Height:           257,
		CellSpacing:      0.5,
		WaveMapScale:     1.0,
		RenderTargetSize: 512,
		WaterColor:       math.Vec4{0.5, 0.79, 0.75, 1.0},
		SunColor:         math.Vec4{1.0, 0.8, 0.4, 1.0},
		SunDirection:     math.Vec3{X: 2.6, Y: -1.0, Z: -1.5},
		SunFactor:        1.5,
		SunPower:         100.0,
		Technique:        TechniqueFull,
	}
}

// Validate reports the first configuration error, wrapped around one of the
// package's sentinel errors.
func (o Options) Validate() error {
	if o.Width < 2 || o.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, o.Width, o.Height)
	}
	if !(o.CellSpacing > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidSpacing, o.CellSpacing)
	}
	if o.RenderTargetSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetSize, o.RenderTargetSize)
	}
	if !usableDirection(o.SunDirection) {
		return fmt.Errorf("%w: got %+v", ErrZeroSunDirection, o.SunDirection)
	}
	return nil
}

// usableDirection reports whether v has a finite, non-zero length.
func usableDirection(v math.Vec3) bool {
	l := v.Length()
	return l > 0 && l <= gomath.MaxFloat32
}

func (o Options) technique() string {
	if o.Technique == "" {
		return TechniqueFull
	}
	return o.Technique
}
