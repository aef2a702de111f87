package water

import (
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Shader parameter names.
const (
	ParamReflectMap     = "ReflectMap"
	ParamRefractMap     = "RefractMap"
	ParamFlowMap        = "FlowMap"
	ParamNoiseMap       = "NoiseMap"
	ParamWaveMap0       = "WaveMap0"
	ParamWaveMap1       = "WaveMap1"
	ParamFlowMapOffset0 = "FlowMapOffset0"
	ParamFlowMapOffset1 = "FlowMapOffset1"
	ParamHalfCycle      = "HalfCycle"
	ParamTexScale       = "TexScale"
	ParamWaterColor     = "WaterColor"
	ParamSunColor       = "SunColor"
	ParamSunDirection   = "SunDirection"
	ParamSunFactor      = "SunFactor"
	ParamSunPower       = "SunPower"
	ParamWorld          = "World"
	ParamWorldViewProj  = "WorldViewProj"
	ParamEyePos         = "EyePos"
)

// CapturedSurfaces are the textures sampled by the final water pass.
type CapturedSurfaces struct {
	Reflection gfx.Texture
	Refraction gfx.Texture
}

// Binder pushes the water parameters into an effect. Values that never change
// are resolved once in NewBinder.
type Binder struct {
	flowMap  gfx.Texture
	noiseMap gfx.Texture
	waveMap0 gfx.Texture
	waveMap1 gfx.Texture

	texScale   float32
	waterColor math.Vec4
	sunColor   math.Vec4
	sunDir     math.Vec3
	sunFactor  float32
	sunPower   float32
}

// NewBinder captures the static parameters from opts and normalizes the sun
// direction. A zero, infinite or NaN sun direction is rejected.
func NewBinder(opts Options) (*Binder, error) {
	if !usableDirection(opts.SunDirection) {
		return nil, ErrZeroSunDirection
	}
	return &Binder{
		flowMap:    opts.FlowMap,
		noiseMap:   opts.NoiseMap,
		waveMap0:   opts.WaveMap0,
		waveMap1:   opts.WaveMap1,
		texScale:   opts.WaveMapScale,
		waterColor: opts.WaterColor,
		sunColor:   opts.SunColor,
		sunDir:     opts.SunDirection.Normalize(),
		sunFactor:  opts.SunFactor,
		sunPower:   opts.SunPower,
	}, nil
}

// SunDirection returns the normalized sun direction.
func (b *Binder) SunDirection() math.Vec3 {
	return b.sunDir
}

// Bind writes every water parameter for the current frame.
func (b *Binder) Bind(params gfx.ParameterTable, surfaces CapturedSurfaces, offsets FlowOffsets, world, viewProj math.Mat4, eye math.Vec3) {
	params.SetTexture(ParamReflectMap, surfaces.Reflection)
	params.SetTexture(ParamRefractMap, surfaces.Refraction)
	params.SetTexture(ParamFlowMap, b.flowMap)
	params.SetTexture(ParamNoiseMap, b.noiseMap)
	params.SetTexture(ParamWaveMap0, b.waveMap0)
	params.SetTexture(ParamWaveMap1, b.waveMap1)

	params.SetFloat(ParamFlowMapOffset0, offsets.Offset0)
	params.SetFloat(ParamFlowMapOffset1, offsets.Offset1)
	params.SetFloat(ParamHalfCycle, FlowHalfCycle)
	params.SetFloat(ParamTexScale, b.texScale)

	params.SetVec4(ParamWaterColor, b.waterColor)
	params.SetVec4(ParamSunColor, b.sunColor)
	params.SetVec3(ParamSunDirection, b.sunDir)
	params.SetFloat(ParamSunFactor, b.sunFactor)
	params.SetFloat(ParamSunPower, b.sunPower)

	params.SetMat4(ParamWorld, world)
	params.SetMat4(ParamWorldViewProj, viewProj.Mul(world))
	params.SetVec3(ParamEyePos, eye)
}
