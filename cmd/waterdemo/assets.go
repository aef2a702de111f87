package main

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/config"
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/engine/lighting"
	"github.com/Faultbox/waterflow/internal/engine/scene"
	"github.com/Faultbox/waterflow/internal/engine/texture"
	"github.com/Faultbox/waterflow/internal/engine/water"
	"github.com/Faultbox/waterflow/internal/logger"
	"github.com/Faultbox/waterflow/pkg/math"
)

// Size of the generated fallback maps.
const proceduralSize = 256

// textureUploader turns decoded images into GPU textures.
type textureUploader interface {
	CreateTexture(img *image.RGBA) (gfx.Texture, error)
	DeleteTexture(tex gfx.Texture)
}

// waterTextures are the four static maps the water shader samples.
type waterTextures struct {
	Flow, Noise, Wave0, Wave1 gfx.Texture
}

func (w waterTextures) all() []gfx.Texture {
	return []gfx.Texture{w.Flow, w.Noise, w.Wave0, w.Wave1}
}

// loadWaterTextures loads each configured map, generating one when the path
// is empty. On error every texture created so far is released.
func loadWaterTextures(up textureUploader, cfg config.WaterConfig) (waterTextures, error) {
	specs := []struct {
		name     string
		path     string
		generate func() *image.RGBA
	}{
		{"flow", cfg.FlowMap, func() *image.RGBA { return texture.FlowMap(proceduralSize) }},
		{"noise", cfg.NoiseMap, func() *image.RGBA { return texture.NoiseMap(proceduralSize, 8, 1) }},
		{"wave0", cfg.WaveMap0, func() *image.RGBA { return texture.WaveNormalMap(proceduralSize, 7) }},
		{"wave1", cfg.WaveMap1, func() *image.RGBA { return texture.WaveNormalMap(proceduralSize, 13) }},
	}

	log := logger.Named("assets")
	created := make([]gfx.Texture, 0, len(specs))
	release := func() {
		for _, t := range created {
			up.DeleteTexture(t)
		}
	}

	for _, s := range specs {
		var img *image.RGBA
		if s.path == "" {
			img = s.generate()
			log.Debug("generated water map", zap.String("map", s.name))
		} else {
			var err error
			if img, err = texture.Load(s.path); err != nil {
				release()
				return waterTextures{}, fmt.Errorf("%s map: %w", s.name, err)
			}
			log.Info("loaded water map", zap.String("map", s.name), zap.String("path", s.path))
		}

		tex, err := up.CreateTexture(img)
		if err != nil {
			release()
			return waterTextures{}, fmt.Errorf("%s map upload: %w", s.name, err)
		}
		created = append(created, tex)
	}

	return waterTextures{Flow: created[0], Noise: created[1], Wave0: created[2], Wave1: created[3]}, nil
}

// waterOptions maps the config section onto surface options.
func waterOptions(cfg config.WaterConfig, tex waterTextures) water.Options {
	sun := math.Vec3{X: cfg.SunDirection[0], Y: cfg.SunDirection[1], Z: cfg.SunDirection[2]}
	if cfg.SunAngles != nil {
		sun = lighting.LightDirection(cfg.SunAngles[0], cfg.SunAngles[1])
	}

	return water.Options{
		Width:              cfg.GridWidth,
		Height:             cfg.GridHeight,
		CellSpacing:        cfg.CellSpacing,
		WaveMapScale:       cfg.WaveMapScale,
		RenderTargetSize:   int32(cfg.TargetSize),
		FlowMap:            tex.Flow,
		NoiseMap:           tex.Noise,
		WaveMap0:           tex.Wave0,
		WaveMap1:           tex.Wave1,
		WaterColor:         math.Vec4(cfg.WaterColor),
		SunColor:           math.Vec4(cfg.SunColor),
		SunDirection:       sun,
		SunFactor:          cfg.SunFactor,
		SunPower:           cfg.SunPower,
		ExternalRefraction: cfg.ExternalRefraction,
		Technique:          cfg.Technique,
		Disabled:           !cfg.Enabled,
	}
}

// resizeCaptures moves the surface's capture targets and the optional host
// refraction copy to size. It returns the copy to use from now on. On error
// nothing changed: both keep their old size.
func resizeCaptures(dev gfx.ResourceDevice, surface *water.Surface, sceneCopy gfx.RenderTarget, size int32) (gfx.RenderTarget, error) {
	var next gfx.RenderTarget
	if sceneCopy != nil {
		var err error
		next, err = dev.CreateRenderTarget(size, size, dev.BackBufferFormat())
		if err != nil {
			return sceneCopy, fmt.Errorf("refraction source: %w", err)
		}
	}
	if err := surface.Resize(size); err != nil {
		if next != nil {
			next.Destroy()
		}
		return sceneCopy, err
	}
	if next == nil {
		return nil, nil
	}

	sceneCopy.Destroy()
	surface.SetRefractionSource(next.Texture())
	return next, nil
}

// Scene layout around the pond.
const (
	pondRadius   = 40
	pondDepth    = 6
	bankHeight   = 4
	groundSize   = 200
	groundCells  = 96
	pillarRing   = 22
	pillarRadius = 1.5
	pillarHeight = 16
	skyRadius    = 500
)

var (
	groundColor = math.Vec4{0.45, 0.4, 0.3, 1}
	stoneColor  = math.Vec4{0.7, 0.68, 0.62, 1}
	accentColor = math.Vec4{0.75, 0.3, 0.25, 1}
	modelColor  = math.Vec4{0.6, 0.65, 0.7, 1}
	skyColor    = math.Vec4{0.45, 0.65, 0.9, 1}
)

// pillarPositions spreads n pillars evenly on a ring around the origin.
func pillarPositions(n int, radius float32) []math.Vec3 {
	out := make([]math.Vec3, n)
	for i := range out {
		s, c := math32.Sincos(float32(i) / float32(n) * 2 * math32.Pi)
		out[i] = math.Vec3{X: s * radius, Z: c * radius}
	}
	return out
}

// demoScene is the scene plus the bounds of its solid geometry, sky excluded.
type demoScene struct {
	*scene.Scene
	Min, Max math.Vec3
}

// buildScene uploads the configured geometry. The water plane sits at level.
func buildScene(dev gfx.Device, effect gfx.Effect, cfg config.SceneConfig, level float32) (*demoScene, error) {
	ds := &demoScene{Scene: scene.New(dev, effect)}
	log := logger.Named("assets")

	first := true
	add := func(name string, data scene.MeshData, t scene.Transform, mat scene.Material, bounded bool) (*scene.Object, error) {
		mesh, err := data.Upload(dev)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}
		obj := scene.NewObject(name, mesh, t, mat)
		ds.Add(obj)
		if bounded {
			lo, hi := data.Bounds()
			ds.grow(t.Matrix(), lo, hi, first)
			first = false
		}
		return obj, nil
	}
	fail := func(err error) (*demoScene, error) {
		ds.Destroy()
		return nil, err
	}

	if cfg.Ground {
		ground := scene.Terrain(groundSize, groundCells, scene.PondHeight(pondRadius, pondDepth, bankHeight))
		if _, err := add("ground", ground, scene.Transform{}, scene.Material{Color: groundColor}, true); err != nil {
			return fail(err)
		}
	}

	base := -float32(pondDepth)
	for i, p := range pillarPositions(cfg.Pillars, pillarRing) {
		p.Y = base
		pillar := scene.Cylinder(pillarRadius, pillarHeight, 16)
		if _, err := add(fmt.Sprintf("pillar%d", i), pillar, scene.Transform{Position: p}, scene.Material{Color: stoneColor}, true); err != nil {
			return fail(err)
		}
	}

	if cfg.Centrepiece {
		pedestal := scene.Box(math.Vec3{X: 6, Y: level - base + 1, Z: 6})
		t := scene.Transform{Position: math.Vec3{Y: (level + base + 1) / 2}}
		if _, err := add("pedestal", pedestal, t, scene.Material{Color: stoneColor}, true); err != nil {
			return fail(err)
		}
		orb := scene.Sphere(3, 16, 24, false)
		t = scene.Transform{Position: math.Vec3{Y: level + 4}}
		if _, err := add("orb", orb, t, scene.Material{Color: accentColor}, true); err != nil {
			return fail(err)
		}
	}

	for i, m := range cfg.Models {
		data, err := scene.LoadGLTF(m.Path)
		if err != nil {
			return fail(fmt.Errorf("scene.models[%d]: %w", i, err))
		}
		scale := m.Scale
		if scale == 0 {
			scale = 1
		}
		t := scene.Transform{
			Position: math.Vec3{X: m.Position[0], Y: m.Position[1], Z: m.Position[2]},
			Scale:    math.Vec3{X: scale, Y: scale, Z: scale},
			Yaw:      m.Yaw * math32.Pi / 180,
		}
		if _, err := add(fmt.Sprintf("model%d", i), data, t, scene.Material{Color: modelColor}, true); err != nil {
			return fail(err)
		}
		log.Info("model loaded", zap.String("path", m.Path), zap.Int("vertices", data.VertexCount()))
	}

	// The sky is drawn from inside and follows the viewer.
	sky, err := add("sky", scene.Sphere(1, 12, 24, true),
		scene.Transform{Scale: math.Vec3{X: skyRadius, Y: skyRadius, Z: skyRadius}},
		scene.Material{Color: skyColor, Unlit: true, DoubleSided: true}, false)
	if err != nil {
		return fail(err)
	}
	sky.FollowEye = true

	ds.Ambient = math.Vec3{X: 0.15, Y: 0.15, Z: 0.15}
	ds.SetLights(
		scene.DirectionalLight{Direction: math.Vec3{X: 1, Y: -1, Z: -1}, Color: math.Vec3{X: 1, Y: 0.3, Z: 0.3}},
		scene.DirectionalLight{Direction: math.Vec3{Y: 1, Z: -1}, Color: math.Vec3{X: 0.15, Y: 0.15, Z: 0.5}},
		scene.DirectionalLight{Direction: math.Vec3{X: -1, Y: -1, Z: 1}, Color: math.Vec3{X: 0.15, Y: 0.5, Z: 0.15}},
	)

	log.Info("scene built", zap.Int("objects", len(ds.Objects())))
	return ds, nil
}

// grow extends the bounds by the transformed corners of [lo, hi].
func (ds *demoScene) grow(m math.Mat4, lo, hi math.Vec3, first bool) {
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		p := m.TransformPoint(c)
		if first && i == 0 {
			ds.Min, ds.Max = p, p
			continue
		}
		ds.Min = math.Vec3{X: math32.Min(ds.Min.X, p.X), Y: math32.Min(ds.Min.Y, p.Y), Z: math32.Min(ds.Min.Z, p.Z)}
		ds.Max = math.Vec3{X: math32.Max(ds.Max.X, p.X), Y: math32.Max(ds.Max.Y, p.Y), Z: math32.Max(ds.Max.Z, p.Z)}
	}
}
