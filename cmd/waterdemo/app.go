package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/cmd/waterdemo/shaders"
	"github.com/Faultbox/waterflow/internal/config"
	"github.com/Faultbox/waterflow/internal/engine/audio"
	"github.com/Faultbox/waterflow/internal/engine/camera"
	"github.com/Faultbox/waterflow/internal/engine/debug"
	"github.com/Faultbox/waterflow/internal/engine/gfx"
	"github.com/Faultbox/waterflow/internal/engine/input"
	"github.com/Faultbox/waterflow/internal/engine/renderer"
	"github.com/Faultbox/waterflow/internal/engine/shader"
	"github.com/Faultbox/waterflow/internal/engine/ui2d"
	"github.com/Faultbox/waterflow/internal/engine/water"
	"github.com/Faultbox/waterflow/internal/engine/window"
	"github.com/Faultbox/waterflow/internal/logger"
	"github.com/Faultbox/waterflow/pkg/math"
)

var clearColor = math.Vec4{0.45, 0.65, 0.9, 1}

// Capture target sizes reachable with the +/- keys.
const (
	minTargetSize = 64
	maxTargetSize = 2048
)

// Capture preview tiles in the top-left corner.
const (
	previewSize   = 128
	previewMargin = 10
)

// techniqueKeys maps number keys to water techniques.
var techniqueKeys = map[sdl.Scancode]string{
	sdl.SCANCODE_1: water.TechniqueFull,
	sdl.SCANCODE_2: water.TechniqueNoFlow,
	sdl.SCANCODE_3: water.TechniqueFlowDebug,
}

// App owns the window, the GL device and everything drawn in it.
type App struct {
	cfg *config.Config
	log *zap.Logger

	running bool
	window  *window.Window
	dev     *renderer.Renderer
	input   *input.Input
	camera  *camera.OrbitCamera

	waterFX *shader.Effect
	sceneFX *shader.Effect
	maps    waterTextures
	scene   *demoScene
	surface *water.Surface

	// sceneCopy is the host-rendered refraction when the water is
	// configured to take an external one.
	sceneCopy gfx.RenderTarget

	overlay     *ui2d.Renderer
	showPreview bool

	ambience   *audio.Manager
	captures   *debug.ScreenshotCapture
	flowPaused bool
	targetSize int32
}

// NewApp opens the window and builds the scene and the water surface.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		input:      input.New(),
		camera:     camera.NewOrbitCamera(),
		captures:   debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "captures")),
		targetSize: int32(cfg.Water.TargetSize),
	}
	a.log.Info("initializing demo",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	var err error
	a.window, err = window.New(window.Config{
		Title:      "Water Demo",
		Width:      a.cfg.Graphics.Width,
		Height:     a.cfg.Graphics.Height,
		Fullscreen: a.cfg.Graphics.Fullscreen,
		VSync:      a.cfg.Graphics.VSync,
		Samples:    a.cfg.Graphics.Samples,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context.
	w, h := a.window.GetSize()
	a.dev, err = renderer.New(renderer.Config{Width: w, Height: h, Samples: a.window.Samples()})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	a.sceneFX, err = shader.NewEffect("scene", shader.Technique{
		Name:     "Scene",
		Vertex:   shaders.SceneVertexShader,
		Fragment: shaders.SceneFragmentShader,
	})
	if err != nil {
		return err
	}
	a.waterFX, err = shader.NewEffect("water",
		shader.Technique{Name: water.TechniqueFull, Vertex: shaders.WaterVertexShader, Fragment: shaders.WaterFragmentShader},
		shader.Technique{Name: water.TechniqueNoFlow, Vertex: shaders.WaterVertexShader, Fragment: shader.WithDefines(shaders.WaterFragmentShader, "FLOW_DISABLED")},
		shader.Technique{Name: water.TechniqueFlowDebug, Vertex: shaders.WaterVertexShader, Fragment: shader.WithDefines(shaders.WaterFragmentShader, "FLOW_DEBUG")},
	)
	if err != nil {
		return err
	}

	a.maps, err = loadWaterTextures(a.dev, a.cfg.Water)
	if err != nil {
		return fmt.Errorf("water textures: %w", err)
	}

	a.scene, err = buildScene(a.dev, a.sceneFX, a.cfg.Scene, a.cfg.Water.Level)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	a.surface, err = water.NewSurface(a.dev, a.waterFX, waterOptions(a.cfg.Water, a.maps))
	if err != nil {
		return err
	}
	a.surface.SetWorld(math.Translate(0, a.cfg.Water.Level, 0))
	a.surface.SetSceneDrawer(a.scene.DrawObjects)
	a.surface.SetFlowRate(a.cfg.Water.FlowSpeed)

	if a.cfg.Water.ExternalRefraction {
		a.sceneCopy, err = a.dev.CreateRenderTarget(a.targetSize, a.targetSize, a.dev.BackBufferFormat())
		if err != nil {
			return fmt.Errorf("refraction source: %w", err)
		}
		a.surface.SetRefractionSource(a.sceneCopy.Texture())
	}

	a.overlay, err = ui2d.New(w, h)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	a.initAudio()

	// Same framing as the original pond demo: a low view across the water.
	a.camera.FovY = math32.Pi / 2
	a.camera.LookAt(math.Vec3{X: 23, Y: 6.5, Z: -41.4}, math.Vec3{X: 11, Y: 6.7, Z: -32})

	a.log.Info("demo initialized",
		zap.String("technique", a.surface.Technique()),
		zap.Bool("water", a.surface.Enabled()),
		zap.Int32("target_size", a.targetSize),
	)
	return nil
}

// initAudio starts the ambience. Audio is optional, so failures only warn.
func (a *App) initAudio() {
	cfg := a.cfg.Audio
	if !cfg.Enabled || cfg.Ambient == "" {
		return
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		a.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	m.SetMasterVolume(cfg.Volume)
	if err := m.LoadAmbient(cfg.Ambient); err != nil {
		a.log.Warn("ambience not loaded", zap.String("path", cfg.Ambient), zap.Error(err))
		m.Close()
		return
	}
	a.ambience = m
	a.log.Info("ambience playing", zap.String("path", cfg.Ambient))
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.dev.Resize(event.Width, event.Height)
				a.overlay.Resize(event.Width, event.Height)
			case input.EventKeyDown:
				a.handleKey(event.Key)
			}
		}

		// 2. Update camera and water maps
		a.update(dt)

		// 3. Render
		a.render()

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleKey(key sdl.Scancode) {
	if name, ok := techniqueKeys[key]; ok {
		if err := a.surface.SetTechnique(name); err != nil {
			a.log.Warn("technique switch failed", zap.Error(err))
			return
		}
		a.log.Info("water technique", zap.String("technique", name))
		return
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_F:
		a.surface.SetEnabled(!a.surface.Enabled())
		a.log.Info("water toggled", zap.Bool("enabled", a.surface.Enabled()))
	case sdl.SCANCODE_SPACE:
		a.flowPaused = !a.flowPaused
		rate := a.cfg.Water.FlowSpeed
		if a.flowPaused {
			rate = 0
		}
		a.surface.SetFlowRate(rate)
		a.log.Info("flow", zap.Bool("paused", a.flowPaused))
	case sdl.SCANCODE_EQUALS:
		a.resizeTargets(a.targetSize * 2)
	case sdl.SCANCODE_MINUS:
		a.resizeTargets(a.targetSize / 2)
	case sdl.SCANCODE_P:
		a.savePreview()
	case sdl.SCANCODE_R:
		a.surface.ResetFlow()
		a.log.Info("flow reset")
	case sdl.SCANCODE_V:
		a.showPreview = !a.showPreview
	case sdl.SCANCODE_M:
		if a.ambience != nil {
			a.log.Info("ambience", zap.Bool("muted", a.ambience.ToggleMute()))
		}
	}
}

func (a *App) resizeTargets(size int32) {
	if size < minTargetSize || size > maxTargetSize {
		return
	}
	sceneCopy, err := resizeCaptures(a.dev, a.surface, a.sceneCopy, size)
	if err != nil {
		a.log.Warn("capture resize failed", zap.Int32("size", size), zap.Error(err))
		return
	}
	a.sceneCopy = sceneCopy
	a.targetSize = size
	a.log.Info("capture targets resized", zap.Int32("size", size))
}

func (a *App) savePreview() {
	paths, err := a.captures.SaveSurfaces(a.dev, a.surface.Surfaces())
	if err != nil {
		a.log.Error("preview failed", zap.Error(err))
		return
	}
	a.log.Info("preview saved", zap.Strings("files", paths))
}

func (a *App) update(dt float32) {
	const moveSpeed = 60 // per second, scaled by camera distance

	dx, dy := a.input.Drag(sdl.BUTTON_LEFT)
	if dx != 0 || dy != 0 {
		a.camera.HandleDrag(float32(dx), float32(dy))
	}
	if wheel := a.input.Wheel(); wheel != 0 {
		a.camera.HandleZoom(float32(wheel))
	}

	var forward, right, up float32
	if a.input.IsKeyDown(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyDown(sdl.SCANCODE_D) {
		right++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_A) {
		right--
	}
	if a.input.IsKeyDown(sdl.SCANCODE_E) {
		up++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		s := moveSpeed * dt
		a.camera.HandleMovement(forward*s, right*s, up*s)
	}

	viewProj := a.camera.ViewProj(a.dev.Aspect())
	eye := a.camera.Position()
	a.scene.SetCamera(viewProj, eye)
	a.surface.SetCamera(viewProj, eye)
	if a.ambience != nil {
		a.ambience.SetListener(eye.Y, a.surface.World().Translation().Y)
	}

	if a.sceneCopy != nil && a.surface.Enabled() {
		restore := gfx.PushRenderTarget(a.dev, a.sceneCopy)
		a.dev.Clear(clearColor, 1)
		a.scene.Draw()
		restore()
	}
	a.surface.UpdateWaterMaps(dt)
}

// drawPreview shows the reflection and refraction maps as they were
// captured this frame.
func (a *App) drawPreview() {
	surfaces := a.surface.Surfaces()
	w, h := a.overlay.ScreenSize()
	tiles := ui2d.PreviewStrip(w, h, 2, previewSize, previewMargin)
	if tiles == nil {
		return
	}

	a.overlay.Begin()
	for i, tex := range []gfx.Texture{surfaces.Reflection, surfaces.Refraction} {
		a.overlay.DrawPanel(tiles[i].Inset(-2), ui2d.ColorPanelBg, ui2d.ColorPanelBorder)
		a.overlay.DrawTexture(tiles[i], tex)
	}
	a.overlay.End()
}

func (a *App) render() {
	a.dev.Begin(clearColor)
	a.scene.Draw()
	a.surface.Draw()
	if a.showPreview {
		a.drawPreview()
	}
	a.dev.End()
}

// Close releases everything NewApp created. It is safe on a partly
// initialized App.
func (a *App) Close() {
	a.log.Info("closing demo")

	if a.ambience != nil {
		a.ambience.Close()
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	if a.surface != nil {
		a.surface.Destroy()
	}
	if a.sceneCopy != nil {
		a.sceneCopy.Destroy()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.dev != nil {
		for _, t := range a.maps.all() {
			a.dev.DeleteTexture(t)
		}
	}
	if a.waterFX != nil {
		a.waterFX.Destroy()
	}
	if a.sceneFX != nil {
		a.sceneFX.Destroy()
	}
	if a.dev != nil {
		a.dev.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
