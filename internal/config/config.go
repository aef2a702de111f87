// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Water techniques accepted in the technique field.
var techniques = []string{"WaterTech", "WaterTechNoFlow", "WaterTechFlowDebug"}

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Water    WaterConfig    `yaml:"water"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 or 1 disables
}

// WaterConfig describes the water surface. Empty texture paths fall back to
// generated maps.
type WaterConfig struct {
	Enabled            bool        `yaml:"enabled"`
	GridWidth          int         `yaml:"grid_width"`
	GridHeight         int         `yaml:"grid_height"`
	CellSpacing        float32     `yaml:"cell_spacing"`
	WaveMapScale       float32     `yaml:"wave_map_scale"`
	TargetSize         int         `yaml:"target_size"`
	Level              float32     `yaml:"level"` // world-space height of the plane
	FlowSpeed          float32     `yaml:"flow_speed"`
	FlowMap            string      `yaml:"flow_map"`
	NoiseMap           string      `yaml:"noise_map"`
	WaveMap0           string      `yaml:"wave_map0"`
	WaveMap1           string      `yaml:"wave_map1"`
	WaterColor         [4]float32  `yaml:"water_color,flow"`
	SunColor           [4]float32  `yaml:"sun_color,flow"`
	SunDirection       [3]float32  `yaml:"sun_direction,flow"`
	SunAngles          *[2]float32 `yaml:"sun_angles,flow,omitempty"` // azimuth, elevation in degrees; overrides sun_direction
	SunFactor          float32     `yaml:"sun_factor"`
	SunPower           float32     `yaml:"sun_power"`
	Technique          string      `yaml:"technique"`
	ExternalRefraction bool        `yaml:"external_refraction"`
}

// SceneConfig lists what the demo scene contains besides the water.
type SceneConfig struct {
	Ground      bool          `yaml:"ground"`
	Pillars     int           `yaml:"pillars"`
	Centrepiece bool          `yaml:"centrepiece"`
	Models      []ModelConfig `yaml:"models"`
}

// ModelConfig places a glTF model in the scene.
type ModelConfig struct {
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position,flow"`
	Scale    float32    `yaml:"scale"`
	Yaw      float32    `yaml:"yaw"` // degrees
}

// AudioConfig holds the water ambience settings. An empty Ambient path
// plays nothing.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Ambient string  `yaml:"ambient"` // WAV file
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Samples:    4,
		},
		Water: WaterConfig{
			Enabled:      true,
			GridWidth:    65,
			GridHeight:   65,
			CellSpacing:  1.75,
			WaveMapScale: 2.5,
			TargetSize:   512,
			Level:        2.5,
			FlowSpeed:    0.05,
			WaterColor:   [4]float32{0.5, 0.79, 0.75, 1.0},
			SunColor:     [4]float32{1.0, 0.8, 0.4, 1.0},
			SunDirection: [3]float32{2.6, -1.0, -1.5},
			SunFactor:    1.5,
			SunPower:     100.0,
			Technique:    "WaterTech",
		},
		Scene: SceneConfig{
			Ground:      true,
			Pillars:     6,
			Centrepiece: true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.Samples < 0 {
		return fmt.Errorf("%w: graphics.samples %d", ErrInvalid, c.Graphics.Samples)
	}
	if err := c.Water.Validate(); err != nil {
		return err
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %g, want 0..1", ErrInvalid, c.Audio.Volume)
	}
	for i, m := range c.Scene.Models {
		if m.Path == "" {
			return fmt.Errorf("%w: scene.models[%d] has no path", ErrInvalid, i)
		}
	}
	return nil
}

// Validate checks the water section before any GPU resources exist.
func (w *WaterConfig) Validate() error {
	if w.GridWidth < 2 || w.GridHeight < 2 {
		return fmt.Errorf("%w: water grid %dx%d, need at least 2x2", ErrInvalid, w.GridWidth, w.GridHeight)
	}
	if !(w.CellSpacing > 0) {
		return fmt.Errorf("%w: water.cell_spacing %g", ErrInvalid, w.CellSpacing)
	}
	if w.TargetSize <= 0 {
		return fmt.Errorf("%w: water.target_size %d", ErrInvalid, w.TargetSize)
	}
	if w.FlowSpeed < 0 {
		return fmt.Errorf("%w: water.flow_speed %g", ErrInvalid, w.FlowSpeed)
	}
	if w.SunAngles != nil {
		if el := w.SunAngles[1]; el <= 0 || el > 90 {
			return fmt.Errorf("%w: water.sun_angles elevation %g, need (0, 90]", ErrInvalid, el)
		}
	} else if w.SunDirection == [3]float32{} {
		return fmt.Errorf("%w: water.sun_direction is zero", ErrInvalid)
	}
	if w.Technique != "" && !validTechnique(w.Technique) {
		return fmt.Errorf("%w: water.technique %q", ErrInvalid, w.Technique)
	}
	return nil
}

func validTechnique(name string) bool {
	for _, t := range techniques {
		if t == name {
			return true
		}
	}
	return false
}
