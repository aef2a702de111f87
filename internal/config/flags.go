package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSamples    = flag.Int("samples", -1, "MSAA samples (0 disables)")
	flagTechnique  = flag.String("technique", "", "Water technique (WaterTech, WaterTechNoFlow, WaterTechFlowDebug)")
	flagTarget     = flag.Int("target-size", 0, "Reflection/refraction target size in pixels")
	flagNoWater    = flag.Bool("no-water", false, "Start with the water surface disabled")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSamples >= 0 {
		cfg.Graphics.Samples = *flagSamples
	}
	if *flagTechnique != "" {
		cfg.Water.Technique = *flagTechnique
	}
	if *flagTarget > 0 {
		cfg.Water.TargetSize = *flagTarget
	}
	if *flagNoWater {
		cfg.Water.Enabled = false
	}
}
