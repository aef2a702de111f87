// Command waterdemo renders a flow-mapped pond surrounded by a small scene.
//
// Controls: drag with the left mouse button to orbit, wheel to zoom, WASD/QE
// to move, 1/2/3 to switch the water technique, F to toggle the water, Space
// to pause the flow, R to restart it, +/- to resize the capture targets, P to
// save the captured maps, V to preview them on screen, M to mute the
// ambience, Esc to quit.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/waterflow/internal/config"
	"github.com/Faultbox/waterflow/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Water Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start demo", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
