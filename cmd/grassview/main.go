// Package main is the entry point for grassview, the interactive grass
// viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/config"
	"github.com/Faultbox/grassland/internal/game"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/internal/viewer"
)

func main() {
	// Parse CLI flags first
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

	logger.Info("=== grassview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(viewer.Config{
		Title:      "Grassland",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		FOV:        cfg.Viewer.FOV,
		Sun:        cfg.Viewer.Sun,
		Screenshot: cfg.Viewer.Screenshot,
	})
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	// The GPU program decides which material properties exist
	world, err := game.NewWorld(cfg.Grass, v.Renderer().GrassMaterial(cfg.Scene.Material.Name))
	if err != nil {
		logger.Error("failed to create world", zap.Error(err))
		os.Exit(1)
	}
	for _, anchor := range cfg.Scene.Anchors {
		world.Plant(anchor)
	}
	if _, err := world.Update(); err != nil {
		logger.Error("grass generation failed", zap.Error(err))
	}
	v.SetWorld(world)

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
