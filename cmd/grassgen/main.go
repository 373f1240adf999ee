// Package main is the entry point for grassgen, the headless grass field
// generator. It grows grass on every configured anchor and writes a YAML
// report of the resulting scene.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/grassland/internal/config"
	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/internal/game"
	"github.com/Faultbox/grassland/internal/logger"
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

	logger.Info("=== grassgen ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	template := scene.NewMaterial(cfg.Scene.Material.Name, cfg.Scene.Material.Properties...)

	world, err := game.NewWorld(cfg.Grass, template)
	if err != nil {
		return err
	}
	for _, anchor := range cfg.Scene.Anchors {
		world.Plant(anchor)
	}

	n, err := world.Update()
	if err != nil {
		return err
	}
	logger.Info("grass generated",
		zap.Int("anchors", len(cfg.Scene.Anchors)),
		zap.Int("meshes", n),
		zap.Int("vertices", world.Scene.VertexCount()),
	)

	return writeReport(world.Scene.Summarize(cfg.Output.IncludePoints), cfg.Output.ReportPath)
}

// writeReport writes s as YAML to path, or to stdout when path is empty.
func writeReport(s scene.Summary, path string) error {
	var out io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if path != "" {
		logger.Info("report written", zap.String("path", path))
	}
	return nil
}
