package config

import (
	"flag"

	"github.com/Faultbox/grassland/internal/grass"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Int64("seed", 0, "Base seed (0 = time-based)")
	flagGrid       = flag.Int("grid", 0, "Patch grid size")
	flagPoints     = flag.Int("points", 0, "Points per patch")
	flagChunk      = flag.Int("chunk", 0, "Max vertices per mesh")
	flagOverflow   = flag.String("overflow", "", "Overflow policy: split or truncate")
	flagReport     = flag.String("report", "", "Report output path")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
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
	if *flagSeed != 0 {
		cfg.Grass.Seed = *flagSeed
	}
	if *flagGrid > 0 {
		cfg.Grass.PatchGridSize = *flagGrid
	}
	if *flagPoints > 0 {
		cfg.Grass.PointsPerPatch = *flagPoints
	}
	if *flagChunk > 0 {
		cfg.Grass.MaxChunkVertices = *flagChunk
	}
	if *flagOverflow != "" {
		cfg.Grass.Overflow = grass.OverflowPolicy(*flagOverflow)
	}
	if *flagReport != "" {
		cfg.Output.ReportPath = *flagReport
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
