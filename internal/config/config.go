// Package config handles grassland configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/grassland/internal/engine/lighting"
	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/pkg/math"
)

// Config holds all settings.
type Config struct {
	Grass   grass.Config  `yaml:"grass"`
	Scene   SceneConfig   `yaml:"scene"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig describes the entities that get grass.
type SceneConfig struct {
	Anchors  []math.Vec3    `yaml:"anchors"` // one grass entity per anchor
	Material MaterialConfig `yaml:"material"`
}

// MaterialConfig describes the grass material template used without a GPU.
type MaterialConfig struct {
	Name       string   `yaml:"name"`
	Properties []string `yaml:"properties"`
}

// ViewerConfig holds window and camera settings for grassview.
type ViewerConfig struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Fullscreen bool         `yaml:"fullscreen"`
	VSync      bool         `yaml:"vsync"`
	FOV        float32      `yaml:"fov"` // vertical, degrees
	Sun        lighting.Sun `yaml:"sun"`
	Screenshot string       `yaml:"screenshot_dir"` // P saves PNGs here
}

// OutputConfig controls the grassgen report.
type OutputConfig struct {
	ReportPath    string `yaml:"report_path"` // empty writes to stdout
	IncludePoints bool   `yaml:"include_points"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grass: grass.DefaultConfig(),
		Scene: SceneConfig{
			Anchors: []math.Vec3{{}},
			Material: MaterialConfig{
				Name:       "Grass",
				Properties: []string{"_Height", "_Width"},
			},
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
			Sun:        lighting.DefaultSun(),
			Screenshot: "screenshots",
		},
		Output: OutputConfig{
			ReportPath:    "",
			IncludePoints: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := c.Grass.Validate(); err != nil {
		return err
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return fmt.Errorf("viewer fov must be in (0, 180), got %g", c.Viewer.FOV)
	}
	if a := c.Viewer.Sun.Ambient; a < 0 || a > 1 {
		return fmt.Errorf("sun ambient must be in [0, 1], got %g", a)
	}
	return nil
}
