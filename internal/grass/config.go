// Package grass scatters grass blade roots over a grid of patches and splits
// them into point-cloud mesh payloads small enough for a single draw call.
package grass

import (
	"errors"
	"fmt"
)

// MaxChunkVertices is the default vertex limit of one payload. It stays below
// the 16-bit index range older GPUs and engines cap a mesh at.
const MaxChunkVertices = 65000

// MaxTotalPoints caps the points one field may hold before chunking.
const MaxTotalPoints = 1 << 26

// ErrInvalidConfig is returned for configurations generation cannot honor.
var ErrInvalidConfig = errors.New("grass: invalid config")

// OverflowPolicy decides what happens to points left after the first full chunk.
type OverflowPolicy string

const (
	// OverflowSplit emits every remaining point in further chunks.
	OverflowSplit OverflowPolicy = "split"
	// OverflowTruncate emits one full chunk and drops the rest with a warning.
	OverflowTruncate OverflowPolicy = "truncate"
)

// PatchSize is the extent of one patch on the ground plane.
type PatchSize struct {
	X float32 `yaml:"x"`
	Z float32 `yaml:"z"`
}

// Range is a half-open [Min, Max) interval for a randomized shader parameter.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Config holds the grass field generation settings.
type Config struct {
	PatchGridSize    int            `yaml:"patch_grid_size"`
	PointsPerPatch   int            `yaml:"points_per_patch"`
	MaxChunkVertices int            `yaml:"max_chunk_vertices"`
	PatchSize        PatchSize      `yaml:"patch_size"`
	Seed             int64          `yaml:"seed"` // 0 lets the caller pick a time-based seed
	Overflow         OverflowPolicy `yaml:"overflow"`
	HeightRange      Range          `yaml:"height_range"`
	WidthRange       Range          `yaml:"width_range"`
}

// DefaultConfig returns a single patch holding a single blade.
func DefaultConfig() Config {
	return Config{
		PatchGridSize:    1,
		PointsPerPatch:   1,
		MaxChunkVertices: MaxChunkVertices,
		PatchSize:        PatchSize{X: 1, Z: 1},
		Overflow:         OverflowSplit,
		HeightRange:      Range{Min: 1.0, Max: 1.5},
		WidthRange:       Range{Min: 0.01, Max: 0.03},
	}
}

// TotalPoints returns how many points a field built from c holds before chunking.
func (c Config) TotalPoints() int {
	return c.PatchGridSize * c.PatchGridSize * c.PointsPerPatch
}

// Validate reports the first setting that makes c unusable.
func (c Config) Validate() error {
	switch {
	case c.PatchGridSize <= 0:
		return fmt.Errorf("%w: patch_grid_size must be positive, got %d", ErrInvalidConfig, c.PatchGridSize)
	case c.PointsPerPatch <= 0:
		return fmt.Errorf("%w: points_per_patch must be positive, got %d", ErrInvalidConfig, c.PointsPerPatch)
	case c.MaxChunkVertices <= 0:
		return fmt.Errorf("%w: max_chunk_vertices must be positive, got %d", ErrInvalidConfig, c.MaxChunkVertices)
	case c.PatchGridSize > MaxTotalPoints/c.PatchGridSize ||
		c.PatchGridSize*c.PatchGridSize > MaxTotalPoints/c.PointsPerPatch:
		return fmt.Errorf("%w: %d x %d patches with %d points each exceeds %d points",
			ErrInvalidConfig, c.PatchGridSize, c.PatchGridSize, c.PointsPerPatch, MaxTotalPoints)
	case !(c.PatchSize.X > 0) || !(c.PatchSize.Z > 0):
		return fmt.Errorf("%w: patch_size must be positive, got (%g, %g)", ErrInvalidConfig, c.PatchSize.X, c.PatchSize.Z)
	case c.Overflow != OverflowSplit && c.Overflow != OverflowTruncate:
		return fmt.Errorf("%w: unknown overflow policy %q", ErrInvalidConfig, c.Overflow)
	case !(c.HeightRange.Min < c.HeightRange.Max):
		return fmt.Errorf("%w: height_range [%g, %g) is empty", ErrInvalidConfig, c.HeightRange.Min, c.HeightRange.Max)
	case !(c.WidthRange.Min < c.WidthRange.Max):
		return fmt.Errorf("%w: width_range [%g, %g) is empty", ErrInvalidConfig, c.WidthRange.Min, c.WidthRange.Max)
	}
	return nil
}
