// Package game wires entities, the grass system and the scene together.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/internal/game/entity"
	"github.com/Faultbox/grassland/internal/game/systems"
	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// World owns the entity store, the scene and the systems acting on them.
type World struct {
	Entities *entity.Context
	Scene    *scene.Graph

	addGrass *systems.AddGrassSystem
}

// NewWorld creates an empty world whose grass meshes use template.
func NewWorld(cfg grass.Config, template *scene.Material, opts ...systems.Option) (*World, error) {
	w := &World{
		Entities: entity.NewContext(),
		Scene:    scene.NewGraph(),
	}

	sink := scene.NewGrassSink(w.Scene, template)
	sys, err := systems.NewAddGrassSystem(w.Entities, sink, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("add grass system: %w", err)
	}
	w.addGrass = sys

	logger.Info("world created",
		zap.Int("grid", cfg.PatchGridSize),
		zap.Int("points_per_patch", cfg.PointsPerPatch),
		zap.String("overflow", string(cfg.Overflow)),
	)
	return w, nil
}

// Plant creates an entity marked for grass at pos. The grass appears on the
// next Update.
func (w *World) Plant(pos math.Vec3) *entity.Entity {
	e := w.Entities.Create()
	w.Entities.SetGrassPos(e, pos)
	return e
}

// Update runs the systems once and returns the number of meshes attached.
func (w *World) Update() (int, error) {
	return w.addGrass.Execute()
}
