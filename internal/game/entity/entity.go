// Package entity implements the entity store the grass system reacts to.
package entity

import (
	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/pkg/math"
)

// ID identifies an entity. Zero is never assigned.
type ID uint32

// Force is an external push on the grass (wind, a passing character).
// The grass system only keeps the list; consumers interpret it.
type Force struct {
	Origin    math.Vec3
	Direction math.Vec3
	Strength  float32
	Radius    float32
}

// Entity is a bag of optional grass attributes. A nil pointer or slice
// means the attribute is absent.
type Entity struct {
	ID ID

	GrassPos           *math.Vec3
	GrassForces        []Force
	GrassMeshRenderers []*scene.MeshRenderer
}

// HasGrassPos reports whether the entity carries a grass position marker.
func (e *Entity) HasGrassPos() bool {
	return e.GrassPos != nil
}

// HasGrassForces reports whether the forces list was initialized.
func (e *Entity) HasGrassForces() bool {
	return e.GrassForces != nil
}

// HasGrassMeshRenderer reports whether grass meshes were attached.
func (e *Entity) HasGrassMeshRenderer() bool {
	return len(e.GrassMeshRenderers) > 0
}

// AddGrassForces initializes the forces list. An existing list is kept.
func (e *Entity) AddGrassForces(forces ...Force) {
	if e.GrassForces == nil {
		e.GrassForces = make([]Force, 0, len(forces))
	}
	e.GrassForces = append(e.GrassForces, forces...)
}

// AddGrassMeshRenderer records a renderer handle for attached grass.
func (e *Entity) AddGrassMeshRenderer(r *scene.MeshRenderer) {
	e.GrassMeshRenderers = append(e.GrassMeshRenderers, r)
}
