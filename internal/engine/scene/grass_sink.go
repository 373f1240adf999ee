package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// Shader property names the grass material reads.
const (
	PropHeight = "_Height"
	PropWidth  = "_Width"
)

// GrassSink turns grass payloads into renderable nodes under the graph root.
type GrassSink struct {
	graph    *Graph
	template *Material
}

// NewGrassSink creates a sink that instantiates template for every payload.
func NewGrassSink(graph *Graph, template *Material) *GrassSink {
	return &GrassSink{graph: graph, template: template}
}

// Attach creates a "Grass" node at anchor, uploads the payload as a point
// mesh and sets the blade height and width on a fresh material instance.
// Properties the material does not expose are skipped.
func (s *GrassSink) Attach(anchor math.Vec3, p grass.MeshPayload) (*MeshRenderer, error) {
	if p.Topology != grass.TopologyPoints {
		return nil, fmt.Errorf("attach grass: unsupported topology %s", p.Topology)
	}

	node := s.graph.Root.AddChild("Grass", anchor)
	mat := s.template.Clone()

	if !mat.SetFloat(PropHeight, p.Height) {
		logger.Debug("material has no height property", zap.String("material", mat.Name))
	}
	if !mat.SetFloat(PropWidth, p.Width) {
		logger.Debug("material has no width property", zap.String("material", mat.Name))
	}

	node.Renderer = &MeshRenderer{
		Node: node,
		Mesh: &PointMesh{
			Vertices: p.Vertices,
			Topology: p.Topology,
			Bounds:   p.Bounds,
		},
		Material: mat,
	}
	return node.Renderer, nil
}
