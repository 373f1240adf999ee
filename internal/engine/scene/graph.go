// Package scene holds the in-memory scene graph grass meshes are attached to.
// It has no GPU state; the renderer package uploads what it finds here.
package scene

import (
	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/pkg/math"
)

// RootName is the name of the node every grass object is parented to.
const RootName = "GrassLand"

// PointMesh is mesh data drawn as individual points.
type PointMesh struct {
	Vertices []math.Vec3
	Topology grass.Topology
	Bounds   grass.Bounds // local space
}

// MeshRenderer binds a mesh and a material to a node. Entities keep it as
// their handle on the attached grass.
type MeshRenderer struct {
	Node     *Node
	Mesh     *PointMesh
	Material *Material
}

// Node is a positioned object in the graph.
type Node struct {
	Name     string
	Position math.Vec3 // relative to Parent
	Parent   *Node
	Children []*Node
	Renderer *MeshRenderer
}

// AddChild creates a named child node at a local position.
func (n *Node) AddChild(name string, pos math.Vec3) *Node {
	child := &Node{Name: name, Position: pos, Parent: n}
	n.Children = append(n.Children, child)
	return child
}

// WorldPosition returns the node position with every parent offset applied.
func (n *Node) WorldPosition() math.Vec3 {
	pos := n.Position
	for p := n.Parent; p != nil; p = p.Parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// Graph is a tree of nodes under a single root.
type Graph struct {
	Root *Node
}

// NewGraph creates a graph whose root sits at the origin.
func NewGraph() *Graph {
	return &Graph{Root: &Node{Name: RootName}}
}

// Walk visits every node depth-first, parents before children.
func (g *Graph) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(g.Root)
}

// Renderers returns every mesh renderer in walk order.
func (g *Graph) Renderers() []*MeshRenderer {
	var out []*MeshRenderer
	g.Walk(func(n *Node) {
		if n.Renderer != nil {
			out = append(out, n.Renderer)
		}
	})
	return out
}

// Bounds returns the world-space box enclosing every mesh, and false when
// the graph holds no mesh.
func (g *Graph) Bounds() (grass.Bounds, bool) {
	var b grass.Bounds
	found := false
	for _, r := range g.Renderers() {
		wb := r.Mesh.Bounds.Translate(r.Node.WorldPosition())
		if !found {
			b, found = wb, true
			continue
		}
		b = b.Union(wb)
	}
	return b, found
}

// VertexCount returns the number of vertices across all meshes.
func (g *Graph) VertexCount() int {
	n := 0
	for _, r := range g.Renderers() {
		n += len(r.Mesh.Vertices)
	}
	return n
}
