package grass

import "github.com/Faultbox/grassland/pkg/math"

// Topology is the primitive type a payload's vertices are drawn as.
type Topology uint8

const (
	// TopologyPoints draws every vertex as a single point (one blade root).
	TopologyPoints Topology = iota
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TopologyPoints:
		return "points"
	default:
		return "unknown"
	}
}

// MeshPayload is one chunk of a grass field, ready to become a point mesh.
type MeshPayload struct {
	Index    int // position in the field's emission order
	Vertices []math.Vec3
	Topology Topology
	Height   float32 // blade height, bound to the _Height shader property
	Width    float32 // blade width, bound to the _Width shader property
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// BoundsOf returns the bounds enclosing every vertex. Empty input yields zero bounds.
func BoundsOf(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Union returns the bounds enclosing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Translate returns b moved by offset.
func (b Bounds) Translate(offset math.Vec3) Bounds {
	return Bounds{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
