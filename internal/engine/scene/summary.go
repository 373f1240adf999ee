package scene

// Summary is a serializable snapshot of the graph's grass meshes.
type Summary struct {
	Root     string        `yaml:"root"`
	Meshes   int           `yaml:"meshes"`
	Vertices int           `yaml:"vertices"`
	Nodes    []NodeSummary `yaml:"nodes"`
}

// NodeSummary describes one grass node.
type NodeSummary struct {
	Name       string             `yaml:"name"`
	Position   [3]float32         `yaml:"position,flow"`
	Vertices   int                `yaml:"vertices"`
	BoundsMin  [3]float32         `yaml:"bounds_min,flow"`
	BoundsMax  [3]float32         `yaml:"bounds_max,flow"`
	Material   string             `yaml:"material"`
	Properties map[string]float32 `yaml:"properties,omitempty"`
	Points     [][3]float32       `yaml:"points,omitempty,flow"`
}

// Summarize builds a Summary. Point coordinates are only listed when
// includePoints is set.
func (g *Graph) Summarize(includePoints bool) Summary {
	s := Summary{Root: g.Root.Name}
	for _, r := range g.Renderers() {
		ns := NodeSummary{
			Name:      r.Node.Name,
			Position:  r.Node.WorldPosition().Array(),
			Vertices:  len(r.Mesh.Vertices),
			BoundsMin: r.Mesh.Bounds.Min.Array(),
			BoundsMax: r.Mesh.Bounds.Max.Array(),
			Material:  r.Material.Name,
		}
		for _, name := range r.Material.Properties() {
			if ns.Properties == nil {
				ns.Properties = make(map[string]float32)
			}
			ns.Properties[name], _ = r.Material.Float(name)
		}
		if includePoints {
			ns.Points = make([][3]float32, len(r.Mesh.Vertices))
			for i, v := range r.Mesh.Vertices {
				ns.Points[i] = v.Array()
			}
		}
		s.Nodes = append(s.Nodes, ns)
		s.Meshes++
		s.Vertices += ns.Vertices
	}
	return s
}
