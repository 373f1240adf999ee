package grass

import (
	"iter"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// Field is the output of one generation call: a buffer of scattered points
// handed out chunk by chunk. It is consumed destructively and cannot be
// restarted; every call to Generate builds a new one.
type Field struct {
	anchor math.Vec3
	cfg    Config
	src    Source

	points  []math.Vec3
	total   int
	emitted int
	dropped int
	done    bool
}

// Generate scatters cfg.PointsPerPatch points over every patch of a
// cfg.PatchGridSize square grid and returns the resulting field.
//
// Point coordinates are grid-local; anchor is only carried along for the
// caller that places the meshes. src is reseeded with cfg.Seed before the
// first draw. A nil src gets a private RandomService.
func Generate(anchor math.Vec3, cfg Config, src Source) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = &RandomService{}
	}
	src.Seed(cfg.Seed)

	points := scatter(cfg, src)

	logger.Debug("grass field generated",
		zap.Int("grid", cfg.PatchGridSize),
		zap.Int("points", len(points)),
		zap.Int64("seed", cfg.Seed),
	)

	return &Field{
		anchor: anchor,
		cfg:    cfg,
		src:    src,
		points: points,
		total:  len(points),
	}, nil
}

// scatter walks the patch grid z-major, x-minor and fills the point buffer.
func scatter(cfg Config, src Source) []math.Vec3 {
	n := cfg.PatchGridSize
	size := cfg.PatchSize
	points := make([]math.Vec3, 0, cfg.TotalPoints())

	for z := range n {
		originZ := float32(z) * size.Z
		// Edges are computed like the grid lines so the last patch ends
		// exactly at n*size.
		edgeZ := float32(z+1) * size.Z
		for x := range n {
			originX := float32(x) * size.X
			edgeX := float32(x+1) * size.X
			for range cfg.PointsPerPatch {
				// z is drawn before x; seeded fields depend on this order
				dz := src.Float(0, 1) * size.Z
				dx := src.Float(0, 1) * size.X
				points = append(points, math.Vec3{
					X: below(originX+dx, edgeX),
					Y: 0,
					Z: below(originZ+dz, edgeZ),
				})
			}
		}
	}
	return points
}

// below keeps v strictly under the patch's far edge.
func below(v, edge float32) float32 {
	if v >= edge {
		return gomath.Nextafter32(edge, 0)
	}
	return v
}

// Next returns the next payload, or false once the field is exhausted.
//
// While more than MaxChunkVertices points are buffered, a full chunk is cut
// from the front. Under OverflowTruncate the field ends after that first
// chunk and whatever is still buffered is dropped. The final payload takes
// everything left. Height and width are drawn per payload.
func (f *Field) Next() (MeshPayload, bool) {
	if f.done {
		return MeshPayload{}, false
	}

	limit := f.cfg.MaxChunkVertices
	var vertices []math.Vec3

	if len(f.points) > limit {
		vertices = f.points[:limit:limit]
		f.points = f.points[limit:]

		if f.cfg.Overflow == OverflowTruncate {
			f.dropped = len(f.points)
			f.points = nil
			f.done = true
			logger.Warn("grass field truncated",
				zap.Int("emitted", limit),
				zap.Int("dropped", f.dropped),
			)
		}
	} else {
		vertices = f.points
		f.points = nil
		f.done = true
	}

	p := MeshPayload{
		Index:    f.emitted,
		Vertices: vertices,
		Topology: TopologyPoints,
		Height:   f.src.Float(f.cfg.HeightRange.Min, f.cfg.HeightRange.Max),
		Width:    f.src.Float(f.cfg.WidthRange.Min, f.cfg.WidthRange.Max),
		Bounds:   BoundsOf(vertices),
	}
	f.emitted++

	logger.Debug("grass chunk emitted",
		zap.Int("index", p.Index),
		zap.Int("vertices", len(p.Vertices)),
		zap.Float32("height", p.Height),
		zap.Float32("width", p.Width),
	)
	return p, true
}

// All returns an iterator over the remaining payloads.
func (f *Field) All() iter.Seq[MeshPayload] {
	return func(yield func(MeshPayload) bool) {
		for {
			p, ok := f.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Anchor returns the world position the field's meshes are placed at.
func (f *Field) Anchor() math.Vec3 {
	return f.anchor
}

// Total returns the number of points scattered, emitted or not.
func (f *Field) Total() int {
	return f.total
}

// Remaining returns the number of points still buffered.
func (f *Field) Remaining() int {
	return len(f.points)
}

// Emitted returns the number of payloads handed out so far.
func (f *Field) Emitted() int {
	return f.emitted
}

// Dropped returns the number of points discarded by OverflowTruncate.
func (f *Field) Dropped() int {
	return f.dropped
}
