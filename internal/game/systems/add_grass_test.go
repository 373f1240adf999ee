package systems

import (
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/internal/game/entity"
	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/pkg/math"
)

type attachCall struct {
	anchor  math.Vec3
	payload grass.MeshPayload
}

type recordingSink struct {
	calls  []attachCall
	failAt int // 1-based call number that fails, 0 = never
}

func (s *recordingSink) Attach(anchor math.Vec3, p grass.MeshPayload) (*scene.MeshRenderer, error) {
	s.calls = append(s.calls, attachCall{anchor: anchor, payload: p})
	if s.failAt == len(s.calls) {
		return nil, errors.New("gpu out of memory")
	}
	return &scene.MeshRenderer{}, nil
}

func gridConfig(grid, points, chunk int) grass.Config {
	cfg := grass.DefaultConfig()
	cfg.PatchGridSize = grid
	cfg.PointsPerPatch = points
	cfg.MaxChunkVertices = chunk
	cfg.Seed = 100
	return cfg
}

func TestAddGrassSystemExecute(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{}
	sys, err := NewAddGrassSystem(ctx, sink, gridConfig(3, 2, 5))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	e := ctx.Create()
	ctx.SetGrassPos(e, math.Vec3{X: 4, Z: 8})
	ctx.Create() // no marker, ignored

	if sys.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", sys.Pending())
	}

	n, err := sys.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// 18 points in chunks of 5: 5, 5, 5, 3
	if n != 4 || len(sink.calls) != 4 {
		t.Fatalf("attached %d meshes (%d calls), want 4", n, len(sink.calls))
	}
	for i, c := range sink.calls {
		if c.anchor != (math.Vec3{X: 4, Z: 8}) {
			t.Errorf("call %d anchor = %v", i, c.anchor)
		}
		if c.payload.Index != i {
			t.Errorf("call %d payload index = %d", i, c.payload.Index)
		}
	}
	if !e.HasGrassForces() || len(e.GrassForces) != 0 {
		t.Error("forces list should be initialized empty")
	}
	if len(e.GrassMeshRenderers) != 4 {
		t.Errorf("expected 4 renderer handles, got %d", len(e.GrassMeshRenderers))
	}
}

func TestAddGrassSystemOneShot(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{}
	sys, err := NewAddGrassSystem(ctx, sink, gridConfig(1, 1, 10))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	e := ctx.Create()
	ctx.SetGrassPos(e, math.Vec3{})
	if _, err := sys.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Nothing new collected.
	if n, _ := sys.Execute(); n != 0 {
		t.Errorf("second Execute attached %d meshes", n)
	}

	// A repeated notification must not attach a second field.
	ctx.SetGrassPos(e, math.Vec3{X: 1})
	if n, _ := sys.Execute(); n != 0 {
		t.Errorf("re-notified entity attached %d meshes", n)
	}
	if len(sink.calls) != 1 {
		t.Errorf("expected 1 sink call, got %d", len(sink.calls))
	}
}

func TestAddGrassSystemKeepsForces(t *testing.T) {
	ctx := entity.NewContext()
	sys, err := NewAddGrassSystem(ctx, &recordingSink{}, gridConfig(1, 1, 10))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	e := ctx.Create()
	e.AddGrassForces(entity.Force{Strength: 3})
	ctx.SetGrassPos(e, math.Vec3{})
	sys.Execute()

	if len(e.GrassForces) != 1 || e.GrassForces[0].Strength != 3 {
		t.Errorf("existing forces replaced: %v", e.GrassForces)
	}
}

func TestAddGrassSystemSkipsRemovedMarker(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{}
	sys, err := NewAddGrassSystem(ctx, sink, gridConfig(1, 1, 10))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	e := ctx.Create()
	ctx.SetGrassPos(e, math.Vec3{})
	ctx.RemoveGrassPos(e)

	if n, err := sys.Execute(); n != 0 || err != nil {
		t.Errorf("Execute() = %d, %v, want 0, nil", n, err)
	}
	if e.HasGrassForces() {
		t.Error("filtered entity should be left untouched")
	}
}

func TestAddGrassSystemSeeds(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{}

	var seeded []entity.ID
	sys, err := NewAddGrassSystem(ctx, sink, gridConfig(2, 3, 100), WithSeedFunc(func(e *entity.Entity) int64 {
		seeded = append(seeded, e.ID)
		return 5
	}))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	a := ctx.Create()
	b := ctx.Create()
	ctx.SetGrassPos(a, math.Vec3{})
	ctx.SetGrassPos(b, math.Vec3{X: 50})
	if _, err := sys.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(seeded) != 2 || seeded[0] != a.ID || seeded[1] != b.ID {
		t.Errorf("seed func called for %v", seeded)
	}
	pa, pb := sink.calls[0].payload, sink.calls[1].payload
	for i := range pa.Vertices {
		if pa.Vertices[i] != pb.Vertices[i] {
			t.Fatal("same seed should give the same grid-local points")
		}
	}
	if pa.Height != pb.Height || pa.Width != pb.Width {
		t.Error("same seed should give the same parameters")
	}
}

func TestSeedFromBase(t *testing.T) {
	e := &entity.Entity{ID: 7}
	if got := SeedFromBase(1000)(e); got != 1007 {
		t.Errorf("SeedFromBase(1000) = %d, want 1007", got)
	}

	timed := SeedFromBase(0)
	a, b := timed(e), timed(&entity.Entity{ID: 8})
	if a == 0 {
		t.Error("time seed should not be zero")
	}
	if b-a != 1 {
		t.Errorf("time-based seeds %d and %d should share one base", a, b)
	}
}

func TestAddGrassSystemTimeSeedBatch(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{}
	cfg := gridConfig(4, 2, 100)
	cfg.Seed = 0
	sys, err := NewAddGrassSystem(ctx, sink, cfg)
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	for range 3 {
		ctx.SetGrassPos(ctx.Create(), math.Vec3{})
	}
	if _, err := sys.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(sink.calls) != 3 {
		t.Fatalf("got %d payloads, want 3", len(sink.calls))
	}

	// Consecutive IDs get distinct seeds even when the clock does not move
	for i := 1; i < len(sink.calls); i++ {
		prev, cur := sink.calls[i-1].payload, sink.calls[i].payload
		if slices.Equal(prev.Vertices, cur.Vertices) {
			t.Errorf("entities %d and %d grew identical fields", i, i+1)
		}
	}
}

func TestAddGrassSystemSinkError(t *testing.T) {
	ctx := entity.NewContext()
	sink := &recordingSink{failAt: 2}
	sys, err := NewAddGrassSystem(ctx, sink, gridConfig(2, 1, 2))
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	a := ctx.Create()
	b := ctx.Create()
	ctx.SetGrassPos(a, math.Vec3{})
	ctx.SetGrassPos(b, math.Vec3{})

	// a: 4 points in 2 chunks, the second fails. b still gets both chunks.
	n, err := sys.Execute()
	if err == nil {
		t.Fatal("expected sink error")
	}
	if n != 3 {
		t.Errorf("attached %d meshes, want 3", n)
	}
	if len(a.GrassMeshRenderers) != 1 || len(b.GrassMeshRenderers) != 2 {
		t.Errorf("renderers a=%d b=%d, want 1 and 2", len(a.GrassMeshRenderers), len(b.GrassMeshRenderers))
	}
}

func TestAddGrassSystemInvalidConfig(t *testing.T) {
	cfg := gridConfig(0, 1, 10)
	_, err := NewAddGrassSystem(entity.NewContext(), &recordingSink{}, cfg)
	if !errors.Is(err, grass.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAddGrassSystemWithScene(t *testing.T) {
	ctx := entity.NewContext()
	graph := scene.NewGraph()
	sink := scene.NewGrassSink(graph, scene.NewMaterial("grass", scene.PropHeight, scene.PropWidth))

	cfg := gridConfig(255, 1, 65000)
	sys, err := NewAddGrassSystem(ctx, sink, cfg)
	if err != nil {
		t.Fatalf("NewAddGrassSystem: %v", err)
	}

	e := ctx.Create()
	ctx.SetGrassPos(e, math.Vec3{X: -10})
	if _, err := sys.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	rs := graph.Renderers()
	if len(rs) != 2 {
		t.Fatalf("expected 2 grass nodes, got %d", len(rs))
	}
	if len(rs[0].Mesh.Vertices) != 65000 || len(rs[1].Mesh.Vertices) != 25 {
		t.Errorf("mesh sizes %d, %d", len(rs[0].Mesh.Vertices), len(rs[1].Mesh.Vertices))
	}
	for _, r := range rs {
		h, _ := r.Material.Float(scene.PropHeight)
		w, _ := r.Material.Float(scene.PropWidth)
		if h < 1.0 || h >= 1.5 || w < 0.01 || w >= 0.03 {
			t.Errorf("parameters out of range: height %g width %g", h, w)
		}
		if r.Node.WorldPosition() != (math.Vec3{X: -10}) {
			t.Errorf("node at %v", r.Node.WorldPosition())
		}
	}
	if e.GrassMeshRenderers[0] != rs[0] {
		t.Error("entity should hold the scene's renderer handles")
	}
}
