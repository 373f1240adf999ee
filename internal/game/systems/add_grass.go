// Package systems holds the reactive systems driven by the game loop.
package systems

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/grassland/internal/engine/scene"
	"github.com/Faultbox/grassland/internal/game/entity"
	"github.com/Faultbox/grassland/internal/grass"
	"github.com/Faultbox/grassland/internal/logger"
	"github.com/Faultbox/grassland/pkg/math"
)

// MeshSink turns a grass payload into a renderable object placed at anchor.
type MeshSink interface {
	Attach(anchor math.Vec3, p grass.MeshPayload) (*scene.MeshRenderer, error)
}

// SeedFunc picks the generation seed for an entity.
type SeedFunc func(e *entity.Entity) int64

// SeedFromBase returns a SeedFunc deriving a per-entity seed from base, so
// runs are reproducible while entities still differ. A zero base is replaced
// by one wall-clock seed, read once when SeedFromBase is called.
func SeedFromBase(base int64) SeedFunc {
	if base == 0 {
		base = grass.TimeSeed()
	}
	return func(e *entity.Entity) int64 { return base + int64(e.ID) }
}

// Option configures an AddGrassSystem.
type Option func(*AddGrassSystem)

// WithSeedFunc overrides how seeds are chosen. By default every Execute
// derives its seeds with SeedFromBase(cfg.Seed).
func WithSeedFunc(fn SeedFunc) Option {
	return func(s *AddGrassSystem) {
		s.seed = fn
	}
}

// AddGrassSystem grows a grass field for every entity that gets a grass
// position. Each entity is handled once; entities that already carry grass
// meshes are skipped.
type AddGrassSystem struct {
	collector *entity.Collector
	sink      MeshSink
	cfg       grass.Config
	seed      SeedFunc
	log       *zap.Logger
}

// NewAddGrassSystem creates the system and subscribes it to grass position
// changes in ctx. The config is validated here so a bad config fails at
// startup rather than per entity.
func NewAddGrassSystem(ctx *entity.Context, sink MeshSink, cfg grass.Config, opts ...Option) (*AddGrassSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &AddGrassSystem{
		collector: ctx.CreateCollector(entity.MatchGrassPos),
		sink:      sink,
		cfg:       cfg,
		log:       logger.Named("grass"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Pending returns the number of entities waiting for the next Execute.
func (s *AddGrassSystem) Pending() int {
	return s.collector.Len()
}

// Execute processes every entity collected since the last call and returns
// the number of meshes attached. A failing entity does not stop the batch;
// all failures are joined into the returned error.
func (s *AddGrassSystem) Execute() (int, error) {
	var (
		attached int
		errs     []error
	)
	seed := s.seed
	if seed == nil {
		seed = SeedFromBase(s.cfg.Seed)
	}
	for _, e := range s.collector.Drain() {
		if !e.HasGrassPos() {
			continue
		}
		n, err := s.grow(e, seed)
		attached += n
		if err != nil {
			errs = append(errs, fmt.Errorf("entity %d: %w", e.ID, err))
		}
	}
	return attached, errors.Join(errs...)
}

func (s *AddGrassSystem) grow(e *entity.Entity, seed SeedFunc) (int, error) {
	if e.HasGrassMeshRenderer() {
		s.log.Debug("grass already attached", zap.Uint32("entity", uint32(e.ID)))
		return 0, nil
	}
	if !e.HasGrassForces() {
		e.AddGrassForces()
	}

	cfg := s.cfg
	cfg.Seed = seed(e)

	field, err := grass.Generate(*e.GrassPos, cfg, nil)
	if err != nil {
		return 0, err
	}

	n := 0
	for p := range field.All() {
		r, err := s.sink.Attach(field.Anchor(), p)
		if err != nil {
			return n, fmt.Errorf("attach chunk %d: %w", p.Index, err)
		}
		e.AddGrassMeshRenderer(r)
		n++
	}

	s.log.Info("grass field attached",
		zap.Uint32("entity", uint32(e.ID)),
		zap.Int64("seed", cfg.Seed),
		zap.Int("points", field.Total()),
		zap.Int("meshes", n),
		zap.Int("dropped", field.Dropped()),
	)
	return n, nil
}
