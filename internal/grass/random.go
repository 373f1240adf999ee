package grass

import (
	gomath "math"
	"math/rand/v2"
	"time"
)

// Source is the random number source a field draws from.
type Source interface {
	// Seed resets the source so the following draws are a function of seed.
	Seed(seed int64)
	// Float returns a uniform value in [min, max).
	Float(min, max float32) float32
}

// RandomService is a Source backed by a PCG generator.
type RandomService struct {
	r *rand.Rand
}

// NewRandomService creates a RandomService seeded with seed.
func NewRandomService(seed int64) *RandomService {
	s := &RandomService{}
	s.Seed(seed)
	return s
}

// Seed implements Source.
func (s *RandomService) Seed(seed int64) {
	s.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Float implements Source.
func (s *RandomService) Float(min, max float32) float32 {
	if max <= min {
		return min
	}
	v := float32(float64(min) + s.r.Float64()*float64(max-min))
	// float32 rounding can land exactly on max
	if v >= max {
		v = gomath.Nextafter32(max, min)
	}
	return v
}

// TimeSeed returns a wall-clock seed for callers that want a different field
// on every run.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}
