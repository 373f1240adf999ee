// Package lighting provides the directional light used to shade grass.
package lighting

import (
	"math"

	gmath "github.com/Faultbox/grassland/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
type Sun struct {
	Azimuth   float32 `yaml:"azimuth"`   // rotation around Y, 0-360
	Elevation float32 `yaml:"elevation"` // angle above the horizon, 0-90
	Ambient   float32 `yaml:"ambient"`   // light reaching faces turned away
}

// DefaultSun returns a late-morning sun.
func DefaultSun() Sun {
	return Sun{Azimuth: 135, Elevation: 50, Ambient: 0.35}
}

// Direction returns the normalized vector pointing towards the sun.
func (s Sun) Direction() gmath.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the sun.
func SunDirection(azimuth, elevation float32) gmath.Vec3 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	return gmath.Vec3{
		X: float32(math.Cos(el) * math.Sin(az)),
		Y: float32(math.Sin(el)),
		Z: float32(math.Cos(el) * math.Cos(az)),
	}
}
