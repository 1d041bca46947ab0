// internal/matching/geo.go

package matching

import (
	"math"

	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

const (
	earthRadiusMiles = 3963.0

	// DefaultDistanceMiles is used when either side has no location
	DefaultDistanceMiles = 50.0
)

// DistanceMiles returns the great-circle distance between a and b
func DistanceMiles(a, b *profile.Coordinates) float64 {
	if a == nil || b == nil {
		return DefaultDistanceMiles
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h just past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
