package geo

import (
	"math"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for all distance math.
const EarthRadiusKm = 6371.0

// avgUrbanSpeedKmh is the nominal in-city travel speed behind ETA estimates.
// A deliberately simple linear model, not a routing engine.
const avgUrbanSpeedKmh = 40.0

// Haversine returns the great-circle distance between two coordinates in
// kilometers.
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ETAMinutes estimates travel time for a distance at the nominal urban speed.
func ETAMinutes(distanceKm float64) float64 {
	return distanceKm / avgUrbanSpeedKmh * 60
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
