// Package geo provides great-circle distance math and distance formatting
// for commune-to-commune proximity display.
package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

// earthRadiusKm treats Earth as a perfect sphere, which is accurate enough
// for listing proximity display.
const earthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geohash returns the geohash cell of the coordinates, used by map clients
// for clustering nearby communes.
func (c Coordinates) Geohash() string {
	return geohash.Encode(c.Latitude, c.Longitude)
}

// DistanceKm computes the haversine distance in kilometers between two
// points. Symmetric, and zero for identical coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceBetween computes the haversine distance between two coordinate
// pairs.
func DistanceBetween(a, b Coordinates) float64 {
	return DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
