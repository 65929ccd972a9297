// Package geo provides the great-circle distance primitive and the
// nearest-point lookup used by the metrics and overlap engines. All
// functions are pure; coordinates are assumed valid (latitude in
// [-90, 90], longitude in [-180, 180]) and are not re-validated here.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Point represents a geographic coordinate.
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// DistanceMeters calculates the great-circle distance between two points
// in meters using the haversine formula.
func DistanceMeters(p1, p2 Point) float64 {
	// Identical points are exactly zero, not haversine-of-zero.
	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0
	}

	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dlat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dlon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// DistanceKm calculates the great-circle distance between two points in
// kilometers.
func DistanceKm(p1, p2 Point) float64 {
	return DistanceMeters(p1, p2) / 1000
}

// Midpoint returns the arithmetic mean of the two endpoints. This is a
// planar approximation, not a true great-circle midpoint; for segments a
// few tens of meters long the error is negligible.
func Midpoint(p1, p2 Point) Point {
	return Point{
		Latitude:  (p1.Latitude + p2.Latitude) / 2,
		Longitude: (p1.Longitude + p2.Longitude) / 2,
	}
}
