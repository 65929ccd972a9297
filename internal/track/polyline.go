package track

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// FromEncodedPolyline decodes a Google encoded polyline into a named
// track. Polylines carry neither elevation nor timestamps, so the
// resulting track only supports distance and overlap analytics; it is
// how a recorded GPX gets compared against a planned route.
func FromEncodedPolyline(name, encoded string) (Track, error) {
	if encoded == "" {
		return Track{}, ErrNoPoints
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return Track{}, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(coords) == 0 {
		return Track{}, ErrNoPoints
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{Latitude: coord[0], Longitude: coord[1]}
	}

	return Track{Name: name, Points: points}, nil
}
