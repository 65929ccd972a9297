// Package track defines the track model consumed by the analytics
// engines and the sources that produce it (GPX files and encoded
// polylines). Tracks are read-only after construction.
package track

import (
	"errors"
	"time"

	"github.com/summitroutes/trackcompare/internal/lib/geo"
)

// ErrNoPoints is returned by track sources when the input contains no
// track points. The analytics engines never raise it themselves; they
// degrade to zero metrics instead.
var ErrNoPoints = errors.New("no track points found")

// Point is a single recorded position. Elevation and Time are nil when
// the source carried no such data for the point.
type Point struct {
	Latitude  float64
	Longitude float64
	Elevation *float64
	Time      *time.Time
}

// Position returns the point's geographic coordinate.
func (p Point) Position() geo.Point {
	return geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Track is an ordered sequence of points representing one recorded
// route. Point order is route order; reordering invalidates every
// distance calculation built on it.
type Track struct {
	Name   string
	Points []Point
}

// HasElevation reports whether at least one point carries elevation data.
func (t Track) HasElevation() bool {
	for _, p := range t.Points {
		if p.Elevation != nil {
			return true
		}
	}
	return false
}

// HasTimestamps reports whether at least one point carries a timestamp.
func (t Track) HasTimestamps() bool {
	for _, p := range t.Points {
		if p.Time != nil {
			return true
		}
	}
	return false
}
