// Package metrics computes per-track distance, elevation and speed
// statistics. All computation is pure and single-pass apart from one
// sort of the timestamped points; degenerate input yields zero or
// absent metrics, never an error.
package metrics

import (
	"sort"
	"time"

	"github.com/summitroutes/trackcompare/internal/lib/geo"
	"github.com/summitroutes/trackcompare/internal/track"
)

const (
	// elevationNoiseMeters is the minimum elevation change counted as
	// genuine ascent or descent. Smaller moves are GPS jitter and keep
	// accumulating against the same reference sample.
	elevationNoiseMeters = 2.0

	// maxRealisticSpeedKmh rejects GPS glitch segments outright. Glitch
	// segments are excluded from max-speed and moving-time accounting,
	// not clamped.
	maxRealisticSpeedKmh = 200.0

	// minMovingSpeedKmh is the threshold below which a segment counts
	// as stopped rather than moving.
	minMovingSpeedKmh = 1.0
)

// ElevationMetrics holds elevation statistics for a track. All values
// are meters.
type ElevationMetrics struct {
	MinElevation float64 `json:"min_elevation_m"`
	MaxElevation float64 `json:"max_elevation_m"`
	TotalAscent  float64 `json:"total_ascent_m"`
	TotalDescent float64 `json:"total_descent_m"`
}

// Range returns the spread between the highest and lowest elevation.
func (e ElevationMetrics) Range() float64 {
	return e.MaxElevation - e.MinElevation
}

// SpeedMetrics holds speed and timing statistics for a track.
type SpeedMetrics struct {
	Duration          time.Duration `json:"duration_ns"`
	MovingTime        time.Duration `json:"moving_time_ns"`
	AvgSpeedKmh       float64       `json:"avg_speed_kmh"`
	MaxSpeedKmh       float64       `json:"max_speed_kmh"`
	AvgMovingSpeedKmh float64       `json:"avg_moving_speed_kmh"`
}

// TrackMetrics holds all computed metrics for a track. Elevation is nil
// when the track carries no elevation data; Speed is nil without at
// least two timestamped points spanning a non-zero duration.
type TrackMetrics struct {
	TrackName       string            `json:"track_name"`
	TotalDistanceKm float64           `json:"total_distance_km"`
	PointCount      int               `json:"point_count"`
	Elevation       *ElevationMetrics `json:"elevation,omitempty"`
	Speed           *SpeedMetrics     `json:"speed,omitempty"`
}

// Calculate computes all metrics for a track.
func Calculate(t track.Track) TrackMetrics {
	return TrackMetrics{
		TrackName:       t.Name,
		TotalDistanceKm: TotalDistanceKm(t),
		PointCount:      len(t.Points),
		Elevation:       elevationMetrics(t),
		Speed:           speedMetrics(t),
	}
}

// TotalDistanceKm sums the great-circle distances between consecutive
// points. Point order is route order.
func TotalDistanceKm(t track.Track) float64 {
	total := 0.0
	for i := 1; i < len(t.Points); i++ {
		total += geo.DistanceKm(t.Points[i-1].Position(), t.Points[i].Position())
	}
	return total
}

// climbAccumulator implements the noise-filtered ascent/descent state
// machine. The reference sample only advances once a delta of at least
// elevationNoiseMeters is crossed; sub-threshold drift keeps comparing
// against the same reference until it adds up.
type climbAccumulator struct {
	reference float64
	ascent    float64
	descent   float64
}

func (c *climbAccumulator) observe(sample float64) {
	diff := sample - c.reference
	if diff >= elevationNoiseMeters {
		c.ascent += diff
		c.reference = sample
	} else if diff <= -elevationNoiseMeters {
		c.descent += -diff
		c.reference = sample
	}
}

func elevationMetrics(t track.Track) *ElevationMetrics {
	var elevations []float64
	for _, p := range t.Points {
		if p.Elevation != nil {
			elevations = append(elevations, *p.Elevation)
		}
	}
	if len(elevations) == 0 {
		return nil
	}

	m := &ElevationMetrics{
		MinElevation: elevations[0],
		MaxElevation: elevations[0],
	}
	climb := climbAccumulator{reference: elevations[0]}
	for _, e := range elevations[1:] {
		if e < m.MinElevation {
			m.MinElevation = e
		}
		if e > m.MaxElevation {
			m.MaxElevation = e
		}
		climb.observe(e)
	}
	m.TotalAscent = climb.ascent
	m.TotalDescent = climb.descent
	return m
}

func speedMetrics(t track.Track) *SpeedMetrics {
	if len(t.Points) < 2 {
		return nil
	}

	var timed []track.Point
	for _, p := range t.Points {
		if p.Time != nil {
			timed = append(timed, p)
		}
	}
	if len(timed) < 2 {
		return nil
	}

	// Input order is not assumed to be time-sorted.
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Time.Before(*timed[j].Time)
	})

	duration := timed[len(timed)-1].Time.Sub(*timed[0].Time)
	if duration <= 0 {
		return nil
	}

	m := &SpeedMetrics{
		Duration:    duration,
		AvgSpeedKmh: TotalDistanceKm(t) / duration.Seconds() * 3600,
	}

	movingDistanceKm := 0.0
	for i := 1; i < len(timed); i++ {
		elapsed := timed[i].Time.Sub(*timed[i-1].Time)
		if elapsed <= 0 {
			// Duplicate or out-of-order timestamp.
			continue
		}

		segmentKm := geo.DistanceKm(timed[i-1].Position(), timed[i].Position())
		speedKmh := segmentKm / elapsed.Seconds() * 3600

		if speedKmh > maxRealisticSpeedKmh {
			continue
		}

		if speedKmh > m.MaxSpeedKmh {
			m.MaxSpeedKmh = speedKmh
		}
		if speedKmh >= minMovingSpeedKmh {
			m.MovingTime += elapsed
			movingDistanceKm += segmentKm
		}
	}

	if m.MovingTime > 0 {
		m.AvgMovingSpeedKmh = movingDistanceKm / m.MovingTime.Seconds() * 3600
	}
	return m
}
