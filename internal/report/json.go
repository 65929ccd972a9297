package report

import (
	"encoding/json"
	"io"

	"github.com/summitroutes/trackcompare/internal/lib/metrics"
	"github.com/summitroutes/trackcompare/internal/lib/overlap"
)

// Document is the machine-readable comparison report. Durations are
// rendered in seconds so that consumers do not deal with Go's
// nanosecond encoding.
type Document struct {
	Track1          TrackDocument  `json:"track1"`
	Track2          TrackDocument  `json:"track2"`
	Overlap         overlap.Result `json:"overlap"`
	ThresholdMeters float64        `json:"overlap_threshold_meters"`
}

// TrackDocument is one track's metrics in the JSON report.
type TrackDocument struct {
	Name            string                    `json:"name"`
	TotalDistanceKm float64                   `json:"total_distance_km"`
	PointCount      int                       `json:"point_count"`
	Elevation       *metrics.ElevationMetrics `json:"elevation,omitempty"`
	Speed           *SpeedDocument            `json:"speed,omitempty"`
}

// SpeedDocument is a track's speed metrics in the JSON report.
type SpeedDocument struct {
	DurationSeconds   float64 `json:"duration_seconds"`
	MovingTimeSeconds float64 `json:"moving_time_seconds"`
	AvgSpeedKmh       float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh       float64 `json:"max_speed_kmh"`
	AvgMovingSpeedKmh float64 `json:"avg_moving_speed_kmh"`
}

// NewDocument assembles the JSON report from computed results.
func NewDocument(m1, m2 metrics.TrackMetrics, res overlap.Result, thresholdMeters float64) Document {
	return Document{
		Track1:          newTrackDocument(m1),
		Track2:          newTrackDocument(m2),
		Overlap:         res,
		ThresholdMeters: thresholdMeters,
	}
}

// WriteJSON writes the report as indented JSON.
func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func newTrackDocument(m metrics.TrackMetrics) TrackDocument {
	doc := TrackDocument{
		Name:            m.TrackName,
		TotalDistanceKm: m.TotalDistanceKm,
		PointCount:      m.PointCount,
		Elevation:       m.Elevation,
	}
	if m.Speed != nil {
		doc.Speed = &SpeedDocument{
			DurationSeconds:   m.Speed.Duration.Seconds(),
			MovingTimeSeconds: m.Speed.MovingTime.Seconds(),
			AvgSpeedKmh:       m.Speed.AvgSpeedKmh,
			MaxSpeedKmh:       m.Speed.MaxSpeedKmh,
			AvgMovingSpeedKmh: m.Speed.AvgMovingSpeedKmh,
		}
	}
	return doc
}
