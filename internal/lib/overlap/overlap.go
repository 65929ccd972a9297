// Package overlap measures how much of each of two tracks physically
// coincides with the other, independent of timing or direction. A
// segment counts as overlapping when its midpoint lies within a distance
// threshold of any point on the other track.
package overlap

import (
	"context"
	"runtime"
	"sync"

	"github.com/summitroutes/trackcompare/internal/lib/geo"
	"github.com/summitroutes/trackcompare/internal/track"
)

// DefaultThresholdMeters is the overlap distance threshold applied when
// the caller passes a non-positive value.
const DefaultThresholdMeters = 50.0

// Result holds the overlap statistics for a track pair. The procedure is
// symmetric but the representation is not: each track gets its own
// overlap and unique lengths.
type Result struct {
	Track1OverlapKm      float64 `json:"track1_overlap_km"`
	Track1OverlapPercent float64 `json:"track1_overlap_percent"`
	Track2OverlapKm      float64 `json:"track2_overlap_km"`
	Track2OverlapPercent float64 `json:"track2_overlap_percent"`

	// SharedDistanceKm is the arithmetic mean of the two overlap
	// lengths. It approximates the common route length and has no exact
	// geometric meaning when the tracks differ greatly in length.
	SharedDistanceKm float64 `json:"shared_distance_km"`

	Track1UniqueKm float64 `json:"track1_unique_km"`
	Track2UniqueKm float64 `json:"track2_unique_km"`
}

// Segment is one consecutive point pair of a track, classified against
// the other track.
type Segment struct {
	Start       geo.Point
	End         geo.Point
	LengthKm    float64
	Overlapping bool
}

// Analyze computes the overlap between two tracks. thresholdMeters
// defaults to DefaultThresholdMeters when non-positive. The context
// cancels the underlying pairwise search, which is O(n*m) in the worst
// case and dominates runtime on long tracks.
func Analyze(ctx context.Context, track1, track2 track.Track, thresholdMeters float64) (Result, error) {
	segs1, err := ClassifySegments(ctx, track1, track2, thresholdMeters)
	if err != nil {
		return Result{}, err
	}
	segs2, err := ClassifySegments(ctx, track2, track1, thresholdMeters)
	if err != nil {
		return Result{}, err
	}
	return FromSegments(segs1, segs2), nil
}

// FromSegments derives the overlap statistics from both tracks'
// classified segments.
func FromSegments(segs1, segs2 []Segment) Result {
	total1, overlap1 := tally(segs1)
	total2, overlap2 := tally(segs2)

	r := Result{
		Track1OverlapKm:  overlap1,
		Track2OverlapKm:  overlap2,
		SharedDistanceKm: (overlap1 + overlap2) / 2,
		Track1UniqueKm:   total1 - overlap1,
		Track2UniqueKm:   total2 - overlap2,
	}
	if total1 > 0 {
		r.Track1OverlapPercent = overlap1 / total1 * 100
	}
	if total2 > 0 {
		r.Track2OverlapPercent = overlap2 / total2 * 100
	}
	return r
}

func tally(segs []Segment) (totalKm, overlapKm float64) {
	for _, s := range segs {
		totalKm += s.LengthKm
		if s.Overlapping {
			overlapKm += s.LengthKm
		}
	}
	return totalKm, overlapKm
}

// ClassifySegments classifies every consecutive segment of t against the
// points of other. A track with fewer than two points has no segments
// and is never overlapping. The segment loop is partitioned across
// workers; each worker independently queries a shared read-only
// nearest-point index over the other track.
func ClassifySegments(ctx context.Context, t, other track.Track, thresholdMeters float64) ([]Segment, error) {
	if thresholdMeters <= 0 {
		thresholdMeters = DefaultThresholdMeters
	}
	if len(t.Points) < 2 {
		return nil, ctx.Err()
	}

	otherPoints := make([]geo.Point, len(other.Points))
	for i, p := range other.Points {
		otherPoints[i] = p.Position()
	}
	index := geo.NewNearestIndex(otherPoints, thresholdMeters)

	segments := make([]Segment, len(t.Points)-1)

	workers := runtime.NumCPU()
	if workers > len(segments) {
		workers = len(segments)
	}
	chunk := (len(segments) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(segments) {
			end = len(segments)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				a := t.Points[i].Position()
				b := t.Points[i+1].Position()
				segments[i] = Segment{
					Start:       a,
					End:         b,
					LengthKm:    geo.DistanceKm(a, b),
					Overlapping: index.Nearest(geo.Midpoint(a, b)) <= thresholdMeters,
				}
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}
