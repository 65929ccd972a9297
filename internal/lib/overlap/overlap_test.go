package overlap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitroutes/trackcompare/internal/track"
)

// lineTrack returns n points at the given latitude, spaced step degrees
// of longitude apart. At the equator 0.001 degrees is ~111.3m.
func lineTrack(name string, lat, step float64, n int) track.Track {
	points := make([]track.Point, n)
	for i := range points {
		points[i] = track.Point{Latitude: lat, Longitude: float64(i) * step}
	}
	return track.Track{Name: name, Points: points}
}

func TestAnalyze_IdenticalTracks(t *testing.T) {
	// ~89m segments: every midpoint is ~44.5m from the nearest fix of
	// the copy, inside the 50m threshold.
	a := lineTrack("a", 0, 0.0008, 5)
	b := lineTrack("b", 0, 0.0008, 5)

	res, err := Analyze(context.Background(), a, b, 50.0)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, res.Track1OverlapPercent, 1e-9)
	assert.InDelta(t, 100.0, res.Track2OverlapPercent, 1e-9)
	assert.InDelta(t, 0.0, res.Track1UniqueKm, 1e-9)
	assert.InDelta(t, 0.0, res.Track2UniqueKm, 1e-9)
	assert.InDelta(t, res.Track1OverlapKm, res.SharedDistanceKm, 1e-9)
}

func TestAnalyze_IdenticalTracks_CoarseFixSpacing(t *testing.T) {
	// Two identical 3-point tracks spaced 0.001 degrees apart at the
	// equator (~222m total). The midpoint of a 111m segment sits ~56m
	// from the nearest fix of the copy, so the classification needs a
	// threshold above that; 50m would classify nothing as shared.
	a := lineTrack("a", 0, 0.001, 3)
	b := lineTrack("b", 0, 0.001, 3)

	res, err := Analyze(context.Background(), a, b, 60.0)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, res.Track1OverlapPercent, 1e-9)
	assert.InDelta(t, 0.0, res.Track1UniqueKm, 1e-9)
	assert.InDelta(t, 0.222, res.Track1OverlapKm, 0.002)
}

func TestAnalyze_DistantTracks(t *testing.T) {
	// Latitude 0 vs latitude 0.1: ~11km apart, far beyond 10x the threshold.
	a := lineTrack("a", 0, 0.001, 5)
	b := lineTrack("b", 0.1, 0.001, 5)

	res, err := Analyze(context.Background(), a, b, 50.0)
	require.NoError(t, err)

	assert.Zero(t, res.Track1OverlapPercent)
	assert.Zero(t, res.Track2OverlapPercent)
	assert.Zero(t, res.SharedDistanceKm)
	assert.InDelta(t, 0.445, res.Track1UniqueKm, 0.005)
	assert.InDelta(t, 0.445, res.Track2UniqueKm, 0.005)
}

func TestAnalyze_PartialOverlap(t *testing.T) {
	// Track b follows track a at first, then veers ~5.5km north.
	a := lineTrack("a", 0, 0.0008, 9)
	b := lineTrack("b", 0, 0.0008, 9)
	for i := 5; i < len(b.Points); i++ {
		b.Points[i].Latitude = 0.05
	}

	res, err := Analyze(context.Background(), a, b, 50.0)
	require.NoError(t, err)

	assert.Greater(t, res.Track1OverlapPercent, 0.0)
	assert.Less(t, res.Track1OverlapPercent, 100.0)
	assert.Greater(t, res.Track1UniqueKm, 0.0)
	assert.Greater(t, res.Track2UniqueKm, res.Track1UniqueKm,
		"the veering track has more unique length")
}

func TestAnalyze_DegenerateTracks(t *testing.T) {
	single := track.Track{Name: "single", Points: []track.Point{{Latitude: 0, Longitude: 0}}}
	normal := lineTrack("normal", 0, 0.001, 3)

	res, err := Analyze(context.Background(), single, normal, 50.0)
	require.NoError(t, err)

	assert.Zero(t, res.Track1OverlapKm)
	assert.Zero(t, res.Track1OverlapPercent, "zero total length must not divide by zero")
	assert.Zero(t, res.Track1UniqueKm)
	// The full track's length is split between overlap and unique.
	assert.InDelta(t, 0.222, res.Track2UniqueKm+res.Track2OverlapKm, 0.002)
}

func TestAnalyze_DefaultThreshold(t *testing.T) {
	a := lineTrack("a", 0, 0.0008, 5)
	b := lineTrack("b", 0, 0.0008, 5)

	res, err := Analyze(context.Background(), a, b, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Track1OverlapPercent, 1e-9,
		"non-positive threshold should fall back to the 50m default")
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, lineTrack("a", 0, 0.001, 100), lineTrack("b", 0, 0.001, 100), 50.0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_LargeTracksUseGridIndex(t *testing.T) {
	// Enough points to cross the grid-index threshold. At latitude 38.1
	// the ~88m segments keep midpoints well inside 50m of the copy.
	a := lineTrack("a", 38.1, 0.001, 800)
	b := lineTrack("b", 38.1, 0.001, 800)

	res, err := Analyze(context.Background(), a, b, 50.0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.Track1OverlapPercent, 1e-9)
	assert.InDelta(t, 100.0, res.Track2OverlapPercent, 1e-9)
}

func TestClassifySegments(t *testing.T) {
	a := lineTrack("a", 0, 0.0008, 4)
	b := lineTrack("b", 0, 0.0008, 2) // covers only the start of a

	segs, err := ClassifySegments(context.Background(), a, b, 50.0)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.True(t, segs[0].Overlapping)
	assert.True(t, segs[1].Overlapping, "second midpoint is ~44.5m from b's last point")
	assert.False(t, segs[2].Overlapping, "third midpoint is ~134m from b's last point")
	for _, s := range segs {
		assert.InDelta(t, 0.089, s.LengthKm, 0.001)
	}
}

func TestClassifySegments_SinglePointTrack(t *testing.T) {
	single := track.Track{Name: "single", Points: []track.Point{{Latitude: 0, Longitude: 0}}}
	segs, err := ClassifySegments(context.Background(), single, lineTrack("b", 0, 0.001, 3), 50.0)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestFromSegments_Empty(t *testing.T) {
	res := FromSegments(nil, nil)
	assert.Zero(t, res.Track1OverlapPercent)
	assert.Zero(t, res.Track2OverlapPercent)
	assert.Zero(t, res.SharedDistanceKm)
}
