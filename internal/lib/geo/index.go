package geo

import "math"

// NearestIndex answers minimum-distance queries against a fixed set of
// points. Implementations are immutable after construction and safe for
// concurrent readers.
type NearestIndex interface {
	// Nearest returns the distance in meters from p to the closest
	// indexed point. Implementations bounded to a search radius may
	// report +Inf for points with no indexed neighbor inside it.
	Nearest(p Point) float64
}

// gridIndexMinPoints is the point count above which the grid index is
// preferred over the exhaustive scan.
const gridIndexMinPoints = 512

// NewNearestIndex builds an index over points for queries that only care
// about distances up to radiusMeters. Small sets use an exhaustive scan;
// larger sets use a grid bucketed by radius-sized cells, which reports
// +Inf beyond one cell ring. Both are exact within the radius.
func NewNearestIndex(points []Point, radiusMeters float64) NearestIndex {
	if len(points) >= gridIndexMinPoints {
		if g, ok := newGridIndex(points, radiusMeters); ok {
			return g
		}
	}
	return NewBruteForceIndex(points)
}

// NewBruteForceIndex returns an index that scans every point per query.
func NewBruteForceIndex(points []Point) NearestIndex {
	return bruteForceIndex(points)
}

type bruteForceIndex []Point

func (idx bruteForceIndex) Nearest(p Point) float64 {
	best := math.Inf(1)
	for _, q := range idx {
		if d := DistanceMeters(p, q); d < best {
			best = d
		}
	}
	return best
}

// minMetersPerDegree is a lower bound on the ground length of one degree
// of latitude. Sizing cells with it keeps every cell at least
// radiusMeters tall, so a 3x3 neighborhood always covers the radius.
const minMetersPerDegree = 110000.0

type cellKey struct {
	row, col int
}

type gridIndex struct {
	cells      map[cellKey][]Point
	cellLatDeg float64
	cellLonDeg float64
}

// newGridIndex buckets points into cells at least radiusMeters on a side.
// Longitude cells are sized for the highest latitude present, so they only
// get wider (safer) toward the equator. Returns ok=false when the set
// reaches polar latitudes where longitude cells degenerate, or when the
// radius is not positive; callers fall back to the exhaustive scan. The
// index does not handle sets spanning the antimeridian; tracks that cross
// it fall outside the supported input range.
func newGridIndex(points []Point, radiusMeters float64) (*gridIndex, bool) {
	if radiusMeters <= 0 || len(points) == 0 {
		return nil, false
	}

	maxAbsLat := 0.0
	for _, p := range points {
		if abs := math.Abs(p.Latitude); abs > maxAbsLat {
			maxAbsLat = abs
		}
	}
	// Queries may sit up to one radius outside the indexed bounding box.
	maxAbsLat += radiusMeters / minMetersPerDegree
	if maxAbsLat >= 85 {
		return nil, false
	}

	g := &gridIndex{
		cells:      make(map[cellKey][]Point),
		cellLatDeg: radiusMeters / minMetersPerDegree,
		cellLonDeg: radiusMeters / (minMetersPerDegree * math.Cos(maxAbsLat*math.Pi/180)),
	}
	for _, p := range points {
		k := g.cellOf(p)
		g.cells[k] = append(g.cells[k], p)
	}
	return g, true
}

func (g *gridIndex) cellOf(p Point) cellKey {
	return cellKey{
		row: int(math.Floor(p.Latitude / g.cellLatDeg)),
		col: int(math.Floor(p.Longitude / g.cellLonDeg)),
	}
}

func (g *gridIndex) Nearest(p Point) float64 {
	center := g.cellOf(p)
	best := math.Inf(1)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			for _, q := range g.cells[cellKey{row: center.row + dr, col: center.col + dc}] {
				if d := DistanceMeters(p, q); d < best {
					best = d
				}
			}
		}
	}
	return best
}
