package track

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// gpxFile mirrors the subset of GPX 1.1 this tool reads. Extensions and
// metadata are intentionally ignored; only coordinates, elevation and
// timestamps matter to the analytics.
type gpxFile struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
	Routes  []gpxRoute `xml:"rte"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxRoute struct {
	Name   string     `xml:"name"`
	Points []gpxPoint `xml:"rtept"`
}

type gpxPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      *xmlTime `xml:"time"`
}

// ParseGPXFile parses a GPX file into a Track. The track is named after
// the first named <trk> or <rte> in the file, falling back to the file
// stem. A file with no points yields ErrNoPoints.
func ParseGPXFile(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, fmt.Errorf("failed to open GPX file: %w", err)
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := ParseGPX(f, stem)
	if err != nil {
		return Track{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseGPX parses GPX data from r. fallbackName names the track when the
// file itself names neither a track nor a route.
func ParseGPX(r io.Reader, fallbackName string) (Track, error) {
	var doc gpxFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Track{}, fmt.Errorf("failed to parse GPX: %w", err)
	}

	name := fallbackName
	var points []Point

	for _, trk := range doc.Tracks {
		if trk.Name != "" && name == fallbackName {
			name = trk.Name
		}
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				points = append(points, pt.toPoint())
			}
		}
	}

	// Some GPX files carry routes instead of tracks.
	for _, rte := range doc.Routes {
		if rte.Name != "" && name == fallbackName {
			name = rte.Name
		}
		for _, pt := range rte.Points {
			points = append(points, pt.toPoint())
		}
	}

	if len(points) == 0 {
		return Track{}, ErrNoPoints
	}

	return Track{Name: name, Points: points}, nil
}

func (p gpxPoint) toPoint() Point {
	pt := Point{
		Latitude:  p.Lat,
		Longitude: p.Lon,
		Elevation: p.Elevation,
	}
	if p.Time != nil && !p.Time.IsZero() {
		pt.Time = &p.Time.Time
	}
	return pt
}
