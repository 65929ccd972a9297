package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/twpayne/go-kml/v2"

	"github.com/summitroutes/trackcompare/internal/lib/geo"
	"github.com/summitroutes/trackcompare/internal/lib/overlap"
	"github.com/summitroutes/trackcompare/internal/track"
)

// WriteKML writes a KML document with both tracks as colored lines and
// each track's overlapping portions highlighted, for inspection in
// Google Earth or any KML viewer.
func WriteKML(w io.Writer, t1, t2 track.Track, segs1, segs2 []overlap.Segment) error {
	children := []kml.Element{
		kml.Name(fmt.Sprintf("%s vs %s", t1.Name, t2.Name)),
		kml.SharedStyle("track1",
			kml.LineStyle(
				kml.Color(color.RGBA{R: 0xe8, G: 0x6f, B: 0x3a, A: 0xff}),
				kml.Width(3),
			),
		),
		kml.SharedStyle("track2",
			kml.LineStyle(
				kml.Color(color.RGBA{R: 0x3a, G: 0x6f, B: 0xe8, A: 0xff}),
				kml.Width(3),
			),
		),
		kml.SharedStyle("shared",
			kml.LineStyle(
				kml.Color(color.RGBA{R: 0x2e, G: 0xb8, B: 0x2e, A: 0xff}),
				kml.Width(5),
			),
		),
		trackPlacemark(t1, "#track1"),
		trackPlacemark(t2, "#track2"),
	}

	if pm := sharedPlacemark(t1.Name, segs1); pm != nil {
		children = append(children, pm)
	}
	if pm := sharedPlacemark(t2.Name, segs2); pm != nil {
		children = append(children, pm)
	}

	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

func trackPlacemark(t track.Track, styleURL string) kml.Element {
	coords := make([]kml.Coordinate, len(t.Points))
	for i, p := range t.Points {
		coords[i] = kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
		if p.Elevation != nil {
			coords[i].Alt = *p.Elevation
		}
	}

	return kml.Placemark(
		kml.Name(t.Name),
		kml.StyleURL(styleURL),
		kml.LineString(
			kml.Coordinates(coords...),
			kml.Tessellate(true),
		),
	)
}

// sharedPlacemark renders the consecutive overlapping runs of one
// track's segments as a multi-geometry of line strings. Returns nil
// when nothing overlaps.
func sharedPlacemark(name string, segs []overlap.Segment) kml.Element {
	var lines []kml.Element
	var run []kml.Coordinate

	flush := func() {
		if len(run) >= 2 {
			lines = append(lines, kml.LineString(
				kml.Coordinates(run...),
				kml.Tessellate(true),
			))
		}
		run = nil
	}

	for _, s := range segs {
		if !s.Overlapping {
			flush()
			continue
		}
		if len(run) == 0 {
			run = append(run, kmlCoordinate(s.Start))
		}
		run = append(run, kmlCoordinate(s.End))
	}
	flush()

	if len(lines) == 0 {
		return nil
	}

	return kml.Placemark(
		kml.Name(fmt.Sprintf("%s (shared)", name)),
		kml.StyleURL("#shared"),
		kml.MultiGeometry(lines...),
	)
}

func kmlCoordinate(p geo.Point) kml.Coordinate {
	return kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
}
