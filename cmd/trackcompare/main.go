// Command trackcompare compares two GPS track recordings: per-track
// distance, elevation and speed statistics plus a measure of how much
// of the route the two tracks share.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/summitroutes/trackcompare/internal/lib/metrics"
	"github.com/summitroutes/trackcompare/internal/lib/overlap"
	"github.com/summitroutes/trackcompare/internal/report"
	"github.com/summitroutes/trackcompare/internal/track"
)

const version = "trackcompare v1.0.0"

// polylinePrefix marks a track argument as an encoded polyline instead
// of a GPX file path.
const polylinePrefix = "polyline:"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		threshold   = flag.Float64("threshold", overlap.DefaultThresholdMeters, "Overlap distance threshold in meters")
		jsonOut     = flag.Bool("json", false, "Output results as JSON instead of text")
		kmlPath     = flag.String("kml", "", "Write a KML comparison file to this path")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("trackcompare - compare and analyze two GPS tracks\n\n")
		fmt.Printf("usage: trackcompare [flags] <track1> <track2>\n\n")
		fmt.Printf("Each track is a GPX file path, or an encoded route prefixed\n")
		fmt.Printf("with %q to compare a recording against a planned route.\n\n", polylinePrefix)
		fmt.Printf("examples:\n")
		fmt.Printf("  trackcompare morning.gpx evening.gpx\n")
		fmt.Printf("  trackcompare -threshold 75 -kml comparison.kml a.gpx b.gpx\n")
		fmt.Printf("  trackcompare ride.gpx \"polyline:_p~iF~ps|U_ulLnnqC\"\n\n")
		fmt.Printf("flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return 0
	}

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		return 2
	}
	if *threshold <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -threshold must be positive, got %v\n", *threshold)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	track1, err := loadTrack(args[0], 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading track 1: %v\n", err)
		return 1
	}
	track2, err := loadTrack(args[1], 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading track 2: %v\n", err)
		return 1
	}

	metrics1 := metrics.Calculate(track1)
	metrics2 := metrics.Calculate(track2)

	segs1, err := overlap.ClassifySegments(ctx, track1, track2, *threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing overlap: %v\n", err)
		return 1
	}
	segs2, err := overlap.ClassifySegments(ctx, track2, track1, *threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing overlap: %v\n", err)
		return 1
	}
	result := overlap.FromSegments(segs1, segs2)

	if *jsonOut {
		doc := report.NewDocument(metrics1, metrics2, result, *threshold)
		if err := doc.WriteJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return 1
		}
	} else {
		fmt.Print(report.FormatComparison(metrics1, metrics2))
		fmt.Print(report.FormatOverlap(result, track1.Name, track2.Name))
	}

	if *kmlPath != "" {
		if err := writeKMLFile(*kmlPath, track1, track2, segs1, segs2); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing KML: %v\n", err)
			return 1
		}
		if !*jsonOut {
			fmt.Printf("KML comparison saved to: %s\n", *kmlPath)
		}
	}

	return 0
}

// loadTrack resolves one track argument: a GPX file path or an encoded
// polyline with the "polyline:" prefix.
func loadTrack(arg string, position int) (track.Track, error) {
	if encoded, ok := strings.CutPrefix(arg, polylinePrefix); ok {
		return track.FromEncodedPolyline(fmt.Sprintf("route %d", position), encoded)
	}
	return track.ParseGPXFile(arg)
}

func writeKMLFile(path string, t1, t2 track.Track, segs1, segs2 []overlap.Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.WriteKML(f, t1, t2, segs1, segs2); err != nil {
		return err
	}
	return f.Close()
}
