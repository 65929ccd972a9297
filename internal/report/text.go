// Package report renders comparison results for people and machines:
// a side-by-side text table, a JSON document and a KML export. It only
// reads the result values; all computation happens in the lib packages.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/summitroutes/trackcompare/internal/lib/metrics"
	"github.com/summitroutes/trackcompare/internal/lib/overlap"
)

const ruleWidth = 70

// FormatComparison renders a side-by-side comparison of two tracks'
// metrics. Sections for elevation and timing only appear when at least
// one track carries the underlying data.
func FormatComparison(m1, m2 metrics.TrackMetrics) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	b.WriteString("TRACK COMPARISON\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Track 1: %s\n", m1.TrackName)
	fmt.Fprintf(&b, "Track 2: %s\n\n", m2.TrackName)

	b.WriteString(row("Metric", "Track 1", "Track 2", "Difference"))
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	b.WriteString(row("Distance",
		fmt.Sprintf("%.2f km", m1.TotalDistanceKm),
		fmt.Sprintf("%.2f km", m2.TotalDistanceKm),
		fmt.Sprintf("%+.2f km", m1.TotalDistanceKm-m2.TotalDistanceKm)))

	b.WriteString(row("Track points",
		fmt.Sprintf("%d", m1.PointCount),
		fmt.Sprintf("%d", m2.PointCount),
		fmt.Sprintf("%+d", m1.PointCount-m2.PointCount)))

	if m1.Elevation != nil || m2.Elevation != nil {
		b.WriteString("\nELEVATION\n")
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		writeElevation(&b, m1.Elevation, m2.Elevation)
	}

	if m1.Speed != nil || m2.Speed != nil {
		b.WriteString("\nTIMING & SPEED\n")
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		writeSpeed(&b, m1.Speed, m2.Speed)
	}

	b.WriteString("\n")
	return b.String()
}

func writeElevation(b *strings.Builder, e1, e2 *metrics.ElevationMetrics) {
	if e1 == nil || e2 == nil {
		b.WriteString(row("Elevation data", availability(e1 != nil), availability(e2 != nil), ""))
		return
	}

	meters := func(label string, v1, v2 float64) string {
		return row(label,
			fmt.Sprintf("%.0f m", v1),
			fmt.Sprintf("%.0f m", v2),
			fmt.Sprintf("%+.0f m", v1-v2))
	}
	b.WriteString(meters("Min elevation", e1.MinElevation, e2.MinElevation))
	b.WriteString(meters("Max elevation", e1.MaxElevation, e2.MaxElevation))
	b.WriteString(meters("Total ascent", e1.TotalAscent, e2.TotalAscent))
	b.WriteString(meters("Total descent", e1.TotalDescent, e2.TotalDescent))
}

func writeSpeed(b *strings.Builder, s1, s2 *metrics.SpeedMetrics) {
	if s1 == nil || s2 == nil {
		b.WriteString(row("Timing data", availability(s1 != nil), availability(s2 != nil), ""))
		return
	}

	b.WriteString(row("Duration",
		FormatDuration(s1.Duration), FormatDuration(s2.Duration),
		formatSignedDuration(s1.Duration-s2.Duration)))
	b.WriteString(row("Moving time",
		FormatDuration(s1.MovingTime), FormatDuration(s2.MovingTime), ""))

	kmh := func(label string, v1, v2 float64) string {
		return row(label,
			fmt.Sprintf("%.1f km/h", v1),
			fmt.Sprintf("%.1f km/h", v2),
			fmt.Sprintf("%+.1f km/h", v1-v2))
	}
	b.WriteString(kmh("Avg speed", s1.AvgSpeedKmh, s2.AvgSpeedKmh))
	b.WriteString(kmh("Avg moving speed", s1.AvgMovingSpeedKmh, s2.AvgMovingSpeedKmh))
	b.WriteString(kmh("Max speed", s1.MaxSpeedKmh, s2.MaxSpeedKmh))
}

// FormatOverlap renders the overlap analysis for a track pair.
func FormatOverlap(res overlap.Result, name1, name2 string) string {
	var b strings.Builder

	b.WriteString("ROUTE OVERLAP ANALYSIS\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	fmt.Fprintf(&b, "  %s:\n", name1)
	fmt.Fprintf(&b, "    Overlapping:  %.2f km (%.1f%%)\n", res.Track1OverlapKm, res.Track1OverlapPercent)
	fmt.Fprintf(&b, "    Unique:       %.2f km\n\n", res.Track1UniqueKm)

	fmt.Fprintf(&b, "  %s:\n", name2)
	fmt.Fprintf(&b, "    Overlapping:  %.2f km (%.1f%%)\n", res.Track2OverlapKm, res.Track2OverlapPercent)
	fmt.Fprintf(&b, "    Unique:       %.2f km\n\n", res.Track2UniqueKm)

	fmt.Fprintf(&b, "  Approximate shared route: %.2f km\n\n", res.SharedDistanceKm)

	return b.String()
}

// FormatDuration renders a duration as "1h 02m 03s", dropping leading
// zero components.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func formatSignedDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	return FormatDuration(d)
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "N/A"
}

func row(label, v1, v2, diff string) string {
	return fmt.Sprintf("  %-24s %14s %14s %14s\n", label, v1, v2, diff)
}
