package ui

import (
	"fmt"
	"time"
)

// placeholder marks registry fields the lookup could not fill.
const placeholder = "—"

// orPlaceholder substitutes the placeholder for empty registry fields.
func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// formatAge renders how long ago the last successful update arrived.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// formatAltitude renders metres of barometric altitude.
func formatAltitude(metres float64) string {
	return fmt.Sprintf("%.0f m", metres)
}

// formatSpeed converts metres per second to km/h for display.
func formatSpeed(mps float64) string {
	return fmt.Sprintf("%.0f km/h", mps*3.6)
}

// formatHeading renders a track in degrees with a compass point.
func formatHeading(degrees float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int((degrees+22.5)/45) % len(points)
	if idx < 0 {
		idx += len(points)
	}
	return fmt.Sprintf("%.0f° %s", degrees, points[idx])
}

// formatVerticalRate renders climb/descent in m/s with a trend arrow.
func formatVerticalRate(mps float64) string {
	switch {
	case mps > 0.5:
		return fmt.Sprintf("▲ %.1f m/s", mps)
	case mps < -0.5:
		return fmt.Sprintf("▼ %.1f m/s", -mps)
	default:
		return "level"
	}
}

// formatCoords renders an observer position.
func formatCoords(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}
