// Package geo extracts decimal-degree coordinates embedded in free-text
// location fields and derives map links from them.
package geo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Coordinates is a parsed decimal-degree pair. South and West hemispheres
// are already negated.
type Coordinates struct {
	Lat float64
	Lon float64
}

// coordsPattern matches the marker the field app embeds in location text,
// e.g. "Coordinates: 34.0522° N, 118.2437° W".
var coordsPattern = regexp.MustCompile(`Coordinates:\s*([\d.\-]+)°?\s*([NS]),\s*([\d.\-]+)°?\s*([EW])`)

// Parse extracts coordinates from a location string. The second return value
// is false when the text carries no "Coordinates:" marker; plain-text
// locations are rendered as-is with no parse attempt.
func Parse(location string) (Coordinates, bool) {
	m := coordsPattern.FindStringSubmatch(location)
	if m == nil {
		return Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Coordinates{}, false
	}

	if strings.EqualFold(m[2], "S") {
		lat = -lat
	}
	if strings.EqualFold(m[4], "W") {
		lon = -lon
	}

	return Coordinates{Lat: lat, Lon: lon}, true
}

// MapURL returns a Google Maps link for the pair.
func (c Coordinates) MapURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s", c.Query())
}

// Query returns the "lat,lon" pair as map providers expect it.
func (c Coordinates) Query() string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(c.Lat, 'f', -1, 64),
		strconv.FormatFloat(c.Lon, 'f', -1, 64))
}
