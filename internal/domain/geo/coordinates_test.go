package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		location string
		ok       bool
		lat, lon float64
	}{
		{
			name:     "northern western hemisphere",
			location: "Site A, Coordinates: 34.0522° N, 118.2437° W",
			ok:       true,
			lat:      34.0522,
			lon:      -118.2437,
		},
		{
			name:     "southern eastern hemisphere",
			location: "Coordinates: 33.8688° S, 151.2093° E",
			ok:       true,
			lat:      -33.8688,
			lon:      151.2093,
		},
		{
			name:     "no marker",
			location: "Site B, Near River Crossing Point X",
			ok:       false,
		},
		{
			name:     "empty",
			location: "",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, ok := Parse(tt.location)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.InDelta(t, tt.lat, coords.Lat, 1e-9)
			assert.InDelta(t, tt.lon, coords.Lon, 1e-9)
		})
	}
}

func TestCoordinates_MapURL(t *testing.T) {
	coords, ok := Parse("Site A, Coordinates: 34.0522° N, 118.2437° W")
	require.True(t, ok)
	assert.Equal(t, "https://www.google.com/maps?q=34.0522,-118.2437", coords.MapURL())
}
