package projection

import (
	"testing"
)

// Projected pairs sampled from the two source files. Everything in the metro
// area should land inside lat [49.0, 49.5] and lon [-123.5, -122.5].
func TestToLatLon(t *testing.T) {

	tests := [][2]float64{
		{491447.0, 5459556.0}, // downtown Vancouver
		{483695.0, 5455422.0}, // Point Grey
		{503452.0, 5453311.0}, // central Burnaby
		{509288.0, 5449078.0}, // east Burnaby
	}

	for _, pair := range tests {

		lat, lon, err := ToLatLon(pair[0], pair[1])

		if err != nil {
			t.Fatalf("Failed to transform (%f, %f), %v", pair[0], pair[1], err)
		}

		if lat < 49.0 || lat > 49.5 {
			t.Fatalf("Latitude %f out of regional range for (%f, %f)", lat, pair[0], pair[1])
		}

		if lon < -123.5 || lon > -122.5 {
			t.Fatalf("Longitude %f out of regional range for (%f, %f)", lon, pair[0], pair[1])
		}
	}
}

func TestParseLatLonFromGeom(t *testing.T) {

	geom := `{"type": "Point", "coordinates": [491447.0, 5459556.0]}`

	lat, lon, err := ParseLatLonFromGeom(geom)

	if err != nil {
		t.Fatalf("Failed to parse geom, %v", err)
	}

	if lat < 49.0 || lat > 49.5 || lon < -123.5 || lon > -122.5 {
		t.Fatalf("Unexpected position (%f, %f)", lat, lon)
	}

	_, _, err = ParseLatLonFromGeom(`{"type": "Point"}`)

	if err == nil {
		t.Fatalf("Expected error for geometry without coordinates")
	}

	_, _, err = ParseLatLonFromGeom(`not json`)

	if err == nil {
		t.Fatalf("Expected error for invalid JSON")
	}
}

func TestParseLatLonFromXY(t *testing.T) {

	_, _, err := ParseLatLonFromXY("491447.0", "5459556.0")

	if err != nil {
		t.Fatalf("Failed to parse XY, %v", err)
	}

	_, _, err = ParseLatLonFromXY("", "5459556.0")

	if err == nil {
		t.Fatalf("Expected error for blank easting")
	}

	_, _, err = ParseLatLonFromXY("four", "five")

	if err == nil {
		t.Fatalf("Expected error for non-numeric easting")
	}
}
