// Package projection converts the projected coordinates used by the Vancouver
// and Burnaby open-data exports (EPSG:26910, UTM zone 10N) into geographic
// WGS84 latitude and longitude.
package projection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
	"github.com/tidwall/gjson"
)

// Both source datasets publish eastings and northings in UTM zone 10N, which
// covers the whole metro area. The zone never varies per record.
const ZoneNumber int = 10

// ToLatLon transforms a single easting/northing pair to WGS84 degrees. The
// result is validated against the legal global ranges; a failure here is a
// per-record data-quality problem, not a transient fault, so callers skip the
// record and keep going.
func ToLatLon(easting float64, northing float64) (float64, float64, error) {

	if math.IsNaN(easting) || math.IsNaN(northing) {
		return 0, 0, fmt.Errorf("Non-numeric projected coordinates")
	}

	lat, lon, err := UTM.ToLatLon(easting, northing, ZoneNumber, "", true)

	if err != nil {
		return 0, 0, fmt.Errorf("Failed to transform (%f, %f), %w", easting, northing, err)
	}

	if lat < -90.0 || lat > 90.0 || lon < -180.0 || lon > 180.0 {
		return 0, 0, fmt.Errorf("Transformed coordinates out of range, lat=%f lon=%f", lat, lon)
	}

	return lat, lon, nil
}

// ParseLatLonFromGeom extracts the coordinate pair from an embedded GeoJSON
// geometry string (the Vancouver CSV carries one in its Geom column, in the
// same projection as the X/Y columns) and transforms it.
func ParseLatLonFromGeom(geom string) (float64, float64, error) {

	if !gjson.Valid(geom) {
		return 0, 0, fmt.Errorf("Invalid geometry JSON")
	}

	coords_rsp := gjson.Get(geom, "coordinates")

	if !coords_rsp.Exists() {
		return 0, 0, fmt.Errorf("Geometry missing coordinates")
	}

	coords := coords_rsp.Array()

	if len(coords) != 2 {
		return 0, 0, fmt.Errorf("Weird coordinates")
	}

	return ToLatLon(coords[0].Float(), coords[1].Float())
}

// ParseLatLonFromXY parses the raw easting/northing columns and transforms
// them.
func ParseLatLonFromXY(x string, y string) (float64, float64, error) {

	easting, err := strconv.ParseFloat(strings.TrimSpace(x), 64)

	if err != nil {
		return 0, 0, fmt.Errorf("Failed to parse easting '%s', %w", x, err)
	}

	northing, err := strconv.ParseFloat(strings.TrimSpace(y), 64)

	if err != nil {
		return 0, 0, fmt.Errorf("Failed to parse northing '%s', %w", y, err)
	}

	return ToLatLon(easting, northing)
}
