// Package fountains provides the normalized drinking-fountain record shared by
// the data-loading tools, along with the small field-coercion helpers used to
// build one from the Vancouver and Burnaby source schemas.
package fountains

import (
	"strings"
)

// Source dataset labels. Every record carries the city and dataset it was
// loaded from so the destination store can attribute it.
const (
	CityVancouver string = "Vancouver"
	CityBurnaby   string = "Burnaby"

	DatasetVancouver string = "Vancouver Parks Open Data"
	DatasetBurnaby   string = "Burnaby Open Data"
)

// Record is a normalized fountain. The zero values of the pointer fields mean
// "absent in the source"; MapID is the natural key and is never empty for a
// valid record.
type Record struct {
	MapID               string
	Name                *string
	LocationDescription *string
	DetailedLocation    *string
	Neighborhood        *string
	Type                *string
	Maintainer          *string
	OperationalSeason   string
	PetFriendly         *bool
	Lat                 float64
	Lon                 float64
	City                string
	Dataset             string
}

// ValidCoordinates reports whether lat and lon are inside the legal global
// ranges. Anything outside is a data-quality failure and the record carrying
// it is skipped.
func ValidCoordinates(lat float64, lon float64) bool {

	if lat < -90.0 || lat > 90.0 {
		return false
	}

	if lon < -180.0 || lon > 180.0 {
		return false
	}

	return true
}

// TrimToNil trims surrounding whitespace and returns nil for values that are
// empty after trimming, so blank CSV cells never reach the store as "".
func TrimToNil(v string) *string {

	trimmed := strings.TrimSpace(v)

	if trimmed == "" {
		return nil
	}

	return &trimmed
}
