package fountains

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DeriveMapID returns the natural key from a raw GeoJSON feature.
func DeriveMapID(body []byte) (string, error) {

	mapid_rsp := gjson.GetBytes(body, "properties.mapid")

	if !mapid_rsp.Exists() {
		return "", fmt.Errorf("Missing properties.mapid")
	}

	return mapid_rsp.String(), nil
}

// DeriveCityName attributes a record to a city. Vancouver asset IDs look like
// "DFPB0123"; Burnaby uses the numeric COMPKEY. Records whose key matches
// neither pattern fall back to a longitude split through the municipal
// boundary at -123.1.
func DeriveCityName(mapid string, lon float64) string {

	if len(mapid) >= 4 && mapid[0:4] == "DFPB" {
		return CityVancouver
	}

	if mapid != "" && isDigits(mapid) {
		return CityBurnaby
	}

	if lon < -123.1 {
		return CityVancouver
	}

	return CityBurnaby
}

func isDigits(v string) bool {

	for _, r := range v {

		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
