package fountains

import (
	"testing"
)

func TestDeriveMapID(t *testing.T) {

	body := []byte(`{"properties":{ "mapid": "DFPB0042", "name": "Lost Lagoon" }}`)

	mapid, err := DeriveMapID(body)

	if err != nil {
		t.Fatalf("Failed to derive mapid, %v", err)
	}

	if mapid != "DFPB0042" {
		t.Fatalf("Unexpected mapid '%s'", mapid)
	}

	_, err = DeriveMapID([]byte(`{"properties":{}}`))

	if err == nil {
		t.Fatalf("Expected error for missing mapid")
	}
}

func TestDeriveCityName(t *testing.T) {

	tests := map[string]string{
		"DFPB0042": CityVancouver,
		"61384":    CityBurnaby,
	}

	for mapid, expected := range tests {

		city := DeriveCityName(mapid, 0.0)

		if city != expected {
			t.Fatalf("Unexpected city for '%s', '%s'. Expected '%s'", mapid, city, expected)
		}
	}

	// No recognizable key pattern, split on longitude

	if DeriveCityName("BBY-17", -123.2) != CityVancouver {
		t.Fatalf("Expected Vancouver west of the boundary")
	}

	if DeriveCityName("BBY-17", -123.0) != CityBurnaby {
		t.Fatalf("Expected Burnaby east of the boundary")
	}
}

func TestNormalizeSeason(t *testing.T) {

	tests := map[string]string{
		"":               SeasonUnknown,
		"Year Round":     SeasonYearRound,
		"year-round":     SeasonYearRound,
		"Spring to Fall": "spring to fall",
		"May-October":    "may-october",
	}

	for input, expected := range tests {

		season := NormalizeSeason(input)

		if season != expected {
			t.Fatalf("Unexpected season for '%s', '%s'. Expected '%s'", input, season, expected)
		}
	}
}

func TestNormalizeType(t *testing.T) {

	tests := map[string]string{
		"DF":            "Drinking Fountain",
		"ddf":           "Dual Drinking Fountain",
		"BF":            "Bottle Filler",
		"Bottle Filler": "Bottle Filler",
		"sculpture":     TypeOther,
	}

	for input, expected := range tests {

		label := NormalizeType(input)

		if label == nil {
			t.Fatalf("Expected '%s' for '%s' but got nil", expected, input)
		}

		if *label != expected {
			t.Fatalf("Unexpected type for '%s', '%s'. Expected '%s'", input, *label, expected)
		}
	}

	if NormalizeType("  ") != nil {
		t.Fatalf("Expected nil for blank type")
	}
}
