package opendata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func recordsHandler(w http.ResponseWriter, r *http.Request) {

	start := r.URL.Query().Get("start")

	if start == "0" {

		fmt.Fprint(w, `{
			"nhits": 3,
			"records": [
				{ "fields": { "mapid": "DFPB0001", "name": "Stanley Park", "geo_local_area": "West End", "in_operation": "Year Round", "pet_friendly": "Y", "geom": { "type": "Point", "coordinates": [-123.1393, 49.3017] } } },
				{ "fields": { "mapid": "DFPB0002", "geom": { "type": "Point", "coordinates": [-123.1552, 49.2734] } } }
			]
		}`)

		return
	}

	fmt.Fprint(w, `{
		"nhits": 3,
		"records": [
			{ "fields": { "mapid": "DFPB0003", "name": "No geometry" } }
		]
	}`)
}

func TestFetchRecords(t *testing.T) {

	ctx := context.Background()

	s := httptest.NewServer(http.HandlerFunc(recordsHandler))
	defer s.Close()

	records, err := FetchRecords(ctx, s.URL, DatasetDrinkingFountains)

	if err != nil {
		t.Fatalf("Failed to fetch records, %v", err)
	}

	// The record without a geometry is skipped

	if len(records) != 2 {
		t.Fatalf("Expected 2 records but got %d", len(records))
	}

	first := records[0]

	if first.MapID != "DFPB0001" {
		t.Fatalf("Unexpected mapid '%s'", first.MapID)
	}

	if first.Neighborhood == nil || *first.Neighborhood != "West End" {
		t.Fatalf("Unexpected neighborhood")
	}

	if first.PetFriendly == nil || !*first.PetFriendly {
		t.Fatalf("Expected pet friendly")
	}

	if first.Lon != -123.1393 {
		t.Fatalf("Unexpected longitude %f", first.Lon)
	}
}
