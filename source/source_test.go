package source

import (
	"context"
	"strings"
	"testing"

	"github.com/yvr-fountains/go-yvr-fountains"
)

const vancouver_csv string = `MAPID,LOCATION,DETAILED_LOCATION,Neighborhood,TYPE,MAINTAINER,IN_OPERATION,PET_FRIENDLY,Geom,X,Y
DFPB0001,Stanley Park,North of the rose garden,West End,Drinking Fountain,Parks,Spring to Fall,Y,"{""type"": ""Point"", ""coordinates"": [491447.0, 5459556.0]}",491447.0,5459556.0
DFPB0002,Kitsilano Beach,,Kitsilano,Bottle Filler,Parks,Year Round,N,,487632.0,5457120.0
DFPB0003,Nowhere,,,,,,,,not-a-number,5459556.0
DFPB0002,Kitsilano Beach again,,Kitsilano,Bottle Filler,Parks,Year Round,N,,487632.0,5457120.0
`

func TestLoadVancouverCSV(t *testing.T) {

	ctx := context.Background()

	records, err := LoadVancouverCSV(ctx, strings.NewReader(vancouver_csv))

	if err != nil {
		t.Fatalf("Failed to load Vancouver CSV, %v", err)
	}

	// Bad coordinates and the repeated MAPID are skipped

	if len(records) != 2 {
		t.Fatalf("Expected 2 records but got %d", len(records))
	}

	first := records[0]

	if first.MapID != "DFPB0001" {
		t.Fatalf("Unexpected mapid '%s'", first.MapID)
	}

	if first.Lat < 49.0 || first.Lat > 49.5 {
		t.Fatalf("Latitude %f out of regional range", first.Lat)
	}

	if first.Lon < -123.5 || first.Lon > -122.5 {
		t.Fatalf("Longitude %f out of regional range", first.Lon)
	}

	if first.PetFriendly == nil || !*first.PetFriendly {
		t.Fatalf("Expected pet friendly")
	}

	if first.OperationalSeason != "spring to fall" {
		t.Fatalf("Unexpected season '%s'", first.OperationalSeason)
	}

	second := records[1]

	if second.OperationalSeason != fountains.SeasonYearRound {
		t.Fatalf("Unexpected season '%s'", second.OperationalSeason)
	}

	if second.DetailedLocation != nil {
		t.Fatalf("Expected nil detailed location for blank cell")
	}
}

const burnaby_csv string = `COMPKEY,OBJECTID,UNITID,SITE,NOTES,TYPE,X,Y
61384,1201,FOUN-07,Central Park,Near the pitch and putt,DF,503452.0,5453311.0
61385,1202,FOUN-08,Confederation Park,,BF,509288.0,5449078.0
`

func TestLoadBurnabyCSV(t *testing.T) {

	ctx := context.Background()

	records, err := LoadBurnabyCSV(ctx, strings.NewReader(burnaby_csv))

	if err != nil {
		t.Fatalf("Failed to load Burnaby CSV, %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records but got %d", len(records))
	}

	first := records[0]

	if first.MapID != "61384" {
		t.Fatalf("Unexpected mapid '%s'", first.MapID)
	}

	if first.Type == nil || *first.Type != "Drinking Fountain" {
		t.Fatalf("Expected TYPE code DF to map to Drinking Fountain")
	}

	if first.DetailedLocation == nil || *first.DetailedLocation != "Central Park (ID: 1201)" {
		t.Fatalf("Unexpected detailed location")
	}

	if first.Maintainer == nil || *first.Maintainer != "Burnaby Parks" {
		t.Fatalf("Unexpected maintainer")
	}

	if first.City != fountains.CityBurnaby {
		t.Fatalf("Unexpected city '%s'", first.City)
	}
}

const ratings_csv string = `id,ig_post_url,rating,flow,temp,drainage,caption,visited,visit_date
DFPB0001,https://www.instagram.com/p/abc123/,8.5,4,3,5,cold and plentiful,YES,6/14/2025
DFPB0002,,7,3,,4,,no,2025-07-01
,https://www.instagram.com/p/def456/,5,,,,orphaned,YES,6/15/2025
`

func TestLoadRatingsCSV(t *testing.T) {

	ctx := context.Background()

	rows, err := LoadRatingsCSV(ctx, strings.NewReader(ratings_csv))

	if err != nil {
		t.Fatalf("Failed to load ratings CSV, %v", err)
	}

	// The row without a fountain id is skipped

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows but got %d", len(rows))
	}

	first := rows[0]

	if first.Rating == nil || *first.Rating != 8.5 {
		t.Fatalf("Unexpected rating")
	}

	if first.Flow == nil || *first.Flow != 4 {
		t.Fatalf("Unexpected flow")
	}

	if !first.Visited {
		t.Fatalf("Expected visited")
	}

	if first.VisitDate == nil || first.VisitDate.Year() != 2025 || first.VisitDate.Month() != 6 {
		t.Fatalf("Unexpected visit date")
	}

	second := rows[1]

	if second.Temp != nil {
		t.Fatalf("Expected nil temp for blank cell")
	}

	if second.Visited {
		t.Fatalf("Expected not visited")
	}

	if second.VisitDate == nil || second.VisitDate.Month() != 7 {
		t.Fatalf("Expected ISO date to parse")
	}
}

const raw_geojson string = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": { "type": "Point", "coordinates": [-123.1393, 49.3017] },
			"properties": { "mapid": "DFPB0001", "name": "Stanley Park", "geo_local_area": "West End", "pet_friendly": "Y", "in_operation": "Spring to Fall" }
		},
		{
			"type": "Feature",
			"geometry": { "type": "Point", "coordinates": [-123.0138, 49.2450] },
			"properties": { "mapid": "61384", "name": "Central Park" }
		},
		{
			"type": "Feature",
			"geometry": { "type": "Point", "coordinates": [-123.0, 91.0] },
			"properties": { "mapid": "DFPB0009" }
		},
		{
			"type": "Feature",
			"geometry": { "type": "Point", "coordinates": [-123.5, 49.2] },
			"properties": { "name": "No key" }
		}
	]
}`

func TestLoadFeatureCollection(t *testing.T) {

	ctx := context.Background()

	records, err := LoadFeatureCollection(ctx, strings.NewReader(raw_geojson))

	if err != nil {
		t.Fatalf("Failed to load feature collection, %v", err)
	}

	// Out-of-range latitude and the keyless feature are skipped

	if len(records) != 2 {
		t.Fatalf("Expected 2 records but got %d", len(records))
	}

	if records[0].City != fountains.CityVancouver {
		t.Fatalf("Unexpected city '%s'", records[0].City)
	}

	if records[1].City != fountains.CityBurnaby {
		t.Fatalf("Unexpected city '%s'", records[1].City)
	}
}
