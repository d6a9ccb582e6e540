package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/yvr-fountains/go-yvr-fountains/database"
)

func testFountains() ([]database.Fountain, map[string][]database.InstagramPost) {

	name := "Stanley Park"
	rating_old := 6.0
	rating_new := 9.0
	flow := 4
	old_visit := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	new_visit := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	caption := "cold and plentiful"

	records := []database.Fountain{
		{
			ID:            "aaaa",
			OriginalMapID: "DFPB0001",
			Name:          &name,
			Lat:           49.3017,
			Lon:           -123.1393,
			Ratings: []database.Rating{
				{OverallRating: &rating_old, VisitDate: &old_visit},
				{OverallRating: &rating_new, FlowPressure: &flow, VisitDate: &new_visit, Notes: &caption},
			},
		},
		{
			ID:            "bbbb",
			OriginalMapID: "61384",
			Lat:           49.2450,
			Lon:           -123.0138,
		},
	}

	posts := map[string][]database.InstagramPost{
		"aaaa": {
			{FountainID: "aaaa", PostURL: "https://www.instagram.com/p/abc123/", DatePosted: &new_visit},
		},
	}

	return records, posts
}

func TestBuildFeatureCollection(t *testing.T) {

	records, posts := testFountains()

	fc := BuildFeatureCollection(records, posts)

	require.Len(t, fc.Features, 2)

	first := fc.Features[0]

	require.Equal(t, "DFPB0001", first.Properties["id"])
	require.Equal(t, "Vancouver", first.Properties["city"])
	require.Equal(t, 2, first.Properties["rating_count"])

	// Average of 6 and 9, rounded to one decimal

	require.Equal(t, 7.5, first.Properties["avg_rating"])

	// The newer visit supplies the headline rating

	require.Equal(t, 9.0, first.Properties["rating"])
	require.Equal(t, "2025-06-14", first.Properties["last_visited"])
	require.Equal(t, "cold and plentiful", first.Properties["caption"])

	require.Equal(t, true, first.Properties["has_instagram"])
	require.Equal(t, 1, first.Properties["instagram_count"])

	second := fc.Features[1]

	require.Equal(t, UnnamedFountain, second.Properties["name"])
	require.Equal(t, "Burnaby", second.Properties["city"])
	require.Equal(t, 0, second.Properties["rating_count"])
	require.Nil(t, second.Properties["avg_rating"])
	require.Equal(t, false, second.Properties["has_instagram"])
}

func TestWriteFilesRoundTrip(t *testing.T) {

	ctx := context.Background()

	records, posts := testFountains()

	fc := BuildFeatureCollection(records, posts)

	dir := t.TempDir()

	err := WriteFiles(ctx, fc, dir)

	require.NoError(t, err)

	for _, fname := range []string{"fountains_processed.geojson", "fountains.geojson", "fountains.geojson.gz"} {

		_, err := os.Stat(filepath.Join(dir, fname))
		require.NoError(t, err)
	}

	body, err := os.ReadFile(filepath.Join(dir, "fountains.geojson"))

	require.NoError(t, err)

	parsed, err := geojson.UnmarshalFeatureCollection(body)

	require.NoError(t, err)
	require.Len(t, parsed.Features, 2)

	pt := parsed.Features[0].Geometry.Bound().Min

	require.InDelta(t, -123.1393, pt[0], 1e-9)
	require.InDelta(t, 49.3017, pt[1], 1e-9)
}
