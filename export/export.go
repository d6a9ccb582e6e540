// Package export renders the fountain store as GeoJSON for the public map:
// one feature per fountain with its aggregated ratings and Instagram posts
// folded into the properties.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"github.com/whosonfirst/go-writer/v3"
	"gorm.io/gorm"

	"github.com/yvr-fountains/go-yvr-fountains"
	"github.com/yvr-fountains/go-yvr-fountains/database"
)

const UnnamedFountain string = "Unnamed Fountain"

// FetchFountains reads every fountain with its ratings preloaded, plus the
// Instagram posts grouped by fountain id.
func FetchFountains(db *gorm.DB) ([]database.Fountain, map[string][]database.InstagramPost, error) {

	records := make([]database.Fountain, 0)

	err := db.Preload("Ratings").Order("original_mapid").Find(&records).Error

	if err != nil {
		return nil, nil, fmt.Errorf("Failed to list fountains, %w", err)
	}

	posts := make([]database.InstagramPost, 0)

	err = db.Order("date_posted").Find(&posts).Error

	if err != nil {
		return nil, nil, fmt.Errorf("Failed to list Instagram posts, %w", err)
	}

	grouped := make(map[string][]database.InstagramPost)

	for _, p := range posts {
		grouped[p.FountainID] = append(grouped[p.FountainID], p)
	}

	return records, grouped, nil
}

// BuildFeatureCollection assembles the public feature collection. It is a
// pure function of its inputs so it can be exercised without a store.
func BuildFeatureCollection(records []database.Fountain, posts map[string][]database.InstagramPost) *geojson.FeatureCollection {

	fc := geojson.NewFeatureCollection()

	for _, rec := range records {

		pt := orb.Point{rec.Lon, rec.Lat}

		f := geojson.NewFeature(pt)

		f.Properties["id"] = rec.OriginalMapID

		name := UnnamedFountain

		if rec.Name != nil && *rec.Name != "" {
			name = *rec.Name
		}

		f.Properties["name"] = name
		f.Properties["city"] = fountains.DeriveCityName(rec.OriginalMapID, rec.Lon)
		f.Properties["neighborhood"] = strValue(rec.Neighborhood)
		f.Properties["location"] = strValue(rec.LocationDescription)
		f.Properties["detailed_location"] = strValue(rec.DetailedLocation)
		f.Properties["type"] = strValue(rec.Type)
		f.Properties["maintainer"] = strValue(rec.Maintainer)
		f.Properties["operational_season"] = strValue(rec.OperationalSeason)

		if rec.PetFriendly != nil {
			f.Properties["pet_friendly"] = *rec.PetFriendly
		} else {
			f.Properties["pet_friendly"] = nil
		}

		addRatingProperties(f, rec.Ratings)
		addInstagramProperties(f, posts[rec.ID])

		fc.Append(f)
	}

	return fc
}

func addRatingProperties(f *geojson.Feature, ratings []database.Rating) {

	f.Properties["rating_count"] = len(ratings)

	if len(ratings) == 0 {
		f.Properties["avg_rating"] = nil
		f.Properties["last_visited"] = nil
		return
	}

	sum := 0.0
	rated := 0

	var last_visited *time.Time

	for _, r := range ratings {

		if r.OverallRating != nil {
			sum += *r.OverallRating
			rated++
		}

		if r.VisitDate != nil {

			if last_visited == nil || r.VisitDate.After(*last_visited) {
				last_visited = r.VisitDate
			}
		}
	}

	if rated > 0 {
		f.Properties["avg_rating"] = math.Round(sum/float64(rated)*10) / 10
	} else {
		f.Properties["avg_rating"] = nil
	}

	if last_visited != nil {
		f.Properties["last_visited"] = last_visited.Format("2006-01-02")
	} else {
		f.Properties["last_visited"] = nil
	}

	latest := latestRating(ratings)

	f.Properties["rating"] = floatValue(latest.OverallRating)
	f.Properties["flow"] = intValue(latest.FlowPressure)
	f.Properties["temp"] = intValue(latest.Temperature)
	f.Properties["drainage"] = intValue(latest.Drainage)
	f.Properties["water_quality"] = intValue(latest.WaterQuality)
	f.Properties["caption"] = strValue(latest.Notes)
}

// latestRating prefers visit date, then creation time, so a freshly
// moderated rating with an older visit never shadows a newer visit.
func latestRating(ratings []database.Rating) database.Rating {

	sorted := make([]database.Rating, len(ratings))
	copy(sorted, ratings)

	sort.SliceStable(sorted, func(i int, j int) bool {

		di := ratingTime(sorted[i])
		dj := ratingTime(sorted[j])

		return di.After(dj)
	})

	return sorted[0]
}

func ratingTime(r database.Rating) time.Time {

	if r.VisitDate != nil {
		return *r.VisitDate
	}

	return r.CreatedAt
}

func addInstagramProperties(f *geojson.Feature, posts []database.InstagramPost) {

	f.Properties["has_instagram"] = len(posts) > 0
	f.Properties["instagram_count"] = len(posts)

	urls := make([]map[string]interface{}, 0, len(posts))

	for _, p := range posts {

		entry := map[string]interface{}{
			"url":     p.PostURL,
			"caption": strValue(p.Caption),
		}

		if p.DatePosted != nil {
			entry["date"] = p.DatePosted.Format("2006-01-02")
		} else {
			entry["date"] = nil
		}

		urls = append(urls, entry)
	}

	f.Properties["instagram_posts"] = urls
}

// WriteFiles writes the collection under dir in the three layouts the site
// consumes: a pretty-printed copy for humans, a minified copy for the map
// and a gzipped copy for bandwidth-constrained clients.
func WriteFiles(ctx context.Context, fc *geojson.FeatureCollection, dir string) error {

	abs, err := filepath.Abs(dir)

	if err != nil {
		return fmt.Errorf("Failed to derive absolute path for '%s', %w", dir, err)
	}

	wr, err := writer.NewWriter(ctx, fmt.Sprintf("fs://%s", abs))

	if err != nil {
		return fmt.Errorf("Failed to create writer for '%s', %w", abs, err)
	}

	defer wr.Close(ctx)

	pretty, err := json.MarshalIndent(fc, "", "  ")

	if err != nil {
		return fmt.Errorf("Failed to marshal feature collection, %w", err)
	}

	_, err = wr.Write(ctx, "fountains_processed.geojson", bytes.NewReader(pretty))

	if err != nil {
		return fmt.Errorf("Failed to write fountains_processed.geojson, %w", err)
	}

	minified, err := fc.MarshalJSON()

	if err != nil {
		return fmt.Errorf("Failed to marshal feature collection, %w", err)
	}

	_, err = wr.Write(ctx, "fountains.geojson", bytes.NewReader(minified))

	if err != nil {
		return fmt.Errorf("Failed to write fountains.geojson, %w", err)
	}

	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)

	_, err = gz.Write(minified)

	if err != nil {
		return fmt.Errorf("Failed to compress feature collection, %w", err)
	}

	err = gz.Close()

	if err != nil {
		return fmt.Errorf("Failed to finalize gzip stream, %w", err)
	}

	_, err = wr.Write(ctx, "fountains.geojson.gz", bytes.NewReader(buf.Bytes()))

	if err != nil {
		return fmt.Errorf("Failed to write fountains.geojson.gz, %w", err)
	}

	logrus.Infof("Wrote %d features to %s", len(fc.Features), abs)

	return nil
}

func strValue(v *string) interface{} {

	if v == nil {
		return nil
	}

	return *v
}

func floatValue(v *float64) interface{} {

	if v == nil {
		return nil
	}

	return *v
}

func intValue(v *int) interface{} {

	if v == nil {
		return nil
	}

	return *v
}
