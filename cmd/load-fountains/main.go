// load-fountains reads one or more city datasets (CSV exports or a raw
// GeoJSON file), normalizes them and upserts the result into the store.
package main

import (
	"context"
	"io"
	"os"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains"
	"github.com/yvr-fountains/go-yvr-fountains/database"
	"github.com/yvr-fountains/go-yvr-fountains/source"
)

func main() {

	fs := flagset.NewFlagSet("fountains")

	vancouver_csv := fs.String("vancouver-csv", "", "Path to a City of Vancouver drinking fountains CSV export.")
	burnaby_csv := fs.String("burnaby-csv", "", "Path to a City of Burnaby water fountains CSV export.")
	geojson_path := fs.String("geojson", "", "Path to a raw GeoJSON feature collection to load.")

	update_only := fs.Bool("update-only", false, "Refresh existing fountains but do not insert new ones.")
	dry_run := fs.Bool("dry-run", false, "Report what would change without writing to the store.")
	batch_size := fs.Int("batch-size", database.DefaultBatchSize, "Number of fountains to upsert per batch.")
	expected_count := fs.Int("expected-count", 0, "If non-zero, warn when the post-run fountain total differs.")

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "FOUNTAINS")

	if err != nil {
		logrus.Fatalf("Failed to set flags from environment, %v", err)
	}

	if *vancouver_csv == "" && *burnaby_csv == "" && *geojson_path == "" {
		logrus.Fatalf("Nothing to load; pass -vancouver-csv, -burnaby-csv or -geojson")
	}

	ctx := context.Background()

	records := make([]*fountains.Record, 0)

	if *vancouver_csv != "" {

		loaded, err := loadFile(ctx, *vancouver_csv, source.LoadVancouverCSV)

		if err != nil {
			logrus.Fatalf("Failed to load '%s', %v", *vancouver_csv, err)
		}

		logrus.Infof("Loaded %d Vancouver fountains", len(loaded))
		records = append(records, loaded...)
	}

	if *burnaby_csv != "" {

		loaded, err := loadFile(ctx, *burnaby_csv, source.LoadBurnabyCSV)

		if err != nil {
			logrus.Fatalf("Failed to load '%s', %v", *burnaby_csv, err)
		}

		logrus.Infof("Loaded %d Burnaby fountains", len(loaded))
		records = append(records, loaded...)
	}

	if *geojson_path != "" {

		loaded, err := loadFile(ctx, *geojson_path, source.LoadFeatureCollection)

		if err != nil {
			logrus.Fatalf("Failed to load '%s', %v", *geojson_path, err)
		}

		logrus.Infof("Loaded %d fountains from GeoJSON", len(loaded))
		records = append(records, loaded...)
	}

	cfg, err := database.NewConfigFromEnv()

	if err != nil {
		logrus.Fatalf("Failed to derive configuration, %v", err)
	}

	db, err := database.Open(cfg)

	if err != nil {
		logrus.Fatalf("Failed to open database, %v", err)
	}

	err = database.Migrate(db)

	if err != nil {
		logrus.Fatalf("Failed to migrate database, %v", err)
	}

	opts := &database.UpsertOptions{
		UpdateOnly: *update_only,
		DryRun:     *dry_run,
		BatchSize:  *batch_size,
	}

	stats, err := database.UpsertFountains(db, records, opts)

	if err != nil {
		logrus.Fatalf("Failed to upsert fountains, %v", err)
	}

	logrus.Infof("Created %d, updated %d, skipped %d, failed %d", stats.Created, stats.Updated, stats.Skipped, stats.Failed)

	total, out_of_bounds, err := database.VerifyIntegrity(db)

	if err != nil {
		logrus.Fatalf("Failed to verify store, %v", err)
	}

	logrus.Infof("Store now holds %d fountains", total)

	if *expected_count > 0 && total != int64(*expected_count) {
		logrus.Warnf("Expected %d fountains but store holds %d", *expected_count, total)
	}

	if out_of_bounds > 0 {
		logrus.Warnf("%d fountains sit outside the regional bounding box", out_of_bounds)
	}
}

func loadFile(ctx context.Context, path string, load func(context.Context, io.Reader) ([]*fountains.Record, error)) ([]*fountains.Record, error) {

	r, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer r.Close()

	return load(ctx, r)
}
