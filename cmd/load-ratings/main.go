// load-ratings imports field-visit ratings (collected as an Instagram
// spreadsheet export) into the store, matching rows to fountains by mapid.
package main

import (
	"context"
	"os"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains/database"
	"github.com/yvr-fountains/go-yvr-fountains/source"
)

func main() {

	fs := flagset.NewFlagSet("fountains")

	ratings_csv := fs.String("ratings-csv", "", "Path to the ratings CSV export.")

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "FOUNTAINS")

	if err != nil {
		logrus.Fatalf("Failed to set flags from environment, %v", err)
	}

	if *ratings_csv == "" {
		logrus.Fatalf("Missing -ratings-csv")
	}

	ctx := context.Background()

	r, err := os.Open(*ratings_csv)

	if err != nil {
		logrus.Fatalf("Failed to open '%s', %v", *ratings_csv, err)
	}

	defer r.Close()

	rows, err := source.LoadRatingsCSV(ctx, r)

	if err != nil {
		logrus.Fatalf("Failed to load '%s', %v", *ratings_csv, err)
	}

	logrus.Infof("Loaded %d rating rows", len(rows))

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

	stats, err := database.MigrateRatings(db, rows)

	if err != nil {
		logrus.Fatalf("Failed to migrate ratings, %v", err)
	}

	logrus.Infof("Created %d ratings and %d posts (%d linked), skipped %d, %d rows without a fountain",
		stats.RatingsCreated, stats.PostsCreated, stats.PostsLinked, stats.Skipped, stats.Missing)
}
