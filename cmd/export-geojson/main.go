// export-geojson renders the store as the GeoJSON files the public map
// consumes.
package main

import (
	"context"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains/database"
	"github.com/yvr-fountains/go-yvr-fountains/export"
)

func main() {

	fs := flagset.NewFlagSet("fountains")

	target := fs.String("target", ".", "Directory to write the GeoJSON files to.")

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "FOUNTAINS")

	if err != nil {
		logrus.Fatalf("Failed to set flags from environment, %v", err)
	}

	ctx := context.Background()

	cfg, err := database.NewConfigFromEnv()

	if err != nil {
		logrus.Fatalf("Failed to derive configuration, %v", err)
	}

	db, err := database.Open(cfg)

	if err != nil {
		logrus.Fatalf("Failed to open database, %v", err)
	}

	records, posts, err := export.FetchFountains(db)

	if err != nil {
		logrus.Fatalf("Failed to fetch fountains, %v", err)
	}

	if len(records) == 0 {
		logrus.Fatalf("Store holds no fountains; run load-fountains first")
	}

	fc := export.BuildFeatureCollection(records, posts)

	err = export.WriteFiles(ctx, fc, *target)

	if err != nil {
		logrus.Fatalf("Failed to write GeoJSON, %v", err)
	}
}
