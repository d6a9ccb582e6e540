// fetch-fountains pulls the drinking fountains dataset straight from the
// Vancouver open data API and upserts it into the store, skipping the CSV
// download step.
package main

import (
	"context"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains/database"
	"github.com/yvr-fountains/go-yvr-fountains/opendata"
)

func main() {

	fs := flagset.NewFlagSet("fountains")

	dataset := fs.String("dataset", opendata.DatasetDrinkingFountains, "Open data dataset identifier to fetch.")
	update_only := fs.Bool("update-only", false, "Refresh existing fountains but do not insert new ones.")
	dry_run := fs.Bool("dry-run", false, "Report what would change without writing to the store.")

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "FOUNTAINS")

	if err != nil {
		logrus.Fatalf("Failed to set flags from environment, %v", err)
	}

	ctx := context.Background()

	records, err := opendata.FetchDataset(ctx, *dataset)

	if err != nil {
		logrus.Fatalf("Failed to fetch dataset '%s', %v", *dataset, err)
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

	opts := database.DefaultUpsertOptions()
	opts.UpdateOnly = *update_only
	opts.DryRun = *dry_run

	stats, err := database.UpsertFountains(db, records, opts)

	if err != nil {
		logrus.Fatalf("Failed to upsert fountains, %v", err)
	}

	logrus.Infof("Created %d, updated %d, skipped %d, failed %d", stats.Created, stats.Updated, stats.Skipped, stats.Failed)
}
