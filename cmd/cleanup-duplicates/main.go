// cleanup-duplicates reconciles fountains that share an original_mapid,
// keeping the best-rated copy of each and repointing its ratings and
// Instagram posts before deleting the rest. Stores have to be clean before
// the unique mapid index (and so the atomic upsert) can be installed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains/database"
)

func main() {

	fs := flagset.NewFlagSet("fountains")

	summary := fs.Bool("summary", false, "Print the merge plan and exit without changing anything.")
	yes := fs.Bool("yes", false, "Apply the merge plan without asking for confirmation.")

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "FOUNTAINS")

	if err != nil {
		logrus.Fatalf("Failed to set flags from environment, %v", err)
	}

	cfg, err := database.NewConfigFromEnv()

	if err != nil {
		logrus.Fatalf("Failed to derive configuration, %v", err)
	}

	db, err := database.Open(cfg)

	if err != nil {
		logrus.Fatalf("Failed to open database, %v", err)
	}

	plan, err := database.BuildMergePlan(db)

	if err != nil {
		logrus.Fatalf("Failed to build merge plan, %v", err)
	}

	if len(plan) == 0 {
		logrus.Info("No duplicate mapids found")
		return
	}

	for _, group := range plan {
		fmt.Printf("%s: keep %s (%d ratings), delete %d duplicates (%d ratings total)\n",
			group.MapID, group.Keep.ID, group.KeepRatings, len(group.Drop), group.TotalRatings)
	}

	if *summary {
		return
	}

	if !*yes {

		fmt.Print("Apply this plan? Ratings and posts are preserved but duplicate rows are deleted. Type 'yes' to continue: ")

		scanner := bufio.NewScanner(os.Stdin)

		if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "yes" {
			logrus.Info("Aborted")
			return
		}
	}

	stats, err := database.ApplyMergePlan(db, plan)

	if err != nil {
		logrus.Fatalf("Failed to apply merge plan, %v", err)
	}

	logrus.Infof("Merged %d groups (%d failed): deleted %d duplicates, moved %d ratings and %d posts",
		stats.GroupsMerged, stats.GroupsFailed, stats.Deleted, stats.RatingsMoved, stats.PostsMoved)
}
