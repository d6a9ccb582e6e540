package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yvr-fountains/go-yvr-fountains"
	"github.com/yvr-fountains/go-yvr-fountains/source"
)

const instagramReviewer string = "YVR Water Fountains"

type RatingStats struct {
	RatingsCreated int
	PostsCreated   int
	PostsLinked    int
	Skipped        int
	Missing        int
}

// MigrateRatings loads field-visit ratings collected on Instagram into the
// store. Each row is matched to a fountain by mapid; rows for unknown mapids
// are logged and skipped, as are rows for fountains that already carry a
// rating, so re-running the migration is safe. Posts are deduplicated on
// post_url.
func MigrateRatings(db *gorm.DB, rows []*source.RatingRow) (*RatingStats, error) {

	stats := new(RatingStats)

	for _, row := range rows {

		log := logrus.WithField("mapid", row.MapID)

		var fountain Fountain

		err := db.Where("original_mapid = ?", row.MapID).First(&fountain).Error

		if err != nil {

			if err == gorm.ErrRecordNotFound {
				log.Warnf("No fountain for rating row, skipping")
				stats.Missing++
				continue
			}

			return nil, fmt.Errorf("Failed to look up fountain for '%s', %w", row.MapID, err)
		}

		var existing int64

		err = db.Model(&Rating{}).Where("fountain_id = ?", fountain.ID).Count(&existing).Error

		if err != nil {
			return nil, fmt.Errorf("Failed to count ratings for '%s', %w", row.MapID, err)
		}

		var rating_id *string

		if existing > 0 {

			stats.Skipped++

		} else {

			reviewer := instagramReviewer

			rating := Rating{
				FountainID:    fountain.ID,
				OverallRating: row.Rating,
				FlowPressure:  row.Flow,
				Temperature:   row.Temp,
				Drainage:      row.Drainage,
				Visited:       row.Visited,
				VisitDate:     row.VisitDate,
				Notes:         fountains.TrimToNil(row.Caption),
				ReviewType:    "instagram",
				ReviewStatus:  ReviewApproved,
				ReviewerName:  &reviewer,
				IsVerified:    true,
			}

			err = db.Create(&rating).Error

			if err != nil {
				log.Errorf("Failed to create rating, %v", err)
				continue
			}

			stats.RatingsCreated++
			rating_id = &rating.ID
		}

		if row.PostURL == "" {
			continue
		}

		var post_count int64

		err = db.Model(&InstagramPost{}).Where("post_url = ?", row.PostURL).Count(&post_count).Error

		if err != nil {
			return nil, fmt.Errorf("Failed to check for existing post, %w", err)
		}

		if post_count > 0 {
			stats.PostsLinked++
			continue
		}

		post := InstagramPost{
			FountainID: fountain.ID,
			RatingID:   rating_id,
			PostURL:    row.PostURL,
			Caption:    fountains.TrimToNil(row.Caption),
			DatePosted: row.VisitDate,
		}

		err = db.Create(&post).Error

		if err != nil {
			log.Errorf("Failed to create Instagram post, %v", err)
			continue
		}

		stats.PostsCreated++
	}

	return stats, nil
}
