package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Metro Vancouver bounding box for the post-run integrity check. Anything
// stored outside it survived loading with plausible-but-wrong coordinates.
const (
	RegionMinLat float64 = 49.0
	RegionMaxLat float64 = 49.5
	RegionMinLon float64 = -123.5
	RegionMaxLon float64 = -122.5
)

// VerifyIntegrity reports the total number of fountains and how many of them
// sit outside the regional bounding box.
func VerifyIntegrity(db *gorm.DB) (int64, int64, error) {

	total, err := CountFountains(db)

	if err != nil {
		return 0, 0, err
	}

	var out_of_bounds int64

	err = db.Model(&Fountain{}).
		Where("lat < ? OR lat > ? OR lon < ? OR lon > ?", RegionMinLat, RegionMaxLat, RegionMinLon, RegionMaxLon).
		Count(&out_of_bounds).Error

	if err != nil {
		return 0, 0, fmt.Errorf("Failed to count out-of-bounds fountains, %w", err)
	}

	return total, out_of_bounds, nil
}
