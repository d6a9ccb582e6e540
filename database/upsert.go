package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yvr-fountains/go-yvr-fountains"
)

// Batches are sized to stay under the store's request payload limit, not for
// parallelism.
const DefaultBatchSize int = 50

type UpsertOptions struct {
	// UpdateOnly refreshes existing fountains but never inserts new natural
	// keys, so a run can't grow the store.
	UpdateOnly bool
	// DryRun reports what would change without writing anything.
	DryRun    bool
	BatchSize int
}

func DefaultUpsertOptions() *UpsertOptions {

	return &UpsertOptions{
		BatchSize: DefaultBatchSize,
	}
}

type UpsertStats struct {
	Created int
	Updated int
	Skipped int
	Failed  int
}

// Columns refreshed when an incoming record conflicts with an existing
// natural key.
var upsert_columns = []string{
	"city_id",
	"source_dataset_id",
	"name",
	"location_description",
	"detailed_location",
	"neighborhood",
	"type",
	"maintainer",
	"operational_season",
	"pet_friendly",
	"lat",
	"lon",
	"updated_at",
}

// UpsertFountains writes normalized records to the store as a single atomic
// insert-or-update per batch, conflicting on original_mapid. A failed batch
// logs the offending mapids and the run continues with the next batch.
func UpsertFountains(db *gorm.DB, records []*fountains.Record, opts *UpsertOptions) (*UpsertStats, error) {

	if opts == nil {
		opts = DefaultUpsertOptions()
	}

	batch_size := opts.BatchSize

	if batch_size <= 0 {
		batch_size = DefaultBatchSize
	}

	existing, err := existingMapIDs(db)

	if err != nil {
		return nil, err
	}

	city_ids := make(map[string]uint)
	dataset_ids := make(map[string]uint)

	stats := new(UpsertStats)
	models := make([]Fountain, 0, len(records))

	for _, rec := range records {

		if opts.UpdateOnly && !existing[rec.MapID] {
			stats.Skipped++
			continue
		}

		city_id, ok := city_ids[rec.City]

		if !ok {

			city_id, err = GetOrCreateCity(db, rec.City)

			if err != nil {
				return nil, err
			}

			city_ids[rec.City] = city_id
		}

		dataset_id, ok := dataset_ids[rec.Dataset]

		if !ok {

			dataset_id, err = GetOrCreateSourceDataset(db, rec.City, rec.Dataset)

			if err != nil {
				return nil, err
			}

			dataset_ids[rec.Dataset] = dataset_id
		}

		season := rec.OperationalSeason

		f := Fountain{
			OriginalMapID:       rec.MapID,
			CityID:              city_id,
			SourceDatasetID:     dataset_id,
			Name:                rec.Name,
			LocationDescription: rec.LocationDescription,
			DetailedLocation:    rec.DetailedLocation,
			Neighborhood:        rec.Neighborhood,
			Type:                rec.Type,
			Maintainer:          rec.Maintainer,
			OperationalSeason:   &season,
			PetFriendly:         rec.PetFriendly,
			Lat:                 rec.Lat,
			Lon:                 rec.Lon,
		}

		models = append(models, f)

		if existing[rec.MapID] {
			stats.Updated++
		} else {
			stats.Created++
		}
	}

	if opts.DryRun {
		logrus.Infof("Dry run: %d to create, %d to update, %d skipped", stats.Created, stats.Updated, stats.Skipped)
		return stats, nil
	}

	on_conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "original_mapid"}},
		DoUpdates: clause.AssignmentColumns(upsert_columns),
	}

	for start := 0; start < len(models); start += batch_size {

		end := start + batch_size

		if end > len(models) {
			end = len(models)
		}

		batch := models[start:end]

		err := db.Clauses(on_conflict).Create(&batch).Error

		if err != nil {

			mapids := make([]string, len(batch))

			for i, f := range batch {
				mapids[i] = f.OriginalMapID
			}

			logrus.WithField("mapids", mapids).Errorf("Failed to upsert batch %d, %v", start/batch_size+1, err)

			stats.Failed += len(batch)
			continue
		}

		logrus.Infof("Upserted batch %d (%d fountains)", start/batch_size+1, len(batch))
	}

	return stats, nil
}

func existingMapIDs(db *gorm.DB) (map[string]bool, error) {

	mapids := make([]string, 0)

	err := db.Model(&Fountain{}).Pluck("original_mapid", &mapids).Error

	if err != nil {
		return nil, fmt.Errorf("Failed to list existing mapids, %w", err)
	}

	existing := make(map[string]bool, len(mapids))

	for _, id := range mapids {
		existing[id] = true
	}

	return existing, nil
}

// CountFountains returns the total number of fountain records in the store.
func CountFountains(db *gorm.DB) (int64, error) {

	var count int64

	err := db.Model(&Fountain{}).Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("Failed to count fountains, %w", err)
	}

	return count, nil
}
