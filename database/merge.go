package database

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MergeGroup is the reconciliation plan for one natural key that appears more
// than once in the store. Keep is the survivor; Drop are the duplicates whose
// child rows get reassigned to Keep before they are deleted.
type MergeGroup struct {
	MapID        string
	Keep         Fountain
	KeepRatings  int
	Drop         []Fountain
	TotalRatings int
}

type MergeStats struct {
	GroupsMerged int
	Deleted      int
	RatingsMoved int
	PostsMoved   int
	GroupsFailed int
}

// BuildMergePlan groups the store's fountains by original_mapid and, for each
// key with duplicates, selects a survivor: most attached ratings first, most
// recently updated second, id as a final deterministic tie-break. Running the
// resulting plan twice leaves the store unchanged, since a clean store
// produces an empty plan.
func BuildMergePlan(db *gorm.DB) ([]*MergeGroup, error) {

	all := make([]Fountain, 0)

	err := db.Select("id", "original_mapid", "created_at", "updated_at").Find(&all).Error

	if err != nil {
		return nil, fmt.Errorf("Failed to list fountains, %w", err)
	}

	counts, err := ratingCounts(db)

	if err != nil {
		return nil, err
	}

	groups := make(map[string][]Fountain)

	for _, f := range all {
		groups[f.OriginalMapID] = append(groups[f.OriginalMapID], f)
	}

	plan := make([]*MergeGroup, 0)

	for mapid, members := range groups {

		if len(members) < 2 {
			continue
		}

		sort.SliceStable(members, func(i int, j int) bool {

			ci := counts[members[i].ID]
			cj := counts[members[j].ID]

			if ci != cj {
				return ci > cj
			}

			if !members[i].UpdatedAt.Equal(members[j].UpdatedAt) {
				return members[i].UpdatedAt.After(members[j].UpdatedAt)
			}

			return members[i].ID < members[j].ID
		})

		total := 0

		for _, f := range members {
			total += counts[f.ID]
		}

		group := &MergeGroup{
			MapID:        mapid,
			Keep:         members[0],
			KeepRatings:  counts[members[0].ID],
			Drop:         members[1:],
			TotalRatings: total,
		}

		plan = append(plan, group)
	}

	sort.Slice(plan, func(i int, j int) bool {
		return plan[i].MapID < plan[j].MapID
	})

	return plan, nil
}

// ApplyMergePlan executes a plan: for each duplicate, ratings and Instagram
// posts are repointed at the survivor, then the duplicate row is deleted. A
// failure in one group logs and moves on to the next; child rows are always
// moved before their parent is removed.
func ApplyMergePlan(db *gorm.DB, plan []*MergeGroup) (*MergeStats, error) {

	stats := new(MergeStats)

	for _, group := range plan {

		log := logrus.WithField("mapid", group.MapID)

		failed := false

		for _, dup := range group.Drop {

			moved := db.Model(&Rating{}).Where("fountain_id = ?", dup.ID).Update("fountain_id", group.Keep.ID)

			if moved.Error != nil {
				log.Errorf("Failed to move ratings from %s, %v", dup.ID, moved.Error)
				failed = true
				continue
			}

			stats.RatingsMoved += int(moved.RowsAffected)

			posts := db.Model(&InstagramPost{}).Where("fountain_id = ?", dup.ID).Update("fountain_id", group.Keep.ID)

			if posts.Error != nil {
				log.Errorf("Failed to move Instagram posts from %s, %v", dup.ID, posts.Error)
				failed = true
				continue
			}

			stats.PostsMoved += int(posts.RowsAffected)

			err := db.Delete(&Fountain{}, "id = ?", dup.ID).Error

			if err != nil {
				log.Errorf("Failed to delete duplicate %s, %v", dup.ID, err)
				failed = true
				continue
			}

			stats.Deleted++
		}

		if failed {
			stats.GroupsFailed++
			continue
		}

		stats.GroupsMerged++
		log.Infof("Merged %d duplicates, kept %s (%d ratings preserved)", len(group.Drop), group.Keep.ID, group.TotalRatings)
	}

	return stats, nil
}

func ratingCounts(db *gorm.DB) (map[string]int, error) {

	type row struct {
		FountainID string
		N          int
	}

	rows := make([]row, 0)

	err := db.Model(&Rating{}).Select("fountain_id", "count(*) as n").Group("fountain_id").Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("Failed to count ratings, %w", err)
	}

	counts := make(map[string]int, len(rows))

	for _, r := range rows {
		counts[r.FountainID] = r.N
	}

	return counts, nil
}
