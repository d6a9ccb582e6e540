package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// City is a small lookup entity, created lazily the first time a loader
// references it and never updated afterwards.
type City struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Province  string `gorm:"size:10"`
	Country   string `gorm:"size:50"`
	CreatedAt time.Time
}

// SourceDataset records where a batch of fountains came from.
type SourceDataset struct {
	ID          uint   `gorm:"primaryKey"`
	CityName    string `gorm:"index;not null"`
	DatasetName string `gorm:"not null"`
	DataFormat  string `gorm:"size:10"`
	LastUpdated *time.Time
	CreatedAt   time.Time
}

// Fountain is the destination record, keyed internally by a generated UUID
// and externally by the city-assigned original_mapid. The mapid column is
// indexed but not unique at the column level: stores loaded by the earlier
// scripts accumulated duplicate mapids, and cleanup-duplicates reconciles
// them before Migrate can install the unique index the upsert relies on.
type Fountain struct {
	ID                  string `gorm:"type:uuid;primaryKey"`
	OriginalMapID       string `gorm:"column:original_mapid;index;not null"`
	CityID              uint   `gorm:"index;not null"`
	SourceDatasetID     uint   `gorm:"index"`
	Name                *string
	LocationDescription *string
	DetailedLocation    *string
	Neighborhood        *string
	Type                *string
	Maintainer          *string
	OperationalSeason   *string `gorm:"size:50"`
	PetFriendly         *bool
	Lat                 float64 `gorm:"not null"`
	Lon                 float64 `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Ratings             []Rating `gorm:"foreignKey:FountainID"`
}

func (f *Fountain) BeforeCreate(tx *gorm.DB) error {

	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	return nil
}

// Rating review moderation states.
const (
	ReviewPending  string = "pending"
	ReviewApproved string = "approved"
	ReviewRejected string = "rejected"
)

// Rating is a child of a Fountain. Ratings are never orphaned: the merge
// reassigns them to the surviving record before a duplicate is deleted.
type Rating struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	FountainID    string `gorm:"column:fountain_id;type:uuid;index;not null"`
	OverallRating *float64
	WaterQuality  *int
	FlowPressure  *int
	Temperature   *int
	Drainage      *int
	Accessibility *int
	Visited       bool
	VisitDate     *time.Time
	Notes         *string
	ReviewType    string `gorm:"size:20;default:user"`
	ReviewStatus  string `gorm:"size:20;default:pending"`
	ReviewerName  *string
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {

	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}

// InstagramPost links a fountain (and optionally the rating it was posted
// with) to a public post. post_url is unique so re-running the migration
// never duplicates posts.
type InstagramPost struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	FountainID string  `gorm:"column:fountain_id;type:uuid;index;not null"`
	RatingID   *string `gorm:"column:rating_id;type:uuid;index"`
	PostURL    string  `gorm:"column:post_url;uniqueIndex;not null"`
	Caption    *string
	DatePosted *time.Time
	CreatedAt  time.Time
}

func (p *InstagramPost) BeforeCreate(tx *gorm.DB) error {

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return nil
}
