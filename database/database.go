// Package database is the destination store for the fountain tools: gorm
// models, connection plumbing and the batch upsert / dedup-merge / ratings
// migration routines the command-line tools are built from.
package database

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the explicit configuration object passed into the tools. Nothing
// in this package reads ambient environment state after NewConfigFromEnv
// returns.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

// NewConfigFromEnv loads a .env file when one is present (the tools are run
// from the project checkout) and parses the environment. A missing
// DATABASE_URL is a configuration error and fails fast.
func NewConfigFromEnv() (*Config, error) {

	err := godotenv.Load()

	if err != nil {
		logrus.Debugf("No .env file loaded, %v", err)
	}

	cfg, err := env.ParseAs[Config]()

	if err != nil {
		return nil, fmt.Errorf("Failed to parse environment, %w", err)
	}

	return &cfg, nil
}

// Open connects to the Postgres destination store.
func Open(cfg *Config) (*gorm.DB, error) {

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database, %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema, then installs the unique index on
// fountains.original_mapid that the atomic upsert conflicts against. Index
// creation fails while legacy duplicate mapids are still present; run
// cleanup-duplicates first on such stores.
func Migrate(db *gorm.DB) error {

	err := db.AutoMigrate(&City{}, &SourceDataset{}, &Fountain{}, &Rating{}, &InstagramPost{})

	if err != nil {
		return fmt.Errorf("Failed to migrate schema, %w", err)
	}

	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uix_fountains_original_mapid ON fountains (original_mapid)").Error

	if err != nil {
		return fmt.Errorf("Failed to create unique mapid index (duplicate mapids present? run cleanup-duplicates), %w", err)
	}

	return nil
}

// GetOrCreateCity returns the id for a city, creating the row on first
// reference.
func GetOrCreateCity(db *gorm.DB, name string) (uint, error) {

	city := City{
		Name:     name,
		Province: "BC",
		Country:  "Canada",
	}

	err := db.Where(City{Name: name}).FirstOrCreate(&city).Error

	if err != nil {
		return 0, fmt.Errorf("Failed to get or create city '%s', %w", name, err)
	}

	return city.ID, nil
}

// GetOrCreateSourceDataset returns the id for a source dataset, creating the
// row on first reference.
func GetOrCreateSourceDataset(db *gorm.DB, city_name string, dataset_name string) (uint, error) {

	ds := SourceDataset{
		CityName:    city_name,
		DatasetName: dataset_name,
		DataFormat:  "csv",
	}

	err := db.Where(SourceDataset{CityName: city_name, DatasetName: dataset_name}).FirstOrCreate(&ds).Error

	if err != nil {
		return 0, fmt.Errorf("Failed to get or create source dataset '%s', %w", dataset_name, err)
	}

	return ds.ID, nil
}
