// Package source reads the raw city exports and produces normalized fountain
// records. Rows are converted from loose CSV dictionaries into typed per-source
// structs as soon as they are read, so nothing downstream branches on ad hoc
// column presence.
package source

import (
	"context"
	"fmt"
	"io"

	"github.com/sfomuseum/go-csvdict"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains"
	"github.com/yvr-fountains/go-yvr-fountains/projection"
)

// VancouverRow is one row of the Vancouver Parks export ("Source A"). The
// Geom column, when present, carries an embedded GeoJSON point in the same
// projection as X/Y and is preferred over them.
type VancouverRow struct {
	MapID            string
	Location         string
	DetailedLocation string
	Neighborhood     string
	Type             string
	Maintainer       string
	InOperation      string
	PetFriendly      string
	Geom             string
	X                string
	Y                string
}

// Normalize transforms the row's coordinates and maps its columns on to the
// shared record shape. An error means the row should be skipped, not that the
// batch should stop.
func (row *VancouverRow) Normalize() (*fountains.Record, error) {

	if row.MapID == "" {
		return nil, fmt.Errorf("Missing MAPID")
	}

	var lat float64
	var lon float64
	var err error

	if row.Geom != "" {
		lat, lon, err = projection.ParseLatLonFromGeom(row.Geom)
	} else {
		lat, lon, err = projection.ParseLatLonFromXY(row.X, row.Y)
	}

	if err != nil {
		return nil, err
	}

	rec := &fountains.Record{
		MapID:               row.MapID,
		Name:                fountains.TrimToNil(row.Location),
		LocationDescription: fountains.TrimToNil(row.Location),
		DetailedLocation:    fountains.TrimToNil(row.DetailedLocation),
		Neighborhood:        fountains.TrimToNil(row.Neighborhood),
		Type:                fountains.NormalizeType(row.Type),
		Maintainer:          fountains.TrimToNil(row.Maintainer),
		OperationalSeason:   fountains.NormalizeSeason(row.InOperation),
		PetFriendly:         fountains.ParseBoolean(row.PetFriendly),
		Lat:                 lat,
		Lon:                 lon,
		City:                fountains.CityVancouver,
		Dataset:             fountains.DatasetVancouver,
	}

	return rec, nil
}

// LoadVancouverCSV reads the Vancouver export and returns the normalized
// records, one per unique MAPID. Rows with bad coordinates or repeated keys
// are logged and skipped.
func LoadVancouverCSV(ctx context.Context, r io.Reader) ([]*fountains.Record, error) {

	csv_r, err := csvdict.NewReader(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to create CSV reader, %w", err)
	}

	records := make([]*fountains.Record, 0)
	seen := make(map[string]bool)

	for {

		dict, err := csv_r.Read()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("Failed to read row, %w", err)
		}

		row := &VancouverRow{
			MapID:            dict["MAPID"],
			Location:         dict["LOCATION"],
			DetailedLocation: dict["DETAILED_LOCATION"],
			Neighborhood:     dict["Neighborhood"],
			Type:             dict["TYPE"],
			Maintainer:       dict["MAINTAINER"],
			InOperation:      dict["IN_OPERATION"],
			PetFriendly:      dict["PET_FRIENDLY"],
			Geom:             dict["Geom"],
			X:                dict["X"],
			Y:                dict["Y"],
		}

		rec, err := row.Normalize()

		if err != nil {
			logrus.WithField("mapid", row.MapID).Warnf("Skipping Vancouver row, %v", err)
			continue
		}

		if seen[rec.MapID] {
			logrus.WithField("mapid", rec.MapID).Warn("Skipping duplicate MAPID in source file")
			continue
		}

		seen[rec.MapID] = true
		records = append(records, rec)
	}

	return records, nil
}
