package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sfomuseum/go-csvdict"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains"
	"github.com/yvr-fountains/go-yvr-fountains/projection"
)

// BurnabyRow is one row of the Burnaby export ("Source B"). COMPKEY is the
// natural key; SITE and NOTES play the roles Vancouver's LOCATION columns do,
// and the TYPE column carries short codes (DF, DDF, ST, BF).
type BurnabyRow struct {
	CompKey  string
	ObjectID string
	UnitID   string
	Site     string
	Notes    string
	Type     string
	X        string
	Y        string
}

func (row *BurnabyRow) Normalize() (*fountains.Record, error) {

	if row.CompKey == "" {
		return nil, fmt.Errorf("Missing COMPKEY")
	}

	lat, lon, err := projection.ParseLatLonFromXY(row.X, row.Y)

	if err != nil {
		return nil, err
	}

	// SITE plus OBJECTID gives the long-form location used by the map UI.

	var detailed *string

	site := strings.TrimSpace(row.Site)

	if site != "" {
		d := fmt.Sprintf("%s (ID: %s)", site, strings.TrimSpace(row.ObjectID))
		detailed = &d
	}

	maintainer := "Burnaby Parks"

	rec := &fountains.Record{
		MapID:               row.CompKey,
		Name:                fountains.TrimToNil(row.Site),
		LocationDescription: fountains.TrimToNil(row.Notes),
		DetailedLocation:    detailed,
		Type:                fountains.NormalizeType(row.Type),
		Maintainer:          &maintainer,
		OperationalSeason:   fountains.SeasonUnknown,
		Lat:                 lat,
		Lon:                 lon,
		City:                fountains.CityBurnaby,
		Dataset:             fountains.DatasetBurnaby,
	}

	return rec, nil
}

// LoadBurnabyCSV reads the Burnaby export and returns the normalized records,
// one per unique COMPKEY.
func LoadBurnabyCSV(ctx context.Context, r io.Reader) ([]*fountains.Record, error) {

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

		row := &BurnabyRow{
			CompKey:  dict["COMPKEY"],
			ObjectID: dict["OBJECTID"],
			UnitID:   dict["UNITID"],
			Site:     dict["SITE"],
			Notes:    dict["NOTES"],
			Type:     dict["TYPE"],
			X:        dict["X"],
			Y:        dict["Y"],
		}

		rec, err := row.Normalize()

		if err != nil {
			logrus.WithField("compkey", row.CompKey).Warnf("Skipping Burnaby row, %v", err)
			continue
		}

		if seen[rec.MapID] {
			logrus.WithField("compkey", rec.MapID).Warn("Skipping duplicate COMPKEY in source file")
			continue
		}

		seen[rec.MapID] = true
		records = append(records, rec)
	}

	return records, nil
}
