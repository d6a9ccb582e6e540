package source

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"github.com/yvr-fountains/go-yvr-fountains"
)

// LoadFeatureCollection reads a raw GeoJSON export whose point geometries are
// already geographic [lon, lat]. Features without a point geometry, without a
// mapid or with out-of-range coordinates are logged and skipped.
func LoadFeatureCollection(ctx context.Context, r io.Reader) ([]*fountains.Record, error) {

	body, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to read body, %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to unmarshal feature collection, %w", err)
	}

	records := make([]*fountains.Record, 0)
	seen := make(map[string]bool)

	for _, f := range fc.Features {

		pt, ok := f.Geometry.(orb.Point)

		if !ok {
			logrus.Warn("Skipping feature without point geometry")
			continue
		}

		lon := pt.Lon()
		lat := pt.Lat()

		if !fountains.ValidCoordinates(lat, lon) {
			logrus.Warnf("Skipping feature with out-of-range position (%f, %f)", lat, lon)
			continue
		}

		mapid := propString(f, "mapid")

		if mapid == "" {
			logrus.Warn("Skipping feature without mapid")
			continue
		}

		if seen[mapid] {
			logrus.WithField("mapid", mapid).Warn("Skipping duplicate mapid in source file")
			continue
		}

		city := fountains.DeriveCityName(mapid, lon)

		dataset := fountains.DatasetVancouver

		if city == fountains.CityBurnaby {
			dataset = fountains.DatasetBurnaby
		}

		rec := &fountains.Record{
			MapID:               mapid,
			Name:                fountains.TrimToNil(propString(f, "name")),
			LocationDescription: fountains.TrimToNil(propString(f, "location")),
			Neighborhood:        fountains.TrimToNil(propString(f, "geo_local_area")),
			Type:                fountains.NormalizeType(propString(f, "type")),
			Maintainer:          fountains.TrimToNil(propString(f, "maintainer")),
			OperationalSeason:   fountains.NormalizeSeason(propString(f, "in_operation")),
			PetFriendly:         fountains.ParseBoolean(propString(f, "pet_friendly")),
			Lat:                 lat,
			Lon:                 lon,
			City:                city,
			Dataset:             dataset,
		}

		seen[mapid] = true
		records = append(records, rec)
	}

	return records, nil
}

func propString(f *geojson.Feature, key string) string {

	v, ok := f.Properties[key]

	if !ok || v == nil {
		return ""
	}

	s, ok := v.(string)

	if !ok {
		return fmt.Sprintf("%v", v)
	}

	return s
}
