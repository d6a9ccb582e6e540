// Package opendata fetches fountain records straight from the City of
// Vancouver open data records API, as an alternative to loading a CSV
// export from disk.
package opendata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/yvr-fountains/go-yvr-fountains"
)

const RecordsAPI string = "https://opendata.vancouver.ca/api/records/1.0/search/"

const DatasetDrinkingFountains string = "drinking-fountains"

// The records API caps page sizes at 100 rows.
const page_size int = 100

// FetchDataset pages through a Vancouver open data dataset and returns the
// normalized fountain records. Geometries in the API are already WGS84 so no
// reprojection happens here.
func FetchDataset(ctx context.Context, dataset string) ([]*fountains.Record, error) {
	return FetchRecords(ctx, RecordsAPI, dataset)
}

// FetchRecords is FetchDataset against an explicit endpoint.
func FetchRecords(ctx context.Context, endpoint string, dataset string) ([]*fountains.Record, error) {

	records := make([]*fountains.Record, 0)
	seen := make(map[string]bool)

	start := 0

	for {

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// pass
		}

		body, err := fetchPage(ctx, endpoint, dataset, start)

		if err != nil {
			return nil, err
		}

		nhits_rsp := gjson.GetBytes(body, "nhits")

		if !nhits_rsp.Exists() {
			return nil, fmt.Errorf("Body missing record count")
		}

		page := gjson.GetBytes(body, "records")

		count := 0

		for _, rec := range page.Array() {

			count++

			mapid := rec.Get("fields.mapid").String()

			if mapid == "" {
				logrus.Warnf("Record missing mapid, skipping")
				continue
			}

			if seen[mapid] {
				logrus.Warnf("Duplicate mapid '%s', skipping", mapid)
				continue
			}

			coords := rec.Get("fields.geom.coordinates")

			if !coords.Exists() {
				logrus.WithField("mapid", mapid).Warnf("Record missing geometry, skipping")
				continue
			}

			lon := coords.Get("0").Float()
			lat := coords.Get("1").Float()

			if !fountains.ValidCoordinates(lat, lon) {
				logrus.WithField("mapid", mapid).Warnf("Record coordinates out of range, skipping")
				continue
			}

			r := &fountains.Record{
				MapID:               mapid,
				Name:                fountains.TrimToNil(rec.Get("fields.name").String()),
				LocationDescription: fountains.TrimToNil(rec.Get("fields.location").String()),
				DetailedLocation:    fountains.TrimToNil(rec.Get("fields.detailed_location").String()),
				Neighborhood:        fountains.TrimToNil(rec.Get("fields.geo_local_area").String()),
				Type:                fountains.NormalizeType(rec.Get("fields.type").String()),
				Maintainer:          fountains.TrimToNil(rec.Get("fields.maintainer").String()),
				OperationalSeason:   fountains.NormalizeSeason(rec.Get("fields.in_operation").String()),
				PetFriendly:         fountains.ParseBoolean(rec.Get("fields.pet_friendly").String()),
				Lat:                 lat,
				Lon:                 lon,
				City:                fountains.CityVancouver,
				Dataset:             fountains.DatasetVancouver,
			}

			seen[mapid] = true
			records = append(records, r)
		}

		start += count

		if count == 0 || int64(start) >= nhits_rsp.Int() {
			break
		}
	}

	logrus.Infof("Fetched %d records from dataset '%s'", len(records), dataset)

	return records, nil
}

func fetchPage(ctx context.Context, endpoint string, dataset string, start int) ([]byte, error) {

	q := url.Values{}
	q.Set("dataset", dataset)
	q.Set("rows", strconv.Itoa(page_size))
	q.Set("start", strconv.Itoa(start))

	return fetchURL(ctx, fmt.Sprintf("%s?%s", endpoint, q.Encode()))
}
