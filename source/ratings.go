package source

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sfomuseum/go-csvdict"
	"github.com/sirupsen/logrus"
)

// RatingRow is one row of the curated ratings spreadsheet exported from the
// Instagram account. The id column holds the fountain's natural key.
type RatingRow struct {
	MapID     string
	PostURL   string
	Rating    *float64
	Flow      *int
	Temp      *int
	Drainage  *int
	Caption   string
	Visited   bool
	VisitDate *time.Time
}

// Visit dates appear in both US-style and ISO spellings.
var date_layouts = []string{"1/2/2006", "2006-01-02"}

// LoadRatingsCSV reads the ratings spreadsheet. Rows without a fountain id
// are logged and skipped; unparsable numeric cells and dates are dropped from
// the row rather than failing it.
func LoadRatingsCSV(ctx context.Context, r io.Reader) ([]*RatingRow, error) {

	csv_r, err := csvdict.NewReader(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to create CSV reader, %w", err)
	}

	rows := make([]*RatingRow, 0)

	for {

		dict, err := csv_r.Read()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("Failed to read row, %w", err)
		}

		mapid := strings.TrimSpace(dict["id"])

		if mapid == "" {
			logrus.Warn("Skipping rating row without fountain id")
			continue
		}

		row := &RatingRow{
			MapID:     mapid,
			PostURL:   strings.TrimSpace(dict["ig_post_url"]),
			Rating:    parseFloat(dict["rating"]),
			Flow:      parseInt(dict["flow"]),
			Temp:      parseInt(dict["temp"]),
			Drainage:  parseInt(dict["drainage"]),
			Caption:   strings.TrimSpace(dict["caption"]),
			Visited:   strings.EqualFold(strings.TrimSpace(dict["visited"]), "yes"),
			VisitDate: parseDate(dict["visit_date"]),
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseFloat(v string) *float64 {

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)

	if err != nil {
		return nil
	}

	return &f
}

func parseInt(v string) *int {

	// Sub-scores were recorded as floats in some exports

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)

	if err != nil {
		return nil
	}

	i := int(f)
	return &i
}

func parseDate(v string) *time.Time {

	v = strings.TrimSpace(v)

	if v == "" {
		return nil
	}

	for _, layout := range date_layouts {

		t, err := time.Parse(layout, v)

		if err == nil {
			return &t
		}
	}

	logrus.Warnf("Failed to parse visit date '%s'", v)
	return nil
}
