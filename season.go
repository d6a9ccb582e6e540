package fountains

import (
	"strings"
)

const SeasonUnknown string = "unknown"
const SeasonYearRound string = "year-round"

// NormalizeSeason maps the free-text IN_OPERATION column to a stable
// operational-season label. Blank values become "unknown" and the two
// spellings of year-round collapse to one; anything else is kept verbatim
// since the city data uses ranges like "spring to fall" or "may-october".
func NormalizeSeason(v string) string {

	season := strings.ToLower(strings.TrimSpace(v))

	switch season {
	case "":
		return SeasonUnknown
	case "year-round", "year round":
		return SeasonYearRound
	default:
		return season
	}
}
