package fountains

import (
	"strings"
)

// ParseBoolean normalizes the boolean spellings seen in the source files.
// Unrecognized tokens return nil rather than false so the store can tell
// "not specified" apart from "no".
func ParseBoolean(v string) *bool {

	yes := true
	no := false

	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "y":
		return &yes
	case "false", "no", "0", "n":
		return &no
	default:
		return nil
	}
}
