package fountains

import (
	"strings"
)

const TypeOther string = "other"

// fountain_types maps the codes and labels used by the two source datasets on
// to a single vocabulary. Burnaby uses short codes (DF, DDF, ST, BF);
// Vancouver spells types out.
var fountain_types = map[string]string{
	"df":                     "Drinking Fountain",
	"ddf":                    "Dual Drinking Fountain",
	"st":                     "Standard Fountain",
	"bf":                     "Bottle Filler",
	"drinking fountain":      "Drinking Fountain",
	"dual drinking fountain": "Dual Drinking Fountain",
	"standard fountain":      "Standard Fountain",
	"standard":               "Standard Fountain",
	"bottle filler":          "Bottle Filler",
	"water fountain":         "Drinking Fountain",
	"pet fountain":           "Pet Fountain",
}

// NormalizeType remaps a source TYPE value through the fixed vocabulary.
// Unrecognized non-empty values land in the "other" bucket; empty values
// return nil (type not recorded).
func NormalizeType(v string) *string {

	token := strings.ToLower(strings.TrimSpace(v))

	if token == "" {
		return nil
	}

	label, ok := fountain_types[token]

	if !ok {
		label = TypeOther
	}

	return &label
}
