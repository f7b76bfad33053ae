// Package countries provides the country-name → international dialing code
// lookup consumed by the check-in form. The table is static and read-only;
// keys are the Portuguese country names the form submits.
package countries

import (
	"sort"
	"strings"
)

// Country pairs a country name with its international dialing code.
type Country struct {
	Pais       string
	CodigoPais string
}

// dialingCodes maps lowercase country names to dialing codes.
// Carried over verbatim from the property's legacy lookup table.
var dialingCodes = map[string]string{
	"brasil":         "55",
	"estados unidos": "1",
	"canada":         "1",
	"mexico":         "52",
	"argentina":      "54",
	"chile":          "56",
	"colombia":       "57",
	"portugal":       "351",
	"espanha":        "34",
	"franca":         "33",
	"alemanha":       "49",
	"italia":         "39",
	"inglaterra":     "44",
	"japao":          "81",
	"china":          "86",
	"india":          "91",
	"australia":      "61",
	"nova zelandia":  "64",
}

// Code returns the dialing code for the given country name, matching
// case-insensitively. Unknown or empty names return the empty string.
func Code(name string) string {
	if name == "" {
		return ""
	}
	return dialingCodes[strings.ToLower(name)]
}

// All returns every known country sorted by name, for rendering the
// country picker on the check-in form.
func All() []Country {
	out := make([]Country, 0, len(dialingCodes))
	for name, code := range dialingCodes {
		out = append(out, Country{Pais: name, CodigoPais: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pais < out[j].Pais })
	return out
}
