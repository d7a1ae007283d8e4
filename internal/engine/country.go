// internal/engine/country.go
package engine

import "strings"

// countryAliases maps lowercase alias forms to canonical country names.
var countryAliases = map[string]string{
	"usa":            "United States",
	"us":             "United States",
	"united states":  "United States",
	"uk":             "United Kingdom",
	"united kingdom": "United Kingdom",
	"canada":         "Canada",
	"australia":      "Australia",
	"germany":        "Germany",
}

// NormalizeCountry maps a free-form country string onto its canonical name.
// Unknown values pass through trimmed so filtering still works on whatever
// the caller stored. Idempotent.
func NormalizeCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := countryAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeCountries normalizes each entry and drops empties.
func NormalizeCountries(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if normalized := NormalizeCountry(c); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}
