// Package enrich implements the incremental enrichment engine: per airport it
// decides, independently for the details/runway facet and the weather facet,
// whether previously persisted enrichment can be reused or must be re-fetched,
// merges the results into the canonical record, and tracks per-country usage
// statistics.
package enrich

// prioritizedTypes is the set of airport types worth spending provider calls on.
var prioritizedTypes = map[string]struct{}{
	"large_airport":  {},
	"medium_airport": {},
}

// westernEurope is the allow-list of country codes eligible for enrichment.
var westernEurope = map[string]struct{}{
	"FR": {}, "GB": {}, "IE": {}, "DE": {}, "NL": {}, "BE": {}, "LU": {},
	"CH": {}, "AT": {}, "ES": {}, "PT": {}, "IT": {}, "AD": {}, "LI": {},
	"MC": {},
}

// Eligible reports whether an airport of the given type and country qualifies
// for provider enrichment. Ineligible airports never trigger provider calls.
func Eligible(airportType, countryCode string) bool {
	if _, ok := prioritizedTypes[airportType]; !ok {
		return false
	}
	_, ok := westernEurope[countryCode]
	return ok
}
