package enrich

// Stats counts provider-fetch and reuse decisions for one country within one
// run. Created empty per country, reported once processing of the country
// completes, never persisted.
type Stats struct {
	AirportDBFetched int `json:"airportdb_fetched"`
	AirportDBSkipped int `json:"airportdb_skipped"`
	MetarFetched     int `json:"metar_fetched"`
	MetarSkipped     int `json:"metar_skipped"`
}

// Total returns the number of facet decisions recorded.
func (s Stats) Total() int {
	return s.AirportDBFetched + s.AirportDBSkipped + s.MetarFetched + s.MetarSkipped
}
