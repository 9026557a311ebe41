// Package dataset groups enriched airport records into per-country datasets
// and derives the global country index.
package dataset

import (
	"sort"
	"time"

	"github.com/airatlasapp/airatlas-server/internal/airport"
)

// CountryDataset is the full per-country output of one run. It replaces the
// previously persisted file for that country wholesale on write.
type CountryDataset struct {
	CountryCode       string           `json:"country_code"`
	CountryName       string           `json:"country_name"`
	TotalAirports     int              `json:"total_airports"`
	LastUpdated       time.Time        `json:"last_updated"`
	TypesDistribution map[string]int   `json:"types_distribution"`
	Airports          []airport.Record `json:"airports"`
}

// IndexEntry is one row of the global country index.
type IndexEntry struct {
	Code              string         `json:"code"`
	Name              string         `json:"name"`
	AirportCount      int            `json:"airport_count"`
	TypesDistribution map[string]int `json:"types_distribution"`
}

// GroupByCountry buckets records by their normalized country code, preserving
// both first-encounter order of countries and source order within a country.
// Records with a missing country code belong to no bucket.
func GroupByCountry(records []airport.Record) ([]string, map[string][]airport.Record) {
	var codes []string
	buckets := make(map[string][]airport.Record)
	for _, rec := range records {
		cc := rec.ISOCountry
		if cc == "" {
			continue
		}
		if _, seen := buckets[cc]; !seen {
			codes = append(codes, cc)
		}
		buckets[cc] = append(buckets[cc], rec)
	}
	return codes, buckets
}

// TypesDistribution counts records per airport type, with unset types bucketed
// under "unknown".
func TypesDistribution(records []airport.Record) map[string]int {
	dist := make(map[string]int)
	for _, rec := range records {
		typ := rec.Type
		if typ == "" {
			typ = "unknown"
		}
		dist[typ]++
	}
	return dist
}

// Build assembles the dataset for one country.
func Build(code, name string, records []airport.Record, now time.Time) CountryDataset {
	return CountryDataset{
		CountryCode:       code,
		CountryName:       name,
		TotalAirports:     len(records),
		LastUpdated:       now,
		TypesDistribution: TypesDistribution(records),
		Airports:          records,
	}
}

// BuildIndex derives the global index from the per-country datasets, sorted by
// display name. The sort is stable: countries sharing a display name keep
// their encounter order.
func BuildIndex(datasets []CountryDataset) []IndexEntry {
	entries := make([]IndexEntry, 0, len(datasets))
	for _, ds := range datasets {
		entries = append(entries, IndexEntry{
			Code:              ds.CountryCode,
			Name:              ds.CountryName,
			AirportCount:      ds.TotalAirports,
			TypesDistribution: ds.TypesDistribution,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
