// Package airport defines the canonical airport record and the normalization
// of raw source-feed rows into it.
package airport

import (
	"encoding/json"
)

// Row is one raw row of the airport-codes source feed. All columns decode as
// strings; an empty string means the source value is missing.
type Row struct {
	Ident        string `csv:"ident"`
	Type         string `csv:"type"`
	Name         string `csv:"name"`
	ElevationFt  string `csv:"elevation_ft"`
	Continent    string `csv:"continent"`
	ISOCountry   string `csv:"iso_country"`
	ISORegion    string `csv:"iso_region"`
	Municipality string `csv:"municipality"`
	GPSCode      string `csv:"gps_code"`
	IATACode     string `csv:"iata_code"`
	LocalCode    string `csv:"local_code"`
	Coordinates  string `csv:"coordinates"`
}

// Record is the canonical airport record. The base fields come from one source
// row; the enrichment fields (Runways, MetarAvailable, Extra) are populated by
// the enrichment engine and round-trip through the persisted per-country files.
//
// Extra holds provider-supplied keys that are not otherwise modeled. It is
// flattened into the top-level JSON object on encode and collected back from
// unknown keys on decode, so a write-then-reload cycle preserves the record
// exactly.
type Record struct {
	Ident        string   `json:"ident,omitempty"`
	Type         string   `json:"type,omitempty"`
	Name         string   `json:"name,omitempty"`
	ElevationFt  *float64 `json:"elevation_ft,omitempty"`
	Continent    string   `json:"continent,omitempty"`
	ISOCountry   string   `json:"iso_country,omitempty"`
	ISORegion    string   `json:"iso_region,omitempty"`
	Municipality string   `json:"municipality,omitempty"`
	GPSCode      string   `json:"gps_code,omitempty"`
	IATACode     string   `json:"iata_code,omitempty"`
	LocalCode    string   `json:"local_code,omitempty"`
	Coordinates  string   `json:"coordinates,omitempty"`

	Runways        []map[string]any `json:"runways,omitempty"`
	MetarAvailable *bool            `json:"metar_available,omitempty"`

	Extra map[string]any `json:"-"`
}

// modeled is the set of JSON keys backed by typed fields on Record. Everything
// else lands in Extra.
var modeled = map[string]struct{}{
	"ident": {}, "type": {}, "name": {}, "elevation_ft": {}, "continent": {},
	"iso_country": {}, "iso_region": {}, "municipality": {}, "gps_code": {},
	"iata_code": {}, "local_code": {}, "coordinates": {},
	"runways": {}, "metar_available": {},
}

// HasRunways reports whether the record carries a non-empty runway list.
func (r *Record) HasRunways() bool {
	return len(r.Runways) > 0
}

// SetMetarAvailable sets the weather-availability flag.
func (r *Record) SetMetarAvailable(v bool) {
	r.MetarAvailable = &v
}

// MergeDetails merges a details-provider payload into the record. Keys that
// match modeled fields update them; a runway list in the payload always
// overwrites the current one; everything else is kept verbatim in Extra.
func (r *Record) MergeDetails(fields map[string]any) {
	for k, v := range fields {
		if _, ok := modeled[k]; ok {
			r.setModeled(k, v)
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[k] = v
	}
}

// MergePersistedEnrichment carries the enrichment payload of a previously
// persisted record (extra attributes and runway list) into this one. Base
// fields are not touched: the current run's source row is fresher.
func (r *Record) MergePersistedEnrichment(prev *Record) {
	if prev == nil {
		return
	}
	if len(prev.Extra) > 0 {
		if r.Extra == nil {
			r.Extra = make(map[string]any, len(prev.Extra))
		}
		for k, v := range prev.Extra {
			r.Extra[k] = v
		}
	}
	if len(prev.Runways) > 0 {
		r.Runways = prev.Runways
	}
}

func (r *Record) setModeled(key string, v any) {
	switch key {
	case "ident":
		if s, ok := v.(string); ok {
			r.Ident = s
		}
	case "type":
		if s, ok := v.(string); ok {
			r.Type = s
		}
	case "name":
		if s, ok := v.(string); ok {
			r.Name = s
		}
	case "elevation_ft":
		if f, ok := toFloat(v); ok {
			r.ElevationFt = &f
		}
	case "continent":
		if s, ok := v.(string); ok {
			r.Continent = s
		}
	case "iso_country":
		if s, ok := v.(string); ok {
			r.ISOCountry = s
		}
	case "iso_region":
		if s, ok := v.(string); ok {
			r.ISORegion = s
		}
	case "municipality":
		if s, ok := v.(string); ok {
			r.Municipality = s
		}
	case "gps_code":
		if s, ok := v.(string); ok {
			r.GPSCode = s
		}
	case "iata_code":
		if s, ok := v.(string); ok {
			r.IATACode = s
		}
	case "local_code":
		if s, ok := v.(string); ok {
			r.LocalCode = s
		}
	case "coordinates":
		if s, ok := v.(string); ok {
			r.Coordinates = s
		}
	case "runways":
		if rw, ok := toRunways(v); ok {
			r.Runways = rw
		}
	case "metar_available":
		if b, ok := v.(bool); ok {
			r.MetarAvailable = &b
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toRunways(v any) ([]map[string]any, bool) {
	switch list := v.(type) {
	case []map[string]any:
		return list, true
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// MarshalJSON flattens Extra into the top-level object alongside the modeled
// fields.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+14)
	for k, v := range r.Extra {
		if _, reserved := modeled[k]; reserved {
			continue
		}
		out[k] = v
	}
	if r.Ident != "" {
		out["ident"] = r.Ident
	}
	if r.Type != "" {
		out["type"] = r.Type
	}
	if r.Name != "" {
		out["name"] = r.Name
	}
	if r.ElevationFt != nil {
		out["elevation_ft"] = *r.ElevationFt
	}
	if r.Continent != "" {
		out["continent"] = r.Continent
	}
	if r.ISOCountry != "" {
		out["iso_country"] = r.ISOCountry
	}
	if r.ISORegion != "" {
		out["iso_region"] = r.ISORegion
	}
	if r.Municipality != "" {
		out["municipality"] = r.Municipality
	}
	if r.GPSCode != "" {
		out["gps_code"] = r.GPSCode
	}
	if r.IATACode != "" {
		out["iata_code"] = r.IATACode
	}
	if r.LocalCode != "" {
		out["local_code"] = r.LocalCode
	}
	if r.Coordinates != "" {
		out["coordinates"] = r.Coordinates
	}
	if len(r.Runways) > 0 {
		out["runways"] = r.Runways
	}
	if r.MetarAvailable != nil {
		out["metar_available"] = *r.MetarAvailable
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the modeled fields and collects every unknown key into
// Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{}
	for k, v := range raw {
		if _, ok := modeled[k]; ok {
			r.setModeled(k, v)
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[k] = v
	}
	return nil
}
