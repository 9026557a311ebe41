package airport

import "strconv"

// Normalize converts one raw source row into a canonical Record. A field is
// set only when the source value is non-missing; elevation is coerced to a
// float and dropped when unparsable. Rows without a usable ident still
// normalize — they just never receive enrichment.
func Normalize(row Row) Record {
	rec := Record{
		Ident:        row.Ident,
		Type:         row.Type,
		Name:         row.Name,
		Continent:    row.Continent,
		ISOCountry:   row.ISOCountry,
		ISORegion:    row.ISORegion,
		Municipality: row.Municipality,
		GPSCode:      row.GPSCode,
		IATACode:     row.IATACode,
		LocalCode:    row.LocalCode,
		Coordinates:  row.Coordinates,
	}
	if row.ElevationFt != "" {
		if f, err := strconv.ParseFloat(row.ElevationFt, 64); err == nil {
			rec.ElevationFt = &f
		}
	}
	return rec
}
