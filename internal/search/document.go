// Package search provides full-text search over airport records using Bleve.
// The index is held in memory and rebuilt from the on-disk dataset whenever it
// changes; it is a derived view, never a source of truth.
package search

import (
	"github.com/airatlasapp/airatlas-server/internal/airport"
)

// Document is the indexed representation of one airport record. Name and
// municipality are full-text searchable; ident, country, and type support
// exact filtering.
type Document struct {
	Ident        string `json:"ident"`
	Name         string `json:"name"`
	Municipality string `json:"municipality"`
	Country      string `json:"country"`
	Type         string `json:"type"`
	IATACode     string `json:"iata_code"`
}

// docID builds the index key. Idents are unique within a country; prefixing
// with the country code keeps the key globally unique.
func docID(country, ident string) string {
	return country + ":" + ident
}

// newDocument maps a record to its indexed form.
func newDocument(rec airport.Record) Document {
	return Document{
		Ident:        rec.Ident,
		Name:         rec.Name,
		Municipality: rec.Municipality,
		Country:      rec.ISOCountry,
		Type:         rec.Type,
		IATACode:     rec.IATACode,
	}
}
