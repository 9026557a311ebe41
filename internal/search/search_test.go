package search

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airatlasapp/airatlas-server/internal/airport"
	"github.com/airatlasapp/airatlas-server/internal/dataset"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	now := time.Now()
	datasets := []dataset.CountryDataset{
		dataset.Build("FR", "France", []airport.Record{
			{Ident: "LFPG", Type: "large_airport", Name: "Charles de Gaulle International Airport", Municipality: "Paris", ISOCountry: "FR", IATACode: "CDG"},
			{Ident: "LFPO", Type: "large_airport", Name: "Paris-Orly Airport", Municipality: "Paris", ISOCountry: "FR", IATACode: "ORY"},
		}, now),
		dataset.Build("GB", "United Kingdom", []airport.Record{
			{Ident: "EGLL", Type: "large_airport", Name: "London Heathrow Airport", Municipality: "London", ISOCountry: "GB", IATACode: "LHR"},
			{Ident: "EGKK", Type: "large_airport", Name: "London Gatwick Airport", Municipality: "London", ISOCountry: "GB", IATACode: "LGW"},
		}, now),
	}
	require.NoError(t, idx.Rebuild(datasets))
	return idx
}

func TestSearch_ByName(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{Term: "heathrow"})
	require.NoError(t, err)

	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "EGLL", res.Hits[0].Ident)
}

func TestSearch_ByIdentPrefix(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{Term: "lfp"})
	require.NoError(t, err)

	idents := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		idents = append(idents, h.Ident)
	}
	assert.ElementsMatch(t, []string{"LFPG", "LFPO"}, idents)
}

func TestSearch_ByMunicipality(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{Term: "paris"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Total)
}

func TestSearch_CountryFilter(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{Term: "airport", Country: "gb"})
	require.NoError(t, err)

	require.NotEmpty(t, res.Hits)
	for _, h := range res.Hits {
		assert.Equal(t, "GB", h.Country)
	}
}

func TestSearch_TypeFilter(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{Type: "large_airport"})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), res.Total)

	res, err = idx.Search(Query{Type: "heliport"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearch_EmptyTermMatchesAll(t *testing.T) {
	idx := testIndex(t)

	res, err := idx.Search(Query{})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), res.Total)
}

func TestSearch_Pagination(t *testing.T) {
	idx := testIndex(t)

	page1, err := idx.Search(Query{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1.Hits, 2)
	assert.Equal(t, uint64(4), page1.Total)

	page2, err := idx.Search(Query{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Hits, 2)
}

func TestRebuild_ReplacesContents(t *testing.T) {
	idx := testIndex(t)

	require.NoError(t, idx.Rebuild([]dataset.CountryDataset{
		dataset.Build("DE", "Germany", []airport.Record{
			{Ident: "EDDF", Type: "large_airport", Name: "Frankfurt am Main Airport", ISOCountry: "DE"},
		}, time.Now()),
	}))

	res, err := idx.Search(Query{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Total)

	res, err = idx.Search(Query{Term: "heathrow"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearch_AfterClose(t *testing.T) {
	idx := testIndex(t)
	require.NoError(t, idx.Close())

	_, err := idx.Search(Query{})
	assert.Error(t, err)
}
