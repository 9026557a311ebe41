package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airatlasapp/airatlas-server/internal/airport"
	"github.com/airatlasapp/airatlas-server/internal/dataset"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleDataset(code string) dataset.CountryDataset {
	tru := true
	return dataset.Build(code, "France", []airport.Record{
		{
			Ident:          "LFPG",
			Type:           "large_airport",
			Name:           "Charles de Gaulle",
			ISOCountry:     code,
			Runways:        []map[string]any{{"id": float64(1)}},
			MetarAvailable: &tru,
			Extra:          map[string]any{"city": "Paris"},
		},
	}, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
}

func TestWriteCountry_ThenLoadPersisted(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteCountry(sampleDataset("FR")))

	persisted := s.LoadPersisted("FR")
	require.Contains(t, persisted, "LFPG")

	rec := persisted["LFPG"]
	assert.Equal(t, "Paris", rec.Extra["city"])
	require.Len(t, rec.Runways, 1)
	assert.Equal(t, float64(1), rec.Runways[0]["id"])
	require.NotNil(t, rec.MetarAvailable)
	assert.True(t, *rec.MetarAvailable)
}

func TestLoadPersisted_MissingFile(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.LoadPersisted("FR"))
}

func TestLoadPersisted_MalformedFile(t *testing.T) {
	s := newTestStore(t)

	path := s.CountryFile("FR")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Corruption is never fatal, it just costs re-fetches.
	assert.Empty(t, s.LoadPersisted("FR"))
}

func TestLoadPersisted_SkipsRecordsWithoutIdent(t *testing.T) {
	s := newTestStore(t)

	path := s.CountryFile("FR")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"airports":[{"name":"no ident"},{"ident":"LFPG"}]}`), 0o644))

	persisted := s.LoadPersisted("FR")
	assert.Len(t, persisted, 1)
	assert.Contains(t, persisted, "LFPG")
}

func TestCountryFile_LowercasesCode(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, filepath.Join(s.DataDir(), "fr", "airports.json"), s.CountryFile("FR"))
}

func TestWriteIndex_ThenReadIndex(t *testing.T) {
	s := newTestStore(t)

	entries := []dataset.IndexEntry{
		{Code: "FR", Name: "France", AirportCount: 1, TypesDistribution: map[string]int{"large_airport": 1}},
		{Code: "GB", Name: "United Kingdom", AirportCount: 2, TypesDistribution: map[string]int{"large_airport": 2}},
	}
	require.NoError(t, s.WriteIndex(entries))

	got, err := s.ReadIndex()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestReadCountry_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ds := sampleDataset("FR")

	require.NoError(t, s.WriteCountry(ds))

	got, err := s.ReadCountry("FR")
	require.NoError(t, err)
	assert.Equal(t, ds.CountryCode, got.CountryCode)
	assert.Equal(t, ds.TotalAirports, got.TotalAirports)
	assert.Equal(t, ds.TypesDistribution, got.TypesDistribution)
	require.Len(t, got.Airports, 1)
	assert.Equal(t, "Charles de Gaulle", got.Airports[0].Name)
}

func TestWriteCountry_ReplacesPreviousFile(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteCountry(sampleDataset("FR")))

	replacement := dataset.Build("FR", "France", nil, time.Now())
	require.NoError(t, s.WriteCountry(replacement))

	got, err := s.ReadCountry("FR")
	require.NoError(t, err)
	assert.Zero(t, got.TotalAirports)
	assert.Empty(t, got.Airports)
}
