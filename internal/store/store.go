// Package store persists the generated dataset as JSON files: one
// airports.json per country plus a global countries.json index. It also reads
// the previous run's country files back as the seed for reuse decisions.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/airatlasapp/airatlas-server/internal/airport"
	"github.com/airatlasapp/airatlas-server/internal/dataset"
)

const (
	countryFileName = "airports.json"
	indexFileName   = "countries.json"
)

// Store reads and writes the on-disk dataset under a single data directory.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// New creates a store rooted at dataDir.
func New(dataDir string, logger *slog.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  logger,
	}
}

// DataDir returns the root data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// CountryFile returns the path of a country's airports.json.
func (s *Store) CountryFile(code string) string {
	return filepath.Join(s.dataDir, strings.ToLower(code), countryFileName)
}

// IndexFile returns the path of the global country index.
func (s *Store) IndexFile() string {
	return filepath.Join(s.dataDir, indexFileName)
}

// persistedFile mirrors the subset of the country file the loader cares about.
type persistedFile struct {
	Airports []airport.Record `json:"airports"`
}

// LoadPersisted returns the previous run's records for a country, keyed by
// ident. A missing, unreadable, or malformed file is treated as no prior
// state, never as an error; corruption only costs re-fetches.
func (s *Store) LoadPersisted(code string) map[string]airport.Record {
	byIdent := make(map[string]airport.Record)

	data, err := os.ReadFile(s.CountryFile(code))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("unreadable country file, treating as no prior state",
				"country", code, "error", err)
		}
		return byIdent
	}

	var prev persistedFile
	if err := json.Unmarshal(data, &prev); err != nil {
		s.logger.Warn("malformed country file, treating as no prior state",
			"country", code, "error", err)
		return byIdent
	}

	for _, rec := range prev.Airports {
		if rec.Ident == "" {
			continue
		}
		byIdent[rec.Ident] = rec
	}
	return byIdent
}

// WriteCountry writes one country's dataset, fully replacing any previous
// file.
func (s *Store) WriteCountry(ds dataset.CountryDataset) error {
	path := s.CountryFile(ds.CountryCode)
	if err := writeJSON(path, ds); err != nil {
		return fmt.Errorf("write country %s: %w", ds.CountryCode, err)
	}
	return nil
}

// WriteIndex writes the global country index.
func (s *Store) WriteIndex(entries []dataset.IndexEntry) error {
	if err := writeJSON(s.IndexFile(), entries); err != nil {
		return fmt.Errorf("write country index: %w", err)
	}
	return nil
}

// ReadCountry loads a country's full dataset for serving.
func (s *Store) ReadCountry(code string) (*dataset.CountryDataset, error) {
	data, err := os.ReadFile(s.CountryFile(code))
	if err != nil {
		return nil, fmt.Errorf("read country %s: %w", code, err)
	}
	var ds dataset.CountryDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode country %s: %w", code, err)
	}
	return &ds, nil
}

// ReadIndex loads the global country index for serving.
func (s *Store) ReadIndex() ([]dataset.IndexEntry, error) {
	data, err := os.ReadFile(s.IndexFile())
	if err != nil {
		return nil, fmt.Errorf("read country index: %w", err)
	}
	var entries []dataset.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode country index: %w", err)
	}
	return entries, nil
}

// writeJSON marshals v pretty-printed and writes it atomically: temp file in
// the target directory, then rename.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".airatlas-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
