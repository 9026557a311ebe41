package search

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/airatlasapp/airatlas-server/internal/dataset"
)

// Index wraps an in-memory Bleve index over the current dataset.
//
// Thread safety: all public methods are safe for concurrent use. Rebuild swaps
// the index wholesale under the write lock, so queries never observe a
// half-built index.
type Index struct {
	mu     sync.RWMutex
	index  bleve.Index
	logger *slog.Logger
}

// New creates an empty index.
func New(logger *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{
		index:  idx,
		logger: logger,
	}, nil
}

// buildIndexMapping creates the Bleve mapping: standard analysis for names
// and municipalities, keyword analysis for the exact-match fields.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name

	docMapping := bleve.NewDocumentMapping()

	textField := func(name string) {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(name, fm)
	}
	keywordField := func(name string) {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(name, fm)
	}

	textField("name")
	textField("municipality")
	keywordField("ident")
	keywordField("country")
	keywordField("type")
	keywordField("iata_code")

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Rebuild replaces the index contents with the given datasets.
func (i *Index) Rebuild(datasets []dataset.CountryDataset) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	batch := fresh.NewBatch()
	count := 0
	for _, ds := range datasets {
		for _, rec := range ds.Airports {
			if rec.Ident == "" {
				continue
			}
			if err := batch.Index(docID(ds.CountryCode, rec.Ident), newDocument(rec)); err != nil {
				return fmt.Errorf("index %s: %w", rec.Ident, err)
			}
			count++
		}
	}
	if err := fresh.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	i.mu.Lock()
	old := i.index
	i.index = fresh
	i.mu.Unlock()

	if old != nil {
		old.Close()
	}

	i.logger.Info("search index rebuilt", "documents", count)
	return nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.index == nil {
		return nil
	}
	err := i.index.Close()
	i.index = nil
	return err
}
