package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Query describes one search request.
type Query struct {
	// Term matches against name, municipality, ident, and IATA code.
	Term string
	// Country restricts results to one ISO country code.
	Country string
	// Type restricts results to one airport type.
	Type string
	Limit  int
	Offset int
}

// Result is one search hit.
type Result struct {
	Ident        string  `json:"ident"`
	Name         string  `json:"name"`
	Municipality string  `json:"municipality,omitempty"`
	Country      string  `json:"country"`
	Type         string  `json:"type,omitempty"`
	IATACode     string  `json:"iata_code,omitempty"`
	Score        float64 `json:"score"`
}

// Results is a page of hits.
type Results struct {
	Hits  []Result `json:"hits"`
	Total uint64   `json:"total"`
}

// Search runs a query against the current index.
func (i *Index) Search(q Query) (*Results, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return nil, fmt.Errorf("search index is closed")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	req := bleve.NewSearchRequestOptions(i.buildQuery(q), limit, q.Offset, false)
	req.Fields = []string{"*"}

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := &Results{
		Hits:  make([]Result, 0, len(res.Hits)),
		Total: res.Total,
	}
	for _, hit := range res.Hits {
		out.Hits = append(out.Hits, Result{
			Ident:        fieldString(hit.Fields, "ident"),
			Name:         fieldString(hit.Fields, "name"),
			Municipality: fieldString(hit.Fields, "municipality"),
			Country:      fieldString(hit.Fields, "country"),
			Type:         fieldString(hit.Fields, "type"),
			IATACode:     fieldString(hit.Fields, "iata_code"),
			Score:        hit.Score,
		})
	}
	return out, nil
}

// buildQuery assembles the Bleve query: a free-text disjunction over the
// searchable fields, narrowed by exact filters.
func (i *Index) buildQuery(q Query) query.Query {
	boolean := bleve.NewBooleanQuery()

	if term := strings.TrimSpace(q.Term); term != "" {
		name := bleve.NewMatchQuery(term)
		name.SetField("name")

		municipality := bleve.NewMatchQuery(term)
		municipality.SetField("municipality")

		// Idents and IATA codes are indexed as keywords; prefix matching lets
		// "LFP" find LFPG while an exact code still ranks first.
		ident := bleve.NewPrefixQuery(strings.ToUpper(term))
		ident.SetField("ident")

		iata := bleve.NewPrefixQuery(strings.ToUpper(term))
		iata.SetField("iata_code")

		boolean.AddMust(bleve.NewDisjunctionQuery(name, municipality, ident, iata))
	} else {
		boolean.AddMust(bleve.NewMatchAllQuery())
	}

	if q.Country != "" {
		country := bleve.NewTermQuery(strings.ToUpper(q.Country))
		country.SetField("country")
		boolean.AddMust(country)
	}
	if q.Type != "" {
		typ := bleve.NewTermQuery(q.Type)
		typ.SetField("type")
		boolean.AddMust(typ)
	}

	return boolean
}

func fieldString(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
