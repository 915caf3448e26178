package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/pkg/logger"
)

const defaultSearchLimit = 10

// Engine resolves free-text queries to known symbols through a bleve
// full-text index, built once from the symbols file and reopened on
// later runs.
type Engine struct {
	logger *logger.Logger
	index  bleve.Index
}

// indexed symbol document
type symbolDoc struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// NewEngine opens the index at indexPath, building it from symbols if it
// does not exist yet.
func NewEngine(lgr *logger.Logger, indexPath string, symbols []SymbolEntry) (*Engine, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create symbol index: %w", err)
		}

		batch := index.NewBatch()
		for _, s := range symbols {
			doc := symbolDoc{
				Symbol: strings.ToUpper(s.Symbol),
				Name:   s.Name,
				Sector: s.Sector,
			}
			if err := batch.Index(doc.Symbol, doc); err != nil {
				return nil, fmt.Errorf("index %s: %w", doc.Symbol, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			return nil, fmt.Errorf("index symbols: %w", err)
		}
		lgr.Info("symbol index built", logger.Int("symbols", len(symbols)))
	} else if err != nil {
		return nil, fmt.Errorf("open symbol index: %w", err)
	} else {
		lgr.Info("symbol index opened", logger.String("path", indexPath))
	}

	return &Engine{logger: lgr, index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textField := bleve.NewTextFieldMapping()
	textField.Store = true
	textField.Index = true
	docMapping.AddFieldMappingsAt("symbol", textField)
	docMapping.AddFieldMappingsAt("name", textField)
	docMapping.AddFieldMappingsAt("sector", textField)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Search ranks symbols against the query, preferring exact and prefix
// symbol matches over name matches.
func (e *Engine) Search(_ context.Context, query string, limit int) ([]models.SymbolMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("query required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	lowered := strings.ToLower(query)

	exactQuery := bleve.NewTermQuery(lowered)
	exactQuery.SetField("symbol")
	exactQuery.SetBoost(10.0)

	prefixQuery := bleve.NewPrefixQuery(lowered)
	prefixQuery.SetField("symbol")
	prefixQuery.SetBoost(5.0)

	nameMatchQuery := bleve.NewMatchQuery(query)
	nameMatchQuery.SetField("name")
	nameMatchQuery.SetBoost(3.0)

	wildcardSymbol := bleve.NewWildcardQuery("*" + lowered + "*")
	wildcardSymbol.SetField("symbol")
	wildcardSymbol.SetBoost(2.0)

	wildcardName := bleve.NewWildcardQuery("*" + lowered + "*")
	wildcardName.SetField("name")
	wildcardName.SetBoost(1.5)

	searchQuery := bleve.NewDisjunctionQuery(
		exactQuery,
		prefixQuery,
		nameMatchQuery,
		wildcardSymbol,
		wildcardName,
	)

	req := bleve.NewSearchRequest(searchQuery)
	req.Fields = []string{"symbol", "name", "sector"}
	req.Size = limit

	res, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	matches := make([]models.SymbolMatch, 0, len(res.Hits))
	for _, hit := range res.Hits {
		matches = append(matches, models.SymbolMatch{
			Symbol: fieldString(hit.Fields, "symbol"),
			Name:   fieldString(hit.Fields, "name"),
			Sector: fieldString(hit.Fields, "sector"),
			Score:  hit.Score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches, nil
}

func (e *Engine) Close() error {
	return e.index.Close()
}

func fieldString(fields map[string]interface{}, key string) string {
	if val, ok := fields[key].(string); ok {
		return val
	}
	return ""
}

var _ domrepo.SymbolSearcher = (*Engine)(nil)
