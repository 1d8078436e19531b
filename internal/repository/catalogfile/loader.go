// Package catalogfile loads the shopkeeper catalog from JSON files and
// serves immutable snapshots to the query path. A reload builds a complete
// new snapshot and swaps it atomically; readers never see a partial graph.
package catalogfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/marketkit/shopgraph/internal/domain"
	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/graph"
)

// productRecord is the raw catalog file shape.
type productRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	InStock  bool     `json:"in_stock"`
	Tags     []string `json:"tags"`
}

// loadProducts reads and validates the products file. Any malformed record
// is fatal: no partial catalog is ever served.
func loadProducts(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read products file %s: %w", path, err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidRecord, path, err)
	}

	products := make([]catalog.Product, 0, len(records))
	for i, rec := range records {
		p, err := catalog.New(rec.ID, rec.Name, rec.Category, rec.Brand, rec.Price, rec.InStock, rec.Tags)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrInvalidRecord, i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// loadPairs reads the curated SIMILAR_TO pairs file. An empty path means no
// curated pairs.
func loadPairs(path string) ([]graph.Pair, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read pairs file %s: %w", path, err)
	}

	var pairs []graph.Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidRecord, path, err)
	}
	for i, p := range pairs {
		if p.A == "" || p.B == "" {
			return nil, fmt.Errorf("%w: pair %d: both ids are required", domain.ErrInvalidRecord, i)
		}
	}
	return pairs, nil
}
