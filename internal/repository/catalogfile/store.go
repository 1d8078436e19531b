package catalogfile

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/graph"
	"github.com/marketkit/shopgraph/internal/domain/similarity"
	"github.com/marketkit/shopgraph/internal/domain/snapshot"
	"github.com/marketkit/shopgraph/internal/metrics"
)

// Store loads catalog files and serves the active snapshot.
type Store struct {
	productsPath string
	pairsPath    string
	similarity   *similarity.Table
	logger       *zap.Logger
	snap         atomic.Pointer[snapshot.Snapshot]
}

// NewStore creates a Store. Call Load before serving queries.
func NewStore(productsPath, pairsPath string, table *similarity.Table, logger *zap.Logger) *Store {
	return &Store{
		productsPath: productsPath,
		pairsPath:    pairsPath,
		similarity:   table,
		logger:       logger,
	}
}

// Load reads the catalog files, builds a complete snapshot and swaps it in
// atomically. On error the previous snapshot (if any) keeps serving.
func (s *Store) Load() error {
	products, err := loadProducts(s.productsPath)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	cat, err := catalog.NewCatalog(products)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("build catalog: %w", err)
	}

	pairs, err := loadPairs(s.pairsPath)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	g, skipped := graph.Build(cat.Products(), pairs)
	for _, skip := range skipped {
		s.logger.Warn("skipped curated similarity pair", zap.Error(skip))
	}

	s.snap.Store(&snapshot.Snapshot{Catalog: cat, Graph: g, Similarity: s.similarity})

	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogProducts.Set(float64(cat.Len()))
	metrics.GraphNodes.Set(float64(g.NumNodes()))
	metrics.GraphEdges.Set(float64(g.NumEdges()))

	s.logger.Info("catalog snapshot loaded",
		zap.Int("products", cat.Len()),
		zap.Int("graph_nodes", g.NumNodes()),
		zap.Int("graph_edges", g.NumEdges()),
		zap.Int("skipped_pairs", len(skipped)),
	)
	return nil
}

// Snapshot returns the active snapshot, or nil before the first Load.
func (s *Store) Snapshot() *snapshot.Snapshot {
	return s.snap.Load()
}
