// Package snapshot bundles the immutable per-query view of the catalog.
// A snapshot is built as a whole and swapped atomically on reload, so a
// query never observes a partially-built graph.
package snapshot

import (
	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/graph"
	"github.com/marketkit/shopgraph/internal/domain/similarity"
)

// Snapshot is one consistent read-only view served to queries.
type Snapshot struct {
	Catalog    *catalog.Catalog
	Graph      *graph.Graph
	Similarity *similarity.Table
}
