package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendationQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopgraph",
			Name:      "recommendation_queries_total",
			Help:      "Total number of recommendation queries",
		},
		[]string{"outcome"}, // "ok" / "not_found"
	)

	SearchNodesVisited = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shopgraph",
			Name:      "search_nodes_visited",
			Help:      "Nodes visited per neighborhood search",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shopgraph",
			Name:      "catalog_products",
			Help:      "Products in the active catalog snapshot",
		},
	)

	GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shopgraph",
			Name:      "graph_nodes",
			Help:      "Nodes in the active knowledge graph",
		},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shopgraph",
			Name:      "graph_edges",
			Help:      "Edges in the active knowledge graph",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopgraph",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts",
		},
		[]string{"result"}, // "ok" / "error"
	)
)

// RegisterRecommendMetrics registers recommendation metrics explicitly (no init()).
func RegisterRecommendMetrics() {
	prometheus.MustRegister(RecommendationQueriesTotal)
	prometheus.MustRegister(SearchNodesVisited)
	prometheus.MustRegister(CatalogProducts)
	prometheus.MustRegister(GraphNodes)
	prometheus.MustRegister(GraphEdges)
	prometheus.MustRegister(CatalogReloadsTotal)
}
