// Package recommend implements the substitution query: given a requested
// product and hard constraints, find nearby products in the knowledge graph,
// filter them, score them with additive rules and rank the survivors.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/graph"
	"github.com/marketkit/shopgraph/internal/domain/rules"
	"github.com/marketkit/shopgraph/internal/logger"
	"github.com/marketkit/shopgraph/internal/metrics"
)

const (
	defaultMaxDepth   = 2
	defaultMaxVisited = 10000
	defaultTopK       = 5
	defaultMaxTopK    = 20
)

// Request is one recommendation query.
type Request struct {
	ProductID      string
	MaxPrice       *float64
	RequiredTags   []string
	PreferredBrand string
	TopK           int
}

// ExactMatch reports that the requested product itself satisfies the query.
type ExactMatch struct {
	Product     catalog.Product
	Tags        []rules.Tag
	Explanation string
}

// Alternative is one ranked substitute.
type Alternative struct {
	Product     catalog.Product
	Score       float64
	Depth       int
	Tags        []rules.Tag
	Explanation string
}

// Diagnostics exposes per-query search counters.
type Diagnostics struct {
	NodesVisited          int
	CandidatesFound       int
	CandidatesAfterFilter int
}

// Response is the full recommendation result.
type Response struct {
	Requested    catalog.Product
	ExactMatch   *ExactMatch
	Alternatives []Alternative
	Message      string
	Diagnostics  Diagnostics
}

// PathNode is one node along an explanation path.
type PathNode struct {
	ID   string
	Kind graph.Kind
	Name string
}

// PathEdge is one relation along an explanation path.
type PathEdge struct {
	From string
	To   string
	Kind graph.EdgeKind
}

// Subgraph is the shortest connection between two products, returned for
// "why was this recommended" drill-down. Empty when the products are not
// connected.
type Subgraph struct {
	Nodes []PathNode
	Edges []PathEdge
}

// Service coordinates the recommendation pipeline.
type Service struct {
	snapshots  SnapshotProvider
	explainer  *rules.Explainer
	maxDepth   int
	maxVisited int
	topK       int
	maxTopK    int
}

// New creates a Service with default search and ranking limits.
func New(snapshots SnapshotProvider, explainer *rules.Explainer) *Service {
	return &Service{
		snapshots:  snapshots,
		explainer:  explainer,
		maxDepth:   defaultMaxDepth,
		maxVisited: defaultMaxVisited,
		topK:       defaultTopK,
		maxTopK:    defaultMaxTopK,
	}
}

// WithSearch overrides the traversal limits. Zero values keep the defaults.
func (s *Service) WithSearch(maxDepth, maxVisited int) *Service {
	if maxDepth > 0 {
		s.maxDepth = maxDepth
	}
	if maxVisited > 0 {
		s.maxVisited = maxVisited
	}
	return s
}

// WithTopK overrides the result count limits. Zero values keep the defaults.
func (s *Service) WithTopK(topK, maxTopK int) *Service {
	if topK > 0 {
		s.topK = topK
	}
	if maxTopK > 0 {
		s.maxTopK = maxTopK
	}
	return s
}

// Recommend runs the full pipeline: resolve the requested product, check it
// against the constraints, search its graph neighborhood, filter, score and
// rank. A query matching nothing returns an empty ranked list, not an error.
func (s *Service) Recommend(ctx context.Context, req Request) (Response, error) {
	log := logger.FromContext(ctx)

	snap := s.snapshots.Snapshot()
	if snap == nil {
		return Response{}, fmt.Errorf("catalog snapshot not loaded")
	}

	spec := NewSpec(req.MaxPrice, req.RequiredTags, req.PreferredBrand)

	requested, err := snap.Catalog.Get(req.ProductID)
	if err != nil {
		metrics.RecommendationQueriesTotal.WithLabelValues("not_found").Inc()
		return Response{}, err
	}

	var exact *ExactMatch
	if tags, ok := exactMatch(requested, spec); ok {
		exact = &ExactMatch{
			Product:     requested,
			Tags:        tags,
			Explanation: s.explainer.Render(tags, spec.RequiredTags()),
		}
	}

	discovered, visited, err := snap.Graph.Neighborhood(req.ProductID, s.maxDepth, s.maxVisited)
	if err != nil {
		metrics.RecommendationQueriesTotal.WithLabelValues("not_found").Inc()
		return Response{}, err
	}

	candidates := make([]candidate, 0, len(discovered))
	for _, d := range discovered {
		p, err := snap.Catalog.Get(d.ProductID)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{product: p, depth: d.Depth})
	}

	filtered := applyFilter(candidates, spec)

	alternatives := make([]Alternative, 0, len(filtered))
	for _, c := range filtered {
		score, tags := scoreCandidate(requested, c.product, c.depth, spec, snap.Similarity)
		alternatives = append(alternatives, Alternative{
			Product:     c.product,
			Score:       score,
			Depth:       c.depth,
			Tags:        tags,
			Explanation: s.explainer.Render(tags, spec.RequiredTags()),
		})
	}

	// Rank: best score first, then shallower in the graph, then product id
	// so equal candidates always come back in the same order.
	sort.Slice(alternatives, func(i, j int) bool {
		if alternatives[i].Score != alternatives[j].Score {
			return alternatives[i].Score > alternatives[j].Score
		}
		if alternatives[i].Depth != alternatives[j].Depth {
			return alternatives[i].Depth < alternatives[j].Depth
		}
		return alternatives[i].Product.ID() < alternatives[j].Product.ID()
	})

	k := req.TopK
	if k <= 0 {
		k = s.topK
	}
	if k > s.maxTopK {
		k = s.maxTopK
	}
	if len(alternatives) > k {
		alternatives = alternatives[:k]
	}

	metrics.RecommendationQueriesTotal.WithLabelValues("ok").Inc()
	metrics.SearchNodesVisited.Observe(float64(visited))

	log.Info("Recommendation query served",
		zap.String("query_id", uuid.NewString()),
		zap.String("product_id", req.ProductID),
		zap.Bool("exact_match", exact != nil),
		zap.Int("nodes_visited", visited),
		zap.Int("candidates_found", len(candidates)),
		zap.Int("candidates_after_filter", len(filtered)),
		zap.Int("alternatives", len(alternatives)),
	)

	return Response{
		Requested:    requested,
		ExactMatch:   exact,
		Alternatives: alternatives,
		Message:      buildMessage(exact != nil, len(alternatives)),
		Diagnostics: Diagnostics{
			NodesVisited:          visited,
			CandidatesFound:       len(candidates),
			CandidatesAfterFilter: len(filtered),
		},
	}, nil
}

// Path returns the shortest connection between two products as a small
// renderable subgraph.
func (s *Service) Path(ctx context.Context, productID, altID string) (Subgraph, error) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		return Subgraph{}, fmt.Errorf("catalog snapshot not loaded")
	}

	nodeIDs, err := snap.Graph.ShortestPath(productID, altID)
	if err != nil {
		return Subgraph{}, err
	}

	var sub Subgraph
	for i, id := range nodeIDs {
		n, ok := snap.Graph.Node(id)
		if !ok {
			continue
		}
		sub.Nodes = append(sub.Nodes, PathNode{ID: n.ID(), Kind: n.Kind(), Name: n.Name()})
		if i > 0 {
			if kind, ok := snap.Graph.EdgeBetween(nodeIDs[i-1], id); ok {
				sub.Edges = append(sub.Edges, PathEdge{From: nodeIDs[i-1], To: id, Kind: kind})
			}
		}
	}

	logger.FromContext(ctx).Debug("Path query served",
		zap.String("product_id", productID),
		zap.String("alt_id", altID),
		zap.Int("path_nodes", len(sub.Nodes)),
	)
	return sub, nil
}

func buildMessage(hasExact bool, alternatives int) string {
	switch {
	case hasExact && alternatives == 0:
		return "Exact product is available, but no better alternatives were found."
	case hasExact:
		return "Exact product is available. Showing additional alternatives."
	case alternatives > 0:
		return "Alternatives found."
	default:
		return "No alternatives found matching constraints."
	}
}
