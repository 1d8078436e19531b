// Package graph provides the typed product knowledge graph: products,
// categories, brands and attributes connected by typed relations, with an
// undirected adjacency view used for traversal.
package graph

import (
	"sort"
	"strings"

	"github.com/marketkit/shopgraph/internal/domain"
	"github.com/marketkit/shopgraph/internal/domain/catalog"
)

// Kind is the node kind.
type Kind string

const (
	// KindProduct is a product node, keyed by catalog id.
	KindProduct Kind = "product"
	// KindCategory is a category singleton, keyed by name.
	KindCategory Kind = "category"
	// KindBrand is a brand singleton, keyed by name.
	KindBrand Kind = "brand"
	// KindAttribute is an attribute (tag) singleton, keyed by name.
	KindAttribute Kind = "attribute"
)

// EdgeKind is the relation kind.
type EdgeKind string

const (
	// EdgeIsA links a product to its category.
	EdgeIsA EdgeKind = "IS_A"
	// EdgeHasBrand links a product to its brand.
	EdgeHasBrand EdgeKind = "HAS_BRAND"
	// EdgeHasAttribute links a product to one of its tags.
	EdgeHasAttribute EdgeKind = "HAS_ATTRIBUTE"
	// EdgeSimilarTo links two curated substitute products. Symmetric.
	EdgeSimilarTo EdgeKind = "SIMILAR_TO"
)

// Node is a graph node.
type Node struct {
	id   string
	kind Kind
	name string
}

// ID returns the node identifier (kind-prefixed).
func (n Node) ID() string { return n.id }

// Kind returns the node kind.
func (n Node) Kind() Kind { return n.kind }

// Name returns the display name (product name, or the keyed name otherwise).
func (n Node) Name() string { return n.name }

// Edge is one undirected adjacency entry.
type Edge struct {
	To   string
	Kind EdgeKind
}

// Pair is a curated SIMILAR_TO product-id pair.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ProductNodeID returns the node id for a catalog product id.
func ProductNodeID(productID string) string { return "product:" + productID }

// CategoryNodeID returns the node id for a category name.
func CategoryNodeID(name string) string { return "category:" + name }

// BrandNodeID returns the node id for a brand name.
func BrandNodeID(name string) string { return "brand:" + name }

// AttributeNodeID returns the node id for an attribute name.
func AttributeNodeID(name string) string { return "attr:" + name }

// ProductID extracts the catalog id from a product node id.
func ProductID(nodeID string) (string, bool) {
	id, ok := strings.CutPrefix(nodeID, "product:")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Graph is the immutable multi-relation graph over one catalog.
type Graph struct {
	nodes    map[string]Node
	adj      map[string][]Edge
	numEdges int
}

// Build constructs the graph from validated products and curated similarity
// pairs. Category, brand and attribute nodes are singletons reused across
// products. Pairs referencing an unknown product id are skipped and reported,
// never aborting the build. Adjacency lists are sorted by neighbor id so the
// traversal view is deterministic for identical input.
func Build(products []catalog.Product, pairs []Pair) (*Graph, []*domain.UnknownReferenceError) {
	g := &Graph{
		nodes: make(map[string]Node),
		adj:   make(map[string][]Edge),
	}

	for _, p := range products {
		pid := ProductNodeID(p.ID())
		g.nodes[pid] = Node{id: pid, kind: KindProduct, name: p.Name()}

		cid := CategoryNodeID(p.Category())
		g.ensure(cid, KindCategory, p.Category())
		g.addEdge(pid, cid, EdgeIsA)

		if p.HasBrand() {
			bid := BrandNodeID(p.Brand())
			g.ensure(bid, KindBrand, p.Brand())
			g.addEdge(pid, bid, EdgeHasBrand)
		}

		for _, tag := range p.Tags() {
			aid := AttributeNodeID(tag)
			g.ensure(aid, KindAttribute, tag)
			g.addEdge(pid, aid, EdgeHasAttribute)
		}
	}

	var skipped []*domain.UnknownReferenceError
	for _, pair := range pairs {
		a, b := ProductNodeID(pair.A), ProductNodeID(pair.B)
		if _, ok := g.nodes[a]; !ok {
			skipped = append(skipped, &domain.UnknownReferenceError{From: pair.A, To: pair.B})
			continue
		}
		if _, ok := g.nodes[b]; !ok {
			skipped = append(skipped, &domain.UnknownReferenceError{From: pair.A, To: pair.B})
			continue
		}
		if a == b {
			skipped = append(skipped, &domain.UnknownReferenceError{From: pair.A, To: pair.B})
			continue
		}
		g.addEdge(a, b, EdgeSimilarTo)
	}

	for id := range g.adj {
		edges := g.adj[id]
		sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })
	}

	return g, skipped
}

func (g *Graph) ensure(id string, kind Kind, name string) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = Node{id: id, kind: kind, name: name}
	}
}

// addEdge records an undirected edge once in each adjacency list,
// ignoring duplicates.
func (g *Graph) addEdge(a, b string, kind EdgeKind) {
	for _, e := range g.adj[a] {
		if e.To == b && e.Kind == kind {
			return
		}
	}
	g.adj[a] = append(g.adj[a], Edge{To: b, Kind: kind})
	g.adj[b] = append(g.adj[b], Edge{To: a, Kind: kind})
	g.numEdges++
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasProduct reports whether the catalog product id has a node.
func (g *Graph) HasProduct(productID string) bool {
	_, ok := g.nodes[ProductNodeID(productID)]
	return ok
}

// Neighbors returns the undirected adjacency list of a node, sorted by
// neighbor id.
func (g *Graph) Neighbors(id string) []Edge { return g.adj[id] }

// EdgeBetween returns the relation kind connecting two nodes, if any.
func (g *Graph) EdgeBetween(a, b string) (EdgeKind, bool) {
	for _, e := range g.adj[a] {
		if e.To == b {
			return e.Kind, true
		}
	}
	return "", false
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the undirected edge count.
func (g *Graph) NumEdges() int { return g.numEdges }
