package graph

import (
	"fmt"
	"sort"

	"github.com/marketkit/shopgraph/internal/domain"
)

// Discovery is a product reached by the neighborhood search, tagged with the
// minimum depth at which it was first seen.
type Discovery struct {
	ProductID string
	Depth     int
}

// Neighborhood runs a bounded breadth-first traversal from the given product
// over all edge kinds, treating every relation as undirected. It returns the
// products discovered at depth >= 1 (the start product is never a candidate),
// each at its minimum discovery depth, plus the total number of nodes
// visited. maxVisited defensively caps traversal on pathologically dense
// graphs; 0 means no cap.
//
// Depths are level-based, so the recorded minimum depth does not depend on
// neighbor iteration order. Results are sorted by (depth, product id) so the
// candidate set is identical across runs.
func (g *Graph) Neighborhood(productID string, maxDepth, maxVisited int) ([]Discovery, int, error) {
	start := ProductNodeID(productID)
	if _, ok := g.nodes[start]; !ok {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	visited := map[string]bool{start: true}
	frontier := []string{start}
	traversed := 0
	capped := false
	var found []Discovery

	for depth := 0; depth < maxDepth && len(frontier) > 0 && !capped; depth++ {
		var next []string
		for _, node := range frontier {
			if maxVisited > 0 && traversed >= maxVisited {
				capped = true
				break
			}
			traversed++
			for _, e := range g.adj[node] {
				if visited[e.To] {
					continue
				}
				visited[e.To] = true
				next = append(next, e.To)
				if pid, ok := ProductID(e.To); ok {
					found = append(found, Discovery{ProductID: pid, Depth: depth + 1})
				}
			}
		}
		frontier = next
	}
	if !capped {
		// Nodes on the final frontier were discovered but never expanded.
		traversed += len(frontier)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Depth != found[j].Depth {
			return found[i].Depth < found[j].Depth
		}
		return found[i].ProductID < found[j].ProductID
	})

	return found, traversed, nil
}

// ShortestPath returns the node ids along one shortest path between two
// product nodes over the undirected traversal view. The returned path is
// deterministic (adjacency is sorted). A nil path with nil error means the
// products are not connected.
func (g *Graph) ShortestPath(fromProductID, toProductID string) ([]string, error) {
	from := ProductNodeID(fromProductID)
	to := ProductNodeID(toProductID)
	if _, ok := g.nodes[from]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, fromProductID)
	}
	if _, ok := g.nodes[to]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, toProductID)
	}
	if from == to {
		return []string{from}, nil
	}

	parent := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, e := range g.adj[node] {
			if _, seen := parent[e.To]; seen {
				continue
			}
			parent[e.To] = node
			if e.To == to {
				return rebuildPath(parent, from, to), nil
			}
			queue = append(queue, e.To)
		}
	}
	return nil, nil
}

func rebuildPath(parent map[string]string, from, to string) []string {
	var rev []string
	for node := to; node != ""; node = parent[node] {
		rev = append(rev, node)
		if node == from {
			break
		}
	}
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
