package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/marketkit/shopgraph/internal/domain"
	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/graph"
	"github.com/marketkit/shopgraph/internal/domain/rules"
	"github.com/marketkit/shopgraph/internal/domain/snapshot"
)

// staticSnapshots serves one fixed snapshot.
type staticSnapshots struct {
	snap *snapshot.Snapshot
}

func (s *staticSnapshots) Snapshot() *snapshot.Snapshot { return s.snap }

func newSnapshot(t *testing.T, products []catalog.Product, pairs []graph.Pair) *snapshot.Snapshot {
	t.Helper()
	c, err := catalog.NewCatalog(products)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	g, skipped := graph.Build(products, pairs)
	if len(skipped) != 0 {
		t.Fatalf("skipped pairs: %v", skipped)
	}
	return &snapshot.Snapshot{Catalog: c, Graph: g, Similarity: mustTable(t)}
}

func newService(t *testing.T, snap *snapshot.Snapshot) *Service {
	t.Helper()
	explainer, err := rules.NewExplainer(rules.DefaultPhrases())
	if err != nil {
		t.Fatalf("explainer: %v", err)
	}
	return New(&staticSnapshots{snap: snap}, explainer)
}

func milkFixture(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	products := []catalog.Product{
		mustNamedProduct(t, "P001", "Amul Toned Milk", "Dairy", "Amul", 50, false, "low_fat"),
		mustNamedProduct(t, "P002", "Nestle A+ Milk", "Dairy", "Nestle", 55, true),
		mustNamedProduct(t, "P003", "Mother Dairy Toned Milk", "Dairy", "Mother Dairy", 45, true, "low_fat"),
	}
	return newSnapshot(t, products, []graph.Pair{{A: "P001", B: "P003"}})
}

func mustNamedProduct(t *testing.T, id, name, category, brand string, price float64, inStock bool, tags ...string) catalog.Product {
	t.Helper()
	p, err := catalog.New(id, name, category, brand, price, inStock, tags)
	if err != nil {
		t.Fatalf("product %s: %v", id, err)
	}
	return p
}

func TestRecommend_OutOfStockWithPreferences(t *testing.T) {
	svc := newService(t, milkFixture(t))

	res, err := svc.Recommend(context.Background(), Request{
		ProductID:      "P001",
		RequiredTags:   []string{"low_fat"},
		PreferredBrand: "Mother Dairy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExactMatch != nil {
		t.Error("out-of-stock product reported as exact match")
	}
	if len(res.Alternatives) != 1 {
		t.Fatalf("alternatives = %d, want 1", len(res.Alternatives))
	}

	alt := res.Alternatives[0]
	if alt.Product.ID() != "P003" {
		t.Errorf("top alternative = %s, want P003", alt.Product.ID())
	}
	// Same category + preferred brand + cheaper + direct similarity link.
	if !almostEqual(alt.Score, 9.0) {
		t.Errorf("score = %v, want 9.0", alt.Score)
	}
	if alt.Depth != 1 {
		t.Errorf("depth = %d, want 1", alt.Depth)
	}
	if alt.Explanation == "" {
		t.Error("empty explanation")
	}
	if res.Message != "Alternatives found." {
		t.Errorf("message = %q", res.Message)
	}

	// P002 lacks the required tag: found by the search, dropped by the filter.
	if res.Diagnostics.CandidatesFound != 2 {
		t.Errorf("candidates_found = %d, want 2", res.Diagnostics.CandidatesFound)
	}
	if res.Diagnostics.CandidatesAfterFilter != 1 {
		t.Errorf("candidates_after_filter = %d, want 1", res.Diagnostics.CandidatesAfterFilter)
	}
	if res.Diagnostics.NodesVisited <= 0 {
		t.Errorf("nodes_visited = %d", res.Diagnostics.NodesVisited)
	}
}

func TestRecommend_ExactMatchWithAlternatives(t *testing.T) {
	svc := newService(t, milkFixture(t))

	res, err := svc.Recommend(context.Background(), Request{ProductID: "P003"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ExactMatch == nil {
		t.Fatal("exact match missing for in-stock product")
	}
	if res.ExactMatch.Product.ID() != "P003" {
		t.Errorf("exact match product = %s", res.ExactMatch.Product.ID())
	}
	if len(res.ExactMatch.Tags) != 1 || res.ExactMatch.Tags[0] != rules.TagExactMatch {
		t.Errorf("exact match tags = %v", res.ExactMatch.Tags)
	}
	// P001 is out of stock: only P002 survives the filter.
	if len(res.Alternatives) != 1 || res.Alternatives[0].Product.ID() != "P002" {
		t.Errorf("alternatives = %v", res.Alternatives)
	}
	if res.Message != "Exact product is available. Showing additional alternatives." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRecommend_ExactMatchNoAlternatives(t *testing.T) {
	snap := newSnapshot(t, []catalog.Product{
		mustNamedProduct(t, "P001", "Lone Milk", "Dairy", "Amul", 50, true),
	}, nil)
	svc := newService(t, snap)

	res, err := svc.Recommend(context.Background(), Request{ProductID: "P001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExactMatch == nil || len(res.Alternatives) != 0 {
		t.Fatalf("exact = %v, alternatives = %d", res.ExactMatch, len(res.Alternatives))
	}
	if res.Message != "Exact product is available, but no better alternatives were found." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRecommend_NothingFound(t *testing.T) {
	svc := newService(t, milkFixture(t))

	res, err := svc.Recommend(context.Background(), Request{
		ProductID:    "P001",
		RequiredTags: []string{"organic"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExactMatch != nil || len(res.Alternatives) != 0 {
		t.Fatalf("exact = %v, alternatives = %d", res.ExactMatch, len(res.Alternatives))
	}
	if res.Message != "No alternatives found matching constraints." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRecommend_ProductNotFound(t *testing.T) {
	svc := newService(t, milkFixture(t))

	_, err := svc.Recommend(context.Background(), Request{ProductID: "P999"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("error = %v, want ErrProductNotFound", err)
	}
}

func TestRecommend_TopK(t *testing.T) {
	products := []catalog.Product{
		mustNamedProduct(t, "P000", "Requested", "Dairy", "Amul", 50, true),
		mustNamedProduct(t, "P001", "Alt 1", "Dairy", "Amul", 40, true),
		mustNamedProduct(t, "P002", "Alt 2", "Dairy", "Amul", 41, true),
		mustNamedProduct(t, "P003", "Alt 3", "Dairy", "Amul", 42, true),
		mustNamedProduct(t, "P004", "Alt 4", "Dairy", "Amul", 43, true),
		mustNamedProduct(t, "P005", "Alt 5", "Dairy", "Amul", 44, true),
	}
	svc := newService(t, newSnapshot(t, products, nil)).WithTopK(2, 3)

	res, err := svc.Recommend(context.Background(), Request{ProductID: "P000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Alternatives) != 2 {
		t.Errorf("default top-k: alternatives = %d, want 2", len(res.Alternatives))
	}

	res, err = svc.Recommend(context.Background(), Request{ProductID: "P000", TopK: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Alternatives) != 3 {
		t.Errorf("clamped top-k: alternatives = %d, want 3", len(res.Alternatives))
	}
}

func TestRecommend_RankingAndTieBreak(t *testing.T) {
	// P010 is strictly cheaper than the requested product and must rank
	// first; P011-P013 are identical in every scored dimension and must
	// come back in id order.
	products := []catalog.Product{
		mustNamedProduct(t, "P000", "Requested", "Dairy", "Amul", 50, true),
		mustNamedProduct(t, "P013", "Twin C", "Dairy", "Nestle", 50, true),
		mustNamedProduct(t, "P011", "Twin A", "Dairy", "Nestle", 50, true),
		mustNamedProduct(t, "P010", "Cheaper", "Dairy", "Nestle", 40, true),
		mustNamedProduct(t, "P012", "Twin B", "Dairy", "Nestle", 50, true),
	}
	svc := newService(t, newSnapshot(t, products, nil))

	res, err := svc.Recommend(context.Background(), Request{ProductID: "P000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotIDs := make([]string, 0, len(res.Alternatives))
	for _, alt := range res.Alternatives {
		gotIDs = append(gotIDs, alt.Product.ID())
	}
	want := []string{"P010", "P011", "P012", "P013"}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("order = %v, want %v", gotIDs, want)
	}

	for i := 1; i < len(res.Alternatives); i++ {
		if res.Alternatives[i].Score > res.Alternatives[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	svc := newService(t, milkFixture(t))
	req := Request{ProductID: "P001", RequiredTags: []string{"low_fat"}, PreferredBrand: "Mother Dairy"}

	a, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("responses differ:\n%+v\n%+v", a, b)
	}
}

func TestRecommend_SnapshotNotLoaded(t *testing.T) {
	svc := newService(t, nil)
	if _, err := svc.Recommend(context.Background(), Request{ProductID: "P001"}); err == nil {
		t.Fatal("expected error without a snapshot")
	}
}

func TestPath_DirectLink(t *testing.T) {
	svc := newService(t, milkFixture(t))

	sub, err := svc.Path(context.Background(), "P001", "P003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.Nodes) != 2 || len(sub.Edges) != 1 {
		t.Fatalf("subgraph = %d nodes, %d edges", len(sub.Nodes), len(sub.Edges))
	}
	if sub.Edges[0].Kind != graph.EdgeSimilarTo {
		t.Errorf("edge kind = %s, want SIMILAR_TO", sub.Edges[0].Kind)
	}
}

func TestPath_ViaSharedNode(t *testing.T) {
	svc := newService(t, milkFixture(t))

	sub, err := svc.Path(context.Background(), "P002", "P003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.Nodes) != 3 || len(sub.Edges) != 2 {
		t.Fatalf("subgraph = %d nodes, %d edges", len(sub.Nodes), len(sub.Edges))
	}
	if sub.Nodes[0].Kind != graph.KindProduct || sub.Nodes[2].Kind != graph.KindProduct {
		t.Errorf("endpoints = %v", sub.Nodes)
	}
}

func TestPath_NotFound(t *testing.T) {
	svc := newService(t, milkFixture(t))
	if _, err := svc.Path(context.Background(), "P001", "P999"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("error = %v, want ErrProductNotFound", err)
	}
}
