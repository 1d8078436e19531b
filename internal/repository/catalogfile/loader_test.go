package catalogfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/marketkit/shopgraph/internal/domain"
	"github.com/marketkit/shopgraph/internal/domain/similarity"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validProducts = `[
	{"id": "P001", "name": "Amul Toned Milk", "category": "Dairy", "brand": "Amul", "price": 50, "in_stock": false, "tags": ["low_fat"]},
	{"id": "P002", "name": "Nestle A+ Milk", "category": "Dairy", "brand": "Nestle", "price": 55, "in_stock": true, "tags": []},
	{"id": "P003", "name": "Loose Rice", "category": "Staples", "price": 80, "in_stock": true}
]`

func TestLoadProducts(t *testing.T) {
	path := writeFile(t, t.TempDir(), "products.json", validProducts)

	products, err := loadProducts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("len = %d, want 3", len(products))
	}
	if products[0].ID() != "P001" || products[0].InStock() {
		t.Errorf("first product = %+v", products[0])
	}
	// Absent brand field maps to no brand.
	if products[2].HasBrand() {
		t.Error("P003 unexpectedly has a brand")
	}
}

func TestLoadProducts_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `[{"id": "P001"`},
		{"not an array", `{"id": "P001"}`},
		{"missing name", `[{"id": "P001", "category": "Dairy", "price": 50}]`},
		{"negative price", `[{"id": "P001", "name": "Milk", "category": "Dairy", "price": -5}]`},
		{"empty tag", `[{"id": "P001", "name": "Milk", "category": "Dairy", "price": 5, "tags": [" "]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "products.json", tt.content)
			if _, err := loadProducts(path); !errors.Is(err, domain.ErrInvalidRecord) {
				t.Errorf("error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestLoadProducts_MissingFile(t *testing.T) {
	if _, err := loadProducts(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPairs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pairs.json", `[{"a": "P001", "b": "P002"}]`)
	pairs, err := loadPairs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 || pairs[0].A != "P001" || pairs[0].B != "P002" {
		t.Errorf("pairs = %v", pairs)
	}
}

func TestLoadPairs_EmptyPathOptional(t *testing.T) {
	pairs, err := loadPairs("")
	if err != nil || pairs != nil {
		t.Fatalf("loadPairs(\"\") = %v, %v", pairs, err)
	}
}

func TestLoadPairs_MissingID(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pairs.json", `[{"a": "P001", "b": ""}]`)
	if _, err := loadPairs(path); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("error = %v, want ErrInvalidRecord", err)
	}
}

func testTable(t *testing.T) *similarity.Table {
	t.Helper()
	table, err := similarity.NewTable(map[string][]string{
		"Dairy":  {"Health"},
		"Health": {"Dairy"},
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return table
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	productsPath := writeFile(t, dir, "products.json", validProducts)
	pairsPath := writeFile(t, dir, "pairs.json", `[{"a": "P001", "b": "P002"}, {"a": "P001", "b": "P999"}]`)

	store := NewStore(productsPath, pairsPath, testTable(t), zap.NewNop())
	if store.Snapshot() != nil {
		t.Fatal("snapshot present before Load")
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	snap := store.Snapshot()
	if snap == nil {
		t.Fatal("snapshot missing after Load")
	}
	if snap.Catalog.Len() != 3 {
		t.Errorf("catalog len = %d, want 3", snap.Catalog.Len())
	}
	// The unknown-id pair is skipped, the valid one is kept.
	if !snap.Graph.HasProduct("P001") {
		t.Error("graph missing P001")
	}
	if _, ok := snap.Graph.EdgeBetween("product:P001", "product:P002"); !ok {
		t.Error("curated pair edge missing")
	}
}

func TestStore_FailedReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	productsPath := writeFile(t, dir, "products.json", validProducts)

	store := NewStore(productsPath, "", testTable(t), zap.NewNop())
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	previous := store.Snapshot()

	writeFile(t, dir, "products.json", `[{"id": "P001"`)
	if err := store.Load(); err == nil {
		t.Fatal("expected error for corrupt products file")
	}
	if store.Snapshot() != previous {
		t.Error("failed reload replaced the active snapshot")
	}
}

func TestStore_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	productsPath := writeFile(t, dir, "products.json", `[
		{"id": "P001", "name": "Milk", "category": "Dairy", "price": 50, "in_stock": true},
		{"id": "P001", "name": "Butter", "category": "Dairy", "price": 60, "in_stock": true}
	]`)

	store := NewStore(productsPath, "", testTable(t), zap.NewNop())
	if err := store.Load(); !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("error = %v, want ErrDuplicateProduct", err)
	}
}
