package catalog

import (
	"fmt"
	"sort"

	"github.com/marketkit/shopgraph/internal/domain"
)

// Catalog is the read-only set of products served by one shopkeeper.
// It is built once and never mutated; queries may share it freely.
type Catalog struct {
	byID  map[string]Product
	order []string
}

// NewCatalog validates and creates a Catalog. A duplicate product id is a
// load-time error: no partial catalog is ever produced.
func NewCatalog(products []Product) (*Catalog, error) {
	byID := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateProduct, p.ID())
		}
		byID[p.ID()] = p
		order = append(order, p.ID())
	}
	sort.Strings(order)
	return &Catalog{byID: byID, order: order}, nil
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// Has reports whether the id exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.byID) }

// Products returns all products sorted by id.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Categories returns the sorted distinct category names.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		cat := c.byID[id].Category()
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	sort.Strings(out)
	return out
}

// ProductsInCategory returns products of the category sorted by display name.
func (c *Catalog) ProductsInCategory(category string) []Product {
	var out []Product
	for _, id := range c.order {
		if p := c.byID[id]; p.Category() == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
