package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Product is an immutable catalog entry.
type Product struct {
	id       string
	name     string
	category string
	brand    string
	price    float64
	inStock  bool
	tags     []string
}

// New validates and creates a Product.
// Brand may be empty (explicitly absent). Tags are lowercased, trimmed and
// deduplicated; empty tags are rejected.
func New(id, name, category, brand string, price float64, inStock bool, tags []string) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("product id is required")
	}
	if name == "" {
		return Product{}, fmt.Errorf("product %s: name is required", id)
	}
	if category == "" {
		return Product{}, fmt.Errorf("product %s: category is required", id)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Product{}, fmt.Errorf("product %s: price must be finite", id)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("product %s: price must be non-negative", id)
	}

	normalized, err := normalizeTags(id, tags)
	if err != nil {
		return Product{}, err
	}

	return Product{
		id:       id,
		name:     name,
		category: category,
		brand:    brand,
		price:    price,
		inStock:  inStock,
		tags:     normalized,
	}, nil
}

func normalizeTags(id string, tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			return nil, fmt.Errorf("product %s: empty tag", id)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// ID returns the catalog identifier.
func (p Product) ID() string { return p.id }

// Name returns the display name.
func (p Product) Name() string { return p.name }

// Category returns the category name.
func (p Product) Category() string { return p.category }

// Brand returns the brand name, or "" when the brand is absent.
func (p Product) Brand() string { return p.brand }

// HasBrand reports whether the product carries a brand.
func (p Product) HasBrand() bool { return p.brand != "" }

// Price returns the unit price.
func (p Product) Price() float64 { return p.price }

// InStock reports shelf availability.
func (p Product) InStock() bool { return p.inStock }

// Tags returns the normalized attribute tags (sorted, deduplicated).
func (p Product) Tags() []string { return p.tags }

// HasTag reports whether the product carries the given normalized tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every given normalized tag is present.
func (p Product) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !p.HasTag(tag) {
			return false
		}
	}
	return true
}
