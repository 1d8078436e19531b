package recommend

import (
	"sort"
	"strings"

	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/rules"
)

// Spec holds the normalized hard constraints of one recommendation query.
// Constraints are conjunctive: a product must satisfy all of them to be
// eligible. The preferred brand is a soft preference handled by the scorer,
// except in the exact-match check where it acts as a gate.
type Spec struct {
	maxPrice       *float64
	requiredTags   []string
	preferredBrand string
}

// NewSpec normalizes the raw query constraints. Required tags are lowercased,
// trimmed, deduplicated and sorted to line up with catalog tag normalization.
func NewSpec(maxPrice *float64, requiredTags []string, preferredBrand string) Spec {
	seen := make(map[string]bool, len(requiredTags))
	tags := make([]string, 0, len(requiredTags))
	for _, tag := range requiredTags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return Spec{maxPrice: maxPrice, requiredTags: tags, preferredBrand: preferredBrand}
}

// MaxPrice returns the price ceiling, or nil when unconstrained.
func (s Spec) MaxPrice() *float64 { return s.maxPrice }

// RequiredTags returns the normalized required tags.
func (s Spec) RequiredTags() []string { return s.requiredTags }

// PreferredBrand returns the preferred brand, or "" when none was given.
func (s Spec) PreferredBrand() string { return s.preferredBrand }

// eligible applies the hard constraints to one product: it must be in stock,
// within the price ceiling, and carry every required tag.
func (s Spec) eligible(p catalog.Product) bool {
	if !p.InStock() {
		return false
	}
	if s.maxPrice != nil && p.Price() > *s.maxPrice {
		return false
	}
	return p.HasAllTags(s.requiredTags)
}

// candidate is a product discovered by the neighborhood search, carrying the
// minimum depth at which it was found.
type candidate struct {
	product catalog.Product
	depth   int
}

// applyFilter keeps the eligible candidates, preserving input order.
// An empty result is a normal outcome, not an error.
func applyFilter(candidates []candidate, spec Spec) []candidate {
	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if spec.eligible(c.product) {
			out = append(out, c)
		}
	}
	return out
}

// exactMatch reports whether the requested product itself satisfies the
// query. When a preferred brand is set, the requested product must carry
// that exact brand; otherwise the shopper's stated preference would be
// silently ignored.
func exactMatch(requested catalog.Product, spec Spec) ([]rules.Tag, bool) {
	if spec.preferredBrand != "" && requested.Brand() != spec.preferredBrand {
		return nil, false
	}
	if !spec.eligible(requested) {
		return nil, false
	}

	tags := []rules.Tag{rules.TagExactMatch}
	if spec.preferredBrand != "" {
		tags = append(tags, rules.TagPreferredBrand)
	}
	if len(spec.requiredTags) > 0 {
		tags = append(tags, rules.TagAllRequiredTags)
	}
	return tags, true
}
