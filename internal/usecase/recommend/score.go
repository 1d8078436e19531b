package recommend

import (
	"github.com/marketkit/shopgraph/internal/domain/catalog"
	"github.com/marketkit/shopgraph/internal/domain/rules"
	"github.com/marketkit/shopgraph/internal/domain/similarity"
)

// Additive rule weights. Each rule contributes independently; the total is
// the plain sum, so two candidates differing in one rule differ by exactly
// that rule's weight.
const (
	categoryBaseScore     = 4.0
	preferredBrandScore   = 3.0
	sameBrandScore        = 2.0
	differentBrandPenalty = -0.5
	cheaperScore          = 1.0
	samePriceScore        = 0.5
	moreExpensivePenalty  = -0.2
	proximityStep         = 0.5
	proximityMaxDepth     = 3
)

// scoreCandidate evaluates every scoring rule against a single already
// filtered candidate and returns the additive score plus the tags of the
// rules that fired. It reads nothing but its arguments, so identical inputs
// always produce identical output.
func scoreCandidate(requested, cand catalog.Product, depth int, spec Spec, table *similarity.Table) (float64, []rules.Tag) {
	score := 0.0
	var tags []rules.Tag

	// Category: same category scores the full base weight, a declared
	// similar category a fraction of it, anything else nothing.
	switch table.Closeness(requested.Category(), cand.Category()) {
	case similarity.Same:
		score += categoryBaseScore
		tags = append(tags, rules.TagSameCategory)
	case similarity.Similar:
		score += similarity.Similar.Weight() * categoryBaseScore
		tags = append(tags, rules.TagSimilarCategory)
	}

	// Brand: the preferred brand wins outright; matching the requested
	// product's brand is second best; a differing brand is a mild penalty.
	// An absent brand matches nothing and is never penalized.
	switch {
	case spec.PreferredBrand() != "" && cand.Brand() == spec.PreferredBrand():
		score += preferredBrandScore
		tags = append(tags, rules.TagPreferredBrand)
	case requested.HasBrand() && cand.HasBrand() && cand.Brand() == requested.Brand():
		score += sameBrandScore
		tags = append(tags, rules.TagSameBrand)
	case requested.HasBrand() && cand.HasBrand():
		score += differentBrandPenalty
		tags = append(tags, rules.TagDifferentBrand)
	}

	// Price: relative to the requested product. The more-expensive penalty
	// is flat regardless of how much more expensive the candidate is.
	switch {
	case cand.Price() < requested.Price():
		score += cheaperScore
		tags = append(tags, rules.TagCheaper)
	case cand.Price() == requested.Price():
		score += samePriceScore
		tags = append(tags, rules.TagSamePrice)
	default:
		score += moreExpensivePenalty
		tags = append(tags, rules.TagMoreExpensive)
	}

	// Graph proximity: linear falloff with depth, floored at zero.
	if gain := float64(proximityMaxDepth-depth) * proximityStep; gain > 0 {
		score += gain
	}
	tags = append(tags, rules.TagCloserInGraph)

	// Required tags contributed to filtering, not to the score; the tag is
	// recorded so the match shows up in the explanation.
	if len(spec.RequiredTags()) > 0 {
		tags = append(tags, rules.TagAllRequiredTags)
	}

	return score, tags
}
