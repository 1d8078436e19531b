// Package rules defines the rule tags emitted by the scorer and the fixed
// tag-to-phrase table that turns them into human-readable explanations.
package rules

// Tag marks which scoring rule fired for a candidate.
type Tag string

const (
	// TagExactMatch — the requested item itself is purchasable under the filters.
	TagExactMatch Tag = "exact_match_available"
	// TagSameCategory — candidate shares the requested product's category.
	TagSameCategory Tag = "same_category"
	// TagSimilarCategory — candidate's category is related per the similarity table.
	TagSimilarCategory Tag = "similar_category"
	// TagPreferredBrand — candidate matches the shopper's preferred brand.
	TagPreferredBrand Tag = "preferred_brand_respected"
	// TagSameBrand — candidate shares the requested product's brand.
	TagSameBrand Tag = "same_brand_as_requested"
	// TagDifferentBrand — candidate's brand differs from the requested product's.
	TagDifferentBrand Tag = "different_brand_than_requested"
	// TagCheaper — candidate is strictly cheaper.
	TagCheaper Tag = "cheaper_option"
	// TagSamePrice — candidate costs the same.
	TagSamePrice Tag = "same_price_as_requested"
	// TagMoreExpensive — candidate is strictly more expensive.
	TagMoreExpensive Tag = "slightly_more_expensive"
	// TagCloserInGraph — candidate is near the requested item in the graph.
	TagCloserInGraph Tag = "closer_in_graph"
	// TagAllRequiredTags — candidate carries every required tag.
	TagAllRequiredTags Tag = "all_required_tags_matched"
)

// All returns every tag the scorer and exact-match check can emit.
// The explanation table must cover all of them.
func All() []Tag {
	return []Tag{
		TagExactMatch,
		TagSameCategory,
		TagSimilarCategory,
		TagPreferredBrand,
		TagSameBrand,
		TagDifferentBrand,
		TagCheaper,
		TagSamePrice,
		TagMoreExpensive,
		TagCloserInGraph,
		TagAllRequiredTags,
	}
}

// canonicalOrder is the fixed rendering order for explanations:
// exact-match, category, brand, price, proximity, tag-match.
var canonicalOrder = []Tag{
	TagExactMatch,
	TagSameCategory,
	TagSimilarCategory,
	TagPreferredBrand,
	TagSameBrand,
	TagDifferentBrand,
	TagCheaper,
	TagSamePrice,
	TagMoreExpensive,
	TagCloserInGraph,
	TagAllRequiredTags,
}
