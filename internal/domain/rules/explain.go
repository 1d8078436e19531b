package rules

import (
	"fmt"
	"strings"

	"github.com/marketkit/shopgraph/internal/domain"
)

// defaultPhrase is rendered when a candidate carries no applicable tags.
const defaultPhrase = "Closest available option."

// DefaultPhrases returns the built-in tag-to-phrase table.
func DefaultPhrases() map[Tag]string {
	return map[Tag]string{
		TagExactMatch:      "The exact item is in stock and matches your filters.",
		TagPreferredBrand:  "Matches your preferred brand.",
		TagSameBrand:       "Same brand as the requested product.",
		TagDifferentBrand:  "Different brand than the requested product.",
		TagAllRequiredTags: "Matches all required tags.",
		TagCheaper:         "Cheaper than the requested product.",
		TagSamePrice:       "Same price as the requested product.",
		TagMoreExpensive:   "Slightly more expensive.",
		TagSameCategory:    "Same category.",
		TagSimilarCategory: "Related category.",
		TagCloserInGraph:   "Close to the requested item in the knowledge graph.",
	}
}

// Explainer renders rule tags into explanation text using a fixed table.
// The table is validated at construction: every tag the scorer can produce
// must be mapped, so an unmapped tag can never surface at query time.
type Explainer struct {
	phrases map[Tag]string
}

// NewExplainer validates the table against All() and creates an Explainer.
func NewExplainer(phrases map[Tag]string) (*Explainer, error) {
	for _, tag := range All() {
		phrase, ok := phrases[tag]
		if !ok || phrase == "" {
			return nil, fmt.Errorf("%w: no explanation phrase for rule tag %q", domain.ErrInvalidConfig, tag)
		}
	}
	copied := make(map[Tag]string, len(phrases))
	for tag, phrase := range phrases {
		copied[tag] = phrase
	}
	return &Explainer{phrases: copied}, nil
}

// Render joins the phrases of the present tags, in canonical order, into one
// explanation. requiredTags are appended when the tag-match rule fired.
// The result is never empty.
func (e *Explainer) Render(tags []Tag, requiredTags []string) string {
	present := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}

	var parts []string
	for _, tag := range canonicalOrder {
		if present[tag] {
			parts = append(parts, e.phrases[tag])
		}
	}
	if present[TagAllRequiredTags] && len(requiredTags) > 0 {
		parts = append(parts, "Required tags: "+strings.Join(requiredTags, ", ")+".")
	}
	if len(parts) == 0 {
		return defaultPhrase
	}
	return strings.Join(parts, " ")
}
