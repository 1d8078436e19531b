// Package similarity holds the static category closeness table used by the
// scorer. The table is configuration data: loaded once, validated for
// symmetry, never mutated.
package similarity

import (
	"fmt"

	"github.com/marketkit/shopgraph/internal/domain"
)

// Closeness is the category relation strength between two categories.
type Closeness int

const (
	// None means the categories are unrelated.
	None Closeness = iota
	// Similar means the categories are declared related in the table.
	Similar
	// Same means the categories are identical.
	Same
)

// Weight returns the scoring multiplier for the closeness level.
func (c Closeness) Weight() float64 {
	switch c {
	case Same:
		return 1.0
	case Similar:
		return 0.7
	default:
		return 0.0
	}
}

type pair struct{ a, b string }

func orderedPair(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// Table is a symmetric relation over category names.
type Table struct {
	pairs map[pair]bool
}

// NewTable builds a Table from a category → related-categories mapping.
// Every declared relation must appear in both directions; an asymmetric
// entry is a configuration error.
func NewTable(related map[string][]string) (*Table, error) {
	pairs := make(map[pair]bool)
	for cat, others := range related {
		if cat == "" {
			return nil, fmt.Errorf("%w: empty category in similarity table", domain.ErrInvalidConfig)
		}
		for _, other := range others {
			if other == "" {
				return nil, fmt.Errorf("%w: empty related category for %q", domain.ErrInvalidConfig, cat)
			}
			if other == cat {
				return nil, fmt.Errorf("%w: category %q declared similar to itself", domain.ErrInvalidConfig, cat)
			}
			pairs[orderedPair(cat, other)] = true
		}
	}

	// Symmetry check: each pair must be declared from both sides.
	for cat, others := range related {
		for _, other := range others {
			if !contains(related[other], cat) {
				return nil, fmt.Errorf(
					"%w: asymmetric similarity entry %q -> %q (missing reverse)",
					domain.ErrInvalidConfig, cat, other,
				)
			}
		}
	}

	return &Table{pairs: pairs}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Closeness returns the relation strength between two category names.
// Identical categories always yield Same.
func (t *Table) Closeness(a, b string) Closeness {
	if a == b {
		return Same
	}
	if t.pairs[orderedPair(a, b)] {
		return Similar
	}
	return None
}

// Len returns the number of declared relations.
func (t *Table) Len() int { return len(t.pairs) }
