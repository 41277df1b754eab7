// Package pool derives element pools from herb selections and resolves
// element pairs into recipe effects.
package pool

import (
	"fmt"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

// ErrElementUnavailable indicates an assignment would drive a pool
// entry below zero.
var ErrElementUnavailable = apperrors.New(apperrors.CodePoolElementUnavailable, "element not available in pool")

// Pool maps elemental tags to their remaining available counts.
// It is derived from the current herb selection and is never persisted;
// callers recompute it whenever the selection changes.
type Pool struct {
	counts map[domain.Element]int
}

// Derive computes the element pool for a selection. Each herb instance
// contributes once per entry in its own element multiset: one instance
// of a herb tagged [fire, fire] adds 2 to fire.
func Derive(selections []domain.HerbSelection) Pool {
	counts := make(map[domain.Element]int)
	for _, selection := range selections {
		for _, element := range selection.Herb.Elements {
			counts[element] += selection.Instances
		}
	}
	return Pool{counts: counts}
}

// Count returns the remaining count for an element.
func (p Pool) Count(element domain.Element) int {
	return p.counts[element]
}

// Total returns the sum of all remaining counts.
func (p Pool) Total() int {
	total := 0
	for _, count := range p.counts {
		total += count
	}
	return total
}

// Remaining returns the remaining counts, omitting exhausted entries.
func (p Pool) Remaining() map[domain.Element]int {
	remaining := make(map[domain.Element]int, len(p.counts))
	for element, count := range p.counts {
		if count > 0 {
			remaining[element] = count
		}
	}
	return remaining
}

// Assign consumes one of each element from the pool. Assigning the same
// element to both slots requires two remaining. On failure the pool is
// untouched and the caller keeps its assigned-pairs list as-is.
func (p *Pool) Assign(a, b domain.Element) error {
	need := map[domain.Element]int{a: 1}
	need[b]++

	for element, count := range need {
		if p.counts[element] < count {
			return apperrors.WithMetadata(
				apperrors.CodePoolElementUnavailable,
				fmt.Sprintf("element %s not available: have %d, need %d", element, p.counts[element], count),
				map[string]string{"Element": string(element)},
			)
		}
	}

	p.counts[a]--
	p.counts[b]--
	return nil
}

// Release returns one of each element to the pool, undoing an Assign.
func (p *Pool) Release(a, b domain.Element) {
	if p.counts == nil {
		p.counts = make(map[domain.Element]int)
	}
	p.counts[a]++
	p.counts[b]++
}
