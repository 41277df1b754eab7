// Package sample implements weighted discrete sampling.
package sample

import (
	"math/rand"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
)

var (
	// ErrNoEntries indicates the sample table is empty.
	ErrNoEntries = apperrors.New(apperrors.CodeSampleNoEntries, "sample table is empty")
	// ErrInvalidWeights indicates no entry has a positive weight.
	ErrInvalidWeights = apperrors.New(apperrors.CodeSampleInvalidWeights, "sample table has no positive weights")
)

// Weighted pairs an item with its proportional selection weight.
type Weighted[T any] struct {
	Item   T
	Weight int
}

// Pick selects one entry with probability proportional to its weight.
//
// Entries with weight <= 0 are never selected; every entry with a
// positive weight has a nonzero selection probability. Pick draws with
// replacement: repeated calls against the same entries are independent,
// so one forage success can surface the same herb several times.
func Pick[T any](rng *rand.Rand, entries []Weighted[T]) (T, error) {
	var zero T
	if len(entries) == 0 {
		return zero, ErrNoEntries
	}

	total := 0
	for _, entry := range entries {
		if entry.Weight > 0 {
			total += entry.Weight
		}
	}
	if total <= 0 {
		return zero, ErrInvalidWeights
	}

	target := rng.Intn(total)
	for _, entry := range entries {
		if entry.Weight <= 0 {
			continue
		}
		target -= entry.Weight
		if target < 0 {
			return entry.Item, nil
		}
	}

	// Unreachable: target < total and every positive weight is consumed above.
	return entries[len(entries)-1].Item, nil
}
