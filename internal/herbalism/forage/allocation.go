package forage

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
)

// Allocation assigns a number of sessions to one biome.
type Allocation struct {
	BiomeID  string
	Sessions int
}

// Allocator builds a session allocation against a fixed budget.
// Biomes keep the order of their first increment so resolution and
// replay are deterministic.
type Allocator struct {
	remaining   int
	allocations []Allocation
	index       map[string]int
}

// NewAllocator creates an allocator for the remaining session budget.
func NewAllocator(remaining int) *Allocator {
	return &Allocator{
		remaining: remaining,
		index:     map[string]int{},
	}
}

// Total returns the sessions allocated so far.
func (a *Allocator) Total() int {
	total := 0
	for _, allocation := range a.allocations {
		total += allocation.Sessions
	}
	return total
}

// Increment adds one session to a biome. Exceeding the remaining
// budget is rejected here, at the point of increment, rather than
// deferred to submission.
func (a *Allocator) Increment(biomeID string) error {
	if a.Total()+1 > a.remaining {
		return apperrors.WithMetadata(
			apperrors.CodeForageBudgetExceeded,
			fmt.Sprintf("allocation would exceed %d remaining sessions", a.remaining),
			map[string]string{"Remaining": strconv.Itoa(a.remaining)},
		)
	}
	if i, ok := a.index[biomeID]; ok {
		a.allocations[i].Sessions++
		return nil
	}
	a.index[biomeID] = len(a.allocations)
	a.allocations = append(a.allocations, Allocation{BiomeID: biomeID, Sessions: 1})
	return nil
}

// Decrement removes one session from a biome. Biomes at zero keep
// their position so re-incrementing preserves the original order.
func (a *Allocator) Decrement(biomeID string) {
	if i, ok := a.index[biomeID]; ok && a.allocations[i].Sessions > 0 {
		a.allocations[i].Sessions--
	}
}

// Allocations returns the non-empty allocations in stable order.
func (a *Allocator) Allocations() []Allocation {
	result := make([]Allocation, 0, len(a.allocations))
	for _, allocation := range a.allocations {
		if allocation.Sessions > 0 {
			result = append(result, allocation)
		}
	}
	return result
}
