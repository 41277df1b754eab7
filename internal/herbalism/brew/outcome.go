package brew

import (
	"math/rand"

	"github.com/louisbranch/verdant-engine/internal/core/check"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/template"
)

// brewDie is the die rolled per brew unit.
const brewDie = 20

// RollOutcome records one brew unit's roll. Every individual roll is
// retained for display; the aggregate success count is a derived view,
// not the source of truth.
type RollOutcome struct {
	Die      int
	Modifier int
	Total    int
	Success  bool
}

// Outcome is the resolved result of a brew.
type Outcome struct {
	Rolls []RollOutcome
	// Output is the shared output type of the brewed effects.
	Output domain.OutputType
	// Effects are the paired effects the brew attempted to produce.
	Effects []domain.PairedEffect
	// Descriptions are the filled effect texts, computed once when at
	// least one unit succeeds. A batch's output is uniform in kind,
	// differing only in produced quantity.
	Descriptions []string
}

// Successes derives the number of successful units.
func (o *Outcome) Successes() int {
	count := 0
	for _, roll := range o.Rolls {
		if roll.Success {
			count++
		}
	}
	return count
}

// resolveOutcome rolls one die per unit against the difficulty. Units
// are independent: no carry-over, no reroll on failure. Failed rolls
// stay in the result; they are displayed, never hidden or retried.
func resolveOutcome(rng *rand.Rand, units int, cfg Config, effects []domain.PairedEffect, choices map[string]string) *Outcome {
	outcome := &Outcome{
		Rolls:   make([]RollOutcome, 0, units),
		Effects: effects,
	}
	if len(effects) > 0 {
		outcome.Output = effects[0].Recipe.Output
	}

	for i := 0; i < units; i++ {
		die := rng.Intn(brewDie) + 1
		total := die + cfg.Modifier
		outcome.Rolls = append(outcome.Rolls, RollOutcome{
			Die:      die,
			Modifier: cfg.Modifier,
			Total:    total,
			Success:  check.MeetsDifficulty(total, cfg.Difficulty),
		})
	}

	if outcome.Successes() > 0 {
		outcome.Descriptions = template.Describe(effects, choices)
	}

	return outcome
}
