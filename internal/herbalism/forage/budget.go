// Package forage implements foraging session allocation and resolution.
package forage

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/verdant-engine/internal/core/dice"
	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
)

// Config carries the ruleset tunables for foraging.
type Config struct {
	// Difficulty is the DC each session rolls against.
	Difficulty int
	// Modifier is the player's flat foraging bonus.
	Modifier int
	// DailySessions is the budget replenished by a long rest.
	DailySessions int
	// QuantityDice is rolled once per successful session to decide how
	// many herbs the session yields.
	QuantityDice dice.Spec
}

// DefaultConfig returns the baseline ruleset values.
func DefaultConfig() Config {
	return Config{
		Difficulty:    15,
		Modifier:      0,
		DailySessions: 4,
		QuantityDice:  dice.Spec{Sides: 4, Count: 1},
	}
}

// ErrBudgetExceeded indicates an allocation or debit beyond the
// remaining session budget.
var ErrBudgetExceeded = apperrors.New(apperrors.CodeForageBudgetExceeded, "not enough foraging sessions remaining")

// Budget tracks the daily foraging session allowance.
type Budget struct {
	DailyMax  int
	UsedToday int
}

// Remaining returns the sessions still available today.
func (b Budget) Remaining() int {
	return max(0, b.DailyMax-b.UsedToday)
}

// Spend debits sessions from the budget. The full run's total is
// debited exactly once, after resolution succeeds, never per session.
func (b *Budget) Spend(sessions int) error {
	if sessions > b.Remaining() {
		return apperrors.WithMetadata(
			apperrors.CodeForageBudgetExceeded,
			fmt.Sprintf("spend %d sessions with %d remaining", sessions, b.Remaining()),
			map[string]string{"Remaining": strconv.Itoa(b.Remaining())},
		)
	}
	b.UsedToday += sessions
	return nil
}

// LongRest resets the daily usage. Nothing else replenishes the budget.
func (b *Budget) LongRest() {
	b.UsedToday = 0
}
