// Package brew implements the brewing workflow state machine.
//
// A Workflow walks one player from herb or recipe selection to a rolled
// result. Guards are pure checks re-evaluated on every attempted
// transition; a failed guard returns a structured error and leaves the
// phase untouched. Callers surface the unmet guard to the player and
// retry after the input changes.
package brew

import (
	"fmt"
	"math/rand"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/pool"
	"github.com/louisbranch/verdant-engine/internal/herbalism/template"
)

// Config carries the ruleset tunables for brewing.
type Config struct {
	// HerbCap is the per-brew herb instance limit. In by-recipe mode
	// the effective cap scales with the batch count.
	HerbCap int
	// Difficulty is the DC each brew unit rolls against.
	Difficulty int
	// Modifier is the player's flat brewing bonus.
	Modifier int
}

// DefaultConfig returns the baseline ruleset values.
func DefaultConfig() Config {
	return Config{
		HerbCap:    6,
		Difficulty: 15,
		Modifier:   0,
	}
}

// Workflow is the brewing state machine for one player session.
// It is driven by user actions processed one at a time and holds no
// locks; a workflow instance must not be shared across goroutines.
type Workflow struct {
	cfg     Config
	recipes []domain.Recipe

	mode  Mode
	phase Phase

	herbs      []domain.HerbSelection
	pairs      []domain.ElementPair
	recipeSels []domain.RecipeSelection
	batchCount int
	choices    map[string]string
	outcome    *Outcome
}

// ErrInvalidTransition indicates the action is not available in the
// current phase.
var ErrInvalidTransition = apperrors.New(apperrors.CodeBrewInvalidTransition, "action not available in current phase")

// NewWorkflow creates a workflow in by-herbs mode at herb selection.
// The recipe table is immutable reference data shared by all guards.
func NewWorkflow(recipes []domain.Recipe, cfg Config) *Workflow {
	return &Workflow{
		cfg:        cfg,
		recipes:    recipes,
		mode:       ModeByHerbs,
		phase:      PhaseSelectHerbs,
		batchCount: 1,
		choices:    map[string]string{},
	}
}

// Phase returns the active phase.
func (w *Workflow) Phase() Phase { return w.phase }

// Mode returns the active brewing mode.
func (w *Workflow) Mode() Mode { return w.mode }

// BatchCount returns the configured batch size.
func (w *Workflow) BatchCount() int { return w.batchCount }

// Herbs returns the current herb selection.
func (w *Workflow) Herbs() []domain.HerbSelection { return w.herbs }

// Pairs returns the assigned element pairs.
func (w *Workflow) Pairs() []domain.ElementPair { return w.pairs }

// RecipeSelections returns the selected recipes in by-recipe mode.
func (w *Workflow) RecipeSelections() []domain.RecipeSelection { return w.recipeSels }

// Choices returns the resolved template choices.
func (w *Workflow) Choices() map[string]string { return w.choices }

// Outcome returns the brew outcome, or nil before resolution.
func (w *Workflow) Outcome() *Outcome { return w.outcome }

// SetMode switches brewing mode. Modes do not share partial progress:
// switching resets all selection state and re-enters the new mode's
// initial phase. Setting the current mode is a full reset too.
func (w *Workflow) SetMode(mode Mode) {
	w.mode = mode
	w.Reset()
}

// Reset clears all state and returns to the mode's initial phase.
func (w *Workflow) Reset() {
	w.phase = w.mode.initialPhase()
	w.herbs = nil
	w.pairs = nil
	w.recipeSels = nil
	w.batchCount = 1
	w.choices = map[string]string{}
	w.outcome = nil
}

// herbCap derives the effective herb instance cap for the mode. The
// by-recipe cap scales with batch count rather than being a separate
// constant.
func (w *Workflow) herbCap() int {
	if w.mode == ModeByRecipe {
		return w.cfg.HerbCap * w.batchCount
	}
	return w.cfg.HerbCap
}

// SetHerbs replaces the herb selection. Available in the herb selection
// phase of either mode. Selections above the derived cap are rejected
// at the point of selection, not deferred to the proceed guard.
func (w *Workflow) SetHerbs(herbs []domain.HerbSelection) error {
	if w.phase != PhaseSelectHerbs && w.phase != PhaseSelectHerbsForRecipes {
		return ErrInvalidTransition
	}
	kept := make([]domain.HerbSelection, 0, len(herbs))
	for _, selection := range herbs {
		if selection.Instances > 0 {
			kept = append(kept, selection)
		}
	}
	if err := validateHerbCap(kept, w.herbCap()); err != nil {
		return err
	}
	w.herbs = kept
	return nil
}

// ElementPool derives the remaining element pool from the current herb
// selection minus the assigned pairs. The pool is recomputed on every
// call; it is never stored independently of the selection state.
func (w *Workflow) ElementPool() pool.Pool {
	derived := pool.Derive(w.herbs)
	for _, pair := range w.pairs {
		// Replaying an assigned pair cannot fail: AssignPair validated
		// it against this same derivation.
		_ = derived.Assign(pair.A, pair.B)
	}
	return derived
}

// Effects derives the paired effects for the active mode.
func (w *Workflow) Effects() []domain.PairedEffect {
	if w.mode == ModeByRecipe {
		effects := make([]domain.PairedEffect, 0, len(w.recipeSels))
		for _, selection := range w.recipeSels {
			effects = append(effects, domain.PairedEffect{Recipe: selection.Recipe, Count: selection.Count})
		}
		return effects
	}
	return pool.AggregateEffects(w.recipes, w.pairs)
}

// Variables derives the distinct template variables across the active
// effects.
func (w *Workflow) Variables() []template.Variable {
	return template.EffectVariables(w.Effects())
}

// ProceedToPairing advances select-herbs to pair-elements.
// Guard: at least one herb instance within the cap.
func (w *Workflow) ProceedToPairing() error {
	if w.phase != PhaseSelectHerbs {
		return ErrInvalidTransition
	}
	if domain.TotalInstances(w.herbs) == 0 {
		return apperrors.New(apperrors.CodeBrewNoHerbsSelected, "no herbs selected")
	}
	if err := validateHerbCap(w.herbs, w.herbCap()); err != nil {
		return err
	}
	w.phase = PhasePairElements
	return nil
}

// AssignPair consumes two elements from the remaining pool and records
// the pair. Refused when either element is exhausted.
func (w *Workflow) AssignPair(a, b domain.Element) error {
	if w.phase != PhasePairElements {
		return ErrInvalidTransition
	}
	remaining := w.ElementPool()
	if err := remaining.Assign(a, b); err != nil {
		return err
	}
	w.pairs = append(w.pairs, domain.ElementPair{A: a, B: b})
	return nil
}

// RemovePair releases a previously assigned pair back to the pool.
func (w *Workflow) RemovePair(index int) error {
	if w.phase != PhasePairElements {
		return ErrInvalidTransition
	}
	if index < 0 || index >= len(w.pairs) {
		return apperrors.New(apperrors.CodeBrewInvalidTransition, fmt.Sprintf("no assigned pair at index %d", index))
	}
	w.pairs = append(w.pairs[:index], w.pairs[index+1:]...)
	return nil
}

// ProceedFromPairing advances pair-elements toward brewing.
// Guard: at least one resolved effect and a single output type.
// Enters make-choices only when unresolved placeholders exist.
func (w *Workflow) ProceedFromPairing() error {
	if w.phase != PhasePairElements {
		return ErrInvalidTransition
	}
	if err := w.validateEffects(); err != nil {
		return err
	}
	w.phase = w.choicePhaseOrBrewing()
	return nil
}

// SetRecipes replaces the recipe selection in by-recipe mode.
func (w *Workflow) SetRecipes(selections []domain.RecipeSelection) error {
	if w.phase != PhaseSelectRecipes {
		return ErrInvalidTransition
	}
	kept := make([]domain.RecipeSelection, 0, len(selections))
	for _, selection := range selections {
		if selection.Count > 0 {
			kept = append(kept, selection)
		}
	}
	w.recipeSels = kept
	return nil
}

// SetBatchCount sets how many brews the batch produces per success
// unit. Only adjustable while selecting recipes.
func (w *Workflow) SetBatchCount(count int) error {
	if w.phase != PhaseSelectRecipes {
		return ErrInvalidTransition
	}
	if count < 1 {
		return apperrors.New(apperrors.CodeBrewInvalidBatchCount, "batch count must be at least 1")
	}
	w.batchCount = count
	return nil
}

// ProceedToHerbsForRecipes advances select-recipes to herb gathering.
// Guard: at least one recipe selected with a single output type.
func (w *Workflow) ProceedToHerbsForRecipes() error {
	if w.phase != PhaseSelectRecipes {
		return ErrInvalidTransition
	}
	if len(w.recipeSels) == 0 {
		return apperrors.New(apperrors.CodeBrewNoRecipesSelected, "no recipes selected")
	}
	if err := w.validateEffects(); err != nil {
		return err
	}
	w.phase = PhaseSelectHerbsForRecipes
	return nil
}

// ProceedFromHerbsForRecipes advances herb gathering toward brewing.
// Guards: the selection stays within the batch-scaled cap, supplies
// every required element, and spreads across enough distinct instances
// for the batch.
func (w *Workflow) ProceedFromHerbsForRecipes() error {
	if w.phase != PhaseSelectHerbsForRecipes {
		return ErrInvalidTransition
	}
	if domain.TotalInstances(w.herbs) == 0 {
		return apperrors.New(apperrors.CodeBrewNoHerbsSelected, "no herbs selected")
	}
	if err := validateHerbCap(w.herbs, w.herbCap()); err != nil {
		return err
	}
	required := RequiredElements(w.recipeSels, w.batchCount)
	if err := validateElementSupply(w.herbs, required); err != nil {
		return err
	}
	if err := validateInstanceSpread(w.herbs, required, w.batchCount); err != nil {
		return err
	}
	w.phase = w.choicePhaseOrBrewing()
	return nil
}

// MakeChoice records one resolved template choice. Enumerated choices
// must pick a listed option.
func (w *Workflow) MakeChoice(name, value string) error {
	if w.phase != PhaseMakeChoices {
		return ErrInvalidTransition
	}
	for _, variable := range w.Variables() {
		if variable.Name != name {
			continue
		}
		if len(variable.Options) > 0 && !containsOption(variable.Options, value) {
			return apperrors.WithMetadata(
				apperrors.CodeBrewChoicesIncomplete,
				fmt.Sprintf("%q is not an option for choice %q", value, name),
				map[string]string{"Choice": name},
			)
		}
		w.choices[name] = value
		return nil
	}
	return apperrors.WithMetadata(
		apperrors.CodeBrewChoicesIncomplete,
		fmt.Sprintf("unknown choice %q", name),
		map[string]string{"Choice": name},
	)
}

// ProceedToBrewing advances make-choices to brewing.
// Guard: every template variable has a resolved value.
func (w *Workflow) ProceedToBrewing() error {
	if w.phase != PhaseMakeChoices {
		return ErrInvalidTransition
	}
	if !template.AllChoicesMade(w.Variables(), w.choices) {
		return apperrors.New(apperrors.CodeBrewChoicesIncomplete, "unresolved template choices remain")
	}
	w.phase = PhaseBrewing
	return nil
}

// Brew resolves the brewing roll and enters the terminal phase.
// One unit is rolled per batch count; each unit succeeds or fails
// independently against the configured difficulty.
func (w *Workflow) Brew(rng *rand.Rand) (*Outcome, error) {
	if w.phase != PhaseBrewing {
		return nil, ErrInvalidTransition
	}

	units := 1
	if w.mode == ModeByRecipe {
		units = w.batchCount
	}

	outcome := resolveOutcome(rng, units, w.cfg, w.Effects(), w.choices)
	w.outcome = outcome

	if units > 1 {
		w.phase = PhaseBatchResult
	} else {
		w.phase = PhaseResult
	}
	return outcome, nil
}

// Back performs one backward transition, clearing the state scoped to
// the phase being exited. Pairs are cleared when leaving pair-elements;
// choices are cleared when leaving make-choices. Terminal phases do not
// go back; use Reset.
func (w *Workflow) Back() error {
	switch w.phase {
	case PhasePairElements:
		w.pairs = nil
		w.phase = PhaseSelectHerbs
	case PhaseSelectHerbsForRecipes:
		w.herbs = nil
		w.phase = PhaseSelectRecipes
	case PhaseMakeChoices:
		w.choices = map[string]string{}
		w.phase = w.prePairingPhase()
	case PhaseBrewing:
		if len(w.Variables()) > 0 {
			w.phase = PhaseMakeChoices
		} else {
			w.phase = w.prePairingPhase()
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// prePairingPhase returns the phase preceding make-choices for the
// active mode.
func (w *Workflow) prePairingPhase() Phase {
	if w.mode == ModeByRecipe {
		return PhaseSelectHerbsForRecipes
	}
	return PhasePairElements
}

// choicePhaseOrBrewing returns make-choices when unresolved
// placeholders exist, otherwise brewing.
func (w *Workflow) choicePhaseOrBrewing() Phase {
	if len(w.Variables()) > 0 {
		return PhaseMakeChoices
	}
	return PhaseBrewing
}

// validateEffects checks the shared proceed guard: at least one effect,
// all sharing one output type.
func (w *Workflow) validateEffects() error {
	effects := w.Effects()
	if len(effects) == 0 {
		return apperrors.New(apperrors.CodeBrewNoEffects, "no paired effects")
	}
	if combinable := pool.CanCombineEffects(effects); !combinable.Valid {
		return apperrors.WithMetadata(
			apperrors.CodeBrewMixedOutputTypes,
			fmt.Sprintf("cannot combine %s and %s effects", combinable.ConflictA, combinable.ConflictB),
			map[string]string{
				"TypeA": combinable.ConflictA.String(),
				"TypeB": combinable.ConflictB.String(),
			},
		)
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
