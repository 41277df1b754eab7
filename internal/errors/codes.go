// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Brew workflow errors
	CodeBrewNoHerbsSelected       Code = "BREW_NO_HERBS_SELECTED"
	CodeBrewHerbCapExceeded       Code = "BREW_HERB_CAP_EXCEEDED"
	CodeBrewNoRecipesSelected     Code = "BREW_NO_RECIPES_SELECTED"
	CodeBrewNoEffects             Code = "BREW_NO_EFFECTS"
	CodeBrewMixedOutputTypes      Code = "BREW_MIXED_OUTPUT_TYPES"
	CodeBrewChoicesIncomplete     Code = "BREW_CHOICES_INCOMPLETE"
	CodeBrewInvalidTransition     Code = "BREW_INVALID_TRANSITION"
	CodeBrewInvalidBatchCount     Code = "BREW_INVALID_BATCH_COUNT"
	CodeBrewInsufficientElements  Code = "BREW_INSUFFICIENT_ELEMENTS"
	CodeBrewInsufficientInstances Code = "BREW_INSUFFICIENT_INSTANCES"

	// Element pool errors
	CodePoolElementUnavailable Code = "POOL_ELEMENT_UNAVAILABLE"

	// Reference data errors
	CodeRecipeDuplicatePair Code = "RECIPE_DUPLICATE_PAIR"
	CodeCatalogInvalid      Code = "CATALOG_INVALID"

	// Foraging errors
	CodeForageBudgetExceeded Code = "FORAGE_BUDGET_EXCEEDED"
	CodeForageNoAllocations  Code = "FORAGE_NO_ALLOCATIONS"
	CodeForageUnknownBiome   Code = "FORAGE_UNKNOWN_BIOME"

	// Dice/sampling errors
	CodeDiceMissing          Code = "DICE_MISSING"
	CodeDiceInvalidSpec      Code = "DICE_INVALID_SPEC"
	CodeSampleNoEntries      Code = "SAMPLE_NO_ENTRIES"
	CodeSampleInvalidWeights Code = "SAMPLE_INVALID_WEIGHTS"

	// Inventory errors
	CodeInventoryInsufficient Code = "INVENTORY_INSUFFICIENT_QUANTITY"

	// Storage errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeSampleNoEntries,
		CodeSampleInvalidWeights,
		CodeForageNoAllocations,
		CodeForageUnknownBiome,
		CodeBrewInvalidBatchCount:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeBrewNoHerbsSelected,
		CodeBrewHerbCapExceeded,
		CodeBrewNoRecipesSelected,
		CodeBrewNoEffects,
		CodeBrewMixedOutputTypes,
		CodeBrewChoicesIncomplete,
		CodeBrewInvalidTransition,
		CodeBrewInsufficientElements,
		CodeBrewInsufficientInstances,
		CodePoolElementUnavailable,
		CodeForageBudgetExceeded,
		CodeInventoryInsufficient:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
