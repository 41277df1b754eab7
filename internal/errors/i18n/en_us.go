package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeBrewNoHerbsSelected       = "BREW_NO_HERBS_SELECTED"
	CodeBrewHerbCapExceeded       = "BREW_HERB_CAP_EXCEEDED"
	CodeBrewNoRecipesSelected     = "BREW_NO_RECIPES_SELECTED"
	CodeBrewNoEffects             = "BREW_NO_EFFECTS"
	CodeBrewMixedOutputTypes      = "BREW_MIXED_OUTPUT_TYPES"
	CodeBrewChoicesIncomplete     = "BREW_CHOICES_INCOMPLETE"
	CodeBrewInvalidTransition     = "BREW_INVALID_TRANSITION"
	CodeBrewInvalidBatchCount     = "BREW_INVALID_BATCH_COUNT"
	CodeBrewInsufficientElements  = "BREW_INSUFFICIENT_ELEMENTS"
	CodeBrewInsufficientInstances = "BREW_INSUFFICIENT_INSTANCES"
	CodePoolElementUnavailable    = "POOL_ELEMENT_UNAVAILABLE"
	CodeRecipeDuplicatePair       = "RECIPE_DUPLICATE_PAIR"
	CodeCatalogInvalid            = "CATALOG_INVALID"
	CodeForageBudgetExceeded      = "FORAGE_BUDGET_EXCEEDED"
	CodeForageNoAllocations       = "FORAGE_NO_ALLOCATIONS"
	CodeForageUnknownBiome        = "FORAGE_UNKNOWN_BIOME"
	CodeDiceMissing               = "DICE_MISSING"
	CodeDiceInvalidSpec           = "DICE_INVALID_SPEC"
	CodeSampleNoEntries           = "SAMPLE_NO_ENTRIES"
	CodeSampleInvalidWeights      = "SAMPLE_INVALID_WEIGHTS"
	CodeInventoryInsufficient     = "INVENTORY_INSUFFICIENT_QUANTITY"
	CodeNotFound                  = "NOT_FOUND"
	CodeStorageFailure            = "STORAGE_FAILURE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Brew workflow errors
		CodeBrewNoHerbsSelected:       "Select at least one herb before continuing",
		CodeBrewHerbCapExceeded:       "A single brew can use at most {{.Cap}} herbs ({{.Selected}} selected)",
		CodeBrewNoRecipesSelected:     "Select at least one recipe before continuing",
		CodeBrewNoEffects:             "Pair elements into at least one known effect before brewing",
		CodeBrewMixedOutputTypes:      "Cannot combine {{.TypeA}} and {{.TypeB}} effects in one brew",
		CodeBrewChoicesIncomplete:     "Resolve every effect choice before brewing",
		CodeBrewInvalidTransition:     "This action is not available in the current brewing step",
		CodeBrewInvalidBatchCount:     "Batch count must be at least 1",
		CodeBrewInsufficientElements:  "Not enough {{.Element}}: have {{.Have}}, need {{.Need}}",
		CodeBrewInsufficientInstances: "Need {{.Need}} separate herbs carrying {{.Element}}, only {{.Have}} selected",

		// Element pool errors
		CodePoolElementUnavailable: "No {{.Element}} remaining in the element pool",

		// Reference data errors
		CodeRecipeDuplicatePair: "Recipes {{.RecipeA}} and {{.RecipeB}} share the same element pair",
		CodeCatalogInvalid:      "The herbalism catalog contains invalid data",

		// Foraging errors
		CodeForageBudgetExceeded: "Not enough foraging sessions remaining ({{.Remaining}} left)",
		CodeForageNoAllocations:  "Allocate at least one foraging session",
		CodeForageUnknownBiome:   "Unknown biome: {{.Biome}}",

		// Dice/sampling errors
		CodeDiceMissing:          "At least one die must be specified",
		CodeDiceInvalidSpec:      "Dice must have positive sides and count",
		CodeSampleNoEntries:      "Cannot sample from an empty table",
		CodeSampleInvalidWeights: "Cannot sample from a table with no positive weights",

		// Inventory errors
		CodeInventoryInsufficient: "Not enough {{.Herb}} in inventory: have {{.Have}}, need {{.Need}}",

		// Storage errors
		CodeNotFound:       "The requested resource was not found",
		CodeStorageFailure: "A storage operation failed",
	},
}
