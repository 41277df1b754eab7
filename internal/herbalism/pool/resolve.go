package pool

import (
	"fmt"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

// FindRecipeForPair returns the recipe whose required pair matches
// {a, b} as a set. The lookup is order-independent. A missing match is
// a normal outcome (false), not an error: players may pair inert
// element combinations on purpose.
func FindRecipeForPair(recipes []domain.Recipe, a, b domain.Element) (domain.Recipe, bool) {
	for _, recipe := range recipes {
		if recipe.Pair.Matches(a, b) {
			return recipe, true
		}
	}
	return domain.Recipe{}, false
}

// ValidateRecipeTable checks that no two recipes claim the same
// unordered element pair. A duplicate is corrupt reference data, not a
// runtime branch: exactly one recipe may match a given pair.
func ValidateRecipeTable(recipes []domain.Recipe) error {
	for i, first := range recipes {
		for _, second := range recipes[i+1:] {
			if first.Pair.Matches(second.Pair.A, second.Pair.B) {
				return apperrors.WithMetadata(
					apperrors.CodeRecipeDuplicatePair,
					fmt.Sprintf("recipes %s and %s share element pair {%s, %s}", first.ID, second.ID, first.Pair.A, first.Pair.B),
					map[string]string{"RecipeA": first.Name, "RecipeB": second.Name},
				)
			}
		}
	}
	return nil
}

// AggregateEffects folds assigned pairs into paired effects by recipe
// identity. Pairing the same two elements twice yields one effect with
// Count 2. Pairs matching no recipe are dropped from the effect list;
// they consume pool elements but produce nothing.
//
// Aggregation is order-independent up to effect ordering: effects
// appear in order of each recipe's first matching pair.
func AggregateEffects(recipes []domain.Recipe, pairs []domain.ElementPair) []domain.PairedEffect {
	var effects []domain.PairedEffect
	index := make(map[string]int)

	for _, pair := range pairs {
		recipe, ok := FindRecipeForPair(recipes, pair.A, pair.B)
		if !ok {
			continue
		}
		if i, seen := index[recipe.ID]; seen {
			effects[i].Count++
			continue
		}
		index[recipe.ID] = len(effects)
		effects = append(effects, domain.PairedEffect{Recipe: recipe, Count: 1})
	}

	return effects
}

// Combinable is the outcome of validating a set of paired effects.
type Combinable struct {
	Valid bool
	// ConflictA and ConflictB identify the clashing output types when
	// Valid is false.
	ConflictA domain.OutputType
	ConflictB domain.OutputType
}

// CanCombineEffects checks that all effects share one output type.
// Zero effects are trivially valid, but callers must still treat the
// empty case as not ready to proceed. Mixing output types (an elixir
// with a bomb, say) is the key balance rule of the brewing system.
func CanCombineEffects(effects []domain.PairedEffect) Combinable {
	if len(effects) == 0 {
		return Combinable{Valid: true}
	}

	first := effects[0].Recipe.Output
	for _, effect := range effects[1:] {
		if effect.Recipe.Output != first {
			return Combinable{
				Valid:     false,
				ConflictA: first,
				ConflictB: effect.Recipe.Output,
			}
		}
	}
	return Combinable{Valid: true}
}
