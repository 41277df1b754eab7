package pool

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

func recipe(id string, output domain.OutputType, a, b domain.Element) domain.Recipe {
	return domain.Recipe{
		ID:     id,
		Name:   id,
		Output: output,
		Pair:   domain.ElementPair{A: a, B: b},
	}
}

var testRecipes = []domain.Recipe{
	recipe("steam-tonic", domain.OutputElixir, "fire", "water"),
	recipe("cinder-bomb", domain.OutputBomb, "fire", "fire"),
	recipe("mudsalve", domain.OutputElixir, "water", "earth"),
}

func TestFindRecipeForPair(t *testing.T) {
	tests := []struct {
		name   string
		a, b   domain.Element
		wantID string
		found  bool
	}{
		{"declared order", "fire", "water", "steam-tonic", true},
		{"reversed order", "water", "fire", "steam-tonic", true},
		{"doubled element", "fire", "fire", "cinder-bomb", true},
		{"no match", "air", "earth", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindRecipeForPair(testRecipes, tt.a, tt.b)
			if found != tt.found {
				t.Fatalf("FindRecipeForPair(%q, %q) found = %v, want %v", tt.a, tt.b, found, tt.found)
			}
			if found && got.ID != tt.wantID {
				t.Errorf("FindRecipeForPair(%q, %q) = %s, want %s", tt.a, tt.b, got.ID, tt.wantID)
			}
		})
	}
}

func TestValidateRecipeTable(t *testing.T) {
	if err := ValidateRecipeTable(testRecipes); err != nil {
		t.Fatalf("ValidateRecipeTable() on valid table error = %v", err)
	}

	corrupt := append([]domain.Recipe{}, testRecipes...)
	corrupt = append(corrupt, recipe("steam-draught", domain.OutputOil, "water", "fire"))

	err := ValidateRecipeTable(corrupt)
	if err == nil {
		t.Fatal("ValidateRecipeTable() on duplicate pair = nil, want error")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeRecipeDuplicatePair {
		t.Errorf("ValidateRecipeTable() error = %v, want code %s", err, apperrors.CodeRecipeDuplicatePair)
	}
}

func TestAggregateEffects(t *testing.T) {
	pairs := []domain.ElementPair{
		{A: "fire", B: "water"},
		{A: "water", B: "fire"}, // same recipe, reversed
		{A: "earth", B: "water"},
		{A: "air", B: "air"}, // inert: silently dropped
	}

	effects := AggregateEffects(testRecipes, pairs)

	if len(effects) != 2 {
		t.Fatalf("AggregateEffects() returned %d effects, want 2", len(effects))
	}
	if effects[0].Recipe.ID != "steam-tonic" || effects[0].Count != 2 {
		t.Errorf("first effect = (%s, %d), want (steam-tonic, 2)", effects[0].Recipe.ID, effects[0].Count)
	}
	if effects[1].Recipe.ID != "mudsalve" || effects[1].Count != 1 {
		t.Errorf("second effect = (%s, %d), want (mudsalve, 1)", effects[1].Recipe.ID, effects[1].Count)
	}
}

func TestAggregateEffectsOrderIndependent(t *testing.T) {
	forward := []domain.ElementPair{
		{A: "fire", B: "water"},
		{A: "water", B: "earth"},
	}
	reverse := []domain.ElementPair{
		{A: "water", B: "earth"},
		{A: "fire", B: "water"},
	}

	countByRecipe := func(effects []domain.PairedEffect) map[string]int {
		counts := make(map[string]int)
		for _, effect := range effects {
			counts[effect.Recipe.ID] = effect.Count
		}
		return counts
	}

	a := countByRecipe(AggregateEffects(testRecipes, forward))
	b := countByRecipe(AggregateEffects(testRecipes, reverse))

	if len(a) != len(b) {
		t.Fatalf("effect multisets differ: %v vs %v", a, b)
	}
	for id, count := range a {
		if b[id] != count {
			t.Errorf("recipe %s count %d vs %d depending on pair order", id, count, b[id])
		}
	}
}

func TestCanCombineEffects(t *testing.T) {
	elixir := domain.PairedEffect{Recipe: recipe("r1", domain.OutputElixir, "a", "b"), Count: 1}
	elixir2 := domain.PairedEffect{Recipe: recipe("r2", domain.OutputElixir, "c", "d"), Count: 2}
	bomb := domain.PairedEffect{Recipe: recipe("r3", domain.OutputBomb, "e", "f"), Count: 1}

	tests := []struct {
		name    string
		effects []domain.PairedEffect
		valid   bool
	}{
		{"empty is trivially valid", nil, true},
		{"single type", []domain.PairedEffect{elixir, elixir2}, true},
		{"mixed types", []domain.PairedEffect{elixir, bomb}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanCombineEffects(tt.effects)
			if got.Valid != tt.valid {
				t.Errorf("CanCombineEffects() valid = %v, want %v", got.Valid, tt.valid)
			}
		})
	}
}

func TestCanCombineEffectsReportsConflict(t *testing.T) {
	effects := []domain.PairedEffect{
		{Recipe: recipe("r1", domain.OutputOil, "a", "b"), Count: 1},
		{Recipe: recipe("r2", domain.OutputBomb, "c", "d"), Count: 1},
	}

	got := CanCombineEffects(effects)
	if got.Valid {
		t.Fatal("CanCombineEffects() = valid, want invalid")
	}
	if got.ConflictA != domain.OutputOil || got.ConflictB != domain.OutputBomb {
		t.Errorf("conflict = (%s, %s), want (oil, bomb)", got.ConflictA, got.ConflictB)
	}
}
