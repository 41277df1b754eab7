package service

import (
	"context"
	"math/rand"
	"strings"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/brew"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/pool"
	"github.com/louisbranch/verdant-engine/internal/random"
	"github.com/louisbranch/verdant-engine/internal/storage"
)

// BrewService starts brewing workflows and commits their outcomes.
type BrewService struct {
	store  storage.Store
	cfg    brew.Config
	newRng func() (*rand.Rand, error)
}

// NewBrewService creates a brewing service over the given store.
func NewBrewService(store storage.Store, cfg brew.Config) *BrewService {
	return &BrewService{
		store:  store,
		cfg:    cfg,
		newRng: random.NewRand,
	}
}

// StartWorkflow loads and validates the recipe table and returns a
// fresh workflow. The caller drives the workflow's phases directly and
// hands it back to Resolve and Commit.
func (s *BrewService) StartWorkflow(ctx context.Context) (*brew.Workflow, error) {
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "load recipes", err)
	}
	if err := pool.ValidateRecipeTable(recipes); err != nil {
		return nil, err
	}
	return brew.NewWorkflow(recipes, s.cfg), nil
}

// Inventory returns the player's herbs available for selection.
func (s *BrewService) Inventory(ctx context.Context, playerID string) ([]domain.InventoryItem, error) {
	items, err := s.store.ListInventory(ctx, playerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "load inventory", err)
	}
	return items, nil
}

// Resolve rolls the brew with a fresh seeded generator.
func (s *BrewService) Resolve(w *brew.Workflow) (*brew.Outcome, error) {
	rng, err := s.newRng()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "seed generator", err)
	}
	return w.Brew(rng)
}

// Commit applies a resolved workflow to the player's inventory: the
// selected herbs are consumed and a successful brew's product is
// recorded, in one transaction. Failed brews still consume their herbs.
func (s *BrewService) Commit(ctx context.Context, playerID string, w *brew.Workflow) error {
	outcome := w.Outcome()
	if outcome == nil {
		return brew.ErrInvalidTransition
	}

	consumed := make([]storage.HerbConsumption, 0, len(w.Herbs()))
	for _, selection := range w.Herbs() {
		consumed = append(consumed, storage.HerbConsumption{
			HerbID:   selection.Herb.ID,
			Quantity: selection.Instances,
		})
	}

	produced := storage.BrewedItem{
		Name:         brewName(outcome.Effects, outcome.Output),
		Output:       outcome.Output,
		Descriptions: outcome.Descriptions,
		Quantity:     outcome.Successes(),
	}

	if err := s.store.ApplyBrewOutcome(ctx, playerID, consumed, produced); err != nil {
		if apperrors.IsCode(err, apperrors.CodeInventoryInsufficient) {
			return err
		}
		return apperrors.Wrap(apperrors.CodeStorageFailure, "commit brew outcome", err)
	}
	return nil
}

// Crafted returns the player's brewed items, newest first.
func (s *BrewService) Crafted(ctx context.Context, playerID string) ([]storage.BrewedItem, error) {
	items, err := s.store.ListBrewedItems(ctx, playerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "load brewed items", err)
	}
	return items, nil
}

// brewName names the product after its single recipe, or joins the
// recipe names for a combined brew.
func brewName(effects []domain.PairedEffect, output domain.OutputType) string {
	if len(effects) == 1 {
		return effects[0].Recipe.Name
	}
	names := make([]string, 0, len(effects))
	for _, effect := range effects {
		names = append(names, effect.Recipe.Name)
	}
	if len(names) == 0 {
		return output.String()
	}
	return strings.Join(names, " / ")
}
