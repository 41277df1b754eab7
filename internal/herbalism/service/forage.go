package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/forage"
	"github.com/louisbranch/verdant-engine/internal/random"
	"github.com/louisbranch/verdant-engine/internal/storage"
)

// ForageService runs foraging sessions for players and commits their
// outcomes.
type ForageService struct {
	store  storage.Store
	cfg    forage.Config
	newRng func() (*rand.Rand, error)
}

// NewForageService creates a foraging service over the given store.
func NewForageService(store storage.Store, cfg forage.Config) *ForageService {
	return &ForageService{
		store:  store,
		cfg:    cfg,
		newRng: random.NewRand,
	}
}

// Budget returns the player's current session budget. Players with no
// budget row yet get a fresh daily allowance.
func (s *ForageService) Budget(ctx context.Context, playerID string) (forage.Budget, error) {
	budget, err := s.store.GetBudget(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return forage.Budget{DailyMax: s.cfg.DailySessions}, nil
		}
		return forage.Budget{}, apperrors.Wrap(apperrors.CodeStorageFailure, "load forage budget", err)
	}
	return budget, nil
}

// RunSessions resolves an allocation of foraging sessions and commits
// the outcome. The whole run is all-or-nothing: the budget is debited
// once and the found herbs enter the inventory only when every session
// resolved and the commit succeeded.
func (s *ForageService) RunSessions(ctx context.Context, playerID string, allocations []forage.Allocation) ([]domain.SessionResult, error) {
	budget, err := s.Budget(ctx, playerID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, allocation := range allocations {
		total += allocation.Sessions
	}
	if total > budget.Remaining() {
		return nil, apperrors.WithMetadata(
			apperrors.CodeForageBudgetExceeded,
			fmt.Sprintf("allocated %d sessions with %d remaining", total, budget.Remaining()),
			map[string]string{"Remaining": strconv.Itoa(budget.Remaining())},
		)
	}

	biomes, err := s.store.ListBiomes(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "load biomes", err)
	}

	rng, err := s.newRng()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "seed generator", err)
	}

	results, err := forage.RunSessions(rng, s.cfg, biomes, allocations)
	if err != nil {
		return nil, err
	}

	// The debit lands exactly once, after the whole run resolved.
	if err := budget.Spend(total); err != nil {
		return nil, err
	}

	err = s.store.ApplyForageOutcome(ctx, playerID, storage.ForageOutcome{
		Budget:  budget,
		Results: results,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "commit forage outcome", err)
	}
	return results, nil
}

// LongRest restores the player's full daily session budget.
func (s *ForageService) LongRest(ctx context.Context, playerID string) (forage.Budget, error) {
	budget, err := s.Budget(ctx, playerID)
	if err != nil {
		return forage.Budget{}, err
	}
	budget.LongRest()
	if err := s.store.PutBudget(ctx, playerID, budget); err != nil {
		return forage.Budget{}, apperrors.Wrap(apperrors.CodeStorageFailure, "store forage budget", err)
	}
	return budget, nil
}

// Journal returns the player's most recent session results.
func (s *ForageService) Journal(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	results, err := s.store.ListSessionResults(ctx, playerID, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageFailure, "load forage journal", err)
	}
	return results, nil
}
