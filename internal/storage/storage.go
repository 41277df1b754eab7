package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/forage"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// HerbStore persists herb reference data.
type HerbStore interface {
	PutHerb(ctx context.Context, herb domain.Herb) error
	GetHerb(ctx context.Context, id string) (domain.Herb, error)
	ListHerbs(ctx context.Context) ([]domain.Herb, error)
}

// RecipeStore persists recipe reference data.
type RecipeStore interface {
	PutRecipe(ctx context.Context, recipe domain.Recipe) error
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
}

// BiomeStore persists biome reference data with weighted herb tables.
type BiomeStore interface {
	PutBiome(ctx context.Context, biome domain.Biome) error
	GetBiome(ctx context.Context, id string) (domain.Biome, error)
	ListBiomes(ctx context.Context) ([]domain.Biome, error)
}

// InventoryStore reads a player's herb inventory. Mutations go through
// the Apply* outcome operations only.
type InventoryStore interface {
	ListInventory(ctx context.Context, playerID string) ([]domain.InventoryItem, error)
}

// ForageStateStore persists the per-player daily session budget.
// GetBudget returns ErrNotFound for players with no budget row yet.
type ForageStateStore interface {
	GetBudget(ctx context.Context, playerID string) (forage.Budget, error)
	PutBudget(ctx context.Context, playerID string, budget forage.Budget) error
}

// JournalStore reads the append-only foraging session journal, newest
// first. A limit of 0 means no limit.
type JournalStore interface {
	ListSessionResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error)
}

// BrewedItem is a crafted stack held by a player. Descriptions carries
// one resolved effect text per effect in the brew.
type BrewedItem struct {
	ID           string
	Name         string
	Output       domain.OutputType
	Descriptions []string
	Quantity     int
	CreatedAt    time.Time
}

// BrewedItemStore reads crafted items, newest first.
type BrewedItemStore interface {
	ListBrewedItems(ctx context.Context, playerID string) ([]BrewedItem, error)
}

// HerbConsumption is one inventory debit from a committed brew.
type HerbConsumption struct {
	HerbID   string
	Quantity int
}

// ForageOutcome is a resolved foraging run ready to commit: the journal
// entries, the herbs they yielded, and the post-run budget.
type ForageOutcome struct {
	Budget  forage.Budget
	Results []domain.SessionResult
}

// OutcomeStore commits engine outcomes. Each Apply call is atomic: on
// error no inventory, budget, or journal row changes.
type OutcomeStore interface {
	ApplyForageOutcome(ctx context.Context, playerID string, outcome ForageOutcome) error
	ApplyBrewOutcome(ctx context.Context, playerID string, consumed []HerbConsumption, produced BrewedItem) error
}

// Store aggregates every persistence interface the engine needs.
type Store interface {
	HerbStore
	RecipeStore
	BiomeStore
	InventoryStore
	ForageStateStore
	JournalStore
	BrewedItemStore
	OutcomeStore
}
