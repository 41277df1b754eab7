package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/brew"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/forage"
	"github.com/louisbranch/verdant-engine/internal/storage"
)

// scriptedSource feeds predetermined values to rand.Rand so tests can
// pin exact die results. Each queued value v becomes the next Intn
// result as long as v is below the requested bound.
type scriptedSource struct {
	values []int64
	next   int
}

func (s *scriptedSource) Int63() int64 {
	value := s.values[s.next%len(s.values)]
	s.next++
	return value << 32
}

func (s *scriptedSource) Seed(int64) {}

func scriptedRng(values ...int64) func() (*rand.Rand, error) {
	return func() (*rand.Rand, error) {
		return rand.New(&scriptedSource{values: values}), nil
	}
}

// fakeStore is an in-memory storage.Store recording commit calls.
type fakeStore struct {
	herbs     map[string]domain.Herb
	recipes   []domain.Recipe
	biomes    []domain.Biome
	inventory map[string]map[string]int
	budgets   map[string]forage.Budget
	journal   map[string][]domain.SessionResult
	brewed    map[string][]storage.BrewedItem

	listBiomesErr error

	forageCommits int
	lastOutcome   storage.ForageOutcome
	brewCommits   int
	lastConsumed  []storage.HerbConsumption
	lastProduced  storage.BrewedItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		herbs:     map[string]domain.Herb{},
		inventory: map[string]map[string]int{},
		budgets:   map[string]forage.Budget{},
		journal:   map[string][]domain.SessionResult{},
		brewed:    map[string][]storage.BrewedItem{},
	}
}

func (f *fakeStore) PutHerb(_ context.Context, herb domain.Herb) error {
	f.herbs[herb.ID] = herb
	return nil
}

func (f *fakeStore) GetHerb(_ context.Context, id string) (domain.Herb, error) {
	herb, ok := f.herbs[id]
	if !ok {
		return domain.Herb{}, storage.ErrNotFound
	}
	return herb, nil
}

func (f *fakeStore) ListHerbs(_ context.Context) ([]domain.Herb, error) {
	herbs := make([]domain.Herb, 0, len(f.herbs))
	for _, herb := range f.herbs {
		herbs = append(herbs, herb)
	}
	return herbs, nil
}

func (f *fakeStore) PutRecipe(_ context.Context, recipe domain.Recipe) error {
	f.recipes = append(f.recipes, recipe)
	return nil
}

func (f *fakeStore) ListRecipes(_ context.Context) ([]domain.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeStore) PutBiome(_ context.Context, biome domain.Biome) error {
	f.biomes = append(f.biomes, biome)
	return nil
}

func (f *fakeStore) GetBiome(_ context.Context, id string) (domain.Biome, error) {
	for _, biome := range f.biomes {
		if biome.ID == id {
			return biome, nil
		}
	}
	return domain.Biome{}, storage.ErrNotFound
}

func (f *fakeStore) ListBiomes(_ context.Context) ([]domain.Biome, error) {
	if f.listBiomesErr != nil {
		return nil, f.listBiomesErr
	}
	return f.biomes, nil
}

func (f *fakeStore) ListInventory(_ context.Context, playerID string) ([]domain.InventoryItem, error) {
	items := make([]domain.InventoryItem, 0)
	for herbID, quantity := range f.inventory[playerID] {
		if quantity > 0 {
			items = append(items, domain.InventoryItem{Herb: f.herbs[herbID], Quantity: quantity})
		}
	}
	return items, nil
}

func (f *fakeStore) GetBudget(_ context.Context, playerID string) (forage.Budget, error) {
	budget, ok := f.budgets[playerID]
	if !ok {
		return forage.Budget{}, storage.ErrNotFound
	}
	return budget, nil
}

func (f *fakeStore) PutBudget(_ context.Context, playerID string, budget forage.Budget) error {
	f.budgets[playerID] = budget
	return nil
}

func (f *fakeStore) ListSessionResults(_ context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	results := f.journal[playerID]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (f *fakeStore) ListBrewedItems(_ context.Context, playerID string) ([]storage.BrewedItem, error) {
	return f.brewed[playerID], nil
}

func (f *fakeStore) ApplyForageOutcome(_ context.Context, playerID string, outcome storage.ForageOutcome) error {
	f.forageCommits++
	f.lastOutcome = outcome
	f.budgets[playerID] = outcome.Budget
	f.journal[playerID] = append(f.journal[playerID], outcome.Results...)
	if f.inventory[playerID] == nil {
		f.inventory[playerID] = map[string]int{}
	}
	for _, result := range outcome.Results {
		for _, herb := range result.HerbsFound {
			f.inventory[playerID][herb.ID]++
		}
	}
	return nil
}

func (f *fakeStore) ApplyBrewOutcome(_ context.Context, playerID string, consumed []storage.HerbConsumption, produced storage.BrewedItem) error {
	f.brewCommits++
	f.lastConsumed = consumed
	f.lastProduced = produced
	if f.inventory[playerID] == nil {
		f.inventory[playerID] = map[string]int{}
	}
	for _, consumption := range consumed {
		if f.inventory[playerID][consumption.HerbID] < consumption.Quantity {
			return apperrors.New(apperrors.CodeInventoryInsufficient, "not enough "+consumption.HerbID)
		}
		f.inventory[playerID][consumption.HerbID] -= consumption.Quantity
	}
	if produced.Quantity > 0 {
		f.brewed[playerID] = append(f.brewed[playerID], produced)
	}
	return nil
}

var _ storage.Store = (*fakeStore)(nil)

func forestFixture(store *fakeStore) {
	dewroot := domain.Herb{ID: "dewroot", Name: "Dewroot", Elements: []domain.Element{"water"}}
	store.herbs["dewroot"] = dewroot
	store.biomes = append(store.biomes, domain.Biome{
		ID:   "forest",
		Name: "Whispering Forest",
		Entries: []domain.BiomeHerb{
			{Herb: dewroot, Weight: 1},
		},
	})
}

func TestForageRunSessionsCommitsOnce(t *testing.T) {
	store := newFakeStore()
	forestFixture(store)

	svc := NewForageService(store, forage.DefaultConfig())
	// Session 1: d20=17 succeeds, d4=2, two picks. Session 2: d20=3 fails.
	svc.newRng = scriptedRng(16, 1, 0, 0, 2)

	results, err := svc.RunSessions(context.Background(), "player-1", []forage.Allocation{
		{BiomeID: "forest", Sessions: 2},
	})
	if err != nil {
		t.Fatalf("RunSessions() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("RunSessions() = %d results, want 2", len(results))
	}
	if store.forageCommits != 1 {
		t.Errorf("forage commits = %d, want exactly 1", store.forageCommits)
	}
	// A new player starts on the full daily allowance; two sessions
	// debit once, at commit.
	if store.lastOutcome.Budget.UsedToday != 2 {
		t.Errorf("committed budget used = %d, want 2", store.lastOutcome.Budget.UsedToday)
	}
	if store.inventory["player-1"]["dewroot"] != 2 {
		t.Errorf("inventory dewroot = %d, want 2", store.inventory["player-1"]["dewroot"])
	}
}

func TestForageRunSessionsRefusesOverBudget(t *testing.T) {
	store := newFakeStore()
	forestFixture(store)
	store.budgets["player-1"] = forage.Budget{DailyMax: 4, UsedToday: 3}

	svc := NewForageService(store, forage.DefaultConfig())
	svc.newRng = scriptedRng(16)

	_, err := svc.RunSessions(context.Background(), "player-1", []forage.Allocation{
		{BiomeID: "forest", Sessions: 2},
	})
	if !apperrors.IsCode(err, apperrors.CodeForageBudgetExceeded) {
		t.Fatalf("RunSessions() error = %v, want %s", err, apperrors.CodeForageBudgetExceeded)
	}
	if store.forageCommits != 0 {
		t.Errorf("refused run committed %d times", store.forageCommits)
	}
}

func TestForageRunSessionsStorageFailureCommitsNothing(t *testing.T) {
	store := newFakeStore()
	forestFixture(store)
	store.listBiomesErr = errors.New("disk gone")

	svc := NewForageService(store, forage.DefaultConfig())
	svc.newRng = scriptedRng(16)

	_, err := svc.RunSessions(context.Background(), "player-1", []forage.Allocation{
		{BiomeID: "forest", Sessions: 1},
	})
	if !apperrors.IsCode(err, apperrors.CodeStorageFailure) {
		t.Fatalf("RunSessions() error = %v, want %s", err, apperrors.CodeStorageFailure)
	}
	if store.forageCommits != 0 {
		t.Errorf("failed run committed %d times", store.forageCommits)
	}
	if _, ok := store.budgets["player-1"]; ok {
		t.Error("failed run stored a budget")
	}
}

func TestForageRunSessionsEngineErrorKeepsBudget(t *testing.T) {
	store := newFakeStore()
	forestFixture(store)
	store.budgets["player-1"] = forage.Budget{DailyMax: 4, UsedToday: 0}

	svc := NewForageService(store, forage.DefaultConfig())
	svc.newRng = scriptedRng(16)

	_, err := svc.RunSessions(context.Background(), "player-1", []forage.Allocation{
		{BiomeID: "volcano", Sessions: 1},
	})
	if !apperrors.IsCode(err, apperrors.CodeForageUnknownBiome) {
		t.Fatalf("RunSessions() error = %v, want %s", err, apperrors.CodeForageUnknownBiome)
	}
	if store.budgets["player-1"].UsedToday != 0 {
		t.Errorf("aborted run debited budget: used = %d", store.budgets["player-1"].UsedToday)
	}
}

func TestForageLongRest(t *testing.T) {
	store := newFakeStore()
	store.budgets["player-1"] = forage.Budget{DailyMax: 4, UsedToday: 4}

	svc := NewForageService(store, forage.DefaultConfig())

	budget, err := svc.LongRest(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("LongRest() error = %v", err)
	}
	if budget.Remaining() != 4 {
		t.Errorf("Remaining() after long rest = %d, want 4", budget.Remaining())
	}
	if store.budgets["player-1"].UsedToday != 0 {
		t.Errorf("stored budget used = %d, want 0", store.budgets["player-1"].UsedToday)
	}
}

func brewFixtures(store *fakeStore) (domain.Recipe, domain.Herb) {
	tonic := domain.Recipe{
		ID:       "steam-tonic",
		Name:     "Steam Tonic",
		Output:   domain.OutputElixir,
		Pair:     domain.ElementPair{A: "fire", B: "water"},
		Template: "Restores {potency} vigor.",
	}
	store.recipes = append(store.recipes, tonic)
	steamfrond := domain.Herb{ID: "steamfrond", Name: "Steamfrond", Elements: []domain.Element{"fire", "water"}}
	store.herbs["steamfrond"] = steamfrond
	return tonic, steamfrond
}

func TestBrewStartWorkflowValidatesRecipeTable(t *testing.T) {
	store := newFakeStore()
	store.recipes = []domain.Recipe{
		{ID: "a", Name: "A", Output: domain.OutputElixir, Pair: domain.ElementPair{A: "fire", B: "water"}},
		{ID: "b", Name: "B", Output: domain.OutputOil, Pair: domain.ElementPair{A: "water", B: "fire"}},
	}

	svc := NewBrewService(store, brew.DefaultConfig())
	_, err := svc.StartWorkflow(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeRecipeDuplicatePair) {
		t.Fatalf("StartWorkflow() error = %v, want %s", err, apperrors.CodeRecipeDuplicatePair)
	}
}

func TestBrewResolveAndCommit(t *testing.T) {
	store := newFakeStore()
	_, steamfrond := brewFixtures(store)
	store.inventory["player-1"] = map[string]int{"steamfrond": 2}

	svc := NewBrewService(store, brew.DefaultConfig())
	svc.newRng = scriptedRng(16) // d20=17 beats DC 15

	w, err := svc.StartWorkflow(context.Background())
	if err != nil {
		t.Fatalf("StartWorkflow() error = %v", err)
	}
	if err := w.SetHerbs([]domain.HerbSelection{{Herb: steamfrond, Instances: 1}}); err != nil {
		t.Fatalf("SetHerbs() error = %v", err)
	}
	if err := w.ProceedToPairing(); err != nil {
		t.Fatalf("ProceedToPairing() error = %v", err)
	}
	if err := w.AssignPair("fire", "water"); err != nil {
		t.Fatalf("AssignPair() error = %v", err)
	}
	if err := w.ProceedFromPairing(); err != nil {
		t.Fatalf("ProceedFromPairing() error = %v", err)
	}

	outcome, err := svc.Resolve(w)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Successes() != 1 {
		t.Fatalf("Successes() = %d, want 1", outcome.Successes())
	}

	if err := svc.Commit(context.Background(), "player-1", w); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if store.brewCommits != 1 {
		t.Fatalf("brew commits = %d, want 1", store.brewCommits)
	}
	if len(store.lastConsumed) != 1 || store.lastConsumed[0].HerbID != "steamfrond" || store.lastConsumed[0].Quantity != 1 {
		t.Errorf("consumed = %+v, want one steamfrond", store.lastConsumed)
	}
	if store.lastProduced.Name != "Steam Tonic" || store.lastProduced.Quantity != 1 {
		t.Errorf("produced = %+v, want one Steam Tonic", store.lastProduced)
	}
	if len(store.lastProduced.Descriptions) != 1 || store.lastProduced.Descriptions[0] != "Restores 1 vigor." {
		t.Errorf("descriptions = %v", store.lastProduced.Descriptions)
	}
	if store.inventory["player-1"]["steamfrond"] != 1 {
		t.Errorf("inventory steamfrond = %d, want 1", store.inventory["player-1"]["steamfrond"])
	}
}

func TestBrewCommitRequiresOutcome(t *testing.T) {
	store := newFakeStore()
	brewFixtures(store)

	svc := NewBrewService(store, brew.DefaultConfig())
	w, err := svc.StartWorkflow(context.Background())
	if err != nil {
		t.Fatalf("StartWorkflow() error = %v", err)
	}

	err = svc.Commit(context.Background(), "player-1", w)
	if !apperrors.IsCode(err, apperrors.CodeBrewInvalidTransition) {
		t.Fatalf("Commit() before resolve error = %v, want %s", err, apperrors.CodeBrewInvalidTransition)
	}
	if store.brewCommits != 0 {
		t.Errorf("unresolved workflow committed %d times", store.brewCommits)
	}
}

func TestBrewFailedRollStillConsumesHerbs(t *testing.T) {
	store := newFakeStore()
	_, steamfrond := brewFixtures(store)
	store.inventory["player-1"] = map[string]int{"steamfrond": 1}

	svc := NewBrewService(store, brew.DefaultConfig())
	svc.newRng = scriptedRng(2) // d20=3 misses DC 15

	w, err := svc.StartWorkflow(context.Background())
	if err != nil {
		t.Fatalf("StartWorkflow() error = %v", err)
	}
	if err := w.SetHerbs([]domain.HerbSelection{{Herb: steamfrond, Instances: 1}}); err != nil {
		t.Fatalf("SetHerbs() error = %v", err)
	}
	if err := w.ProceedToPairing(); err != nil {
		t.Fatalf("ProceedToPairing() error = %v", err)
	}
	if err := w.AssignPair("fire", "water"); err != nil {
		t.Fatalf("AssignPair() error = %v", err)
	}
	if err := w.ProceedFromPairing(); err != nil {
		t.Fatalf("ProceedFromPairing() error = %v", err)
	}

	outcome, err := svc.Resolve(w)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Successes() != 0 {
		t.Fatalf("Successes() = %d, want 0", outcome.Successes())
	}

	if err := svc.Commit(context.Background(), "player-1", w); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if store.inventory["player-1"]["steamfrond"] != 0 {
		t.Errorf("failed brew kept herbs: %d remaining", store.inventory["player-1"]["steamfrond"])
	}
	if len(store.brewed["player-1"]) != 0 {
		t.Errorf("failed brew produced items: %+v", store.brewed["player-1"])
	}
	if store.lastProduced.Quantity != 0 {
		t.Errorf("produced quantity = %d, want 0", store.lastProduced.Quantity)
	}
}
