package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/forage"
	"github.com/louisbranch/verdant-engine/internal/storage"
)

// ListInventory returns the player's carried herbs ordered by herb ID.
// Rows at quantity zero are absent by construction.
func (s *Store) ListInventory(ctx context.Context, playerID string) ([]domain.InventoryItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT h.id, h.name, h.rarity, h.elements, i.quantity
		 FROM inventory_items i
		 JOIN herbs h ON h.id = i.herb_id
		 WHERE i.player_id = ? AND i.quantity > 0
		 ORDER BY h.id`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		var item domain.InventoryItem
		var rarity int64
		var elements string
		var quantity int64
		if err := rows.Scan(&item.Herb.ID, &item.Herb.Name, &rarity, &elements, &quantity); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		item.Herb.Rarity = domain.Rarity(rarity)
		item.Herb.Elements = splitElements(elements)
		item.Quantity = int(quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return items, nil
}

// GetBudget loads the player's daily session budget.
func (s *Store) GetBudget(ctx context.Context, playerID string) (forage.Budget, error) {
	if err := s.ready(); err != nil {
		return forage.Budget{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return forage.Budget{}, fmt.Errorf("player id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT daily_max, used_today FROM forage_budgets WHERE player_id = ?`,
		playerID,
	)
	var budget forage.Budget
	if err := row.Scan(&budget.DailyMax, &budget.UsedToday); err != nil {
		if err == sql.ErrNoRows {
			return forage.Budget{}, storage.ErrNotFound
		}
		return forage.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return budget, nil
}

// PutBudget upserts the player's daily session budget.
func (s *Store) PutBudget(ctx context.Context, playerID string, budget forage.Budget) error {
	if err := s.ready(); err != nil {
		return err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		upsertBudgetSQL,
		playerID,
		int64(budget.DailyMax),
		int64(budget.UsedToday),
		timeToUnixMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("put budget: %w", err)
	}
	return nil
}

const upsertBudgetSQL = `INSERT INTO forage_budgets (player_id, daily_max, used_today, updated_at)
 VALUES (?, ?, ?, ?)
 ON CONFLICT(player_id) DO UPDATE SET
   daily_max = excluded.daily_max,
   used_today = excluded.used_today,
   updated_at = excluded.updated_at`

// ListSessionResults returns journal entries for a player, newest
// first. Found herbs are hydrated from the herbs reference data; herbs
// since removed from the reference keep only their ID.
func (s *Store) ListSessionResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}

	query := `SELECT session_index, biome_id, biome_name, success, roll, modifier, total, quantity_rolls, quantity_total, herbs_found
	 FROM forage_journal
	 WHERE player_id = ?
	 ORDER BY id DESC`
	args := []any{playerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, int64(limit))
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list session results: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make([]domain.SessionResult, 0)
	herbIDs := make(map[string]bool)
	for rows.Next() {
		var result domain.SessionResult
		var success int64
		var quantityRolls string
		var herbsFound string
		if err := rows.Scan(
			&result.Index,
			&result.BiomeID,
			&result.BiomeName,
			&success,
			&result.Roll,
			&result.Modifier,
			&result.Total,
			&quantityRolls,
			&result.QuantityTotal,
			&herbsFound,
		); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		result.Success = success != 0
		result.QuantityRolls, err = splitInts(quantityRolls)
		if err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		for _, id := range splitIDs(herbsFound) {
			result.HerbsFound = append(result.HerbsFound, domain.Herb{ID: id})
			herbIDs[id] = true
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session results: %w", err)
	}

	if len(herbIDs) > 0 {
		herbs, err := s.ListHerbs(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]domain.Herb, len(herbs))
		for _, herb := range herbs {
			byID[herb.ID] = herb
		}
		for i := range results {
			for j, found := range results[i].HerbsFound {
				if herb, ok := byID[found.ID]; ok {
					results[i].HerbsFound[j] = herb
				}
			}
		}
	}
	return results, nil
}

// ListBrewedItems returns the player's crafted items, newest first.
func (s *Store) ListBrewedItems(ctx context.Context, playerID string) ([]storage.BrewedItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("player id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, output, descriptions, quantity, created_at
		 FROM brewed_items
		 WHERE player_id = ?
		 ORDER BY created_at DESC, id`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list brewed items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]storage.BrewedItem, 0)
	for rows.Next() {
		var item storage.BrewedItem
		var output int64
		var descriptions string
		var createdAt int64
		if err := rows.Scan(&item.ID, &item.Name, &output, &descriptions, &item.Quantity, &createdAt); err != nil {
			return nil, fmt.Errorf("scan brewed item: %w", err)
		}
		item.Output = domain.OutputType(output)
		if descriptions != "" {
			item.Descriptions = strings.Split(descriptions, "\n")
		}
		item.CreatedAt = unixMillisToTime(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brewed items: %w", err)
	}
	return items, nil
}

// ApplyForageOutcome commits one resolved foraging run: the post-run
// budget, one journal row per session, and the found herbs added to
// inventory. All of it lands in a single transaction or not at all.
func (s *Store) ApplyForageOutcome(ctx context.Context, playerID string, outcome storage.ForageOutcome) error {
	if err := s.ready(); err != nil {
		return err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin forage outcome: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := timeToUnixMillis(time.Now())

	if _, err := tx.ExecContext(
		ctx,
		upsertBudgetSQL,
		playerID,
		int64(outcome.Budget.DailyMax),
		int64(outcome.Budget.UsedToday),
		now,
	); err != nil {
		return fmt.Errorf("commit budget: %w", err)
	}

	gained := make(map[string]int)
	var gainedOrder []string
	for _, result := range outcome.Results {
		ids := make([]string, 0, len(result.HerbsFound))
		for _, herb := range result.HerbsFound {
			ids = append(ids, herb.ID)
			if gained[herb.ID] == 0 {
				gainedOrder = append(gainedOrder, herb.ID)
			}
			gained[herb.ID]++
		}

		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO forage_journal (
			    player_id, session_index, biome_id, biome_name, success, roll, modifier, total, quantity_rolls, quantity_total, herbs_found, created_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			playerID,
			int64(result.Index),
			result.BiomeID,
			result.BiomeName,
			boolToInt(result.Success),
			int64(result.Roll),
			int64(result.Modifier),
			int64(result.Total),
			joinInts(result.QuantityRolls),
			int64(result.QuantityTotal),
			joinIDs(ids),
			now,
		); err != nil {
			return fmt.Errorf("append journal entry %d: %w", result.Index, err)
		}
	}

	for _, herbID := range gainedOrder {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO inventory_items (player_id, herb_id, quantity, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(player_id, herb_id) DO UPDATE SET
			   quantity = quantity + excluded.quantity,
			   updated_at = excluded.updated_at`,
			playerID,
			herbID,
			int64(gained[herbID]),
			now,
		); err != nil {
			return fmt.Errorf("add herb %s to inventory: %w", herbID, err)
		}
	}

	return tx.Commit()
}

// ApplyBrewOutcome commits one finished brew: the consumed herbs leave
// the inventory and the produced item is recorded, atomically. A
// shortfall on any consumed herb aborts the whole commit.
func (s *Store) ApplyBrewOutcome(ctx context.Context, playerID string, consumed []storage.HerbConsumption, produced storage.BrewedItem) error {
	if err := s.ready(); err != nil {
		return err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin brew outcome: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := timeToUnixMillis(time.Now())

	for _, consumption := range consumed {
		if consumption.Quantity <= 0 {
			continue
		}
		res, err := tx.ExecContext(
			ctx,
			`UPDATE inventory_items
			 SET quantity = quantity - ?, updated_at = ?
			 WHERE player_id = ? AND herb_id = ? AND quantity >= ?`,
			int64(consumption.Quantity),
			now,
			playerID,
			consumption.HerbID,
			int64(consumption.Quantity),
		)
		if err != nil {
			return fmt.Errorf("consume herb %s: %w", consumption.HerbID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("consume herb %s: %w", consumption.HerbID, err)
		}
		if affected == 0 {
			return apperrors.WithMetadata(
				apperrors.CodeInventoryInsufficient,
				fmt.Sprintf("not enough %s in inventory", consumption.HerbID),
				map[string]string{
					"Herb":     consumption.HerbID,
					"Quantity": strconv.Itoa(consumption.Quantity),
				},
			)
		}
	}

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM inventory_items WHERE player_id = ? AND quantity <= 0`,
		playerID,
	); err != nil {
		return fmt.Errorf("prune empty inventory rows: %w", err)
	}

	if produced.Quantity > 0 {
		id := strings.TrimSpace(produced.ID)
		if id == "" {
			id, err = domain.NewID()
			if err != nil {
				return fmt.Errorf("mint brewed item id: %w", err)
			}
		}
		createdAt := timeToUnixMillis(produced.CreatedAt)
		if createdAt == 0 {
			createdAt = now
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO brewed_items (id, player_id, name, output, descriptions, quantity, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id,
			playerID,
			produced.Name,
			int64(produced.Output),
			strings.Join(produced.Descriptions, "\n"),
			int64(produced.Quantity),
			createdAt,
		); err != nil {
			return fmt.Errorf("record brewed item: %w", err)
		}
	}

	return tx.Commit()
}
