package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/storage"
)

// PutHerb upserts one herb reference record.
func (s *Store) PutHerb(ctx context.Context, herb domain.Herb) error {
	if err := s.ready(); err != nil {
		return err
	}
	herb.ID = strings.TrimSpace(herb.ID)
	if herb.ID == "" {
		return fmt.Errorf("herb id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO herbs (id, name, rarity, elements)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   rarity = excluded.rarity,
		   elements = excluded.elements`,
		herb.ID,
		herb.Name,
		int64(herb.Rarity),
		joinElements(herb.Elements),
	)
	if err != nil {
		return fmt.Errorf("put herb: %w", err)
	}
	return nil
}

// GetHerb loads one herb by ID.
func (s *Store) GetHerb(ctx context.Context, id string) (domain.Herb, error) {
	if err := s.ready(); err != nil {
		return domain.Herb{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Herb{}, fmt.Errorf("herb id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, rarity, elements FROM herbs WHERE id = ?`,
		id,
	)
	herb, err := scanHerb(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Herb{}, storage.ErrNotFound
		}
		return domain.Herb{}, fmt.Errorf("get herb: %w", err)
	}
	return herb, nil
}

// ListHerbs returns every herb ordered by ID.
func (s *Store) ListHerbs(ctx context.Context) ([]domain.Herb, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, rarity, elements FROM herbs ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list herbs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	herbs := make([]domain.Herb, 0)
	for rows.Next() {
		herb, err := scanHerb(rows)
		if err != nil {
			return nil, fmt.Errorf("scan herb: %w", err)
		}
		herbs = append(herbs, herb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate herbs: %w", err)
	}
	return herbs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHerb(row rowScanner) (domain.Herb, error) {
	var herb domain.Herb
	var rarity int64
	var elements string
	if err := row.Scan(&herb.ID, &herb.Name, &rarity, &elements); err != nil {
		return domain.Herb{}, err
	}
	herb.Rarity = domain.Rarity(rarity)
	herb.Elements = splitElements(elements)
	return herb, nil
}

// PutRecipe upserts one recipe reference record.
func (s *Store) PutRecipe(ctx context.Context, recipe domain.Recipe) error {
	if err := s.ready(); err != nil {
		return err
	}
	recipe.ID = strings.TrimSpace(recipe.ID)
	if recipe.ID == "" {
		return fmt.Errorf("recipe id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO recipes (id, name, output, element_a, element_b, template)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   output = excluded.output,
		   element_a = excluded.element_a,
		   element_b = excluded.element_b,
		   template = excluded.template`,
		recipe.ID,
		recipe.Name,
		int64(recipe.Output),
		string(recipe.Pair.A),
		string(recipe.Pair.B),
		recipe.Template,
	)
	if err != nil {
		return fmt.Errorf("put recipe: %w", err)
	}
	return nil
}

// ListRecipes returns every recipe ordered by ID.
func (s *Store) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, output, element_a, element_b, template FROM recipes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	recipes := make([]domain.Recipe, 0)
	for rows.Next() {
		var recipe domain.Recipe
		var output int64
		var elementA, elementB string
		if err := rows.Scan(&recipe.ID, &recipe.Name, &output, &elementA, &elementB, &recipe.Template); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipe.Output = domain.OutputType(output)
		recipe.Pair = domain.ElementPair{A: domain.Element(elementA), B: domain.Element(elementB)}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

// PutBiome upserts a biome and replaces its weighted herb table. Herbs
// referenced by the table must already exist.
func (s *Store) PutBiome(ctx context.Context, biome domain.Biome) error {
	if err := s.ready(); err != nil {
		return err
	}
	biome.ID = strings.TrimSpace(biome.ID)
	if biome.ID == "" {
		return fmt.Errorf("biome id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put biome: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO biomes (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		biome.ID,
		biome.Name,
	)
	if err != nil {
		return fmt.Errorf("put biome: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM biome_herbs WHERE biome_id = ?`, biome.ID); err != nil {
		return fmt.Errorf("clear biome herbs: %w", err)
	}

	for position, entry := range biome.Entries {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO biome_herbs (biome_id, herb_id, weight, position) VALUES (?, ?, ?, ?)`,
			biome.ID,
			entry.Herb.ID,
			int64(entry.Weight),
			int64(position),
		)
		if err != nil {
			return fmt.Errorf("put biome herb %s: %w", entry.Herb.ID, err)
		}
	}

	return tx.Commit()
}

// GetBiome loads one biome with its herb table hydrated from the herbs
// reference data, in stored position order.
func (s *Store) GetBiome(ctx context.Context, id string) (domain.Biome, error) {
	if err := s.ready(); err != nil {
		return domain.Biome{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Biome{}, fmt.Errorf("biome id is required")
	}

	var biome domain.Biome
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name FROM biomes WHERE id = ?`, id)
	if err := row.Scan(&biome.ID, &biome.Name); err != nil {
		if err == sql.ErrNoRows {
			return domain.Biome{}, storage.ErrNotFound
		}
		return domain.Biome{}, fmt.Errorf("get biome: %w", err)
	}

	entries, err := s.biomeEntries(ctx, biome.ID)
	if err != nil {
		return domain.Biome{}, err
	}
	biome.Entries = entries
	return biome, nil
}

// ListBiomes returns every biome with hydrated herb tables, ordered by ID.
func (s *Store) ListBiomes(ctx context.Context) ([]domain.Biome, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name FROM biomes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list biomes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	biomes := make([]domain.Biome, 0)
	for rows.Next() {
		var biome domain.Biome
		if err := rows.Scan(&biome.ID, &biome.Name); err != nil {
			return nil, fmt.Errorf("scan biome: %w", err)
		}
		biomes = append(biomes, biome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate biomes: %w", err)
	}

	for i := range biomes {
		entries, err := s.biomeEntries(ctx, biomes[i].ID)
		if err != nil {
			return nil, err
		}
		biomes[i].Entries = entries
	}
	return biomes, nil
}

func (s *Store) biomeEntries(ctx context.Context, biomeID string) ([]domain.BiomeHerb, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT h.id, h.name, h.rarity, h.elements, bh.weight
		 FROM biome_herbs bh
		 JOIN herbs h ON h.id = bh.herb_id
		 WHERE bh.biome_id = ?
		 ORDER BY bh.position`,
		biomeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list biome herbs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]domain.BiomeHerb, 0)
	for rows.Next() {
		var entry domain.BiomeHerb
		var rarity int64
		var elements string
		var weight int64
		if err := rows.Scan(&entry.Herb.ID, &entry.Herb.Name, &rarity, &elements, &weight); err != nil {
			return nil, fmt.Errorf("scan biome herb: %w", err)
		}
		entry.Herb.Rarity = domain.Rarity(rarity)
		entry.Herb.Elements = splitElements(elements)
		entry.Weight = int(weight)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate biome herbs: %w", err)
	}
	return entries, nil
}
