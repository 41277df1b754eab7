// Package seed loads a catalog YAML file into the SQLite store.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/verdant-engine/internal/catalog"
	"github.com/louisbranch/verdant-engine/internal/platform/config"
	"github.com/louisbranch/verdant-engine/internal/storage/sqlite"
)

// Config carries the seed tool settings.
type Config struct {
	CatalogPath string `env:"VERDANT_CATALOG_PATH" envDefault:"catalog.yaml"`
	StoragePath string `env:"VERDANT_STORAGE_PATH" envDefault:"verdant.db"`
}

// ParseConfig resolves settings from the environment first, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "catalog YAML path")
	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run validates the catalog and upserts it into the store. Reruns are
// idempotent: existing records update in place.
func Run(ctx context.Context, cfg Config) error {
	loaded, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	for _, herb := range loaded.Herbs {
		if err := store.PutHerb(ctx, herb); err != nil {
			return fmt.Errorf("seed herb %s: %w", herb.ID, err)
		}
	}
	for _, recipe := range loaded.Recipes {
		if err := store.PutRecipe(ctx, recipe); err != nil {
			return fmt.Errorf("seed recipe %s: %w", recipe.ID, err)
		}
	}
	// Biomes go last so their herb references already exist.
	for _, biome := range loaded.Biomes {
		if err := store.PutBiome(ctx, biome); err != nil {
			return fmt.Errorf("seed biome %s: %w", biome.ID, err)
		}
	}

	log.Printf("seeded %d herbs, %d recipes, %d biomes into %s",
		len(loaded.Herbs), len(loaded.Recipes), len(loaded.Biomes), cfg.StoragePath)
	return nil
}
