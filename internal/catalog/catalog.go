// Package catalog loads herb, recipe, and biome reference data from a
// YAML document and validates its integrity before it reaches storage.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
	"github.com/louisbranch/verdant-engine/internal/herbalism/pool"
	"gopkg.in/yaml.v3"
)

type herbDoc struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Rarity   string   `yaml:"rarity"`
	Elements []string `yaml:"elements"`
}

type recipeDoc struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Output   string   `yaml:"output"`
	Pair     []string `yaml:"pair"`
	Template string   `yaml:"template"`
}

type biomeEntryDoc struct {
	Herb   string `yaml:"herb"`
	Weight int    `yaml:"weight"`
}

type biomeDoc struct {
	ID    string          `yaml:"id"`
	Name  string          `yaml:"name"`
	Herbs []biomeEntryDoc `yaml:"herbs"`
}

type document struct {
	Herbs   []herbDoc   `yaml:"herbs"`
	Recipes []recipeDoc `yaml:"recipes"`
	Biomes  []biomeDoc  `yaml:"biomes"`
}

// Catalog is validated reference data ready to seed a store.
type Catalog struct {
	Herbs   []domain.Herb
	Recipes []domain.Recipe
	Biomes  []domain.Biome
}

// Load reads and validates a catalog YAML file.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}

// Parse reads and validates a catalog YAML document.
func Parse(r io.Reader) (Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Catalog{}, invalid(fmt.Sprintf("parse yaml: %v", err), nil)
	}

	catalog := Catalog{}

	herbByID := make(map[string]domain.Herb, len(doc.Herbs))
	for _, entry := range doc.Herbs {
		herb, err := buildHerb(entry)
		if err != nil {
			return Catalog{}, err
		}
		if _, exists := herbByID[herb.ID]; exists {
			return Catalog{}, invalid("duplicate herb id "+herb.ID, map[string]string{"Herb": herb.ID})
		}
		herbByID[herb.ID] = herb
		catalog.Herbs = append(catalog.Herbs, herb)
	}

	recipeIDs := make(map[string]bool, len(doc.Recipes))
	for _, entry := range doc.Recipes {
		recipe, err := buildRecipe(entry)
		if err != nil {
			return Catalog{}, err
		}
		if recipeIDs[recipe.ID] {
			return Catalog{}, invalid("duplicate recipe id "+recipe.ID, map[string]string{"Recipe": recipe.ID})
		}
		recipeIDs[recipe.ID] = true
		catalog.Recipes = append(catalog.Recipes, recipe)
	}
	if err := pool.ValidateRecipeTable(catalog.Recipes); err != nil {
		return Catalog{}, err
	}

	biomeIDs := make(map[string]bool, len(doc.Biomes))
	for _, entry := range doc.Biomes {
		biome, err := buildBiome(entry, herbByID)
		if err != nil {
			return Catalog{}, err
		}
		if biomeIDs[biome.ID] {
			return Catalog{}, invalid("duplicate biome id "+biome.ID, map[string]string{"Biome": biome.ID})
		}
		biomeIDs[biome.ID] = true
		catalog.Biomes = append(catalog.Biomes, biome)
	}

	return catalog, nil
}

func buildHerb(entry herbDoc) (domain.Herb, error) {
	id, err := identifier("herb", entry.ID)
	if err != nil {
		return domain.Herb{}, err
	}
	rarity, err := parseRarity(entry.Rarity)
	if err != nil {
		return domain.Herb{}, invalid(
			fmt.Sprintf("herb %s: %v", id, err),
			map[string]string{"Herb": id},
		)
	}
	if len(entry.Elements) == 0 {
		return domain.Herb{}, invalid("herb "+id+" has no elements", map[string]string{"Herb": id})
	}

	elements := make([]domain.Element, 0, len(entry.Elements))
	for _, element := range entry.Elements {
		element = strings.TrimSpace(element)
		if element == "" || strings.Contains(element, ",") {
			return domain.Herb{}, invalid(
				fmt.Sprintf("herb %s has invalid element %q", id, element),
				map[string]string{"Herb": id},
			)
		}
		elements = append(elements, domain.Element(element))
	}

	return domain.Herb{
		ID:       id,
		Name:     strings.TrimSpace(entry.Name),
		Rarity:   rarity,
		Elements: elements,
	}, nil
}

func buildRecipe(entry recipeDoc) (domain.Recipe, error) {
	id, err := identifier("recipe", entry.ID)
	if err != nil {
		return domain.Recipe{}, err
	}
	output, err := parseOutput(entry.Output)
	if err != nil {
		return domain.Recipe{}, invalid(
			fmt.Sprintf("recipe %s: %v", id, err),
			map[string]string{"Recipe": id},
		)
	}
	if len(entry.Pair) != 2 {
		return domain.Recipe{}, invalid(
			fmt.Sprintf("recipe %s pair has %d elements, want 2", id, len(entry.Pair)),
			map[string]string{"Recipe": id},
		)
	}

	return domain.Recipe{
		ID:     id,
		Name:   strings.TrimSpace(entry.Name),
		Output: output,
		Pair: domain.ElementPair{
			A: domain.Element(strings.TrimSpace(entry.Pair[0])),
			B: domain.Element(strings.TrimSpace(entry.Pair[1])),
		},
		Template: entry.Template,
	}, nil
}

func buildBiome(entry biomeDoc, herbByID map[string]domain.Herb) (domain.Biome, error) {
	id, err := identifier("biome", entry.ID)
	if err != nil {
		return domain.Biome{}, err
	}
	if len(entry.Herbs) == 0 {
		return domain.Biome{}, invalid("biome "+id+" has no herb table", map[string]string{"Biome": id})
	}

	entries := make([]domain.BiomeHerb, 0, len(entry.Herbs))
	for _, tableEntry := range entry.Herbs {
		herb, ok := herbByID[tableEntry.Herb]
		if !ok {
			return domain.Biome{}, invalid(
				fmt.Sprintf("biome %s references unknown herb %s", id, tableEntry.Herb),
				map[string]string{"Biome": id, "Herb": tableEntry.Herb},
			)
		}
		if tableEntry.Weight <= 0 {
			return domain.Biome{}, invalid(
				fmt.Sprintf("biome %s herb %s has weight %d, want positive", id, tableEntry.Herb, tableEntry.Weight),
				map[string]string{"Biome": id, "Herb": tableEntry.Herb},
			)
		}
		entries = append(entries, domain.BiomeHerb{Herb: herb, Weight: tableEntry.Weight})
	}

	return domain.Biome{
		ID:      id,
		Name:    strings.TrimSpace(entry.Name),
		Entries: entries,
	}, nil
}

// identifier rejects empty IDs and commas, which the storage layer
// reserves as a list separator.
func identifier(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(kind+" id is required", nil)
	}
	if strings.Contains(value, ",") {
		return "", invalid(fmt.Sprintf("%s id %q contains a comma", kind, value), nil)
	}
	return value, nil
}

func parseRarity(value string) (domain.Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "common":
		return domain.RarityCommon, nil
	case "uncommon":
		return domain.RarityUncommon, nil
	case "rare":
		return domain.RarityRare, nil
	case "legendary":
		return domain.RarityLegendary, nil
	default:
		return domain.RarityUnspecified, fmt.Errorf("unknown rarity %q", value)
	}
}

func parseOutput(value string) (domain.OutputType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "elixir":
		return domain.OutputElixir, nil
	case "bomb":
		return domain.OutputBomb, nil
	case "oil":
		return domain.OutputOil, nil
	default:
		return domain.OutputUnspecified, fmt.Errorf("unknown output type %q", value)
	}
}

func invalid(message string, metadata map[string]string) error {
	if metadata == nil {
		return apperrors.New(apperrors.CodeCatalogInvalid, message)
	}
	return apperrors.WithMetadata(apperrors.CodeCatalogInvalid, message, metadata)
}
