package catalog

import (
	"strings"
	"testing"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

const validCatalog = `
herbs:
  - id: emberleaf
    name: Emberleaf
    rarity: uncommon
    elements: [fire, fire]
  - id: dewroot
    name: Dewroot
    rarity: common
    elements: [water]
recipes:
  - id: steam-tonic
    name: Steam Tonic
    output: elixir
    pair: [fire, water]
    template: "Restores {potency} vigor."
  - id: cinder-bomb
    name: Cinder Bomb
    output: bomb
    pair: [fire, fire]
biomes:
  - id: forest
    name: Whispering Forest
    herbs:
      - herb: dewroot
        weight: 3
      - herb: emberleaf
        weight: 1
`

func TestParseValidCatalog(t *testing.T) {
	catalog, err := Parse(strings.NewReader(validCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(catalog.Herbs) != 2 || len(catalog.Recipes) != 2 || len(catalog.Biomes) != 1 {
		t.Fatalf("Parse() = %d herbs, %d recipes, %d biomes", len(catalog.Herbs), len(catalog.Recipes), len(catalog.Biomes))
	}

	emberleaf := catalog.Herbs[0]
	if emberleaf.Rarity != domain.RarityUncommon || emberleaf.ElementCount("fire") != 2 {
		t.Errorf("emberleaf = %+v, want uncommon with two fire tags", emberleaf)
	}

	tonic := catalog.Recipes[0]
	if tonic.Output != domain.OutputElixir || !tonic.Pair.Matches("water", "fire") {
		t.Errorf("steam-tonic = %+v", tonic)
	}
	if tonic.Template != "Restores {potency} vigor." {
		t.Errorf("steam-tonic template = %q", tonic.Template)
	}

	forest := catalog.Biomes[0]
	if len(forest.Entries) != 2 || forest.Entries[0].Herb.Name != "Dewroot" || forest.Entries[0].Weight != 3 {
		t.Errorf("forest entries = %+v", forest.Entries)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantCode apperrors.Code
	}{
		{
			name:     "not yaml",
			yaml:     "herbs: [unclosed",
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "duplicate herb id",
			yaml: `
herbs:
  - {id: dewroot, name: Dewroot, rarity: common, elements: [water]}
  - {id: dewroot, name: Dewroot Again, rarity: common, elements: [water]}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "herb without elements",
			yaml: `
herbs:
  - {id: voidbud, name: Voidbud, rarity: rare, elements: []}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "unknown rarity",
			yaml: `
herbs:
  - {id: voidbud, name: Voidbud, rarity: mythic, elements: [shadow]}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "recipe pair wrong size",
			yaml: `
recipes:
  - {id: triple, name: Triple, output: oil, pair: [fire, water, earth]}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "unknown output type",
			yaml: `
recipes:
  - {id: mist, name: Mist, output: vapor, pair: [water, water]}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "two recipes claim one pair",
			yaml: `
recipes:
  - {id: steam-tonic, name: Steam Tonic, output: elixir, pair: [fire, water]}
  - {id: mist-oil, name: Mist Oil, output: oil, pair: [water, fire]}
`,
			wantCode: apperrors.CodeRecipeDuplicatePair,
		},
		{
			name: "biome references unknown herb",
			yaml: `
biomes:
  - id: forest
    name: Whispering Forest
    herbs:
      - {herb: ghostcap, weight: 1}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "biome entry with zero weight",
			yaml: `
herbs:
  - {id: dewroot, name: Dewroot, rarity: common, elements: [water]}
biomes:
  - id: forest
    name: Whispering Forest
    herbs:
      - {herb: dewroot, weight: 0}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
		{
			name: "comma in herb id",
			yaml: `
herbs:
  - {id: "dew,root", name: Dewroot, rarity: common, elements: [water]}
`,
			wantCode: apperrors.CodeCatalogInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			if !apperrors.IsCode(err, tt.wantCode) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
