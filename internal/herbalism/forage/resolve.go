package forage

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/verdant-engine/internal/core/check"
	"github.com/louisbranch/verdant-engine/internal/core/dice"
	"github.com/louisbranch/verdant-engine/internal/core/sample"
	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

// forageDie is the die rolled per session.
const forageDie = 20

// RunSessions resolves an allocation against the given biomes.
//
// Biomes are processed in allocation order and sessions within a biome
// in sequence; session outcomes are independent but the reporting
// order is part of the contract for deterministic replay. On success a
// session rolls its yield quantity and then samples that many herbs,
// with replacement, from the biome's weight table.
//
// Results accumulate locally and nothing is committed here: the caller
// debits the budget and applies inventory additions only after the
// whole run returns without error. Any failure aborts the entire run.
func RunSessions(rng *rand.Rand, cfg Config, biomes []domain.Biome, allocations []Allocation) ([]domain.SessionResult, error) {
	total := 0
	for _, allocation := range allocations {
		total += allocation.Sessions
	}
	if total == 0 {
		return nil, apperrors.New(apperrors.CodeForageNoAllocations, "no sessions allocated")
	}

	biomeByID := make(map[string]domain.Biome, len(biomes))
	for _, biome := range biomes {
		biomeByID[biome.ID] = biome
	}

	results := make([]domain.SessionResult, 0, total)
	index := 0

	for _, allocation := range allocations {
		biome, ok := biomeByID[allocation.BiomeID]
		if !ok {
			return nil, apperrors.WithMetadata(
				apperrors.CodeForageUnknownBiome,
				fmt.Sprintf("biome %s not in reference data", allocation.BiomeID),
				map[string]string{"Biome": allocation.BiomeID},
			)
		}

		entries := make([]sample.Weighted[domain.Herb], 0, len(biome.Entries))
		for _, entry := range biome.Entries {
			entries = append(entries, sample.Weighted[domain.Herb]{Item: entry.Herb, Weight: entry.Weight})
		}

		for session := 0; session < allocation.Sessions; session++ {
			index++
			die := rng.Intn(forageDie) + 1
			total := die + cfg.Modifier
			result := domain.SessionResult{
				Index:     index,
				BiomeID:   biome.ID,
				BiomeName: biome.Name,
				Roll:      die,
				Modifier:  cfg.Modifier,
				Total:     total,
				Success:   check.MeetsDifficulty(total, cfg.Difficulty),
			}

			if result.Success {
				quantity, err := dice.RollQuantity(rng, cfg.QuantityDice)
				if err != nil {
					return nil, err
				}
				result.QuantityRolls = quantity.Results
				result.QuantityTotal = quantity.Total

				found := make([]domain.Herb, 0, quantity.Total)
				for i := 0; i < quantity.Total; i++ {
					herb, err := sample.Pick(rng, entries)
					if err != nil {
						return nil, err
					}
					found = append(found, herb)
				}
				result.HerbsFound = found
			}

			results = append(results, result)
		}
	}

	return results, nil
}
