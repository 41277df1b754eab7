package brew

import (
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/verdant-engine/internal/errors"
	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

// RequiredElements derives the per-element demand of the selected
// recipes: each recipe consumes its pair once per brew, multiplied by
// its selection count and the batch count.
func RequiredElements(selections []domain.RecipeSelection, batchCount int) map[domain.Element]int {
	required := make(map[domain.Element]int)
	for _, selection := range selections {
		required[selection.Recipe.Pair.A] += selection.Count * batchCount
		required[selection.Recipe.Pair.B] += selection.Count * batchCount
	}
	return required
}

// validateElementSupply checks that the selected herbs supply every
// required element in sufficient raw quantity.
func validateElementSupply(herbs []domain.HerbSelection, required map[domain.Element]int) error {
	supply := make(map[domain.Element]int)
	for _, selection := range herbs {
		for _, element := range selection.Herb.Elements {
			supply[element] += selection.Instances
		}
	}

	for _, element := range sortedElements(required) {
		need := required[element]
		if supply[element] < need {
			return apperrors.WithMetadata(
				apperrors.CodeBrewInsufficientElements,
				fmt.Sprintf("element %s: have %d, need %d", element, supply[element], need),
				map[string]string{
					"Element": string(element),
					"Have":    strconv.Itoa(supply[element]),
					"Need":    strconv.Itoa(need),
				},
			)
		}
	}
	return nil
}

// validateInstanceSpread enforces the batch quantity/instance rule: a
// single herb instance cannot be split across brews in a batch, so for
// every required element at least batchCount distinct selected
// instances must carry it, however many tags each one stacks.
func validateInstanceSpread(herbs []domain.HerbSelection, required map[domain.Element]int, batchCount int) error {
	if batchCount <= 1 {
		return nil
	}

	for _, element := range sortedElements(required) {
		instances := 0
		for _, selection := range herbs {
			if selection.Herb.HasElement(element) {
				instances += selection.Instances
			}
		}
		if instances < batchCount {
			return apperrors.WithMetadata(
				apperrors.CodeBrewInsufficientInstances,
				fmt.Sprintf("element %s: %d herb instances carry it, batch needs %d", element, instances, batchCount),
				map[string]string{
					"Element": string(element),
					"Have":    strconv.Itoa(instances),
					"Need":    strconv.Itoa(batchCount),
				},
			)
		}
	}
	return nil
}

// validateHerbCap checks the per-brew herb instance cap.
func validateHerbCap(herbs []domain.HerbSelection, limit int) error {
	selected := domain.TotalInstances(herbs)
	if selected > limit {
		return apperrors.WithMetadata(
			apperrors.CodeBrewHerbCapExceeded,
			fmt.Sprintf("%d herb instances selected, cap is %d", selected, limit),
			map[string]string{
				"Selected": strconv.Itoa(selected),
				"Cap":      strconv.Itoa(limit),
			},
		)
	}
	return nil
}

// sortedElements returns map keys in stable order so validation
// failures are deterministic.
func sortedElements(required map[domain.Element]int) []domain.Element {
	elements := make([]domain.Element, 0, len(required))
	for element := range required {
		elements = append(elements, element)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i] < elements[j] })
	return elements
}
