package domain

// Element is an elemental tag carried by a herb.
type Element string

// Rarity orders herbs from most to least common.
type Rarity int

const (
	// RarityUnspecified represents an invalid rarity value.
	RarityUnspecified Rarity = iota
	// RarityCommon is the baseline rarity.
	RarityCommon
	// RarityUncommon herbs appear less often in forage tables.
	RarityUncommon
	// RarityRare herbs are scarce.
	RarityRare
	// RarityLegendary herbs are the scarcest tier.
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityLegendary:
		return "legendary"
	default:
		return "unspecified"
	}
}

// Herb is immutable reference data describing one forageable plant.
// Elements has multiset semantics: a herb may carry the same element
// twice, and each instance of the herb contributes every listed tag.
type Herb struct {
	ID       string
	Name     string
	Rarity   Rarity
	Elements []Element
}

// ElementCount returns how many times the herb carries the element.
func (h Herb) ElementCount(element Element) int {
	count := 0
	for _, e := range h.Elements {
		if e == element {
			count++
		}
	}
	return count
}

// HasElement reports whether the herb carries the element at least once.
func (h Herb) HasElement(element Element) bool {
	return h.ElementCount(element) > 0
}

// HerbSelection is a number of instances of one herb chosen for a brew.
type HerbSelection struct {
	Herb      Herb
	Instances int
}

// TotalInstances sums the instances across a selection.
func TotalInstances(selections []HerbSelection) int {
	total := 0
	for _, selection := range selections {
		total += selection.Instances
	}
	return total
}
