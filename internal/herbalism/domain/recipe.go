package domain

// OutputType classifies what a recipe produces.
type OutputType int

const (
	// OutputUnspecified represents an invalid output type value.
	OutputUnspecified OutputType = iota
	// OutputElixir is a drinkable brew.
	OutputElixir
	// OutputBomb is a throwable brew.
	OutputBomb
	// OutputOil is a weapon coating.
	OutputOil
)

func (o OutputType) String() string {
	switch o {
	case OutputElixir:
		return "elixir"
	case OutputBomb:
		return "bomb"
	case OutputOil:
		return "oil"
	default:
		return "unspecified"
	}
}

// ElementPair is an unordered pair of elemental tags.
type ElementPair struct {
	A Element
	B Element
}

// Matches reports whether the pair equals {a, b} as a set.
func (p ElementPair) Matches(a, b Element) bool {
	return (p.A == a && p.B == b) || (p.A == b && p.B == a)
}

// Count returns how many of the pair's slots carry the element (0-2).
func (p ElementPair) Count(element Element) int {
	count := 0
	if p.A == element {
		count++
	}
	if p.B == element {
		count++
	}
	return count
}

// Recipe is immutable reference data mapping an element pair to a
// brewable effect. Template holds the effect description with embedded
// choice placeholders; it may be empty.
type Recipe struct {
	ID       string
	Name     string
	Output   OutputType
	Pair     ElementPair
	Template string
}

// RecipeSelection is a number of brews of one recipe chosen directly
// in by-recipe mode.
type RecipeSelection struct {
	Recipe Recipe
	Count  int
}

// PairedEffect aggregates identical pairings of one recipe.
// Count is additive: pairing the same two elements twice yields one
// PairedEffect with Count 2, not two entries.
type PairedEffect struct {
	Recipe Recipe
	Count  int
}
