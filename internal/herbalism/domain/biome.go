package domain

// BiomeHerb is one weighted entry in a biome's forage table.
// Weight is a positive integer used for proportional sampling.
type BiomeHerb struct {
	Herb   Herb
	Weight int
}

// Biome is immutable reference data owning a weighted herb table.
type Biome struct {
	ID      string
	Name    string
	Entries []BiomeHerb
}

// SessionResult records one executed foraging session. Results are
// append-only: they accumulate in execution order and are never mutated
// after creation.
type SessionResult struct {
	Index         int
	BiomeID       string
	BiomeName     string
	Success       bool
	Roll          int
	Modifier      int
	Total         int
	QuantityRolls []int
	QuantityTotal int
	HerbsFound    []Herb
}
