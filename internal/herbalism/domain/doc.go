// Package domain defines the herbalism reference and player data model.
//
// Herbs, recipes, and biomes are immutable reference data loaded from the
// catalog. Inventory items and forage budgets are the only player-owned
// mutable records. Everything else the engine works with (element pools,
// paired effects, required-element maps) is derived on demand from the
// current selection and never persisted.
package domain
