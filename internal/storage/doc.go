// Package storage defines persistence interfaces for herbalism data.
//
// Reference data (herbs, recipes, biomes) is written by the seed tool
// and read-only at play time. Player state (inventory, forage budget,
// journal, brewed items) mutates only through the Apply* operations,
// which commit a whole engine outcome in one transaction.
package storage
