package domain

// InventoryItem is a herb the player carries. Quantity is the only
// mutable field; an item with quantity 0 is logically absent.
type InventoryItem struct {
	Herb     Herb
	Quantity int
}
