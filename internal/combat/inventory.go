package combat

import (
	"github.com/skirmishlabs/combat-api/internal/errors"
)

// Inventory is the external consumable-item collaborator. The engine only
// ever decrements it; acquiring items is the surrounding application's
// business.
type Inventory interface {
	// Count returns how many units of the item remain.
	Count(itemID string) int
	// Consume removes one unit, failing if none remain.
	Consume(itemID string) error
}

// CountedInventory is a simple map-backed Inventory.
type CountedInventory struct {
	counts map[string]int
}

// NewCountedInventory copies the given counts into a new inventory.
func NewCountedInventory(counts map[string]int) *CountedInventory {
	c := make(map[string]int, len(counts))
	for id, n := range counts {
		if n > 0 {
			c[id] = n
		}
	}
	return &CountedInventory{counts: c}
}

// Count returns how many units of the item remain.
func (i *CountedInventory) Count(itemID string) int {
	return i.counts[itemID]
}

// Consume removes one unit of the item.
func (i *CountedInventory) Consume(itemID string) error {
	if i.counts[itemID] <= 0 {
		return errors.FailedPrecondition("no " + itemID + " left in inventory")
	}
	i.counts[itemID]--
	return nil
}

var _ Inventory = (*CountedInventory)(nil)
