package repo

import (
	"iter"

	"github.com/crucial707/inventory-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ========================
// REPOSITORY STRUCT
// ========================

// InventoryRepo keeps inventory items in insertion order. Persistence is a
// separate step handled by the codec package.
type InventoryRepo struct {
	items []models.Item
}

func NewInventoryRepo(items []models.Item) *InventoryRepo {
	r := &InventoryRepo{}
	r.Replace(items)
	return r
}

// ========================
// ADD ITEM
// ========================

// Add appends item without checking for an existing id.
func (r *InventoryRepo) Add(item models.Item) {
	r.items = append(r.items, item)
}

// ========================
// UPDATE ITEM BY ID
// ========================

// Update changes the first item whose id matches and reports whether one was found.
func (r *InventoryRepo) Update(id int, name string, quantity int, price decimal.Decimal, modifiedBy int) bool {
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		r.items[i].Name = name
		r.items[i].Quantity = quantity
		r.items[i].Price = price
		r.items[i].LastModifiedBy = modifiedBy
		return true
	}
	return false
}

// ========================
// REMOVE ITEMS BY ID
// ========================

// Remove deletes every item with the given id.
func (r *InventoryRepo) Remove(id int) bool {
	kept := r.items[:0]
	for _, it := range r.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(r.items)
	clear(r.items[len(kept):])
	r.items = kept
	return removed
}

// ========================
// LIST ITEMS
// ========================

// All yields the items present at the time each iteration runs.
func (r *InventoryRepo) All() iter.Seq[models.Item] {
	return func(yield func(models.Item) bool) {
		for i := 0; i < len(r.items); i++ {
			if !yield(r.items[i]) {
				return
			}
		}
	}
}

// Items returns a copy of the current list.
func (r *InventoryRepo) Items() []models.Item {
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Replace swaps the whole list, used after a successful import.
func (r *InventoryRepo) Replace(items []models.Item) {
	r.items = make([]models.Item, len(items))
	copy(r.items, items)
}

func (r *InventoryRepo) Len() int {
	return len(r.items)
}
