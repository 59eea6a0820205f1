// Package cart owns the only mutable, persisted collection in the system:
// the ordered set of cart entries for one browsing session.
package cart

import "github.com/dfquintero/sportstore-gateway/internal/models"

// Ledger is an insertion-ordered mapping from (productID, variantSKU) to a
// quantity plus the product and variant snapshots captured at add time.
// Mutations are synchronous and apply in caller order; invalid mutations
// leave the state untouched.
type Ledger struct {
	entries []models.CartEntry
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// FromEntries rebuilds a ledger from a persisted snapshot. Entries with a
// non-positive quantity are dropped rather than rejected, so a damaged
// snapshot still yields a usable cart.
func FromEntries(entries []models.CartEntry) *Ledger {
	l := &Ledger{entries: make([]models.CartEntry, 0, len(entries))}

	for _, e := range entries {
		if e.Quantity >= 1 {
			l.entries = append(l.entries, e)
		}
	}

	return l
}

// Add merges qty into an existing entry for the same product+variant, or
// appends a new entry at the end. A non-positive qty is a no-op. Reports
// whether the ledger changed.
func (l *Ledger) Add(product models.Product, variant models.Variant, qty int) bool {
	if qty <= 0 {
		return false
	}

	if i := l.index(product.ID, variant.SKU); i >= 0 {
		l.entries[i].Quantity += qty

		return true
	}

	l.entries = append(l.entries, models.CartEntry{
		Product:  product,
		Variant:  variant,
		Quantity: qty,
	})

	return true
}

// UpdateQuantity replaces the quantity in place, preserving position. A
// quantity of zero or less never removes the entry; removal is a distinct
// operation.
func (l *Ledger) UpdateQuantity(productID, variantSKU string, qty int) bool {
	if qty <= 0 {
		return false
	}

	i := l.index(productID, variantSKU)
	if i < 0 {
		return false
	}

	l.entries[i].Quantity = qty

	return true
}

// Remove deletes the matching entry, keeping the order of the rest.
func (l *Ledger) Remove(productID, variantSKU string) bool {
	i := l.index(productID, variantSKU)
	if i < 0 {
		return false
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)

	return true
}

// Clear empties the ledger.
func (l *Ledger) Clear() bool {
	if len(l.entries) == 0 {
		return false
	}

	l.entries = nil

	return true
}

// Total sums salePrice × quantity over the pinned variant snapshots. Catalog
// price changes after add-to-cart never alter an already-carted item.
func (l *Ledger) Total() float64 {
	total := 0.0
	for _, e := range l.entries {
		total += e.Variant.SalePrice * float64(e.Quantity)
	}

	return total
}

// ItemCount is the sum of quantities across entries.
func (l *Ledger) ItemCount() int {
	count := 0
	for _, e := range l.entries {
		count += e.Quantity
	}

	return count
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy; callers never get a live handle into the ledger.
func (l *Ledger) Entries() []models.CartEntry {
	out := make([]models.CartEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

func (l *Ledger) index(productID, variantSKU string) int {
	for i, e := range l.entries {
		if e.Product.ID == productID && e.Variant.SKU == variantSKU {
			return i
		}
	}

	return -1
}
