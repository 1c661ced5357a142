package inventory

import "kardex/internal/core/id"

// QuantityChange is one lot adjustment produced by a debit or credit plan.
type QuantityChange struct {
	LotID       id.ID
	NewQuantity int64
}

// TotalOnHand sums on-hand quantity across lots.
func TotalOnHand(lots []Lot) int64 {
	var total int64
	for _, lot := range lots {
		total += lot.OnHandQuantity
	}
	return total
}

// PlanDebit walks lots in the given order and takes from each until qty is
// consumed, never driving a single lot negative. The ordering encodes the
// policy: FIFO for sales, largest-first for replenishments.
//
// The caller must have verified qty <= TotalOnHand(lots) under the same
// row locks; PlanDebit panics on overdraw as that would be a broken guard.
func PlanDebit(lots []Lot, qty int64) []QuantityChange {
	if qty < 0 {
		panic("inventory: negative debit")
	}

	var changes []QuantityChange
	remaining := qty
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.OnHandQuantity
		if take > remaining {
			take = remaining
		}
		if take == 0 {
			continue
		}
		changes = append(changes, QuantityChange{
			LotID:       lot.ID,
			NewQuantity: lot.OnHandQuantity - take,
		})
		remaining -= take
	}
	if remaining > 0 {
		panic("inventory: debit exceeds locked on-hand total")
	}
	return changes
}
