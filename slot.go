package salesbook

import "fmt"

// FreeSlot returns the lowest-indexed empty slot of the data region, or
// ErrLedgerFull when every slot is occupied.
//
// This is a deliberate first-gap policy rather than strict append: the data
// region is a pre-reserved fixed-capacity block, and scanning for the first
// empty date cell tolerates a fixed-size backing table without resizing.
// Allocation only inspects; the slot is claimed by the whole-record write
// that follows, so no other allocation may interleave between the two (the
// store's exclusive file access guarantees that).
func (b *Book) FreeSlot() (int, error) {
	for i, r := range b.slots {
		if r == nil {
			return b.start + i, nil
		}
	}
	return 0, fmt.Errorf("%w: no empty slot in [%d,%d]", ErrLedgerFull, b.start, b.end)
}
