package salesbook

import (
	"errors"
	"testing"
)

func TestBook_FreeSlot(t *testing.T) {
	cfg := testConfig() // region [2,6]

	t.Run("empty book allocates the first slot", func(t *testing.T) {
		b := NewBook(cfg)
		slot, err := b.FreeSlot()
		if err != nil {
			t.Fatalf("FreeSlot() unexpected error: %v", err)
		}
		if slot != 2 {
			t.Errorf("FreeSlot() = %d, want 2", slot)
		}
	})

	t.Run("first gap wins over append", func(t *testing.T) {
		b := NewBook(cfg)
		// Occupy slots 2, 4 and 5, leaving a gap at 3 (as a hand-edited or
		// legacy file can).
		r, err := NewRecord(testSale("ring"))
		if err != nil {
			t.Fatal(err)
		}
		for _, slot := range []int{2, 4, 5} {
			b.slots[slot-2] = r
		}
		slot, err := b.FreeSlot()
		if err != nil {
			t.Fatalf("FreeSlot() unexpected error: %v", err)
		}
		if slot != 3 {
			t.Errorf("FreeSlot() = %d, want the gap at 3", slot)
		}
	})

	t.Run("full region", func(t *testing.T) {
		b := NewBook(cfg)
		r, err := NewRecord(testSale("ring"))
		if err != nil {
			t.Fatal(err)
		}
		for i := range b.slots {
			b.slots[i] = r
		}
		if _, err := b.FreeSlot(); !errors.Is(err, ErrLedgerFull) {
			t.Errorf("FreeSlot() on full region error = %v, want ErrLedgerFull", err)
		}
	})

	t.Run("allocation does not reserve", func(t *testing.T) {
		b := NewBook(cfg)
		first, err := b.FreeSlot()
		if err != nil {
			t.Fatal(err)
		}
		again, err := b.FreeSlot()
		if err != nil {
			t.Fatal(err)
		}
		if first != again {
			t.Errorf("FreeSlot() twice = %d then %d, inspection must not claim the slot", first, again)
		}
	})
}
