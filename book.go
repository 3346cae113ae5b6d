package salesbook

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Book is the in-memory form of the ledger: a fixed-capacity sequence of
// slots plus the summary position. A slot holds either a fully-populated
// record or nothing; writes are always whole-record, so readers never see a
// partially-written row.
//
// Slots are addressed by their file row number, [DataStartRow, DataEndRow].
// The summary row is not a slot: it is excluded from every record operation.
type Book struct {
	start, end int
	summaryRow int
	slots      []*Record // index 0 holds the record of row `start`
}

// NewBook creates an empty book with the region layout of cfg.
func NewBook(cfg Config) *Book {
	return &Book{
		start:      cfg.DataStartRow,
		end:        cfg.DataEndRow,
		summaryRow: cfg.SummaryRow,
		slots:      make([]*Record, cfg.Capacity()),
	}
}

// Start returns the first slot of the data region.
func (b *Book) Start() int { return b.start }

// End returns the last slot of the data region.
func (b *Book) End() int { return b.end }

// SummaryRow returns the row holding the aggregates.
func (b *Book) SummaryRow() int { return b.summaryRow }

// Len returns the number of occupied slots.
func (b *Book) Len() int {
	n := 0
	for _, r := range b.slots {
		if r != nil {
			n++
		}
	}
	return n
}

// Record returns a copy of the record held by the given slot, or ErrNotFound
// if the slot is empty or outside the data region.
func (b *Book) Record(slot int) (*Record, error) {
	if slot < b.start || slot > b.end {
		return nil, fmt.Errorf("%w: slot %d outside data region [%d,%d]", ErrNotFound, slot, b.start, b.end)
	}
	held := b.slots[slot-b.start]
	if held == nil {
		return nil, fmt.Errorf("%w: slot %d is empty", ErrNotFound, slot)
	}
	r := *held
	return &r, nil
}

// All iterates over the occupied slots in increasing slot order, yielding the
// slot number and a copy of its record.
func (b *Book) All() iter.Seq2[int, *Record] {
	return func(yield func(int, *Record) bool) {
		for i, held := range b.slots {
			if held == nil {
				continue
			}
			r := *held
			if !yield(b.start+i, &r) {
				return
			}
		}
	}
}

// Create allocates the first free slot, derives the dependent fields, and
// writes the whole record. It returns the claimed slot. ErrLedgerFull is
// returned when the data region has no empty slot; ErrInvalidInput when the
// sale's numbers are out of range.
func (b *Book) Create(s Sale) (int, *Record, error) {
	slot, err := b.FreeSlot()
	if err != nil {
		return 0, nil, err
	}
	rec, err := NewRecord(s)
	if err != nil {
		return 0, nil, err
	}
	b.slots[slot-b.start] = rec
	r := *rec
	return slot, &r, nil
}

// UpdateRefund records a refund amount against the record of the given slot
// and recomputes its refund-adjusted profit. A second refund overwrites the
// first, it does not accumulate. The amount must be ≥ 0 (refunds larger than
// the sale are accepted; the adjusted profit clamps at zero).
//
// Returns ErrNotFound for an empty slot and ErrIncompleteRecord when the
// stored record lacks the fields the recompute depends on.
func (b *Book) UpdateRefund(slot int, amount decimal.Decimal) (*Record, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: refund amount %s is negative", ErrInvalidInput, amount)
	}
	if slot < b.start || slot > b.end {
		return nil, fmt.Errorf("%w: slot %d outside data region [%d,%d]", ErrNotFound, slot, b.start, b.end)
	}
	held := b.slots[slot-b.start]
	if held == nil {
		return nil, fmt.Errorf("%w: slot %d is empty", ErrNotFound, slot)
	}
	if held.Incomplete() {
		return nil, fmt.Errorf("%w: slot %d is missing %v", ErrIncompleteRecord, slot, held.missing)
	}
	held.Refund = amount
	held.Refunded = true
	held.ProfitAfter = ProfitAfterRefund(held.ProfitBefore, held.Refund, true)
	r := *held
	return &r, nil
}

// Summary holds the ledger-wide aggregates of the summary row. It is always
// a pure function of the populated data region, recomputed on demand rather
// than incrementally maintained.
type Summary struct {
	Records      int
	TotalCost    decimal.Decimal
	ProfitBefore decimal.Decimal
	ProfitAfter  decimal.Decimal
}

// Summary recomputes the aggregates over the populated slots.
func (b *Book) Summary() Summary {
	s := Summary{}
	for _, r := range b.slots {
		if r == nil {
			continue
		}
		s.Records++
		s.TotalCost = s.TotalCost.Add(r.TotalCost)
		s.ProfitBefore = s.ProfitBefore.Add(r.ProfitBefore)
		s.ProfitAfter = s.ProfitAfter.Add(r.ProfitAfter)
	}
	return s
}

// put places a decoded record in its slot. Decoding only.
func (b *Book) put(slot int, r *Record) error {
	if slot < b.start || slot > b.end {
		return fmt.Errorf("slot %d outside data region [%d,%d]", slot, b.start, b.end)
	}
	b.slots[slot-b.start] = r
	return nil
}
