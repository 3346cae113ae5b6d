package salesbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Refund drives one refund transaction over a book: match candidates, select
// one by its position in the match list, apply an amount. Each step can
// terminate the transaction; nothing is written before Apply succeeds, so a
// failed refund leaves the record untouched.
type Refund struct {
	book     *Book
	matches  []int
	selected int // slot of the chosen candidate, 0 until Select
}

// NewRefund starts a refund transaction on the book.
func NewRefund(b *Book) *Refund {
	return &Refund{book: b}
}

// MatchWeight collects candidates by tolerant weight lookup. It returns
// ErrNoMatch when no record carries that weight.
func (t *Refund) MatchWeight(target decimal.Decimal) ([]Row, error) {
	return t.collect(t.book.MatchWeight(target))
}

// Match collects candidates by multi-field criteria. It returns ErrNoMatch
// when no record satisfies them.
func (t *Refund) Match(c Criteria) ([]Row, error) {
	return t.collect(t.book.MatchFields(c))
}

func (t *Refund) collect(slots []int) ([]Row, error) {
	t.matches = slots
	t.selected = 0
	if len(slots) == 0 {
		return nil, ErrNoMatch
	}
	rows := make([]Row, 0, len(slots))
	for _, slot := range slots {
		r, err := t.book.Record(slot)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Slot: slot, Record: r})
	}
	return rows, nil
}

// Select picks the n-th candidate (1-based, in the order the match returned
// them) and returns its record. Out-of-range n is ErrInvalidSelection.
func (t *Refund) Select(n int) (*Record, error) {
	if n < 1 || n > len(t.matches) {
		return nil, fmt.Errorf("%w: %d is not in [1,%d]", ErrInvalidSelection, n, len(t.matches))
	}
	t.selected = t.matches[n-1]
	return t.book.Record(t.selected)
}

// Apply writes the refund amount against the selected record and returns the
// updated record, with both profits recomputed. This is the only mutating
// step of the transaction.
func (t *Refund) Apply(amount decimal.Decimal) (*Record, error) {
	if t.selected == 0 {
		return nil, fmt.Errorf("%w: no candidate selected", ErrInvalidSelection)
	}
	return t.book.UpdateRefund(t.selected, amount)
}
