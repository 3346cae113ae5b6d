package salesbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Headers lists the persisted column names, in table order.
var Headers = []string{
	"date", "goods_name", "weight", "unit_cost", "total_cost",
	"platform", "source", "sell_price", "profit_before_refund",
	"refund_amount", "profit_after_refund",
}

// Record is one sale transaction. It is identified by its slot (the row it
// occupies in the data region), which is stable for the record's lifetime.
//
// All fields except the refund pair are immutable after creation. TotalCost,
// ProfitBefore and ProfitAfter are derived: they are always computed from the
// other fields at write time, never set independently.
type Record struct {
	Date         Date
	Goods        string
	Weight       decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	Platform     string
	Source       string
	SellPrice    decimal.Decimal
	ProfitBefore decimal.Decimal
	Refund       decimal.Decimal
	Refunded     bool // true once a refund has been applied
	ProfitAfter  decimal.Decimal

	// missing lists required cells found empty when the record was decoded
	// from a hand-edited file. Records created through NewRecord are always
	// complete.
	missing []string
}

// Incomplete reports whether the record lacks fields that derived-field
// recomputation depends on.
func (r *Record) Incomplete() bool { return len(r.missing) > 0 }

// Sale is the caller-supplied input of a new record. Derived fields are
// computed from it at creation.
type Sale struct {
	Date      Date // defaults to today when zero
	Goods     string
	Weight    decimal.Decimal
	UnitCost  decimal.Decimal
	Platform  string
	Source    string
	SellPrice decimal.Decimal
}

// NewRecord builds a fully-populated record from a sale, computing all
// derived fields. It returns ErrInvalidInput if weight or unit cost is
// negative.
func NewRecord(s Sale) (*Record, error) {
	total, err := TotalCost(s.Weight, s.UnitCost)
	if err != nil {
		return nil, err
	}
	on := s.Date
	if on.IsZero() {
		on = Today()
	}
	profit := ProfitBeforeRefund(s.SellPrice, total)
	return &Record{
		Date:         on,
		Goods:        s.Goods,
		Weight:       s.Weight,
		UnitCost:     s.UnitCost,
		TotalCost:    total,
		Platform:     s.Platform,
		Source:       s.Source,
		SellPrice:    s.SellPrice,
		ProfitBefore: profit,
		ProfitAfter:  ProfitAfterRefund(profit, decimal.Decimal{}, false),
	}, nil
}

func (r *Record) String() string {
	return fmt.Sprintf("%s %s %sg @%s on %s", r.Date, r.Goods, r.Weight, r.SellPrice, r.Platform)
}

// Criteria is a set of optional search fields combined with logical AND.
// An empty field is skipped (it imposes no restriction); a Criteria with all
// fields empty matches every occupied slot.
type Criteria struct {
	Goods     string
	Platform  string
	Source    string
	SellPrice string
}

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool {
	return c.Goods == "" && c.Platform == "" && c.Source == "" && c.SellPrice == ""
}

// Matches reports whether the record satisfies every present field of the
// criteria. Comparison is on stringified values; unset stored fields compare
// as the empty string.
func (c Criteria) Matches(r *Record) bool {
	if c.Goods != "" && c.Goods != r.Goods {
		return false
	}
	if c.Platform != "" && c.Platform != r.Platform {
		return false
	}
	if c.Source != "" && c.Source != r.Source {
		return false
	}
	if c.SellPrice != "" {
		want, err := decimal.NewFromString(strings.TrimSpace(c.SellPrice))
		if err != nil || !want.Equal(r.SellPrice) {
			return false
		}
	}
	return true
}
