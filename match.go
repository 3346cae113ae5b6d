package salesbook

import "github.com/shopspring/decimal"

// weightTolerance is the absolute difference under which two weights are
// considered equal. Weights are operator-typed decimals, so exact equality
// would miss re-entered values that differ in a far decimal place.
var weightTolerance = decimal.New(1, -5) // 1e-5

// MatchWeight returns the slots whose stored weight differs from target by
// less than 1e-5, in increasing slot order. Empty slots never match; the
// summary row is not part of the data region and is never considered.
//
// An empty result is not an error here: the caller decides whether zero
// matches is a NoMatch outcome (see Refund.MatchWeight).
func (b *Book) MatchWeight(target decimal.Decimal) []int {
	var matches []int
	for slot, r := range b.All() {
		if r.Weight.Sub(target).Abs().LessThan(weightTolerance) {
			matches = append(matches, slot)
		}
	}
	return matches
}

// MatchFields returns the slots whose records satisfy every present field of
// the criteria, in increasing slot order. Empty criteria fields are skipped
// entirely, so a criteria with no field set imposes no restriction and
// matches every occupied slot.
func (b *Book) MatchFields(c Criteria) []int {
	var matches []int
	for slot, r := range b.All() {
		if c.Matches(r) {
			matches = append(matches, slot)
		}
	}
	return matches
}
