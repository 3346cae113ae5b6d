package salesbook

import (
	"errors"
	"testing"
)

// testConfig returns a small layout so a full ledger is cheap to build.
func testConfig() Config {
	return Config{
		FilePath:     "salesbook.csv",
		TableName:    "sales",
		DataStartRow: 2,
		DataEndRow:   6,
		SummaryRow:   7,
	}
}

func testSale(goods string) Sale {
	return Sale{
		Date:      MustParseDate("2026-08-29"),
		Goods:     goods,
		Weight:    d("10"),
		UnitCost:  d("2.0"),
		Platform:  "bazaar",
		Source:    "importer",
		SellPrice: d("25"),
	}
}

func TestBook_Create(t *testing.T) {
	b := NewBook(testConfig())

	slot, rec, err := b.Create(testSale("ring"))
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if slot != 2 {
		t.Errorf("Create() slot = %d, want 2 (first slot of the data region)", slot)
	}
	if !rec.TotalCost.Equal(d("20")) {
		t.Errorf("TotalCost = %s, want 20", rec.TotalCost)
	}
	if !rec.ProfitBefore.Equal(d("5")) {
		t.Errorf("ProfitBefore = %s, want 5", rec.ProfitBefore)
	}
	if !rec.ProfitAfter.Equal(d("5")) {
		t.Errorf("ProfitAfter = %s, want 5", rec.ProfitAfter)
	}
	if rec.Refunded {
		t.Errorf("a fresh record must have no refund applied")
	}

	// The second record takes the next slot.
	slot2, _, err := b.Create(testSale("necklace"))
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if slot2 != 3 {
		t.Errorf("Create() slot = %d, want 3", slot2)
	}
}

func TestBook_Create_ledgerFull(t *testing.T) {
	cfg := testConfig()
	b := NewBook(cfg)
	for i := 0; i < cfg.Capacity(); i++ {
		if _, _, err := b.Create(testSale("ring")); err != nil {
			t.Fatalf("Create() %d unexpected error: %v", i, err)
		}
	}
	if _, _, err := b.Create(testSale("one too many")); !errors.Is(err, ErrLedgerFull) {
		t.Fatalf("Create() on a full ledger error = %v, want ErrLedgerFull", err)
	}
}

func TestBook_Create_invalidInput(t *testing.T) {
	b := NewBook(testConfig())
	sale := testSale("ring")
	sale.Weight = d("-1")
	if _, _, err := b.Create(sale); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Create() with negative weight error = %v, want ErrInvalidInput", err)
	}
	// The failed create must not have claimed the slot.
	if slot, _ := b.FreeSlot(); slot != 2 {
		t.Errorf("FreeSlot() after failed create = %d, want 2", slot)
	}
}

func TestBook_Record(t *testing.T) {
	b := NewBook(testConfig())
	slot, _, err := b.Create(testSale("ring"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Record(slot); err != nil {
		t.Errorf("Record(%d) unexpected error: %v", slot, err)
	}
	if _, err := b.Record(slot + 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Record() of empty slot error = %v, want ErrNotFound", err)
	}
	if _, err := b.Record(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Record() of header row error = %v, want ErrNotFound", err)
	}
	if _, err := b.Record(b.SummaryRow()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Record() of summary row error = %v, want ErrNotFound", err)
	}
}

func TestBook_UpdateRefund(t *testing.T) {
	testCases := []struct {
		name            string
		refund          string
		wantProfitAfter string
	}{
		{name: "partial refund", refund: "3.0", wantProfitAfter: "2"},
		{name: "refund exceeding profit clamps to zero", refund: "10.0", wantProfitAfter: "0"},
		{name: "zero refund", refund: "0", wantProfitAfter: "5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBook(testConfig())
			slot, _, err := b.Create(testSale("ring"))
			if err != nil {
				t.Fatal(err)
			}
			rec, err := b.UpdateRefund(slot, d(tc.refund))
			if err != nil {
				t.Fatalf("UpdateRefund() unexpected error: %v", err)
			}
			if !rec.Refunded || !rec.Refund.Equal(d(tc.refund)) {
				t.Errorf("Refund = %s (refunded=%v), want %s", rec.Refund, rec.Refunded, tc.refund)
			}
			if !rec.ProfitAfter.Equal(d(tc.wantProfitAfter)) {
				t.Errorf("ProfitAfter = %s, want %s", rec.ProfitAfter, tc.wantProfitAfter)
			}
			if !rec.ProfitBefore.Equal(d("5")) {
				t.Errorf("ProfitBefore = %s, must not change on refund", rec.ProfitBefore)
			}
		})
	}
}

func TestBook_UpdateRefund_idempotent(t *testing.T) {
	b := NewBook(testConfig())
	slot, _, err := b.Create(testSale("ring"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := b.UpdateRefund(slot, d("3"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.UpdateRefund(slot, d("3"))
	if err != nil {
		t.Fatal(err)
	}
	// A repeated refund overwrites, it does not accumulate.
	if !second.Refund.Equal(first.Refund) || !second.ProfitAfter.Equal(first.ProfitAfter) {
		t.Errorf("second refund = %s/%s, want same as first %s/%s",
			second.Refund, second.ProfitAfter, first.Refund, first.ProfitAfter)
	}
}

func TestBook_UpdateRefund_errors(t *testing.T) {
	b := NewBook(testConfig())
	slot, _, err := b.Create(testSale("ring"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.UpdateRefund(slot+1, d("1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateRefund() on empty slot error = %v, want ErrNotFound", err)
	}
	if _, err := b.UpdateRefund(slot, d("-1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("UpdateRefund() with negative amount error = %v, want ErrInvalidInput", err)
	}

	// A record decoded without its sell price cannot recompute profits.
	b.slots[1] = &Record{Date: MustParseDate("2026-08-29"), missing: []string{"sell_price"}}
	if _, err := b.UpdateRefund(3, d("1")); !errors.Is(err, ErrIncompleteRecord) {
		t.Errorf("UpdateRefund() on incomplete record error = %v, want ErrIncompleteRecord", err)
	}
}

func TestBook_Summary(t *testing.T) {
	b := NewBook(testConfig())
	sum := b.Summary()
	if sum.Records != 0 || !sum.TotalCost.IsZero() {
		t.Fatalf("empty book summary = %+v, want zeros", sum)
	}

	slot, _, err := b.Create(testSale("ring")) // cost 20, profit 5
	if err != nil {
		t.Fatal(err)
	}
	sale := testSale("necklace")
	sale.SellPrice = d("15") // cost 20, profit -5
	if _, _, err := b.Create(sale); err != nil {
		t.Fatal(err)
	}

	sum = b.Summary()
	if sum.Records != 2 {
		t.Errorf("Records = %d, want 2", sum.Records)
	}
	if !sum.TotalCost.Equal(d("40")) {
		t.Errorf("TotalCost = %s, want 40", sum.TotalCost)
	}
	if !sum.ProfitBefore.Equal(d("0")) {
		t.Errorf("ProfitBefore = %s, want 0 (5 + -5)", sum.ProfitBefore)
	}
	if !sum.ProfitAfter.Equal(d("5")) {
		t.Errorf("ProfitAfter = %s, want 5 (5 + clamp(-5))", sum.ProfitAfter)
	}

	// The summary is a pure function of the data region: a refund moves it.
	if _, err := b.UpdateRefund(slot, d("3")); err != nil {
		t.Fatal(err)
	}
	sum = b.Summary()
	if !sum.ProfitAfter.Equal(d("2")) {
		t.Errorf("ProfitAfter after refund = %s, want 2", sum.ProfitAfter)
	}
	if !sum.ProfitBefore.Equal(d("0")) {
		t.Errorf("ProfitBefore after refund = %s, must not change", sum.ProfitBefore)
	}
}

func TestBook_All_yieldsCopies(t *testing.T) {
	b := NewBook(testConfig())
	if _, _, err := b.Create(testSale("ring")); err != nil {
		t.Fatal(err)
	}
	for _, r := range b.All() {
		r.Goods = "tampered"
	}
	rec, err := b.Record(2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Goods != "ring" {
		t.Errorf("Goods = %q, iteration must not expose internal state", rec.Goods)
	}
}
