// Package renderer renders ledger values as markdown, ready to be printed
// through a terminal markdown renderer.
//
// Numeric cells are rounded to two decimals for display only; stored values
// keep their full precision.
package renderer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/etnz/salesbook"
)

var recordHeader = []string{
	"Slot", "Date", "Goods", "Weight", "Unit Cost", "Total Cost",
	"Platform", "Source", "Sell Price", "Profit", "Refund", "Adj. Profit",
}

// Records renders the occupied rows as a markdown table.
func Records(title string, rows []salesbook.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(rows) == 0 {
		b.WriteString("No records.\n")
		return b.String()
	}
	writeHeader(&b)
	for _, row := range rows {
		writeRecord(&b, row.Slot, row.Record)
	}
	return b.String()
}

// Record renders a single record as a one-row markdown table.
func Record(title string, slot int, r *salesbook.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	writeHeader(&b)
	writeRecord(&b, slot, r)
	return b.String()
}

// Candidates renders a numbered candidate list for refund selection. The
// numbering is the selection index, not the slot.
func Candidates(rows []salesbook.Row) string {
	var b strings.Builder
	b.WriteString("# Matching records\n\n")
	for i, row := range rows {
		r := row.Record
		fmt.Fprintf(&b, "%d. slot %d | %s | %s | platform %s | sell price %s | profit %s\n",
			i+1, row.Slot, r.Date, r.Goods, r.Platform, dec(r.SellPrice), dec(r.ProfitBefore))
	}
	return b.String()
}

// Summary renders the ledger aggregates.
func Summary(table string, s salesbook.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Summary of %q\n\n", table)
	fmt.Fprintf(&b, "| Records | Total Cost | Profit Before Refund | Profit After Refund |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", s.Records, dec(s.TotalCost), dec(s.ProfitBefore), dec(s.ProfitAfter))
	return b.String()
}

func writeHeader(b *strings.Builder) {
	b.WriteString("| " + strings.Join(recordHeader, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---:|", len(recordHeader)) + "\n")
}

func writeRecord(b *strings.Builder, slot int, r *salesbook.Record) {
	refund := ""
	if r.Refunded {
		refund = dec(r.Refund)
	}
	fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
		slot, r.Date, r.Goods, dec(r.Weight), dec(r.UnitCost), dec(r.TotalCost),
		r.Platform, r.Source, dec(r.SellPrice), dec(r.ProfitBefore), refund, dec(r.ProfitAfter))
}

// dec formats a decimal with two-decimal display rounding.
func dec(d decimal.Decimal) string { return d.StringFixed(2) }
