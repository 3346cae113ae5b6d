package salesbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// summaryLabel is the fixed label of the summary row's first cell.
const summaryLabel = "total"

// Column positions (0-based) inside a row. See Headers for the full order.
const (
	colDate = iota
	colGoods
	colWeight
	colUnitCost
	colTotalCost
	colPlatform
	colSource
	colSellPrice
	colProfitBefore
	colRefund
	colProfitAfter
	columnCount
)

// EncodeBook writes the book as a CSV table: the header row, the full data
// region (empty slots persist as blank rows so that slot numbers and file
// row numbers stay aligned), and the summary row with freshly recomputed
// aggregates. Derived cells always hold literal computed values, never
// formulas.
func EncodeBook(w io.Writer, b *Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("could not write header row: %w", err)
	}

	blank := make([]string, columnCount)
	for row := 2; row < b.start; row++ {
		if err := cw.Write(blank); err != nil {
			return fmt.Errorf("could not write row %d: %w", row, err)
		}
	}
	for i, r := range b.slots {
		row := b.start + i
		if err := cw.Write(encodeRow(r)); err != nil {
			return fmt.Errorf("could not write row %d: %w", row, err)
		}
	}
	for row := b.end + 1; row < b.summaryRow; row++ {
		if err := cw.Write(blank); err != nil {
			return fmt.Errorf("could not write row %d: %w", row, err)
		}
	}

	s := b.Summary()
	srow := make([]string, columnCount)
	srow[colDate] = summaryLabel
	srow[colTotalCost] = s.TotalCost.String()
	srow[colProfitBefore] = s.ProfitBefore.String()
	srow[colProfitAfter] = s.ProfitAfter.String()
	if err := cw.Write(srow); err != nil {
		return fmt.Errorf("could not write summary row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func encodeRow(r *Record) []string {
	cells := make([]string, columnCount)
	if r == nil {
		return cells
	}
	cells[colDate] = r.Date.String()
	cells[colGoods] = r.Goods
	cells[colWeight] = r.Weight.String()
	cells[colUnitCost] = r.UnitCost.String()
	cells[colTotalCost] = r.TotalCost.String()
	cells[colPlatform] = r.Platform
	cells[colSource] = r.Source
	cells[colSellPrice] = r.SellPrice.String()
	cells[colProfitBefore] = r.ProfitBefore.String()
	if r.Refunded {
		cells[colRefund] = r.Refund.String()
	}
	cells[colProfitAfter] = r.ProfitAfter.String()
	return cells
}

// DecodeBook reads a CSV table previously written by EncodeBook (or by the
// historical spreadsheet this layout comes from) into a book with the region
// layout of cfg. Data rows with an empty date cell are empty slots. Summary
// cells are ignored: aggregates are recomputed from the data region, never
// trusted from the file.
func DecodeBook(r io.Reader, cfg Config) (*Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows are padded below; trailing short rows are fine
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table is empty, missing header row")
	}
	header := pad(rows[0])
	for i, name := range Headers {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, fmt.Errorf("header column %d is %q, want %q", i+1, header[i], name)
		}
	}

	b := NewBook(cfg)
	for i := 1; i < len(rows); i++ {
		row := i + 1 // file row number, 1-based
		if row < cfg.DataStartRow || row > cfg.DataEndRow {
			continue // preamble, gap or summary row
		}
		cells := pad(rows[i])
		if strings.TrimSpace(cells[colDate]) == "" {
			continue // empty slot
		}
		rec, err := decodeRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := b.put(row, rec); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func pad(cells []string) []string {
	if len(cells) >= columnCount {
		return cells
	}
	padded := make([]string, columnCount)
	copy(padded, cells)
	return padded
}

// decodeRow rebuilds a record from its cells. Derived cells hold literal
// values since this tool took over the file, but legacy rows may carry
// spreadsheet formulas or blanks there: those are recomputed from the input
// fields when possible, and otherwise leave the record flagged incomplete.
func decodeRow(cells []string) (*Record, error) {
	rec := &Record{}

	var err error
	if rec.Date, err = ParseDate(strings.TrimSpace(cells[colDate])); err != nil {
		return nil, err
	}
	rec.Goods = cells[colGoods]
	rec.Platform = cells[colPlatform]
	rec.Source = cells[colSource]

	weight, wOK, err := decodeCell(cells[colWeight])
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	unitCost, uOK, err := decodeCell(cells[colUnitCost])
	if err != nil {
		return nil, fmt.Errorf("unit_cost: %w", err)
	}
	sellPrice, sOK, err := decodeCell(cells[colSellPrice])
	if err != nil {
		return nil, fmt.Errorf("sell_price: %w", err)
	}
	rec.Weight, rec.UnitCost, rec.SellPrice = weight, unitCost, sellPrice
	if !wOK {
		rec.missing = append(rec.missing, "weight")
	}
	if !uOK {
		rec.missing = append(rec.missing, "unit_cost")
	}
	if !sOK {
		rec.missing = append(rec.missing, "sell_price")
	}

	totalCost, tOK, err := decodeCell(cells[colTotalCost])
	if err != nil {
		return nil, fmt.Errorf("total_cost: %w", err)
	}
	switch {
	case tOK:
		rec.TotalCost = totalCost
	case wOK && uOK:
		rec.TotalCost = weight.Mul(unitCost)
	default:
		rec.missing = append(rec.missing, "total_cost")
	}

	refund, rOK, err := decodeCell(cells[colRefund])
	if err != nil {
		return nil, fmt.Errorf("refund_amount: %w", err)
	}
	rec.Refund, rec.Refunded = refund, rOK

	profitBefore, pOK, err := decodeCell(cells[colProfitBefore])
	if err != nil {
		return nil, fmt.Errorf("profit_before_refund: %w", err)
	}
	if pOK {
		rec.ProfitBefore = profitBefore
	} else if sOK && !rec.Incomplete() {
		rec.ProfitBefore = ProfitBeforeRefund(sellPrice, rec.TotalCost)
	}

	profitAfter, aOK, err := decodeCell(cells[colProfitAfter])
	if err != nil {
		return nil, fmt.Errorf("profit_after_refund: %w", err)
	}
	if aOK {
		rec.ProfitAfter = profitAfter
	} else if !rec.Incomplete() {
		rec.ProfitAfter = ProfitAfterRefund(rec.ProfitBefore, rec.Refund, rec.Refunded)
	}

	return rec, nil
}

// decodeCell parses a numeric cell. A blank cell or a legacy formula cell
// (leading '=') yields ok=false without error; anything else non-numeric is
// an error.
func decodeCell(cell string) (d decimal.Decimal, ok bool, err error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.HasPrefix(cell, "=") {
		return decimal.Decimal{}, false, nil
	}
	d, err = decimal.NewFromString(cell)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("cell %q is not a number", cell)
	}
	return d, true, nil
}
