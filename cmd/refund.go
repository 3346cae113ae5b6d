package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/subcommands"

	"github.com/etnz/salesbook"
	"github.com/etnz/salesbook/renderer"
)

type refundCmd struct {
	weight    string
	goods     string
	platform  string
	source    string
	sellPrice string
	selection int
	amount    string
}

func (*refundCmd) Name() string     { return "refund" }
func (*refundCmd) Synopsis() string { return "apply a refund to a recorded sale" }
func (*refundCmd) Usage() string {
	return `sbk refund [-weight <grams> | -goods <name> -platform <name> -source <name> -sell-price <price>] [-select <n>] [-amount <amount>]

  Finds candidate records by weight (tolerant match) or by any combination
  of goods name, platform, source and sell price (empty criteria fields are
  skipped), applies a refund amount to the selected candidate, and rewrites
  its refund-adjusted profit and the summary row. A second refund on the
  same record overwrites the first. With no flags, the steps are prompted
  interactively.
`
}

func (c *refundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weight, "weight", "", "Weight to search for (tolerant match).")
	f.StringVar(&c.goods, "goods", "", "Goods name criteria.")
	f.StringVar(&c.platform, "platform", "", "Platform criteria.")
	f.StringVar(&c.source, "source", "", "Source criteria.")
	f.StringVar(&c.sellPrice, "sell-price", "", "Sell price criteria.")
	f.IntVar(&c.selection, "select", 0, "1-based position in the match list (defaults to 1 when a single record matches).")
	f.StringVar(&c.amount, "amount", "", "Refund amount.")
}

func (c *refundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	interactive := c.weight == "" && c.criteria().IsEmpty() && c.amount == ""

	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var updated *salesbook.Record
	var slot int
	err = store.Update(func(b *salesbook.Book) error {
		t := salesbook.NewRefund(b)

		if interactive {
			if err := c.promptCriteria(); err != nil {
				return err
			}
		}

		var rows []salesbook.Row
		var err error
		if c.weight != "" {
			target, perr := parseAmount("weight", c.weight)
			if perr != nil {
				return perr
			}
			rows, err = t.MatchWeight(target)
		} else {
			rows, err = t.Match(c.criteria())
		}
		if err != nil {
			return err
		}

		n := c.selection
		if interactive {
			printMarkdown(renderer.Candidates(rows))
			if n, err = promptSelection(rows); err != nil {
				return err
			}
		} else if n == 0 {
			if len(rows) > 1 {
				fmt.Fprint(os.Stderr, renderer.Candidates(rows))
				return fmt.Errorf("%w: %d records match, pick one with -select", salesbook.ErrInvalidSelection, len(rows))
			}
			n = 1
		}
		rec, err := t.Select(n)
		if err != nil {
			return err
		}

		if interactive {
			if err := c.promptAmount(rec); err != nil {
				return err
			}
		}
		amount, err := parseAmount("refund amount", c.amount)
		if err != nil {
			return err
		}

		if updated, err = t.Apply(amount); err != nil {
			return err
		}
		slot = rows[n-1].Slot
		return nil
	})
	if err != nil {
		if errors.Is(err, salesbook.ErrNoMatch) {
			fmt.Fprintln(os.Stderr, "No record matched the given criteria.")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Record("Refund applied", slot, updated))
	return subcommands.ExitSuccess
}

func (c *refundCmd) criteria() salesbook.Criteria {
	return salesbook.Criteria{
		Goods:     strings.TrimSpace(c.goods),
		Platform:  strings.TrimSpace(c.platform),
		Source:    strings.TrimSpace(c.source),
		SellPrice: strings.TrimSpace(c.sellPrice),
	}
}

// promptCriteria asks for a weight first; left empty, it falls back to the
// multi-field criteria form.
func (c *refundCmd) promptCriteria() error {
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Weight to search for (grams)").
			Description("Leave empty to search by goods, platform, source or sell price instead.").
			Value(&c.weight).
			Validate(numberOrEmpty),
	)).Run()
	if err != nil {
		return err
	}
	if c.weight != "" {
		return nil
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Goods name").Value(&c.goods),
		huh.NewInput().Title("Platform").Value(&c.platform),
		huh.NewInput().Title("Source").Value(&c.source),
		huh.NewInput().Title("Sell price").Value(&c.sellPrice).Validate(numberOrEmpty),
	)).Run()
}

func promptSelection(rows []salesbook.Row) (int, error) {
	options := make([]huh.Option[int], 0, len(rows))
	for i, row := range rows {
		label := fmt.Sprintf("%d. slot %d | %s | %s | %s", i+1, row.Slot, row.Record.Date, row.Record.Goods, row.Record.Platform)
		options = append(options, huh.NewOption(label, i+1))
	}
	var n int
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title("Select the record to refund").Options(options...).Value(&n),
	)).Run()
	return n, err
}

func (c *refundCmd) promptAmount(rec *salesbook.Record) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Refund amount (profit before refund: %s)", rec.ProfitBefore.StringFixed(2))).
			Value(&c.amount).
			Validate(isNumber),
	)).Run()
}

func numberOrEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return isNumber(s)
}
