package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/subcommands"

	"github.com/etnz/salesbook"
	"github.com/etnz/salesbook/renderer"
)

type addCmd struct {
	goods     string
	weight    string
	unitCost  string
	platform  string
	source    string
	sellPrice string
	date      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new sale in the ledger" }
func (*addCmd) Usage() string {
	return `sbk add [-goods <name> -weight <grams> -unit-cost <price> -platform <name> -source <name> -sell-price <price>] [-date <date>]

  Records a sale in the first free slot of the ledger. Total cost and both
  profit fields are computed and persisted with the record, and the summary
  row is updated. With no flags, the fields are prompted interactively.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goods, "goods", "", "Goods name.")
	f.StringVar(&c.weight, "weight", "", "Weight in grams.")
	f.StringVar(&c.unitCost, "unit-cost", "", "Cost per gram.")
	f.StringVar(&c.platform, "platform", "", "Sale platform.")
	f.StringVar(&c.source, "source", "", "Goods source.")
	f.StringVar(&c.sellPrice, "sell-price", "", "Sell price.")
	f.StringVar(&c.date, "date", "", "Sale date (defaults to today).")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.goods == "" && c.weight == "" && c.sellPrice == "" {
		if err := c.prompt(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	sale := salesbook.Sale{Goods: c.goods, Platform: c.platform, Source: c.source}
	var err error
	if sale.Weight, err = parseAmount("weight", c.weight); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if sale.UnitCost, err = parseAmount("unit cost", c.unitCost); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if sale.SellPrice, err = parseAmount("sell price", c.sellPrice); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.date != "" {
		if sale.Date, err = salesbook.ParseDate(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	slot, rec, err := store.Create(sale)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Record(fmt.Sprintf("Record added at slot %d", slot), slot, rec))
	return subcommands.ExitSuccess
}

// prompt collects the sale fields interactively.
func (c *addCmd) prompt() error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Goods name").Value(&c.goods).Validate(notEmpty),
		huh.NewInput().Title("Weight (grams)").Value(&c.weight).Validate(isNumber),
		huh.NewInput().Title("Unit cost (per gram)").Value(&c.unitCost).Validate(isNumber),
		huh.NewInput().Title("Platform").Value(&c.platform),
		huh.NewInput().Title("Source").Value(&c.source),
		huh.NewInput().Title("Sell price").Value(&c.sellPrice).Validate(isNumber),
	))
	return form.Run()
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func isNumber(s string) error {
	_, err := parseAmount("value", s)
	return err
}
