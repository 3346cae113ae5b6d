// Package cmd implements the CLI application to manage the sales ledger.
// A main package calls Commands() to register the subcommands and Execute()
// on the user-selected one.
package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/salesbook"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use a global flag for the config file location.
var configFile = flag.String("config", "salesbook.json", "Path to the ledger configuration file (JSON)")

// Commands returns the subcommands of the sbk tool.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&addCmd{},
		&refundCmd{},
		&recordsCmd{},
		&summaryCmd{},
		&configureCmd{},
	}
}

// openStore resolves the configuration and opens the store over it.
func openStore() (*salesbook.Store, error) {
	cfg, err := salesbook.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	return salesbook.NewStore(cfg)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// markdown when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseAmount parses an operator-supplied number for the named field.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a number", salesbook.ErrInvalidInput, field, s)
	}
	return d, nil
}
