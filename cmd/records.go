package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/salesbook/renderer"
)

type recordsCmd struct{}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "list all recorded sales" }
func (*recordsCmd) Usage() string {
	return `sbk records

  Lists the occupied slots of the ledger, in slot order, with all stored and
  derived fields.
`
}

func (*recordsCmd) SetFlags(f *flag.FlagSet) {}

func (c *recordsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rows, err := store.Records()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Records(store.Config().TableName, rows))
	return subcommands.ExitSuccess
}
