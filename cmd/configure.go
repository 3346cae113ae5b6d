package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/salesbook"
)

type configureCmd struct {
	file    string
	table   string
	start   int
	end     int
	summary int
}

func (*configureCmd) Name() string     { return "configure" }
func (*configureCmd) Synopsis() string { return "show or change the ledger configuration" }
func (*configureCmd) Usage() string {
	return `sbk configure [-file <path>] [-table <name>] [-start <row>] [-end <row>] [-summary <row>]

  Without flags, prints the resolved configuration. With flags, updates the
  configuration file (creating it on first run). Environment variables
  SALESBOOK_* override the file at load time.
`
}

func (c *configureCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path of the ledger CSV file.")
	f.StringVar(&c.table, "table", "", "Name of the ledger table.")
	f.IntVar(&c.start, "start", 0, "First row of the data region.")
	f.IntVar(&c.end, "end", 0, "Last row of the data region.")
	f.IntVar(&c.summary, "summary", 0, "Row of the summary aggregates.")
}

func (c *configureCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := salesbook.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.file == "" && c.table == "" && c.start == 0 && c.end == 0 && c.summary == 0 {
		fmt.Printf("file_path:      %s\n", cfg.FilePath)
		fmt.Printf("table_name:     %s\n", cfg.TableName)
		fmt.Printf("data_start_row: %d\n", cfg.DataStartRow)
		fmt.Printf("data_end_row:   %d\n", cfg.DataEndRow)
		fmt.Printf("summary_row:    %d\n", cfg.SummaryRow)
		fmt.Printf("capacity:       %d records\n", cfg.Capacity())
		return subcommands.ExitSuccess
	}

	if c.file != "" {
		cfg.FilePath = c.file
	}
	if c.table != "" {
		cfg.TableName = c.table
	}
	if c.start != 0 {
		cfg.DataStartRow = c.start
	}
	if c.end != 0 {
		cfg.DataEndRow = c.end
	}
	if c.summary != 0 {
		cfg.SummaryRow = c.summary
	}

	if err := salesbook.SaveConfig(*configFile, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Configuration saved to %s\n", *configFile)
	return subcommands.ExitSuccess
}
