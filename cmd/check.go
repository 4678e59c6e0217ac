package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	update bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the configuration and display the current allocation" }
func (*checkCmd) Usage() string {
	return `rba check [-u]

  Validates the configuration file and displays the current allocation
  against the targets, without planning any purchase.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "download current fund prices before checking")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.update {
		if err := downloadPrices(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error downloading prices: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	p, err := config.Portfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AllocationMarkdown(p))

	return subcommands.ExitSuccess
}
