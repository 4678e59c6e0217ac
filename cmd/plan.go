package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// planCmd holds the flags for the 'plan' subcommand.
type planCmd struct {
	update    bool
	targetBuy float64
	maxNodes  int
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "compute the optimal buy-only purchase plan" }
func (*planCmd) Usage() string {
	return `rba plan [-u] [-t <target_buy>]

  Computes the number of shares of each fund to buy so that the portfolio
  lands as close as possible to its target proportions without spending more
  than the configured budget. Only purchases are planned, never sales.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "download current fund prices before planning")
	f.Float64Var(&c.targetBuy, "t", -1, "override the configured target buy amount")
	f.IntVar(&c.maxNodes, "max-nodes", rebalance.DefaultAllocatorOptions().MaxNodes, "search node budget before the solver gives up")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.targetBuy >= 0 {
		config.TargetBuy = c.targetBuy
	}

	p, err := config.Portfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	opts := rebalance.DefaultAllocatorOptions()
	opts.MaxNodes = c.maxNodes
	plan, err := rebalance.Allocate(p, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing purchase plan: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PlanMarkdown(p, plan))

	return subcommands.ExitSuccess
}
