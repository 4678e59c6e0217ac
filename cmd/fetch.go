package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/eodhd"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch and display current fund prices" }
func (*fetchCmd) Usage() string {
	return `rba fetch [<symbol>...]

  Fetches the latest end-of-day price for the given symbols, or for every
  fund of the configuration file when no symbol is given. Prices are only
  displayed, the configuration file is never modified.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := f.Args()
	if len(symbols) == 0 {
		config, err := LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return subcommands.ExitFailure
		}
		symbols = config.Symbols()
	}

	key, err := apiKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quotes, err := eodhd.LatestAll(key, symbols...)
	for _, symbol := range symbols {
		if q, ok := quotes[symbol]; ok {
			fmt.Printf("%s:\t%s (%s)\n", symbol, q.Close, q.Date)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
