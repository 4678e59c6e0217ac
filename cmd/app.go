// Package cmd implements the CLI application to plan buy-only rebalancing
// purchases.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/eodhd"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&planCmd{}, "planning")
	c.Register(&checkCmd{}, "planning")

	c.Register(&fetchCmd{}, "prices")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "rebalance.toml", "Path to the portfolio configuration file (TOML format)")
var eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key, defaults to the EODHD_API_KEY environment variable")

// LoadConfig reads the app configuration file.
func LoadConfig() (*rebalance.Config, error) {
	return rebalance.LoadConfig(*configFile)
}

// apiKey returns the EODHD API key from the flag or the environment.
func apiKey() (string, error) {
	if *eodhdAPIKey != "" {
		return *eodhdAPIKey, nil
	}
	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		return key, nil
	}
	return "", errors.New("EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable")
}

// downloadPrices fetches the latest close for every fund in the
// configuration and overwrites the configured prices, printing each quote as
// it lands. A single unavailable price fails the whole run: planning against
// a stale price would silently skew the allocation.
func downloadPrices(c *rebalance.Config) error {
	key, err := apiKey()
	if err != nil {
		return err
	}

	fmt.Println("Downloading current fund prices...")
	quotes, err := eodhd.LatestAll(key, c.Symbols()...)
	if err != nil {
		return err
	}
	for _, symbol := range c.Symbols() {
		q := quotes[symbol]
		fmt.Printf("%s:\t%s (%s)\n", symbol, q.Close, q.Date)
		price, _ := q.Close.Float64()
		c.SetPrice(symbol, price)
	}
	fmt.Println()
	return nil
}
