package rebalance

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config mirrors the TOML configuration file:
//
//	target_buy = 6000.0
//	currency = "USD"
//
//	[[funds]]
//	symbol = "VTI"
//	shares = 200
//	price = 216.30           # optional, filled by 'rba plan -u'
//	target_proportion = 0.70
type Config struct {
	TargetBuy float64      `toml:"target_buy"`
	Currency  string       `toml:"currency"`
	Funds     []FundConfig `toml:"funds"`
}

// FundConfig is one fund entry of the configuration file.
type FundConfig struct {
	Symbol           string  `toml:"symbol"`
	Shares           int64   `toml:"shares"`
	Price            float64 `toml:"price"`
	TargetProportion float64 `toml:"target_proportion"`
}

// LoadConfig reads and parses the TOML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return ParseConfig(content)
}

// ParseConfig parses a TOML configuration document.
func ParseConfig(content []byte) (*Config, error) {
	c := &Config{}
	if err := toml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	return c, nil
}

// Symbols returns the fund symbols in declaration order.
func (c *Config) Symbols() []string {
	symbols := make([]string, 0, len(c.Funds))
	for _, f := range c.Funds {
		symbols = append(symbols, f.Symbol)
	}
	return symbols
}

// SetPrice overwrites the price of the fund with the given symbol, typically
// with a freshly fetched quote. Unknown symbols are ignored.
func (c *Config) SetPrice(symbol string, price float64) {
	for i := range c.Funds {
		if c.Funds[i].Symbol == symbol {
			c.Funds[i].Price = price
		}
	}
}

// Portfolio builds the validated Portfolio described by the configuration.
func (c *Config) Portfolio() (*Portfolio, error) {
	funds := make([]Fund, 0, len(c.Funds))
	for _, f := range c.Funds {
		funds = append(funds, Fund{
			Symbol:           f.Symbol,
			Shares:           f.Shares,
			Price:            M(f.Price, c.Currency),
			TargetProportion: f.TargetProportion,
		})
	}
	return NewPortfolio(funds, M(c.TargetBuy, c.Currency))
}
