package rebalance

import (
	"errors"
	"testing"
)

const sampleConfig = `
target_buy = 6000.0

[[funds]]
symbol = "BND"
shares = 100
price = 85.40
target_proportion = 0.15

[[funds]]
symbol = "VTI"
shares = 200
price = 216.30
target_proportion = 0.70

[[funds]]
symbol = "VXUS"
shares = 100
target_proportion = 0.15
`

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if c.TargetBuy != 6000.0 {
		t.Errorf("TargetBuy = %v, want 6000", c.TargetBuy)
	}
	if c.Currency != "USD" {
		t.Errorf("Currency = %q, want the USD default", c.Currency)
	}
	if len(c.Funds) != 3 {
		t.Fatalf("len(Funds) = %d, want 3", len(c.Funds))
	}
	if got := c.Funds[1]; got.Symbol != "VTI" || got.Shares != 200 || got.Price != 216.30 || got.TargetProportion != 0.70 {
		t.Errorf("Funds[1] = %+v, want the VTI entry", got)
	}
	// VXUS has no price in the file, it is to be filled by a fetch.
	if c.Funds[2].Price != 0 {
		t.Errorf("Funds[2].Price = %v, want 0", c.Funds[2].Price)
	}

	want := []string{"BND", "VTI", "VXUS"}
	got := c.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseConfig_invalidTOML(t *testing.T) {
	if _, err := ParseConfig([]byte("target_buy = [not toml")); err == nil {
		t.Error("ParseConfig() expected an error, got none")
	}
}

func TestConfig_SetPrice(t *testing.T) {
	c, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	c.SetPrice("VXUS", 65.66)
	c.SetPrice("UNKNOWN", 1.23) // ignored
	if c.Funds[2].Price != 65.66 {
		t.Errorf("Funds[2].Price = %v, want 65.66", c.Funds[2].Price)
	}
}

func TestConfig_Portfolio(t *testing.T) {
	c, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	// The VXUS price is still missing: the portfolio must be rejected.
	var verr *ValidationError
	if _, err := c.Portfolio(); !errors.As(err, &verr) {
		t.Errorf("Portfolio() error = %v, want a *ValidationError", err)
	}

	c.SetPrice("VXUS", 65.66)
	p, err := c.Portfolio()
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	if !p.TargetBuy().Equal(USD(6000)) {
		t.Errorf("TargetBuy() = %s, want $6,000.00", p.TargetBuy())
	}
	if got := p.Fund(2); got.Symbol != "VXUS" || !got.Price.Equal(USD(65.66)) {
		t.Errorf("Fund(2) = %+v, want the VXUS entry priced at $65.66", got)
	}
}
