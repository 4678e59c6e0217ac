package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

const testConfig = `
target_buy = 20.0

[[funds]]
symbol = "A"
shares = 2
price = 10.0
target_proportion = 0.25

[[funds]]
symbol = "B"
shares = 6
price = 10.0
target_proportion = 0.50

[[funds]]
symbol = "C"
shares = 2
price = 10.0
target_proportion = 0.25
`

// writeConfig writes a config file in a temp dir and points the global
// -config flag at it for the duration of the test.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rebalance.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	old := *configFile
	*configFile = path
	t.Cleanup(func() { *configFile = old })
}

func TestPlanCmd(t *testing.T) {
	writeConfig(t, testConfig)

	c := &planCmd{}
	f := flag.NewFlagSet("plan", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if got := c.Execute(context.Background(), f); got != subcommands.ExitSuccess {
		t.Errorf("Execute() = %v, want ExitSuccess", got)
	}
}

func TestPlanCmd_targetBuyOverride(t *testing.T) {
	writeConfig(t, testConfig)

	c := &planCmd{}
	f := flag.NewFlagSet("plan", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-t", "0"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if got := c.Execute(context.Background(), f); got != subcommands.ExitSuccess {
		t.Errorf("Execute() = %v, want ExitSuccess", got)
	}
}

func TestPlanCmd_invalidConfig(t *testing.T) {
	// Proportions sum to 0.75, validation must fail the run.
	writeConfig(t, `
target_buy = 100.0

[[funds]]
symbol = "A"
shares = 1
price = 10.0
target_proportion = 0.75
`)

	c := &planCmd{}
	f := flag.NewFlagSet("plan", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if got := c.Execute(context.Background(), f); got != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", got)
	}
}

func TestCheckCmd(t *testing.T) {
	writeConfig(t, testConfig)

	c := &checkCmd{}
	f := flag.NewFlagSet("check", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if got := c.Execute(context.Background(), f); got != subcommands.ExitSuccess {
		t.Errorf("Execute() = %v, want ExitSuccess", got)
	}
}

func TestPlanCmd_missingConfig(t *testing.T) {
	old := *configFile
	*configFile = filepath.Join(t.TempDir(), "does-not-exist.toml")
	t.Cleanup(func() { *configFile = old })

	c := &planCmd{}
	f := flag.NewFlagSet("plan", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if got := c.Execute(context.Background(), f); got != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", got)
	}
}
