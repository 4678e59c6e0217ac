// Package renderer renders purchase plans and portfolio overviews as
// markdown, ready for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// PlanMarkdown renders the optimal purchasing strategy as a markdown table
// with a purchase summary.
func PlanMarkdown(p *rebalance.Portfolio, plan *rebalance.PurchasePlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Optimal Purchasing Strategy\n\n")
	fmt.Fprintln(&b, "| Fund | Shares to Buy | Buy Amt | New Proportion | Target |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")

	for i, f := range p.Funds() {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			f.Symbol,
			plan.SharesToBuy(i),
			plan.Cost(i),
			rebalance.Percent(plan.ResultingProportion(i)*100),
			rebalance.Percent(f.TargetProportion*100),
		)
	}

	fmt.Fprintf(&b, "\n- Total purchase: %s\n", plan.TotalCost())
	fmt.Fprintf(&b, "- Remaining budget: %s\n", plan.Remaining())
	fmt.Fprintf(&b, "- New portfolio total: %s\n", plan.NewTotalValue())
	return b.String()
}

// AllocationMarkdown renders the current allocation against the targets,
// without any purchase.
func AllocationMarkdown(p *rebalance.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Current Allocation\n\n")
	fmt.Fprintln(&b, "| Fund | Shares | Price | Value | Proportion | Target | Off By |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	for i, f := range p.Funds() {
		// a zero-value portfolio has no meaningful proportions, report them
		// as zero and let the targets speak.
		current, _ := p.CurrentProportion(i)
		off := rebalance.Percent((current - f.TargetProportion) * 100)
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			f.Symbol,
			f.Shares,
			f.Price,
			f.Value(),
			rebalance.Percent(current*100),
			rebalance.Percent(f.TargetProportion*100),
			off.SignedString(),
		)
	}

	fmt.Fprintf(&b, "\n- Portfolio total: %s\n", p.TotalValue())
	fmt.Fprintf(&b, "- Budget for new purchases: %s\n", p.TargetBuy())
	return b.String()
}
