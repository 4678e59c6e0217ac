// Package rebalance computes buy-only rebalancing plans: the integer number
// of shares of each fund to purchase so that the portfolio lands as close as
// possible to its target proportions without exceeding a spending budget.
package rebalance

import (
	"errors"
	"fmt"
	"math"
)

// ProportionTolerance is how far the sum of target proportions may stray
// from 1 before the portfolio is rejected.
const ProportionTolerance = 1e-6

// Fund is one holding line: a tradable instrument with a current price and a
// desired share of the total portfolio value.
type Fund struct {
	Symbol           string
	Shares           int64   // shares currently owned
	Price            Money   // current per-share price
	TargetProportion float64 // desired fraction of total value, in [0, 1]
}

// Value returns the current market value of the holding.
func (f Fund) Value() Money { return f.Price.Mul(Q(f.Shares)) }

// Portfolio is the immutable input of the allocator: the funds in their
// declaration order plus the budget available for new purchases.
//
// A Portfolio is fully validated on construction and never mutated
// afterwards.
type Portfolio struct {
	funds     []Fund
	targetBuy Money
}

// NewPortfolio validates the funds and budget and builds a Portfolio.
//
// All validation failures are collected and returned together in a single
// *ValidationError, so a broken configuration file is reported in one pass.
func NewPortfolio(funds []Fund, targetBuy Money) (*Portfolio, error) {
	var errs error
	if len(funds) == 0 {
		errs = errors.Join(errs, errors.New("portfolio has no funds"))
	}
	if targetBuy.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("target buy %s is negative", targetBuy))
	}

	seen := make(map[string]bool, len(funds))
	sum := 0.0
	for _, f := range funds {
		if seen[f.Symbol] {
			errs = errors.Join(errs, fmt.Errorf("duplicate fund symbol %q", f.Symbol))
		}
		seen[f.Symbol] = true
		if f.Shares < 0 {
			errs = errors.Join(errs, fmt.Errorf("shares owned for %s is negative", f.Symbol))
		}
		if !f.Price.IsPositive() {
			errs = errors.Join(errs, fmt.Errorf("price for %s is not positive", f.Symbol))
		}
		if f.TargetProportion < 0 || f.TargetProportion > 1 {
			errs = errors.Join(errs, fmt.Errorf("target proportion for %s is %v, want within [0, 1]", f.Symbol, f.TargetProportion))
		}
		sum += f.TargetProportion
	}
	if len(funds) > 0 && math.Abs(sum-1.0) > ProportionTolerance {
		errs = errors.Join(errs, fmt.Errorf("expected target proportions to sum to 1, got %v", sum))
	}

	if errs != nil {
		return nil, &ValidationError{Err: errs}
	}

	p := &Portfolio{
		funds:     make([]Fund, len(funds)),
		targetBuy: targetBuy,
	}
	copy(p.funds, funds)
	return p, nil
}

// Funds returns the portfolio's funds in declaration order. The returned
// slice is a copy, the Portfolio stays immutable.
func (p *Portfolio) Funds() []Fund {
	funds := make([]Fund, len(p.funds))
	copy(funds, p.funds)
	return funds
}

// NumFunds returns the number of funds.
func (p *Portfolio) NumFunds() int { return len(p.funds) }

// Fund returns the i-th fund in declaration order.
func (p *Portfolio) Fund(i int) Fund { return p.funds[i] }

// TargetBuy returns the budget available for new purchases.
func (p *Portfolio) TargetBuy() Money { return p.targetBuy }

// TotalValue returns the current market value of all holdings.
func (p *Portfolio) TotalValue() Money {
	total := M(0, p.currency())
	for _, f := range p.funds {
		total = total.Add(f.Value())
	}
	return total
}

// CurrentProportion returns the fraction of the total portfolio value held
// in the i-th fund. When the portfolio has no value at all, there is no
// meaningful proportion and an error is returned: callers should then treat
// current proportions as all-zero and rely purely on the targets.
func (p *Portfolio) CurrentProportion(i int) (float64, error) {
	total := p.TotalValue()
	if total.IsZero() {
		return 0, fmt.Errorf("%w: total portfolio value is zero", ErrInvalidInput)
	}
	return p.funds[i].Value().AsFloat() / total.AsFloat(), nil
}

func (p *Portfolio) currency() string {
	if len(p.funds) == 0 {
		return ""
	}
	return p.funds[0].Price.Currency()
}
