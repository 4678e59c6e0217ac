package rebalance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// AllocatorOptions carries the solver's tuning knobs. They are passed
// explicitly so Allocate stays a pure function of its arguments.
type AllocatorOptions struct {
	// Tolerance is the objective comparison tolerance: two plans whose total
	// deviations differ by less than this are considered tied and resolved
	// by the tie-break policy.
	Tolerance float64

	// MaxNodes bounds the number of search nodes visited. Exhausting it
	// fails the allocation with ErrTimeout rather than returning a plan
	// that was not proven optimal.
	MaxNodes int
}

// DefaultAllocatorOptions returns the options used by the CLI.
func DefaultAllocatorOptions() AllocatorOptions {
	return AllocatorOptions{Tolerance: 1e-9, MaxNodes: 5_000_000}
}

// Allocate computes the optimal buy-only purchase plan for the portfolio.
//
// It finds the non-negative integer purchase vector that minimizes the total
// absolute deviation between resulting and target proportions, subject to
// the budget constraint sum(buy[i]*price[i]) <= targetBuy. The resulting
// proportion of a fund couples every decision variable through the new total
// value in its denominator, so the problem is solved by an exact bounded
// branch-and-bound over the integer purchase space rather than per-fund
// rounding.
//
// Ties on deviation are resolved deterministically: prefer the plan that
// spends closer to (never over) the budget, then the lexicographically
// smallest vector in fund declaration order.
//
// Prices and budget are quantized to the currency's minor unit, so budget
// feasibility is exact. Allocate does not mutate the portfolio and keeps no
// state between calls.
func Allocate(p *Portfolio, opts AllocatorOptions) (*PurchasePlan, error) {
	n := p.NumFunds()
	s := &solver{
		prices:   make([]int64, n),
		values:   make([]int64, n),
		targets:  make([]float64, n),
		buy:      make([]int64, n),
		devs:     make([]float64, n),
		best:     make([]int64, n),
		bestDev:  math.Inf(1),
		tol:      opts.Tolerance,
		maxNodes: opts.MaxNodes,
	}
	for i := 0; i < n; i++ {
		f := p.Fund(i)
		price := f.Price.Cents()
		if price <= 0 {
			return nil, fmt.Errorf("%w: price for %s is not positive", ErrInvalidInput, f.Symbol)
		}
		s.prices[i] = price
		s.values[i] = f.Shares * price
		s.targets[i] = f.TargetProportion
		s.curTotal += s.values[i]
	}
	s.budget = p.TargetBuy().Cents()

	if err := s.search(0, 0); err != nil {
		return nil, err
	}
	return &PurchasePlan{portfolio: p, buys: s.best}, nil
}

// solver holds the branch-and-bound state for a single Allocate call.
// All monetary amounts are integer cents.
type solver struct {
	prices   []int64 // per-share prices
	values   []int64 // current holding values
	targets  []float64
	budget   int64
	curTotal int64
	tol      float64
	maxNodes int
	nodes    int

	buy  []int64   // partial assignment, funds [0, depth)
	devs []float64 // scratch for objective terms

	best      []int64
	bestDev   float64
	bestSpent int64
}

// search assigns a purchase count to fund i and recurses. Funds are visited
// in declaration order and counts in ascending order, so leaves come out in
// lexicographic order and the first of a tie is the lexicographically
// smallest.
func (s *solver) search(i int, spent int64) error {
	s.nodes++
	if s.nodes > s.maxNodes {
		return fmt.Errorf("%w (visited %d nodes)", ErrTimeout, s.maxNodes)
	}
	if i == len(s.prices) {
		s.leaf(spent)
		return nil
	}
	// A subtree whose deviation lower bound is already beyond the incumbent
	// cannot contain the optimum. Ties are kept alive for the tie-break.
	if s.bound(i, spent) > s.bestDev+s.tol {
		return nil
	}
	maxBuy := (s.budget - spent) / s.prices[i]
	for b := int64(0); b <= maxBuy; b++ {
		s.buy[i] = b
		if err := s.search(i+1, spent+b*s.prices[i]); err != nil {
			return err
		}
	}
	s.buy[i] = 0
	return nil
}

// leaf scores a complete purchase vector and updates the incumbent.
func (s *solver) leaf(spent int64) {
	total := s.curTotal + spent
	for j := range s.devs {
		if total == 0 {
			// Nothing held and nothing bought: every fund is its full
			// target proportion away from target.
			s.devs[j] = s.targets[j]
			continue
		}
		value := s.values[j] + s.buy[j]*s.prices[j]
		s.devs[j] = math.Abs(float64(value)/float64(total) - s.targets[j])
	}
	dev := floats.Sum(s.devs)

	switch {
	case dev < s.bestDev-s.tol:
		// strictly better
	case dev <= s.bestDev+s.tol && spent > s.bestSpent:
		// tied deviation, spends closer to the budget
	default:
		return
	}
	copy(s.best, s.buy)
	s.bestDev = math.Min(dev, s.bestDev)
	s.bestSpent = spent
}

// bound returns an admissible lower bound on the total deviation reachable
// from a partial assignment of funds [0, i).
//
// The final total value lies in [curTotal+spent, curTotal+budget]. For an
// assigned fund the holding value is fixed, so its deviation term is
// minimized over that interval. An unassigned fund can only grow, so its
// value is at least the current holding value.
func (s *solver) bound(i int, spent int64) float64 {
	tmin := float64(s.curTotal + spent)
	tmax := float64(s.curTotal + s.budget)
	if tmax == 0 {
		return 0
	}
	for j := range s.devs {
		t := s.targets[j]
		if j < i {
			v := float64(s.values[j] + s.buy[j]*s.prices[j])
			if v == 0 {
				// held nothing, bought nothing: proportion is 0 whatever
				// the final total.
				s.devs[j] = t
				continue
			}
			// tmin >= v > 0 here, the interval of reachable proportions
			// is [v/tmax, v/tmin].
			lo, hi := v/tmax, v/tmin
			switch {
			case t < lo:
				s.devs[j] = lo - t
			case t > hi:
				s.devs[j] = t - hi
			default:
				s.devs[j] = 0
			}
			continue
		}
		// Unassigned: buying only raises the proportion above the floor
		// given by the current holding.
		if floor := float64(s.values[j])/tmax - t; floor > 0 {
			s.devs[j] = floor
		} else {
			s.devs[j] = 0
		}
	}
	return floats.Sum(s.devs)
}
