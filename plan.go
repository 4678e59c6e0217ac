package rebalance

// PurchasePlan is the allocator's output: the integer number of new shares
// to buy per fund, in the same order as the portfolio's funds.
//
// The plan is read-only. It keeps a reference to the portfolio it was
// computed for, so the reporting layer can derive costs and resulting
// proportions without recomputing anything.
type PurchasePlan struct {
	portfolio *Portfolio
	buys      []int64
}

// SharesToBuy returns the number of shares to buy for the i-th fund.
func (pl *PurchasePlan) SharesToBuy(i int) int64 { return pl.buys[i] }

// Buys returns a copy of the purchase vector.
func (pl *PurchasePlan) Buys() []int64 {
	buys := make([]int64, len(pl.buys))
	copy(buys, pl.buys)
	return buys
}

// Cost returns the purchase amount for the i-th fund.
func (pl *PurchasePlan) Cost(i int) Money {
	return pl.portfolio.Fund(i).Price.Mul(Q(pl.buys[i]))
}

// TotalCost returns the total purchase amount of the plan.
func (pl *PurchasePlan) TotalCost() Money {
	total := M(0, pl.portfolio.currency())
	for i := range pl.buys {
		total = total.Add(pl.Cost(i))
	}
	return total
}

// Remaining returns the unspent part of the budget.
func (pl *PurchasePlan) Remaining() Money {
	return pl.portfolio.TargetBuy().Sub(pl.TotalCost())
}

// NewTotalValue returns the portfolio value after applying the plan.
func (pl *PurchasePlan) NewTotalValue() Money {
	return pl.portfolio.TotalValue().Add(pl.TotalCost())
}

// ResultingProportion returns the fraction of the new total value held in
// the i-th fund after applying the plan. A portfolio that still has no value
// after the plan holds nothing, so the proportion is zero.
func (pl *PurchasePlan) ResultingProportion(i int) float64 {
	total := pl.NewTotalValue()
	if total.IsZero() {
		return 0
	}
	f := pl.portfolio.Fund(i)
	value := f.Price.Mul(Q(f.Shares + pl.buys[i]))
	return value.AsFloat() / total.AsFloat()
}

// Deviation returns the total absolute distance between the resulting
// proportions and the target proportions. An empty resulting portfolio is
// the full target mass away from any valid target.
func (pl *PurchasePlan) Deviation() float64 {
	dev := 0.0
	zero := pl.NewTotalValue().IsZero()
	for i := range pl.buys {
		t := pl.portfolio.Fund(i).TargetProportion
		if zero {
			dev += t
			continue
		}
		d := pl.ResultingProportion(i) - t
		if d < 0 {
			d = -d
		}
		dev += d
	}
	return dev
}
