package rebalance

import (
	"math"
	"testing"
)

func TestPurchasePlan_arithmetic(t *testing.T) {
	// One share of A and one of C lands exactly on target: 30/60/30 of 120.
	funds := []Fund{
		{Symbol: "A", Shares: 2, Price: USD(10), TargetProportion: 0.25},
		{Symbol: "B", Shares: 6, Price: USD(10), TargetProportion: 0.50},
		{Symbol: "C", Shares: 2, Price: USD(10), TargetProportion: 0.25},
	}
	p := mustPortfolio(t, funds, USD(20))
	plan := mustAllocate(t, p)

	if want := []int64{1, 0, 1}; !equalBuys(plan.Buys(), want) {
		t.Fatalf("Allocate() buys = %v, want %v", plan.Buys(), want)
	}

	if want := USD(10); !plan.Cost(0).Equal(want) {
		t.Errorf("Cost(0) = %s, want %s", plan.Cost(0), want)
	}
	if !plan.Cost(1).IsZero() {
		t.Errorf("Cost(1) = %s, want zero", plan.Cost(1))
	}
	if want := USD(20); !plan.TotalCost().Equal(want) {
		t.Errorf("TotalCost() = %s, want %s", plan.TotalCost(), want)
	}
	if !plan.Remaining().IsZero() {
		t.Errorf("Remaining() = %s, want zero", plan.Remaining())
	}
	if want := USD(120); !plan.NewTotalValue().Equal(want) {
		t.Errorf("NewTotalValue() = %s, want %s", plan.NewTotalValue(), want)
	}

	for i, want := range []float64{0.25, 0.50, 0.25} {
		if got := plan.ResultingProportion(i); math.Abs(got-want) > 1e-12 {
			t.Errorf("ResultingProportion(%d) = %v, want %v", i, got, want)
		}
	}
	if got := plan.Deviation(); got > 1e-12 {
		t.Errorf("Deviation() = %v, want 0", got)
	}
}

func TestPurchasePlan_Buys_isACopy(t *testing.T) {
	p := mustPortfolio(t, threeFunds(), USD(6000))
	plan := mustAllocate(t, p)
	buys := plan.Buys()
	buys[0] = 9999
	if plan.SharesToBuy(0) == 9999 {
		t.Error("mutating the slice returned by Buys() changed the plan")
	}
}
