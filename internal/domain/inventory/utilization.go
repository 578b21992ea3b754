package inventory

import (
	"github.com/shopspring/decimal"
)

// HighUtilizationThreshold is the rate above which kit usage correlates with training
var HighUtilizationThreshold = decimal.NewFromInt(70)

const (
	CorrelationHigh = "High"
	CorrelationLow  = "Low"
)

// Utilization summarizes how many kits are linked to batches
type Utilization struct {
	Rate              decimal.Decimal
	Allocated         int64
	Total             int64
	CorrelationStatus string
}

// ComputeUtilization derives the allocation rate, rounded to two decimals.
// The rate is zero when there are no kits.
func ComputeUtilization(allocated, total int64) Utilization {
	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(allocated).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	status := CorrelationLow
	if rate.GreaterThan(HighUtilizationThreshold) {
		status = CorrelationHigh
	}

	return Utilization{
		Rate:              rate,
		Allocated:         allocated,
		Total:             total,
		CorrelationStatus: status,
	}
}
