// Package aggregation computes per-financing interest totals. Pure functions
// only: no I/O, no side effects. Callers recompute on every read instead of
// caching, which removes the consistency-invalidation problem entirely.
package aggregation

import (
	"minevest-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// View is the derived aggregate for one financing. PercentageFilled is not
// clamped to 100; capping the bar is a presentation concern.
type View struct {
	TotalInterestCount    int             `json:"total_interest_count"`
	TotalSharesRequested  int64           `json:"total_shares_requested"`
	TotalAmountInterested decimal.Decimal `json:"total_amount_interested"`
	PercentageFilled      decimal.Decimal `json:"percentage_filled"`
}

// Compute reduces a set of active interest records into a View. Amount sums
// are decimal, never binary floats. A sharesIssued of zero (or unset) yields
// a percentage of 0 rather than a division error.
func Compute(records []domain.InterestRecord, sharesIssued int64) View {
	view := View{
		TotalAmountInterested: decimal.Zero,
		PercentageFilled:      decimal.Zero,
	}
	for _, r := range records {
		view.TotalInterestCount++
		view.TotalSharesRequested += r.SharesRequested
		view.TotalAmountInterested = view.TotalAmountInterested.Add(r.InvestmentAmount)
	}
	if sharesIssued > 0 {
		view.PercentageFilled = decimal.NewFromInt(view.TotalSharesRequested).
			Div(decimal.NewFromInt(sharesIssued)).
			Mul(hundred).
			Round(2)
	}
	return view
}
