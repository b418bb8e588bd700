package aggregation

import (
	"testing"

	"minevest-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func record(shares int64, amount string) domain.InterestRecord {
	return domain.InterestRecord{
		SharesRequested:  shares,
		InvestmentAmount: decimal.RequireFromString(amount),
	}
}

func TestCompute_NoRecords(t *testing.T) {
	view := Compute(nil, 1_000_000)
	assert.Equal(t, 0, view.TotalInterestCount)
	assert.Equal(t, int64(0), view.TotalSharesRequested)
	assert.True(t, view.TotalAmountInterested.IsZero())
	assert.True(t, view.PercentageFilled.IsZero())
}

func TestCompute_ZeroSharesIssued(t *testing.T) {
	records := []domain.InterestRecord{record(100, "50.00")}
	view := Compute(records, 0)
	assert.Equal(t, 1, view.TotalInterestCount)
	assert.Equal(t, int64(100), view.TotalSharesRequested)
	assert.True(t, view.PercentageFilled.IsZero(), "zero shares_issued must yield 0, not a division error")
}

func TestCompute_TwoInvestors(t *testing.T) {
	records := []domain.InterestRecord{
		record(100_000, "10000.00"),
		record(150_000, "15000.00"),
	}
	view := Compute(records, 1_000_000)
	assert.Equal(t, 2, view.TotalInterestCount)
	assert.Equal(t, int64(250_000), view.TotalSharesRequested)
	assert.True(t, view.TotalAmountInterested.Equal(decimal.RequireFromString("25000.00")))
	assert.True(t, view.PercentageFilled.Equal(decimal.NewFromInt(25)))
}

func TestCompute_PercentageNotClamped(t *testing.T) {
	records := []domain.InterestRecord{record(1_500_000, "150000.00")}
	view := Compute(records, 1_000_000)
	assert.True(t, view.PercentageFilled.Equal(decimal.NewFromInt(150)), "display clamping is a UI concern, not ours")
}

func TestCompute_DecimalSumsNoDrift(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3.
	records := []domain.InterestRecord{
		record(1, "0.1"),
		record(2, "0.2"),
	}
	view := Compute(records, 0)
	assert.True(t, view.TotalAmountInterested.Equal(decimal.RequireFromString("0.3")))
}

func TestCompute_FractionalPercentage(t *testing.T) {
	records := []domain.InterestRecord{record(1, "1.00")}
	view := Compute(records, 3)
	assert.True(t, view.PercentageFilled.Equal(decimal.RequireFromString("33.33")))
}
