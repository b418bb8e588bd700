package interest

import (
	"context"
	"testing"

	"minevest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyInterest_NoInterest(t *testing.T) {
	svc, db := setupServiceTest(t)
	fin := createFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	q := &Query{DB: svc.DB}

	mine, err := q.GetMyInterest(context.Background(), uuid.New(), fin.FinancingID)
	require.NoError(t, err)
	assert.False(t, mine.HasInterest)
	assert.Nil(t, mine.InterestID)
	assert.Nil(t, mine.Status)
	assert.Equal(t, int64(0), mine.SharesRequested)
	assert.True(t, mine.InvestmentAmount.IsZero())
}

func TestGetMyInterest_ActiveThenWithdrawn(t *testing.T) {
	svc, db := setupServiceTest(t)
	fin := createFinancing(t, db, "0.10", 0, domain.FinancingAnnounced)
	q := &Query{DB: svc.DB}
	investor := uuid.New()

	rec, err := svc.ExpressInterest(context.Background(), ExpressInterestInput{
		InvestorID:       investor,
		FinancingID:      fin.FinancingID,
		InvestmentAmount: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)

	mine, err := q.GetMyInterest(context.Background(), investor, fin.FinancingID)
	require.NoError(t, err)
	assert.True(t, mine.HasInterest)
	require.NotNil(t, mine.InterestID)
	assert.Equal(t, rec.InterestID, *mine.InterestID)
	require.NotNil(t, mine.Status)
	assert.Equal(t, domain.InterestPending, *mine.Status)
	assert.Equal(t, int64(10_000), mine.SharesRequested)

	_, err = svc.WithdrawInterest(context.Background(), rec.InterestID, investor)
	require.NoError(t, err)

	mine, err = q.GetMyInterest(context.Background(), investor, fin.FinancingID)
	require.NoError(t, err)
	assert.False(t, mine.HasInterest, "withdrawn interest reads as no interest")
}

func TestGetAggregate_EmptyFinancing(t *testing.T) {
	svc, db := setupServiceTest(t)
	fin := createFinancing(t, db, "0.10", 1_000_000, domain.FinancingAnnounced)
	q := &Query{DB: svc.DB}

	view, err := q.GetAggregate(context.Background(), fin.FinancingID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalInterestCount)
	assert.Equal(t, int64(0), view.TotalSharesRequested)
	assert.True(t, view.TotalAmountInterested.IsZero())
	assert.True(t, view.PercentageFilled.IsZero())
}

func TestGetAggregate_UnknownFinancing(t *testing.T) {
	svc, _ := setupServiceTest(t)
	q := &Query{DB: svc.DB}
	_, err := q.GetAggregate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrFinancingNotFound)
}

// Scenario: 1,000,000 shares issued; two investors at 100,000 and 150,000
// shares; then the larger one withdraws.
func TestGetAggregate_TwoInvestorsThenWithdrawal(t *testing.T) {
	svc, db := setupServiceTest(t)
	fin := createFinancing(t, db, "0.10", 1_000_000, domain.FinancingAnnounced)
	q := &Query{DB: svc.DB}
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.ExpressInterest(context.Background(), ExpressInterestInput{
		InvestorID:       alice,
		FinancingID:      fin.FinancingID,
		InvestmentAmount: decimal.RequireFromString("10000"), // 100,000 shares @ 0.10
	})
	require.NoError(t, err)
	bobRec, err := svc.ExpressInterest(context.Background(), ExpressInterestInput{
		InvestorID:       bob,
		FinancingID:      fin.FinancingID,
		InvestmentAmount: decimal.RequireFromString("15000"), // 150,000 shares @ 0.10
	})
	require.NoError(t, err)

	view, err := q.GetAggregate(context.Background(), fin.FinancingID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalInterestCount)
	assert.Equal(t, int64(250_000), view.TotalSharesRequested)
	assert.True(t, view.TotalAmountInterested.Equal(decimal.RequireFromString("25000")))
	assert.True(t, view.PercentageFilled.Equal(decimal.NewFromInt(25)))

	_, err = svc.WithdrawInterest(context.Background(), bobRec.InterestID, bob)
	require.NoError(t, err)

	view, err = q.GetAggregate(context.Background(), fin.FinancingID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalInterestCount)
	assert.Equal(t, int64(100_000), view.TotalSharesRequested)
	assert.True(t, view.TotalAmountInterested.Equal(decimal.RequireFromString("10000")))
	assert.True(t, view.PercentageFilled.Equal(decimal.NewFromInt(10)))
}
