package interest

import (
	"context"
	"errors"

	"minevest-backend/internal/application/aggregation"
	"minevest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Query answers the two read paths the frontend consumes. Read-only; safe to
// call from any number of concurrent requests without coordination.
type Query struct {
	DB *gorm.DB
}

// MyInterest is the my-interest response shape. Absence is a valid answer,
// not an error: HasInterest false with zero values.
type MyInterest struct {
	HasInterest      bool            `json:"has_interest"`
	InterestID       *uuid.UUID      `json:"interest_id"`
	Status           *string         `json:"status"`
	SharesRequested  int64           `json:"shares_requested"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
}

// GetMyInterest reports whether the investor has active interest in the
// financing. Withdrawn records read as "no interest".
func (q *Query) GetMyInterest(ctx context.Context, investorID, financingID uuid.UUID) (*MyInterest, error) {
	store := &Store{DB: q.DB}
	rec, err := store.GetByPair(ctx, investorID, financingID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &MyInterest{InvestmentAmount: decimal.Zero}, nil
	}
	return &MyInterest{
		HasInterest:      true,
		InterestID:       &rec.InterestID,
		Status:           &rec.Status,
		SharesRequested:  rec.SharesRequested,
		InvestmentAmount: rec.InvestmentAmount,
	}, nil
}

// GetAggregate recomputes the financing's aggregate from current store state.
// Nothing is cached or persisted, so there is no staleness to invalidate. A
// financing with no interest yet yields a well-formed zero view.
func (q *Query) GetAggregate(ctx context.Context, financingID uuid.UUID) (*aggregation.View, error) {
	var fin domain.Financing
	if err := q.DB.WithContext(ctx).Where("financing_id = ?", financingID).First(&fin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFinancingNotFound
		}
		return nil, err
	}
	store := &Store{DB: q.DB}
	records, err := store.GetAllActiveForFinancing(ctx, financingID)
	if err != nil {
		return nil, err
	}
	var sharesIssued int64
	if fin.SharesIssued != nil {
		sharesIssued = *fin.SharesIssued
	}
	view := aggregation.Compute(records, sharesIssued)
	return &view, nil
}
