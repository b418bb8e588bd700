package interest

import (
	"context"
	"encoding/json"
	"errors"

	"minevest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is the lifecycle controller for investment interest. It is the sole
// writer of InterestRecord rows; each operation is one transaction, so a
// failed mutation leaves the prior state fully intact.
type Service struct {
	DB *gorm.DB
}

type ExpressInterestInput struct {
	InvestorID       uuid.UUID
	FinancingID      uuid.UUID
	SharesRequested  int64
	InvestmentAmount decimal.Decimal
}

// ExpressInterest creates a pending record for the pair. When the financing
// has a positive price_per_share, shares_requested is derived server-side as
// floor(amount / price), overriding whatever the client computed.
func (s *Service) ExpressInterest(ctx context.Context, in ExpressInterestInput) (*domain.InterestRecord, error) {
	if !in.InvestmentAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.SharesRequested < 0 {
		return nil, ErrInvalidAmount
	}

	var rec *domain.InterestRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fin domain.Financing
		if err := tx.Where("financing_id = ?", in.FinancingID).First(&fin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFinancingNotFound
			}
			return err
		}
		if !fin.AcceptingInterest() {
			return ErrFinancingClosed
		}

		shares := in.SharesRequested
		if fin.HasSharePrice() {
			shares = deriveShares(in.InvestmentAmount, *fin.PricePerShare)
		}

		store := &Store{DB: tx}
		rec = &domain.InterestRecord{
			FinancingID:      in.FinancingID,
			InvestorID:       in.InvestorID,
			SharesRequested:  shares,
			InvestmentAmount: in.InvestmentAmount,
		}
		if err := store.Insert(ctx, rec); err != nil {
			if errors.Is(err, ErrDuplicateActiveInterest) {
				return ErrAlreadyExpressed
			}
			return err
		}
		return createEvent(tx, rec.InterestID, domain.EventExpressed, map[string]interface{}{
			"investment_amount": rec.InvestmentAmount,
			"shares_requested":  rec.SharesRequested,
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type UpdateInterestInput struct {
	InterestID       uuid.UUID
	InvestorID       uuid.UUID
	SharesRequested  int64
	InvestmentAmount decimal.Decimal
}

// UpdateInterest changes the amount (and re-derives shares) on a pending
// record. SharesRequested is honored only when the financing has no price set.
func (s *Service) UpdateInterest(ctx context.Context, in UpdateInterestInput) (*domain.InterestRecord, error) {
	if !in.InvestmentAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.SharesRequested < 0 {
		return nil, ErrInvalidAmount
	}

	var rec *domain.InterestRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &Store{DB: tx}
		current, err := store.GetByID(ctx, in.InterestID)
		if err != nil {
			return err
		}
		// Records are scoped to their owner; someone else's id reads as absent.
		if current.InvestorID != in.InvestorID {
			return ErrNotFound
		}
		if current.Status != domain.InterestPending {
			return ErrInvalidState
		}

		var fin domain.Financing
		if err := tx.Where("financing_id = ?", current.FinancingID).First(&fin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFinancingNotFound
			}
			return err
		}

		shares := in.SharesRequested
		if fin.HasSharePrice() {
			shares = deriveShares(in.InvestmentAmount, *fin.PricePerShare)
		}

		rec, err = store.UpdateFields(ctx, in.InterestID, shares, in.InvestmentAmount)
		if err != nil {
			return err
		}
		return createEvent(tx, rec.InterestID, domain.EventUpdated, map[string]interface{}{
			"new_investment_amount": in.InvestmentAmount,
			"new_shares_requested":  shares,
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// WithdrawInterest flips a pending record to withdrawn. Not idempotent: a
// second withdraw fails with ErrInvalidState.
func (s *Service) WithdrawInterest(ctx context.Context, interestID, investorID uuid.UUID) (*domain.InterestRecord, error) {
	var rec *domain.InterestRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &Store{DB: tx}
		current, err := store.GetByID(ctx, interestID)
		if err != nil {
			return err
		}
		if current.InvestorID != investorID {
			return ErrNotFound
		}

		rec, err = store.Withdraw(ctx, interestID)
		if err != nil {
			return err
		}
		return createEvent(tx, rec.InterestID, domain.EventWithdrawn, map[string]interface{}{
			"investment_amount": rec.InvestmentAmount,
			"shares_requested":  rec.SharesRequested,
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetEvents returns the audit trail for one of the investor's records.
func (s *Service) GetEvents(ctx context.Context, interestID, investorID uuid.UUID) ([]domain.InterestEvent, error) {
	store := &Store{DB: s.DB}
	rec, err := store.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if rec.InvestorID != investorID {
		return nil, ErrNotFound
	}
	var events []domain.InterestEvent
	if err := s.DB.WithContext(ctx).
		Where("interest_id = ?", interestID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// deriveShares is the authoritative share calculation: floor(amount / price).
// Client-side derivation is a convenience echo only.
func deriveShares(amount, pricePerShare decimal.Decimal) int64 {
	return amount.Div(pricePerShare).Floor().IntPart()
}

func createEvent(tx *gorm.DB, interestID uuid.UUID, eventType string, payload map[string]interface{}) error {
	b, _ := json.Marshal(payload)
	return tx.Create(&domain.InterestEvent{
		InterestID: interestID,
		EventType:  eventType,
		EventData:  datatypes.JSON(b),
	}).Error
}
