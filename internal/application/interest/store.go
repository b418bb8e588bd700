package interest

import (
	"context"
	"errors"
	"strings"

	"minevest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store is the durable keyed storage for InterestRecord. All mutation goes
// through the lifecycle Service; the Store enforces the per-record rules
// (uniqueness, pending-only mutation) regardless of caller.
type Store struct {
	DB *gorm.DB
}

// GetByPair returns the active (pending) record for the pair, or nil if the
// investor has no active interest. Withdrawn rows are not considered.
func (s *Store) GetByPair(ctx context.Context, investorID, financingID uuid.UUID) (*domain.InterestRecord, error) {
	var rec domain.InterestRecord
	err := s.DB.WithContext(ctx).
		Where("investor_id = ? AND financing_id = ? AND status = ?", investorID, financingID, domain.InterestPending).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetByID returns the record regardless of status.
func (s *Store) GetByID(ctx context.Context, interestID uuid.UUID) (*domain.InterestRecord, error) {
	var rec domain.InterestRecord
	err := s.DB.WithContext(ctx).Where("interest_id = ?", interestID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// GetAllActiveForFinancing returns all pending records for a financing,
// oldest first. Withdrawn rows are excluded from every aggregate.
func (s *Store) GetAllActiveForFinancing(ctx context.Context, financingID uuid.UUID) ([]domain.InterestRecord, error) {
	var recs []domain.InterestRecord
	err := s.DB.WithContext(ctx).
		Where("financing_id = ? AND status = ?", financingID, domain.InterestPending).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Insert creates a new pending record. The uniq_active_interest index is the
// backstop for two concurrent inserts of the same pair: exactly one wins.
func (s *Store) Insert(ctx context.Context, rec *domain.InterestRecord) error {
	existing, err := s.GetByPair(ctx, rec.InvestorID, rec.FinancingID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateActiveInterest
	}
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateActiveInterest
		}
		return err
	}
	return nil
}

// UpdateFields sets shares_requested and investment_amount on a pending record.
func (s *Store) UpdateFields(ctx context.Context, interestID uuid.UUID, sharesRequested int64, amount decimal.Decimal) (*domain.InterestRecord, error) {
	rec, err := s.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.InterestPending {
		return nil, ErrInvalidState
	}
	updates := map[string]interface{}{
		"shares_requested":  sharesRequested,
		"investment_amount": amount,
	}
	if err := s.DB.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
		return nil, err
	}
	rec.SharesRequested = sharesRequested
	rec.InvestmentAmount = amount
	return rec, nil
}

// Withdraw flips a pending record to withdrawn (terminal). A second withdraw
// on the same record fails with ErrInvalidState, never silently succeeds.
func (s *Store) Withdraw(ctx context.Context, interestID uuid.UUID) (*domain.InterestRecord, error) {
	rec, err := s.GetByID(ctx, interestID)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.InterestPending {
		return nil, ErrInvalidState
	}
	updates := map[string]interface{}{
		"status": domain.InterestWithdrawn,
		"active": nil, // frees the uniq_active_interest slot for the pair
	}
	if err := s.DB.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
		return nil, err
	}
	rec.Status = domain.InterestWithdrawn
	rec.Active = nil
	return rec, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
