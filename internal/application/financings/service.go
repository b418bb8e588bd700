package financings

import (
	"context"
	"errors"
	"time"

	"minevest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("We could not find that financing.")
	ErrInvalidInput  = errors.New("Please provide a company name and a round name.")
	ErrInvalidPrice  = errors.New("Please enter a valid price per share.")
	ErrInvalidShares = errors.New("Please enter a valid number of shares issued.")
	ErrInvalidStatus = errors.New("That is not a valid financing status.")
	ErrFinalStatus   = errors.New("This financing has been finalized and its status can no longer change.")
)

// Service owns the financing catalogue. The interest ledger only ever reads
// financings; status transitions here are the admin write path.
type Service struct {
	DB *gorm.DB
}

type CreateFinancingInput struct {
	CompanyName   string
	RoundName     string
	PricePerShare *decimal.Decimal
	SharesIssued  *int64
	ClosingDate   *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateFinancingInput) (*domain.Financing, error) {
	if in.CompanyName == "" || in.RoundName == "" {
		return nil, ErrInvalidInput
	}
	if in.PricePerShare != nil && in.PricePerShare.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if in.SharesIssued != nil && *in.SharesIssued < 0 {
		return nil, ErrInvalidShares
	}
	fin := &domain.Financing{
		CompanyName:   in.CompanyName,
		RoundName:     in.RoundName,
		Status:        domain.FinancingAnnounced,
		PricePerShare: in.PricePerShare,
		SharesIssued:  in.SharesIssued,
		ClosingDate:   in.ClosingDate,
	}
	if err := s.DB.WithContext(ctx).Create(fin).Error; err != nil {
		return nil, err
	}
	return fin, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Financing, error) {
	var fins []domain.Financing
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&fins).Error; err != nil {
		return nil, err
	}
	return fins, nil
}

func (s *Service) Get(ctx context.Context, financingID uuid.UUID) (*domain.Financing, error) {
	var fin domain.Financing
	if err := s.DB.WithContext(ctx).Where("financing_id = ?", financingID).First(&fin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fin, nil
}

// UpdateStatus moves a financing through announced → closing → closed or
// cancelled. Closed and cancelled are terminal.
func (s *Service) UpdateStatus(ctx context.Context, financingID uuid.UUID, status string) (*domain.Financing, error) {
	switch status {
	case domain.FinancingAnnounced, domain.FinancingClosing, domain.FinancingClosed, domain.FinancingCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	var fin domain.Financing
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("financing_id = ?", financingID).First(&fin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if fin.Status == domain.FinancingClosed || fin.Status == domain.FinancingCancelled {
			return ErrFinalStatus
		}
		return tx.Model(&fin).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	fin.Status = status
	return &fin, nil
}
