package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Amounts and percentages go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Financing statuses. Closed and cancelled are terminal.
const (
	FinancingAnnounced = "announced"
	FinancingClosing   = "closing"
	FinancingClosed    = "closed"
	FinancingCancelled = "cancelled"
)

// Financing is a company financing round investors can express interest in.
// PricePerShare is nullable: nil means the price has not been set yet.
type Financing struct {
	FinancingID   uuid.UUID        `gorm:"column:financing_id;type:uuid;primaryKey" json:"financing_id"`
	CompanyName   string           `gorm:"column:company_name;not null" json:"company_name"`
	RoundName     string           `gorm:"column:round_name;not null" json:"round_name"`
	Status        string           `gorm:"column:status;type:varchar(20);default:'announced'" json:"status"`
	PricePerShare *decimal.Decimal `gorm:"column:price_per_share;type:decimal(18,6)" json:"price_per_share"`
	SharesIssued  *int64           `gorm:"column:shares_issued" json:"shares_issued"`
	ClosingDate   *time.Time       `gorm:"column:closing_date" json:"closing_date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Financing) TableName() string {
	return "Financings"
}

// BeforeCreate sets financing_id if not already set (DBs without default uuid).
func (f *Financing) BeforeCreate(tx *gorm.DB) error {
	if f.FinancingID == uuid.Nil {
		f.FinancingID = uuid.New()
	}
	return nil
}

// AcceptingInterest reports whether interest may still be expressed.
func (f *Financing) AcceptingInterest() bool {
	return f.Status == FinancingAnnounced || f.Status == FinancingClosing
}

// HasSharePrice reports whether a positive price_per_share is set, in which
// case shares_requested is derived server-side from the amount.
func (f *Financing) HasSharePrice() bool {
	return f.PricePerShare != nil && f.PricePerShare.IsPositive()
}
