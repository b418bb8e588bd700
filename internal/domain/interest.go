package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InterestRecord statuses. Withdrawn is terminal for the record.
const (
	InterestPending   = "pending"
	InterestWithdrawn = "withdrawn"
)

// InterestEvent types.
const (
	EventExpressed = "EXPRESSED"
	EventUpdated   = "UPDATED"
	EventWithdrawn = "WITHDRAWN"
)

// InterestRecord is one investor's interest in one financing. Records are
// never deleted; withdrawing flips status to withdrawn and clears Active.
type InterestRecord struct {
	InterestID       uuid.UUID       `gorm:"column:interest_id;type:uuid;primaryKey" json:"interest_id"`
	FinancingID      uuid.UUID       `gorm:"column:financing_id;type:uuid;not null;index;uniqueIndex:uniq_active_interest" json:"financing_id"`
	InvestorID       uuid.UUID       `gorm:"column:investor_id;type:uuid;not null;index;uniqueIndex:uniq_active_interest" json:"investor_id"`
	SharesRequested  int64           `gorm:"column:shares_requested;not null" json:"shares_requested"`
	InvestmentAmount decimal.Decimal `gorm:"column:investment_amount;type:decimal(18,2);not null" json:"investment_amount"`
	Status           string          `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	// Active is true while pending and NULL once withdrawn. NULLs never collide
	// in unique indexes (Postgres and SQLite), so uniq_active_interest allows
	// any number of withdrawn rows but at most one pending row per pair.
	Active    *bool     `gorm:"column:active;uniqueIndex:uniq_active_interest" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InterestRecord) TableName() string {
	return "InvestmentInterests"
}

// BeforeCreate sets interest_id and marks the record active.
func (r *InterestRecord) BeforeCreate(tx *gorm.DB) error {
	if r.InterestID == uuid.Nil {
		r.InterestID = uuid.New()
	}
	if r.Status == "" {
		r.Status = InterestPending
	}
	if r.Status == InterestPending && r.Active == nil {
		active := true
		r.Active = &active
	}
	return nil
}

// InterestEvent is an audit row written in the same transaction as every
// interest mutation.
type InterestEvent struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	InterestID uuid.UUID      `gorm:"column:interest_id;type:uuid;not null;index" json:"interest_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData  datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (InterestEvent) TableName() string {
	return "InterestEvents"
}

func (e *InterestEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
