package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investor roles.
const (
	RoleInvestor = "investor"
	RoleAdmin    = "admin"
)

// Investor is a platform account that can express interest in financings.
type Investor struct {
	InvestorID   uuid.UUID `gorm:"column:investor_id;type:uuid;primaryKey" json:"investor_id"`
	FullName     string    `gorm:"column:full_name;not null" json:"full_name"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);default:'investor'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Investor) TableName() string {
	return "Investors"
}

func (i *Investor) BeforeCreate(tx *gorm.DB) error {
	if i.InvestorID == uuid.Nil {
		i.InvestorID = uuid.New()
	}
	if i.Role == "" {
		i.Role = RoleInvestor
	}
	return nil
}
