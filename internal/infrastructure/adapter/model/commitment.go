package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commitment represents the database model for pledges. The contributor
// union is flattened into nullable columns discriminated by ContributorKind.
type Commitment struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChurchID         uuid.UUID `gorm:"type:uuid;not null;index:idx_commitments_church"`
	ContributorKind  string    `gorm:"not null;size:20"`
	MemberID         *uuid.UUID
	VisitorFirstName string `gorm:"size:100"`
	VisitorLastName  string `gorm:"size:100"`
	VisitorPhone     string `gorm:"size:50"`
	VisitorEmail     string `gorm:"size:255"`
	CategoryID       *uuid.UUID
	PledgeAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency         string          `gorm:"not null;size:3"`
	AmountPaid       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsFulfilled      bool            `gorm:"not null;default:false"`
	PledgeDate       time.Time       `gorm:"not null"`
	DueDate          *time.Time
	Notes            string    `gorm:"type:text"`
	Version          uint64    `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for Commitment
func (Commitment) TableName() string {
	return "commitments"
}
