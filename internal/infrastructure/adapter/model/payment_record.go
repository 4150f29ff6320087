package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord represents the database model for payments against a pledge
type PaymentRecord struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PledgeID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_payment_records_pledge"`
	ChurchID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_payment_records_church"`
	Amount               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency             string          `gorm:"not null;size:3"`
	PaymentDate          time.Time       `gorm:"not null"`
	Method               string          `gorm:"not null;size:30"`
	TransactionReference string          `gorm:"size:255"`
	Notes                string          `gorm:"type:text"`
	RecordedBy           string          `gorm:"not null;size:255"`
	CreatedAt            time.Time       `gorm:"not null"`

	Commitment Commitment `gorm:"foreignKey:PledgeID;references:ID"`
}

// TableName specifies the table name for PaymentRecord
func (PaymentRecord) TableName() string {
	return "payment_records"
}
