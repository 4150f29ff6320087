package model

import (
	"time"

	"github.com/google/uuid"
)

// Member represents the database model for registered church members. Only
// the columns the ledger needs are mapped; member management itself lives in
// another service.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChurchID  uuid.UUID `gorm:"type:uuid;not null;index:idx_members_church"`
	FirstName string    `gorm:"not null;size:100"`
	LastName  string    `gorm:"not null;size:100"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}
