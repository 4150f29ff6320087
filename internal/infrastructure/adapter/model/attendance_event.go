package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceEvent represents the database model for attendance events
type AttendanceEvent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChurchID        uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_events_church"`
	Name            string    `gorm:"not null;size:255"`
	EventDate       time.Time `gorm:"not null"`
	TotalAttendance int       `gorm:"not null;default:0"`
	Version         uint64    `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for AttendanceEvent
func (AttendanceEvent) TableName() string {
	return "attendance_events"
}
