package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord represents the database model for check-ins. The unique
// index on (event_id, subject_id) enforces one check-in per subject per
// event even under concurrent inserts.
type AttendanceRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_records_event_subject"`
	ChurchID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_records_church"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_records_event_subject"`
	CheckedInBy string    `gorm:"not null;size:255"`
	CreatedAt   time.Time `gorm:"not null"`

	Event AttendanceEvent `gorm:"foreignKey:EventID;references:ID"`
}

// TableName specifies the table name for AttendanceRecord
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
