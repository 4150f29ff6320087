package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
)

// AttendanceEvent is a service or gathering whose head count is tracked.
// TotalAttendance is a denormalized cache of the count of check-in records,
// maintained by the same recompute pattern as the pledge balance.
type AttendanceEvent struct {
	ID              uuid.UUID
	ChurchID        uuid.UUID
	Name            string
	EventDate       time.Time
	TotalAttendance int
	Version         uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAttendanceEvent creates an event with a zero head count
func NewAttendanceEvent(
	churchID uuid.UUID,
	name string,
	eventDate time.Time,
	timeProvider coreport.TimeProvider,
) (*AttendanceEvent, error) {
	if churchID == uuid.Nil {
		return nil, errs.ErrValidation
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrValidation
	}

	now := timeProvider.Now()
	return &AttendanceEvent{
		ID:              uuid.New(),
		ChurchID:        churchID,
		Name:            name,
		EventDate:       eventDate,
		TotalAttendance: 0,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SetTotalAttendance overwrites the cached head count; negative counts are
// clamped to zero
func (e *AttendanceEvent) SetTotalAttendance(total int, timeProvider coreport.TimeProvider) {
	if total < 0 {
		total = 0
	}
	e.TotalAttendance = total
	e.UpdatedAt = timeProvider.Now()
}

// AttendanceRecord is a single check-in of a subject (member or visitor id)
// to an event. At most one record exists per (event, subject) pair.
type AttendanceRecord struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	ChurchID    uuid.UUID
	SubjectID   uuid.UUID
	CheckedInBy string
	CreatedAt   time.Time
}

// NewAttendanceRecord creates a check-in record with basic validation
func NewAttendanceRecord(
	churchID uuid.UUID,
	eventID uuid.UUID,
	subjectID uuid.UUID,
	checkedInBy string,
	timeProvider coreport.TimeProvider,
) (*AttendanceRecord, error) {
	if churchID == uuid.Nil || eventID == uuid.Nil || subjectID == uuid.Nil {
		return nil, errs.ErrValidation
	}
	checkedInBy = strings.TrimSpace(checkedInBy)
	if checkedInBy == "" {
		return nil, errs.ErrValidation
	}

	return &AttendanceRecord{
		ID:          uuid.New(),
		EventID:     eventID,
		ChurchID:    churchID,
		SubjectID:   subjectID,
		CheckedInBy: checkedInBy,
		CreatedAt:   timeProvider.Now(),
	}, nil
}
