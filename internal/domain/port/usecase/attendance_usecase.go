package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// BulkCheckInResult reports the outcome of a bulk check-in. The batch is
// deliberately non-atomic: successes are kept, failures are collected per
// subject.
type BulkCheckInResult struct {
	SuccessCount     int
	ErrorMessages    []string
	FailedSubjectIDs []uuid.UUID
}

// AttendanceUseCase defines the operations of the attendance counter
type AttendanceUseCase interface {
	CreateEvent(ctx context.Context, churchID uuid.UUID, name string, eventDate time.Time) (*entity.AttendanceEvent, error)
	GetEvent(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error)
	CheckIn(ctx context.Context, churchID, eventID, subjectID uuid.UUID, actor string) (*entity.AttendanceRecord, error)
	RemoveCheckIn(ctx context.Context, churchID, eventID, subjectID uuid.UUID) error
	BulkCheckIn(ctx context.Context, churchID, eventID uuid.UUID, subjectIDs []uuid.UUID, actor string) (*BulkCheckInResult, error)
}
