package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// AttendanceRepository defines storage for attendance events and their
// check-in records. Same tenancy contract as the pledge repositories.
type AttendanceRepository interface {
	// GetEvent retrieves an event within the caller's church
	//
	// Possible errors:
	// - ErrEventNotFound: missing id or wrong church
	// - ErrDatabaseConnection: database failure
	GetEvent(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error)

	// CreateEvent persists a new attendance event
	CreateEvent(ctx context.Context, event *entity.AttendanceEvent) error

	// UpdateTotal conditionally writes the cached head count, using the same
	// version compare-and-swap as CommitmentRepository.UpdateBalance.
	//
	// Possible errors:
	// - ErrEventNotFound: missing id or wrong church
	// - ErrConflict: version mismatch
	// - ErrDatabaseConnection: database failure
	UpdateTotal(ctx context.Context, churchID, eventID uuid.UUID, total int, expectedVersion uint64) (*entity.AttendanceEvent, error)

	// CreateRecord persists a check-in record
	//
	// Possible errors:
	// - ErrDuplicateCheckIn: a record already exists for (event, subject)
	// - ErrDatabaseConnection: database failure
	CreateRecord(ctx context.Context, record *entity.AttendanceRecord) error

	// DeleteRecord removes the check-in for a subject
	//
	// Possible errors:
	// - ErrCheckInNotFound: no record for (event, subject) in this church
	// - ErrDatabaseConnection: database failure
	DeleteRecord(ctx context.Context, churchID, eventID, subjectID uuid.UUID) error

	// RecordExists reports whether a subject is checked in to an event
	RecordExists(ctx context.Context, churchID, eventID, subjectID uuid.UUID) (bool, error)

	// CountByEvent returns the number of live check-in records for an event
	CountByEvent(ctx context.Context, churchID, eventID uuid.UUID) (int64, error)
}
