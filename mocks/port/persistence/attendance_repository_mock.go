package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// MockAttendanceRepository is a testify mock for the AttendanceRepository port
type MockAttendanceRepository struct {
	mock.Mock
}

// GetEvent mocks fetching an event
func (m *MockAttendanceRepository) GetEvent(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error) {
	args := m.Called(ctx, churchID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AttendanceEvent), args.Error(1)
}

// CreateEvent mocks persisting an event
func (m *MockAttendanceRepository) CreateEvent(ctx context.Context, event *entity.AttendanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// UpdateTotal mocks the compare-and-swap head count write
func (m *MockAttendanceRepository) UpdateTotal(ctx context.Context, churchID, eventID uuid.UUID, total int, expectedVersion uint64) (*entity.AttendanceEvent, error) {
	args := m.Called(ctx, churchID, eventID, total, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AttendanceEvent), args.Error(1)
}

// CreateRecord mocks inserting a check-in row
func (m *MockAttendanceRepository) CreateRecord(ctx context.Context, record *entity.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// DeleteRecord mocks removing a check-in row
func (m *MockAttendanceRepository) DeleteRecord(ctx context.Context, churchID, eventID, subjectID uuid.UUID) error {
	args := m.Called(ctx, churchID, eventID, subjectID)
	return args.Error(0)
}

// RecordExists mocks the duplicate check-in probe
func (m *MockAttendanceRepository) RecordExists(ctx context.Context, churchID, eventID, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, churchID, eventID, subjectID)
	return args.Bool(0), args.Error(1)
}

// CountByEvent mocks counting live check-in rows
func (m *MockAttendanceRepository) CountByEvent(ctx context.Context, churchID, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, churchID, eventID)
	return args.Get(0).(int64), args.Error(1)
}
