package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/model"
)

// AttendanceRepository implements the attendance persistence port using GORM
type AttendanceRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAttendanceRepository creates a new AttendanceRepository instance
func NewAttendanceRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *AttendanceRepository) eventModelToEntity(m *model.AttendanceEvent) *entity.AttendanceEvent {
	return &entity.AttendanceEvent{
		ID:              m.ID,
		ChurchID:        m.ChurchID,
		Name:            m.Name,
		EventDate:       m.EventDate,
		TotalAttendance: m.TotalAttendance,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *AttendanceRepository) handleEventError(operation string, err error, eventID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrEventNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"event_id": eventID.String(),
		"error":    err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetEvent retrieves an event scoped to a church
func (r *AttendanceRepository) GetEvent(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error) {
	var m model.AttendanceEvent
	result := r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", eventID, churchID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleEventError("getting event", result.Error, eventID)
	}
	return r.eventModelToEntity(&m), nil
}

// CreateEvent persists a new attendance event
func (r *AttendanceRepository) CreateEvent(ctx context.Context, event *entity.AttendanceEvent) error {
	m := model.AttendanceEvent{
		ID:              event.ID,
		ChurchID:        event.ChurchID,
		Name:            event.Name,
		EventDate:       event.EventDate,
		TotalAttendance: event.TotalAttendance,
		Version:         event.Version,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleEventError("creating event", result.Error, event.ID)
	}
	return nil
}

// UpdateTotal writes the cached head count with a version compare-and-swap,
// mirroring the pledge balance write
func (r *AttendanceRepository) UpdateTotal(ctx context.Context, churchID, eventID uuid.UUID, total int, expectedVersion uint64) (*entity.AttendanceEvent, error) {
	result := r.db.WithContext(ctx).Model(&model.AttendanceEvent{}).
		Where("id = ? AND church_id = ? AND version = ?", eventID, churchID, expectedVersion).
		Updates(map[string]interface{}{
			"total_attendance": total,
			"version":          expectedVersion + 1,
			"updated_at":       r.timeProvider.Now(),
		})
	if result.Error != nil {
		return nil, r.handleEventError("updating attendance total", result.Error, eventID)
	}

	if result.RowsAffected == 0 {
		var m model.AttendanceEvent
		check := r.db.WithContext(ctx).
			Where("id = ? AND church_id = ?", eventID, churchID).
			First(&m)
		if check.Error != nil {
			return nil, r.handleEventError("checking total conflict", check.Error, eventID)
		}
		return nil, errs.ErrConflict
	}

	var m model.AttendanceEvent
	result = r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", eventID, churchID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleEventError("reloading event", result.Error, eventID)
	}
	return r.eventModelToEntity(&m), nil
}

// CreateRecord inserts a check-in row. The unique (event, subject) index
// turns a concurrent double check-in into a duplicate key error, reported as
// a duplicate check-in.
func (r *AttendanceRepository) CreateRecord(ctx context.Context, record *entity.AttendanceRecord) error {
	m := model.AttendanceRecord{
		ID:          record.ID,
		EventID:     record.EventID,
		ChurchID:    record.ChurchID,
		SubjectID:   record.SubjectID,
		CheckedInBy: record.CheckedInBy,
		CreatedAt:   record.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.NewDuplicateCheckInError(record.EventID, record.SubjectID)
		}
		r.logger.Error("Database error when creating check-in", map[string]any{
			"event_id":   record.EventID.String(),
			"subject_id": record.SubjectID.String(),
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// DeleteRecord removes a subject's check-in for an event
func (r *AttendanceRepository) DeleteRecord(ctx context.Context, churchID, eventID, subjectID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND church_id = ? AND subject_id = ?", eventID, churchID, subjectID).
		Delete(&model.AttendanceRecord{})
	if result.Error != nil {
		return r.handleEventError("deleting check-in", result.Error, eventID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCheckInNotFound
	}
	return nil
}

// RecordExists reports whether a subject is already checked in to an event
func (r *AttendanceRepository) RecordExists(ctx context.Context, churchID, eventID, subjectID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("event_id = ? AND church_id = ? AND subject_id = ?", eventID, churchID, subjectID).
		Count(&count)
	if result.Error != nil {
		return false, r.handleEventError("checking check-in existence", result.Error, eventID)
	}
	return count > 0, nil
}

// CountByEvent counts the live check-in rows for an event
func (r *AttendanceRepository) CountByEvent(ctx context.Context, churchID, eventID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("event_id = ? AND church_id = ?", eventID, churchID).
		Count(&count)
	if result.Error != nil {
		return 0, r.handleEventError("counting check-ins", result.Error, eventID)
	}
	return count, nil
}
