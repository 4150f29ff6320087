package attendance

import (
	"context"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
)

// CheckIn records a subject's presence at an event and refreshes the cached
// head count. A subject can be checked in at most once per event.
func (s *Service) CheckIn(ctx context.Context, churchID, eventID, subjectID uuid.UUID, actor string) (*entity.AttendanceRecord, error) {
	if _, err := s.repo.GetEvent(ctx, churchID, eventID); err != nil {
		return nil, err
	}

	exists, err := s.repo.RecordExists(ctx, churchID, eventID, subjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewDuplicateCheckInError(eventID, subjectID)
	}

	record, err := entity.NewAttendanceRecord(churchID, eventID, subjectID, actor, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// The unique (event, subject) index backs up the existence check above,
	// so two racing check-ins for the same subject still produce exactly one
	// row; the loser gets the duplicate error from the insert.
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	if _, err := s.recomputeTotal(ctx, churchID, eventID); err != nil {
		return nil, err
	}

	s.logger.Info("Subject checked in", map[string]any{
		"event_id":   eventID.String(),
		"subject_id": subjectID.String(),
		"actor":      actor,
	})
	return record, nil
}

// RemoveCheckIn deletes a subject's check-in and refreshes the head count
func (s *Service) RemoveCheckIn(ctx context.Context, churchID, eventID, subjectID uuid.UUID) error {
	if err := s.repo.DeleteRecord(ctx, churchID, eventID, subjectID); err != nil {
		return err
	}

	if _, err := s.recomputeTotal(ctx, churchID, eventID); err != nil {
		return err
	}

	s.logger.Info("Check-in removed", map[string]any{
		"event_id":   eventID.String(),
		"subject_id": subjectID.String(),
	})
	return nil
}
