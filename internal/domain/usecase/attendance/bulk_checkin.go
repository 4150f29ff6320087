package attendance

import (
	"context"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
)

// BulkCheckIn checks in a list of subjects, evaluating each under the same
// rules as a single check-in. The batch is non-atomic by design: a failed
// subject is reported and skipped, earlier successes stand. The head count
// is recomputed once at the end, covering every row that made it in.
func (s *Service) BulkCheckIn(ctx context.Context, churchID, eventID uuid.UUID, subjectIDs []uuid.UUID, actor string) (*usecase.BulkCheckInResult, error) {
	if _, err := s.repo.GetEvent(ctx, churchID, eventID); err != nil {
		return nil, err
	}

	result := &usecase.BulkCheckInResult{}

	for _, subjectID := range subjectIDs {
		if err := s.checkInSubject(ctx, churchID, eventID, subjectID, actor); err != nil {
			result.ErrorMessages = append(result.ErrorMessages, err.Error())
			result.FailedSubjectIDs = append(result.FailedSubjectIDs, subjectID)
			continue
		}
		result.SuccessCount++
	}

	if result.SuccessCount > 0 {
		if _, err := s.recomputeTotal(ctx, churchID, eventID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Bulk check-in completed", map[string]any{
		"event_id":  eventID.String(),
		"requested": len(subjectIDs),
		"succeeded": result.SuccessCount,
		"failed":    len(result.FailedSubjectIDs),
	})
	return result, nil
}

func (s *Service) checkInSubject(ctx context.Context, churchID, eventID, subjectID uuid.UUID, actor string) error {
	exists, err := s.repo.RecordExists(ctx, churchID, eventID, subjectID)
	if err != nil {
		return err
	}
	if exists {
		return errs.NewDuplicateCheckInError(eventID, subjectID)
	}

	record, err := entity.NewAttendanceRecord(churchID, eventID, subjectID, actor, s.timeProvider)
	if err != nil {
		return err
	}
	return s.repo.CreateRecord(ctx, record)
}
