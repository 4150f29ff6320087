package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/persistence"
)

// Service maintains the per-event head count: the integer analog of the
// pledge balance. TotalAttendance is always recomputed from the check-in
// rows (count, never a +/-1 delta) since the count query is cheap and the
// recompute is immune to lost updates.
type Service struct {
	repo         persistence.AttendanceRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates an attendance service
func NewService(repo persistence.AttendanceRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateEvent creates an attendance event with a zero head count
func (s *Service) CreateEvent(ctx context.Context, churchID uuid.UUID, name string, eventDate time.Time) (*entity.AttendanceEvent, error) {
	event, err := entity.NewAttendanceEvent(churchID, name, eventDate, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info("Attendance event created", map[string]any{
		"event_id":  event.ID.String(),
		"church_id": churchID.String(),
		"name":      event.Name,
	})
	return event, nil
}

// GetEvent fetches an event within the caller's church
func (s *Service) GetEvent(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error) {
	return s.repo.GetEvent(ctx, churchID, eventID)
}

// recomputeTotal counts the live check-in rows and writes the result with a
// version compare-and-swap, re-reading once if a concurrent writer got
// there first. Counting is idempotent so the retry is always safe.
func (s *Service) recomputeTotal(ctx context.Context, churchID, eventID uuid.UUID) (*entity.AttendanceEvent, error) {
	for attempt := 0; ; attempt++ {
		count, err := s.repo.CountByEvent(ctx, churchID, eventID)
		if err != nil {
			return nil, err
		}

		event, err := s.repo.GetEvent(ctx, churchID, eventID)
		if err != nil {
			return nil, err
		}

		updated, err := s.repo.UpdateTotal(ctx, churchID, eventID, int(count), event.Version)
		if err == nil {
			s.logger.Debug("Recomputed event attendance", map[string]any{
				"event_id": eventID.String(),
				"total":    updated.TotalAttendance,
			})
			return updated, nil
		}
		if !errors.Is(err, errs.ErrConflict) || attempt >= 1 {
			return nil, err
		}
	}
}
