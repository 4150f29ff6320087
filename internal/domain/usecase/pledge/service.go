package pledge

import (
	"context"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/persistence"
)

// DefaultMaxConflictRetries is the bounded number of re-read/re-validate
// attempts after a lost-update conflict before the conflict is surfaced to
// the caller for resubmission.
const DefaultMaxConflictRetries = 1

// Service orchestrates the pledge ledger: commitment CRUD, payment
// recording/deletion, and the reconciliation that keeps the cached balance
// honest.
type Service struct {
	uow                persistence.UnitOfWork
	resolver           persistence.ContributorResolver
	reconciler         *Reconciler
	timeProvider       coreport.TimeProvider
	logger             coreport.Logger
	maxConflictRetries int
}

// NewService creates a pledge service
func NewService(
	uow persistence.UnitOfWork,
	resolver persistence.ContributorResolver,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:                uow,
		resolver:           resolver,
		reconciler:         NewReconciler(uow, timeProvider, logger),
		timeProvider:       timeProvider,
		logger:             logger,
		maxConflictRetries: DefaultMaxConflictRetries,
	}
}

// WithMaxConflictRetries overrides the bounded conflict retry count
func (s *Service) WithMaxConflictRetries(retries int) *Service {
	if retries >= 0 {
		s.maxConflictRetries = retries
	}
	return s
}

// Reconciler exposes the reconciler for operational tooling (manual
// reconciliation of a drifted pledge)
func (s *Service) Reconciler() *Reconciler {
	return s.reconciler
}

// GetCommitment fetches a commitment within the caller's church
func (s *Service) GetCommitment(ctx context.Context, churchID, pledgeID uuid.UUID) (*entity.Commitment, error) {
	return s.uow.GetCommitmentRepository(ctx).GetByID(ctx, churchID, pledgeID)
}

// ListCommitments returns all of a church's pledges, newest first
func (s *Service) ListCommitments(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error) {
	return s.uow.GetCommitmentRepository(ctx).ListByChurch(ctx, churchID)
}

// ListPayments returns a pledge's payments, most recent payment date first.
// The pledge is loaded first so a wrong-tenant pledge id fails with not-found
// instead of returning an empty list.
func (s *Service) ListPayments(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error) {
	if _, err := s.uow.GetCommitmentRepository(ctx).GetByID(ctx, churchID, pledgeID); err != nil {
		return nil, err
	}
	return s.uow.GetPaymentRepository(ctx).ListByPledge(ctx, churchID, pledgeID)
}
