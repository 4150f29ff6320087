package pledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/persistence"
)

// Reconciler keeps Commitment.AmountPaid and IsFulfilled consistent with the
// true sum of the pledge's payment records. It offers two strategies:
//
//   - ApplyPaymentDelta: fast incremental update, guarded by a version
//     compare-and-swap so a lost-update race surfaces as ErrConflict instead
//     of silently exceeding the pledge.
//   - RecomputeFromScratch: re-sums the live payment rows and overwrites the
//     cache. Idempotent and self-healing; preferred after deletions and
//     whenever drift is suspected.
//
// Repositories are fetched through the unit of work so both strategies run
// inside the caller's transaction when ctx carries one.
type Reconciler struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Reconciler {
	return &Reconciler{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ApplyPaymentDelta adjusts the cached balance by a signed delta. Positive
// deltas are re-validated against the remaining balance even though the
// payment service already checked, so a stale read between the two checks
// cannot push the balance past the pledge amount. Negative results clamp at
// zero.
func (r *Reconciler) ApplyPaymentDelta(ctx context.Context, churchID, pledgeID uuid.UUID, delta decimal.Decimal) (*entity.Commitment, error) {
	commitments := r.uow.GetCommitmentRepository(ctx)

	commitment, err := commitments.GetByID(ctx, churchID, pledgeID)
	if err != nil {
		return nil, err
	}

	if delta.IsPositive() {
		if err := commitment.ApplyPayment(delta, r.timeProvider); err != nil {
			r.logger.Warn("Payment delta rejected", map[string]any{
				"pledge_id": pledgeID.String(),
				"delta":     entity.FormatAmount(delta),
				"paid":      entity.FormatAmount(commitment.AmountPaid()),
				"error":     err.Error(),
			})
			return nil, err
		}
	} else {
		commitment.RevertPayment(delta.Neg(), r.timeProvider)
	}

	updated, err := commitments.UpdateBalance(ctx, churchID, pledgeID,
		commitment.AmountPaid(), commitment.IsFulfilled, commitment.Version)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			r.logger.Warn("Balance write lost to a concurrent update", map[string]any{
				"pledge_id": pledgeID.String(),
				"delta":     entity.FormatAmount(delta),
			})
		}
		return nil, err
	}

	r.logger.Debug("Applied payment delta", map[string]any{
		"pledge_id":   pledgeID.String(),
		"delta":       entity.FormatAmount(delta),
		"amount_paid": entity.FormatAmount(updated.AmountPaid()),
		"fulfilled":   updated.IsFulfilled,
	})
	return updated, nil
}

// RecomputeFromScratch derives the balance from the live payment rows and
// overwrites the cache. Because the input is the source of truth, a lost
// delta from an earlier interrupted write is healed here. The internal
// conflict retry makes the call safe to use as a compensating action.
func (r *Reconciler) RecomputeFromScratch(ctx context.Context, churchID, pledgeID uuid.UUID) (*entity.Commitment, error) {
	commitments := r.uow.GetCommitmentRepository(ctx)
	payments := r.uow.GetPaymentRepository(ctx)

	// One re-read on conflict: the recompute is idempotent so retrying with
	// a fresh version token is always safe.
	for attempt := 0; ; attempt++ {
		sum, err := payments.SumByPledge(ctx, churchID, pledgeID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum payments for pledge %s: %w", pledgeID, err)
		}

		commitment, err := commitments.GetByID(ctx, churchID, pledgeID)
		if err != nil {
			return nil, err
		}

		commitment.SetAmountPaid(sum, r.timeProvider)

		updated, err := commitments.UpdateBalance(ctx, churchID, pledgeID,
			commitment.AmountPaid(), commitment.IsFulfilled, commitment.Version)
		if err == nil {
			r.logger.Info("Recomputed pledge balance from payment rows", map[string]any{
				"pledge_id":   pledgeID.String(),
				"amount_paid": entity.FormatAmount(updated.AmountPaid()),
				"fulfilled":   updated.IsFulfilled,
			})
			return updated, nil
		}
		if !errors.Is(err, errs.ErrConflict) || attempt >= 1 {
			return nil, err
		}
	}
}
