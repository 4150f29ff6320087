package pledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
)

// DeletePayment removes a payment record and recomputes the pledge balance
// from the remaining rows. Recompute, not a negative delta, is used here:
// deletion is the operation most exposed to drift if an earlier balance
// write was interrupted, and the recompute heals any such drift for free.
//
// The delete and the recompute share a unit of work so the balance a reader
// observes after this call always reflects the surviving rows.
func (s *Service) DeletePayment(ctx context.Context, churchID, pledgeID, paymentID uuid.UUID) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}

	if err := s.deletePaymentInTx(txCtx, churchID, pledgeID, paymentID); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back payment deletion", map[string]any{
				"payment_id": paymentID.String(),
				"error":      rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit payment deletion: %w", err)
	}

	s.logger.Info("Payment deleted and balance recomputed", map[string]any{
		"payment_id": paymentID.String(),
		"pledge_id":  pledgeID.String(),
	})
	return nil
}

func (s *Service) deletePaymentInTx(ctx context.Context, churchID, pledgeID, paymentID uuid.UUID) error {
	payments := s.uow.GetPaymentRepository(ctx)

	record, err := payments.GetByID(ctx, churchID, paymentID)
	if err != nil {
		return err
	}
	if record.PledgeID != pledgeID {
		// A payment id under a different pledge is indistinguishable from a
		// missing one to the caller.
		return errs.ErrPaymentNotFound
	}

	if err := payments.Delete(ctx, churchID, paymentID); err != nil {
		return err
	}

	if _, err := s.reconciler.RecomputeFromScratch(ctx, churchID, pledgeID); err != nil {
		return fmt.Errorf("failed to recompute balance after deletion: %w", err)
	}
	return nil
}
