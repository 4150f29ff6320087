package pledge

import (
	"context"

	"github.com/google/uuid"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
)

// DeleteCommitment removes a pledge. Deletion is refused while payment
// records still reference the pledge, so no payment row is ever orphaned;
// callers must delete the payments first.
func (s *Service) DeleteCommitment(ctx context.Context, churchID, pledgeID uuid.UUID) error {
	commitments := s.uow.GetCommitmentRepository(ctx)

	if _, err := commitments.GetByID(ctx, churchID, pledgeID); err != nil {
		return err
	}

	count, err := s.uow.GetPaymentRepository(ctx).CountByPledge(ctx, churchID, pledgeID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Warn("Refusing to delete pledge with payment records", map[string]any{
			"pledge_id":     pledgeID.String(),
			"payment_count": count,
		})
		return errs.NewHasPaymentsError(pledgeID, count)
	}

	if err := commitments.Delete(ctx, churchID, pledgeID); err != nil {
		return err
	}

	s.logger.Info("Commitment deleted", map[string]any{
		"pledge_id": pledgeID.String(),
		"church_id": churchID.String(),
	})
	return nil
}
