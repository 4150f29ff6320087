package pledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
)

// RecordPayment validates and records a partial payment against a pledge,
// then brings the cached balance up to date. The payment-row insert and the
// balance write run inside one unit of work: if the balance write fails the
// insert rolls back, so an orphan payment with a stale balance cannot
// survive the call.
//
// A lost-update conflict on the balance write gets one bounded retry
// (re-read, re-validate, re-apply); a second conflict is surfaced to the
// caller for resubmission.
func (s *Service) RecordPayment(ctx context.Context, in usecase.RecordPaymentInput) (*entity.PaymentRecord, error) {
	for attempt := 0; ; attempt++ {
		record, err := s.recordPaymentOnce(ctx, in)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, errs.ErrConflict) || attempt >= s.maxConflictRetries {
			return nil, err
		}
		s.logger.Warn("Retrying payment after lost-update conflict", map[string]any{
			"pledge_id": in.PledgeID.String(),
			"amount":    in.Amount,
			"attempt":   attempt + 1,
		})
	}
}

func (s *Service) recordPaymentOnce(ctx context.Context, in usecase.RecordPaymentInput) (*entity.PaymentRecord, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin payment transaction: %w", err)
	}

	record, err := s.recordPaymentInTx(txCtx, in)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back payment transaction", map[string]any{
				"pledge_id": in.PledgeID.String(),
				"error":     rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit payment transaction: %w", err)
	}

	s.logger.Info("Payment recorded", map[string]any{
		"payment_id": record.ID.String(),
		"pledge_id":  record.PledgeID.String(),
		"amount":     entity.FormatAmount(record.Amount),
		"currency":   record.Currency,
		"method":     string(record.Method),
		"actor":      record.RecordedBy,
	})
	return record, nil
}

func (s *Service) recordPaymentInTx(ctx context.Context, in usecase.RecordPaymentInput) (*entity.PaymentRecord, error) {
	commitments := s.uow.GetCommitmentRepository(ctx)

	commitment, err := commitments.GetByID(ctx, in.ChurchID, in.PledgeID)
	if err != nil {
		return nil, err
	}

	record, err := entity.NewPaymentRecord(
		in.ChurchID,
		in.PledgeID,
		in.Amount,
		in.Currency,
		in.PaymentDate,
		in.Method,
		in.TransactionReference,
		in.Notes,
		in.Actor,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if record.Currency != commitment.Currency {
		return nil, errs.NewCurrencyMismatchError(commitment.ID, commitment.Currency, record.Currency)
	}

	if record.Amount.GreaterThan(commitment.Remaining()) {
		return nil, errs.NewOverpaymentError(commitment.ID,
			entity.FormatAmount(record.Amount), entity.FormatAmount(commitment.Remaining()))
	}

	if err := s.uow.GetPaymentRepository(ctx).Create(ctx, record); err != nil {
		return nil, err
	}

	// The reconciler re-validates the delta against a fresh read, so even if
	// another request slipped a payment in between our check and this write,
	// the balance cannot exceed the pledge amount.
	if _, err := s.reconciler.ApplyPaymentDelta(ctx, in.ChurchID, in.PledgeID, record.Amount); err != nil {
		return nil, err
	}

	return record, nil
}
