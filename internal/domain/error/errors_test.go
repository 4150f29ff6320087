package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Run("should map base errors to their codes", func(t *testing.T) {
		assert.Equal(t, CodeInvalidAmount, ErrorCode(ErrInvalidAmount))
		assert.Equal(t, CodeCurrencyMismatch, ErrorCode(ErrCurrencyMismatch))
		assert.Equal(t, CodeOverpayment, ErrorCode(ErrOverpayment))
		assert.Equal(t, CodeDuplicateCheckIn, ErrorCode(ErrDuplicateCheckIn))
		assert.Equal(t, CodeHasPayments, ErrorCode(ErrHasPayments))
		assert.Equal(t, CodeInvalidContrib, ErrorCode(ErrInvalidContributor))
		assert.Equal(t, CodePledgeNotFound, ErrorCode(ErrPledgeNotFound))
		assert.Equal(t, CodePaymentNotFound, ErrorCode(ErrPaymentNotFound))
		assert.Equal(t, CodeEventNotFound, ErrorCode(ErrEventNotFound))
		assert.Equal(t, CodeMemberNotFound, ErrorCode(ErrMemberNotFound))
		assert.Equal(t, CodeConflict, ErrorCode(ErrConflict))
		assert.Equal(t, CodeValidation, ErrorCode(ErrValidation))
		assert.Equal(t, CodeValidation, ErrorCode(ErrInvalidCurrency))
	})

	t.Run("should map wrapped errors through the chain", func(t *testing.T) {
		wrapped := fmt.Errorf("while recording: %w", ErrOverpayment)

		assert.Equal(t, CodeOverpayment, ErrorCode(wrapped))
	})

	t.Run("should default to the internal server code", func(t *testing.T) {
		assert.Equal(t, CodeInternalServer, ErrorCode(errors.New("something unexpected")))
		assert.Equal(t, CodeInternalServer, ErrorCode(ErrInternalServer))
	})
}

func TestOverpaymentError(t *testing.T) {
	pledgeID := uuid.New()
	err := NewOverpaymentError(pledgeID, "600.00", "500.00")

	t.Run("should match ErrOverpayment through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrOverpayment)
		assert.True(t, IsOverpaymentError(err))
	})

	t.Run("should expose its details for logging", func(t *testing.T) {
		var overErr *OverpaymentError
		assert.True(t, errors.As(err, &overErr))

		fields := overErr.LogFields()
		assert.Equal(t, pledgeID.String(), fields["pledge_id"])
		assert.Equal(t, "600.00", fields["amount"])
		assert.Equal(t, "500.00", fields["remaining"])
		assert.Equal(t, CodeOverpayment, fields["error_code"])
	})

	t.Run("should describe the rejection", func(t *testing.T) {
		assert.Contains(t, err.Error(), "600.00")
		assert.Contains(t, err.Error(), "500.00")
		assert.Contains(t, err.Error(), pledgeID.String())
	})
}

func TestCurrencyMismatchError(t *testing.T) {
	pledgeID := uuid.New()
	err := NewCurrencyMismatchError(pledgeID, "GHS", "USD")

	t.Run("should match ErrCurrencyMismatch through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
		assert.True(t, IsCurrencyMismatchError(err))
	})

	t.Run("should carry both currencies", func(t *testing.T) {
		var mismatchErr *CurrencyMismatchError
		assert.True(t, errors.As(err, &mismatchErr))
		assert.Equal(t, "GHS", mismatchErr.PledgeCurrency)
		assert.Equal(t, "USD", mismatchErr.PaymentCurrency)

		fields := mismatchErr.LogFields()
		assert.Equal(t, "GHS", fields["pledge_currency"])
		assert.Equal(t, "USD", fields["payment_currency"])
	})
}

func TestDuplicateCheckInError(t *testing.T) {
	eventID := uuid.New()
	subjectID := uuid.New()
	err := NewDuplicateCheckInError(eventID, subjectID)

	t.Run("should match ErrDuplicateCheckIn through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrDuplicateCheckIn)
		assert.True(t, IsDuplicateCheckInError(err))
	})

	t.Run("should identify the subject and event", func(t *testing.T) {
		var dupErr *DuplicateCheckInError
		assert.True(t, errors.As(err, &dupErr))
		assert.Equal(t, eventID, dupErr.EventID)
		assert.Equal(t, subjectID, dupErr.SubjectID)

		fields := dupErr.LogFields()
		assert.Equal(t, eventID.String(), fields["event_id"])
		assert.Equal(t, subjectID.String(), fields["subject_id"])
	})
}

func TestHasPaymentsError(t *testing.T) {
	pledgeID := uuid.New()
	err := NewHasPaymentsError(pledgeID, 3)

	t.Run("should match ErrHasPayments through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrHasPayments)
	})

	t.Run("should report the blocking payment count", func(t *testing.T) {
		var hpErr *HasPaymentsError
		assert.True(t, errors.As(err, &hpErr))
		assert.Equal(t, int64(3), hpErr.PaymentCount)

		fields := hpErr.LogFields()
		assert.Equal(t, int64(3), fields["payment_count"])
	})
}

func TestErrorClassifiers(t *testing.T) {
	t.Run("should classify validation errors", func(t *testing.T) {
		assert.True(t, IsValidationError(ErrValidation))
		assert.True(t, IsValidationError(ErrInvalidAmount))
		assert.True(t, IsValidationError(ErrInvalidCurrency))
		assert.True(t, IsValidationError(ErrInvalidContributor))
		assert.False(t, IsValidationError(ErrConflict))
	})

	t.Run("should classify not-found errors", func(t *testing.T) {
		assert.True(t, IsNotFoundError(ErrNotFound))
		assert.True(t, IsNotFoundError(ErrPledgeNotFound))
		assert.True(t, IsNotFoundError(ErrPaymentNotFound))
		assert.True(t, IsNotFoundError(ErrEventNotFound))
		assert.True(t, IsNotFoundError(ErrCheckInNotFound))
		assert.True(t, IsNotFoundError(ErrMemberNotFound))
		assert.False(t, IsNotFoundError(ErrConflict))
	})

	t.Run("should classify conflict errors", func(t *testing.T) {
		assert.True(t, IsConflictError(ErrConflict))
		assert.True(t, IsConflictError(fmt.Errorf("update failed: %w", ErrConflict)))
		assert.False(t, IsConflictError(ErrValidation))
	})
}
