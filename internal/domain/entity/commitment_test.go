package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/mocks/port/core"
)

func visitorContributor(t *testing.T) Contributor {
	t.Helper()
	c, err := NewVisitorContributor("Ama", "Mensah", "", "")
	assert.NoError(t, err)
	return c
}

func TestNewCommitment(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	churchID := uuid.New()

	t.Run("should create a commitment with a zero balance", func(t *testing.T) {
		// Arrange
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		// Act
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "ghs",
			nil, fixedTime, nil, "building fund", mockTimeProvider)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, churchID, c.ChurchID)
		assert.True(t, c.PledgeAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, "GHS", c.Currency)
		assert.True(t, c.AmountPaid().IsZero())
		assert.False(t, c.IsFulfilled)
		assert.Equal(t, uint64(1), c.Version)
		assert.Equal(t, fixedTime, c.CreatedAt)
		assert.Equal(t, fixedTime, c.UpdatedAt)
	})

	t.Run("should reject a nil church id", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewCommitment(uuid.Nil, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject an invalid pledge amount", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewCommitment(churchID, visitorContributor(t), "-10", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject an invalid currency code", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewCommitment(churchID, visitorContributor(t), "500.00", "CEDIS",
			nil, fixedTime, nil, "", mockTimeProvider)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
	})

	t.Run("should reject an invalid contributor", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewCommitment(churchID, Contributor{Kind: "organization"}, "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidContributor)
	})
}

func TestCommitmentApplyPayment(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	churchID := uuid.New()

	newTestCommitment := func(t *testing.T, tp *core.MockTimeProvider) *Commitment {
		t.Helper()
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", tp)
		assert.NoError(t, err)
		return c
	}

	t.Run("should add a payment to the balance", func(t *testing.T) {
		// Arrange
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c := newTestCommitment(t, mockTimeProvider)

		// Act
		err := c.ApplyPayment(decimal.NewFromInt(200), mockTimeProvider)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "200.00", FormatAmount(c.AmountPaid()))
		assert.Equal(t, "300.00", FormatAmount(c.Remaining()))
		assert.False(t, c.IsFulfilled)
	})

	t.Run("should mark the pledge fulfilled at exactly the pledge amount", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c := newTestCommitment(t, mockTimeProvider)

		assert.NoError(t, c.ApplyPayment(decimal.NewFromInt(200), mockTimeProvider))
		assert.NoError(t, c.ApplyPayment(decimal.NewFromInt(300), mockTimeProvider))

		assert.Equal(t, "500.00", FormatAmount(c.AmountPaid()))
		assert.True(t, c.Remaining().IsZero())
		assert.True(t, c.IsFulfilled)
	})

	t.Run("should reject a payment exceeding the remaining balance", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c := newTestCommitment(t, mockTimeProvider)
		assert.NoError(t, c.ApplyPayment(decimal.NewFromInt(500), mockTimeProvider))

		// Act
		err := c.ApplyPayment(decimal.NewFromInt(1), mockTimeProvider)

		// Assert
		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOverpayment)
		var overErr *errs.OverpaymentError
		assert.True(t, errors.As(err, &overErr))
		assert.Equal(t, "1.00", overErr.Amount)
		assert.Equal(t, "0.00", overErr.Remaining)

		// Balance unchanged after the rejection
		assert.Equal(t, "500.00", FormatAmount(c.AmountPaid()))
	})

	t.Run("should reject a non-positive payment", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c := newTestCommitment(t, mockTimeProvider)

		err := c.ApplyPayment(decimal.Zero, mockTimeProvider)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.True(t, c.AmountPaid().IsZero())
	})
}

func TestCommitmentRevertPayment(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	churchID := uuid.New()

	t.Run("should subtract the amount and clear fulfillment", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)
		assert.NoError(t, err)
		assert.NoError(t, c.ApplyPayment(decimal.NewFromInt(500), mockTimeProvider))
		assert.True(t, c.IsFulfilled)

		// Act
		c.RevertPayment(decimal.NewFromInt(300), mockTimeProvider)

		// Assert
		assert.Equal(t, "200.00", FormatAmount(c.AmountPaid()))
		assert.False(t, c.IsFulfilled)
	})

	t.Run("should clamp the balance at zero", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)
		assert.NoError(t, err)
		assert.NoError(t, c.ApplyPayment(decimal.NewFromInt(100), mockTimeProvider))

		// Reverting more than was paid happens when healing drift
		c.RevertPayment(decimal.NewFromInt(250), mockTimeProvider)

		assert.True(t, c.AmountPaid().IsZero())
		assert.False(t, c.IsFulfilled)
	})
}

func TestCommitmentSetAmountPaid(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	laterTime := fixedTime.Add(time.Hour)
	churchID := uuid.New()

	t.Run("should overwrite the balance and re-derive fulfillment", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime).Once()
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)
		assert.NoError(t, err)

		mockTimeProvider.On("Now").Return(laterTime)
		c.SetAmountPaid(decimal.NewFromInt(600), mockTimeProvider)

		assert.Equal(t, "600.00", FormatAmount(c.AmountPaid()))
		assert.True(t, c.IsFulfilled)
		assert.Equal(t, laterTime, c.UpdatedAt)
	})

	t.Run("should clamp a negative balance to zero", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		c, err := NewCommitment(churchID, visitorContributor(t), "500.00", "GHS",
			nil, fixedTime, nil, "", mockTimeProvider)
		assert.NoError(t, err)

		c.SetAmountPaid(decimal.NewFromInt(-50), mockTimeProvider)

		assert.True(t, c.AmountPaid().IsZero())
		assert.False(t, c.IsFulfilled)
	})
}
