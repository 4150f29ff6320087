package pledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
	"github.com/yawboadu/churchledger/mocks/port/core"
	"github.com/yawboadu/churchledger/mocks/port/persistence"
)

// newTestCommitment builds a 500.00 GHS visitor pledge with a zero balance
func newTestCommitment(t *testing.T, churchID uuid.UUID, tp *core.MockTimeProvider) *entity.Commitment {
	t.Helper()
	contributor, err := entity.NewVisitorContributor("Ama", "Mensah", "", "")
	assert.NoError(t, err)
	commitment, err := entity.NewCommitment(churchID, contributor, "500.00", "GHS",
		nil, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), nil, "", tp)
	assert.NoError(t, err)
	return commitment
}

func TestService_RecordPayment(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	// Common test variables
	ctx := context.Background()
	churchID := uuid.New()

	validInput := func(pledgeID uuid.UUID) usecase.RecordPaymentInput {
		return usecase.RecordPaymentInput{
			ChurchID:    churchID,
			PledgeID:    pledgeID,
			Amount:      "200.00",
			Currency:    "GHS",
			PaymentDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			Method:      "mobile_money",
			Notes:       "first installment",
			Actor:       "treasurer-1",
		}
	}

	t.Run("should record a payment and update the balance", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		commitment := newTestCommitment(t, churchID, mockTimeProvider)
		updated := newTestCommitment(t, churchID, mockTimeProvider)
		updated.ID = commitment.ID
		updated.SetAmountPaid(decimal.NewFromInt(200), mockTimeProvider)
		updated.Version = 2

		// Configure mock expectations
		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockUow.On("GetPaymentRepository", ctx).Return(mockPaymentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockPaymentRepo.On("Create", ctx, mock.AnythingOfType("*entity.PaymentRecord")).Return(nil)
		mockCommitmentRepo.On("UpdateBalance", ctx, churchID, commitment.ID,
			mock.AnythingOfType("decimal.Decimal"), false, uint64(1)).Return(updated, nil)
		mockUow.On("Commit", ctx).Return(nil)
		mockLogger.On("Debug", "Applied payment delta", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Payment recorded", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(commitment.ID))

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, commitment.ID, record.PledgeID)
		assert.Equal(t, "200.00", entity.FormatAmount(record.Amount))
		assert.Equal(t, "GHS", record.Currency)

		// Verify mocks
		mockUow.AssertExpectations(t)
		mockCommitmentRepo.AssertExpectations(t)
		mockPaymentRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should return not found for an unknown pledge", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		pledgeID := uuid.New()

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, pledgeID).Return(nil, errs.ErrPledgeNotFound)
		mockUow.On("Rollback", ctx).Return(nil)

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(pledgeID))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrPledgeNotFound)

		mockUow.AssertExpectations(t)
		mockUow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject a payment in a different currency", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		commitment := newTestCommitment(t, churchID, mockTimeProvider)

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockUow.On("Rollback", ctx).Return(nil)

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		in := validInput(commitment.ID)
		in.Currency = "USD"

		// Act
		record, err := service.RecordPayment(ctx, in)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrCurrencyMismatch)
		var mismatchErr *errs.CurrencyMismatchError
		assert.True(t, errors.As(err, &mismatchErr))
		assert.Equal(t, "GHS", mismatchErr.PledgeCurrency)
		assert.Equal(t, "USD", mismatchErr.PaymentCurrency)

		mockPaymentRepo.AssertNotCalled(t, "Create")
		mockUow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject a payment exceeding the remaining balance", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		commitment := newTestCommitment(t, churchID, mockTimeProvider)

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockUow.On("Rollback", ctx).Return(nil)

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		in := validInput(commitment.ID)
		in.Amount = "600.00"

		// Act
		record, err := service.RecordPayment(ctx, in)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrOverpayment)
		var overErr *errs.OverpaymentError
		assert.True(t, errors.As(err, &overErr))
		assert.Equal(t, "600.00", overErr.Amount)
		assert.Equal(t, "500.00", overErr.Remaining)

		mockPaymentRepo.AssertNotCalled(t, "Create")
		mockUow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should retry once after a lost-update conflict", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		commitment := newTestCommitment(t, churchID, mockTimeProvider)
		updated := newTestCommitment(t, churchID, mockTimeProvider)
		updated.ID = commitment.ID
		updated.Version = 3

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockUow.On("GetPaymentRepository", ctx).Return(mockPaymentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockPaymentRepo.On("Create", ctx, mock.AnythingOfType("*entity.PaymentRecord")).Return(nil)

		// First balance write loses the race, the second succeeds
		mockCommitmentRepo.On("UpdateBalance", ctx, churchID, commitment.ID,
			mock.AnythingOfType("decimal.Decimal"), false, uint64(1)).Return(nil, errs.ErrConflict).Once()
		mockCommitmentRepo.On("UpdateBalance", ctx, churchID, commitment.ID,
			mock.AnythingOfType("decimal.Decimal"), false, uint64(1)).Return(updated, nil).Once()

		mockUow.On("Rollback", ctx).Return(nil).Once()
		mockUow.On("Commit", ctx).Return(nil).Once()
		mockLogger.On("Warn", "Balance write lost to a concurrent update", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Warn", "Retrying payment after lost-update conflict", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Debug", "Applied payment delta", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Payment recorded", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(commitment.ID))

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, record)

		mockUow.AssertExpectations(t)
		mockCommitmentRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should surface the conflict once retries are exhausted", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		commitment := newTestCommitment(t, churchID, mockTimeProvider)

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockUow.On("GetPaymentRepository", ctx).Return(mockPaymentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockPaymentRepo.On("Create", ctx, mock.AnythingOfType("*entity.PaymentRecord")).Return(nil)
		mockCommitmentRepo.On("UpdateBalance", ctx, churchID, commitment.ID,
			mock.AnythingOfType("decimal.Decimal"), false, uint64(1)).Return(nil, errs.ErrConflict)
		mockUow.On("Rollback", ctx).Return(nil)
		mockLogger.On("Warn", "Balance write lost to a concurrent update", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Warn", "Retrying payment after lost-update conflict", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(commitment.ID))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrConflict)

		mockUow.AssertNotCalled(t, "Commit", ctx)
		mockCommitmentRepo.AssertNumberOfCalls(t, "UpdateBalance", 2)
	})

	t.Run("should roll back when the payment insert fails", func(t *testing.T) {
		// Arrange
		dbError := errors.New("database insert error")

		mockUow := new(persistence.MockUnitOfWork)
		mockCommitmentRepo := new(persistence.MockCommitmentRepository)
		mockPaymentRepo := new(persistence.MockPaymentRepository)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		commitment := newTestCommitment(t, churchID, mockTimeProvider)

		mockUow.On("Begin", ctx).Return(ctx, nil)
		mockUow.On("GetCommitmentRepository", ctx).Return(mockCommitmentRepo)
		mockUow.On("GetPaymentRepository", ctx).Return(mockPaymentRepo)
		mockCommitmentRepo.On("GetByID", ctx, churchID, commitment.ID).Return(commitment, nil)
		mockPaymentRepo.On("Create", ctx, mock.AnythingOfType("*entity.PaymentRecord")).Return(dbError)
		mockUow.On("Rollback", ctx).Return(nil)

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(commitment.ID))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, dbError, err)

		mockUow.AssertExpectations(t)
		mockCommitmentRepo.AssertNotCalled(t, "UpdateBalance")
	})

	t.Run("should fail when the transaction cannot begin", func(t *testing.T) {
		// Arrange
		mockUow := new(persistence.MockUnitOfWork)
		mockResolver := new(persistence.MockContributorResolver)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUow.On("Begin", ctx).Return(nil, errors.New("connection lost"))

		service := NewService(mockUow, mockResolver, mockTimeProvider, mockLogger)

		// Act
		record, err := service.RecordPayment(ctx, validInput(uuid.New()))

		// Assert
		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Contains(t, err.Error(), "failed to begin payment transaction")
	})
}
