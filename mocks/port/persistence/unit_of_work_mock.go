package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yawboadu/churchledger/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

// Begin mocks starting a transaction
func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return ctx, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

// Commit mocks committing the current transaction
func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback mocks rolling back the current transaction
func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetCommitmentRepository mocks resolving the commitment repository
func (m *MockUnitOfWork) GetCommitmentRepository(ctx context.Context) persistence.CommitmentRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.CommitmentRepository)
}

// GetPaymentRepository mocks resolving the payment repository
func (m *MockUnitOfWork) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.PaymentRepository)
}
