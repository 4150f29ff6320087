package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// MockCommitmentRepository is a testify mock for the CommitmentRepository port
type MockCommitmentRepository struct {
	mock.Mock
}

// GetByID mocks fetching a commitment
func (m *MockCommitmentRepository) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.Commitment, error) {
	args := m.Called(ctx, churchID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Commitment), args.Error(1)
}

// Create mocks persisting a commitment
func (m *MockCommitmentRepository) Create(ctx context.Context, commitment *entity.Commitment) error {
	args := m.Called(ctx, commitment)
	return args.Error(0)
}

// UpdateBalance mocks the compare-and-swap balance write
func (m *MockCommitmentRepository) UpdateBalance(ctx context.Context, churchID, id uuid.UUID, amountPaid decimal.Decimal, fulfilled bool, expectedVersion uint64) (*entity.Commitment, error) {
	args := m.Called(ctx, churchID, id, amountPaid, fulfilled, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Commitment), args.Error(1)
}

// Delete mocks removing a commitment
func (m *MockCommitmentRepository) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	args := m.Called(ctx, churchID, id)
	return args.Error(0)
}

// ListByChurch mocks listing a church's commitments
func (m *MockCommitmentRepository) ListByChurch(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error) {
	args := m.Called(ctx, churchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Commitment), args.Error(1)
}
