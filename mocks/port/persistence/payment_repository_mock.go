package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// MockPaymentRepository is a testify mock for the PaymentRepository port
type MockPaymentRepository struct {
	mock.Mock
}

// Create mocks persisting a payment record
func (m *MockPaymentRepository) Create(ctx context.Context, record *entity.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetByID mocks fetching a payment record
func (m *MockPaymentRepository) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.PaymentRecord, error) {
	args := m.Called(ctx, churchID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentRecord), args.Error(1)
}

// Delete mocks removing a payment record
func (m *MockPaymentRepository) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	args := m.Called(ctx, churchID, id)
	return args.Error(0)
}

// ListByPledge mocks listing a pledge's payments
func (m *MockPaymentRepository) ListByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error) {
	args := m.Called(ctx, churchID, pledgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PaymentRecord), args.Error(1)
}

// SumByPledge mocks totalling a pledge's live payment rows
func (m *MockPaymentRepository) SumByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, churchID, pledgeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// CountByPledge mocks counting a pledge's payment rows
func (m *MockPaymentRepository) CountByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, churchID, pledgeID)
	return args.Get(0).(int64), args.Error(1)
}
