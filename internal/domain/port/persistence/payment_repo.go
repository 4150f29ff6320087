package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// PaymentRepository defines the ledger-store operations for payment records.
// All operations are church-scoped; see CommitmentRepository for the tenancy
// contract.
type PaymentRepository interface {
	// Create persists a new payment record
	//
	// Possible errors:
	// - ErrConstraintViolation: referenced pledge missing or invalid data
	// - ErrDatabaseConnection: database failure
	Create(ctx context.Context, record *entity.PaymentRecord) error

	// GetByID retrieves a payment record within the caller's church
	//
	// Possible errors:
	// - ErrPaymentNotFound: missing id or wrong church
	// - ErrDatabaseConnection: database failure
	GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.PaymentRecord, error)

	// Delete removes a payment record
	//
	// Possible errors:
	// - ErrPaymentNotFound: missing id or wrong church
	// - ErrDatabaseConnection: database failure
	Delete(ctx context.Context, churchID, id uuid.UUID) error

	// ListByPledge returns a pledge's payment records ordered by payment
	// date, most recent first
	ListByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error)

	// SumByPledge returns the sum of live payment amounts for a pledge.
	// This is the authoritative figure the reconciler derives the cached
	// balance from; an empty set sums to zero.
	SumByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (decimal.Decimal, error)

	// CountByPledge returns the number of live payment records for a pledge
	CountByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (int64, error)
}
