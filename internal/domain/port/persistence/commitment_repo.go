package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// CommitmentRepository defines the ledger-store operations for pledges.
// Every operation is scoped by churchID; an id that exists under a different
// church behaves exactly like a missing id (ErrPledgeNotFound) so cross-tenant
// existence is never revealed.
type CommitmentRepository interface {
	// GetByID retrieves a commitment within the caller's church
	//
	// Possible errors:
	// - ErrPledgeNotFound: missing id or wrong church
	// - ErrDatabaseConnection: database failure
	GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.Commitment, error)

	// Create persists a new commitment
	//
	// Possible errors:
	// - ErrConstraintViolation: invalid persisted data
	// - ErrDatabaseConnection: database failure
	Create(ctx context.Context, commitment *entity.Commitment) error

	// UpdateBalance conditionally writes the denormalized balance fields.
	// The write only succeeds if the stored version still equals
	// expectedVersion; the stored version is then incremented. This is the
	// compare-and-swap that makes concurrent balance updates lose cleanly
	// instead of silently clobbering each other.
	//
	// Possible errors:
	// - ErrPledgeNotFound: missing id or wrong church
	// - ErrConflict: version mismatch (a concurrent writer won)
	// - ErrDatabaseConnection: database failure
	UpdateBalance(ctx context.Context, churchID, id uuid.UUID, amountPaid decimal.Decimal, fulfilled bool, expectedVersion uint64) (*entity.Commitment, error)

	// Delete removes a commitment row
	//
	// Possible errors:
	// - ErrPledgeNotFound: missing id or wrong church
	// - ErrDatabaseConnection: database failure
	Delete(ctx context.Context, churchID, id uuid.UUID) error

	// ListByChurch returns all commitments for a church, newest pledge first
	ListByChurch(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error)
}
