package persistence

import (
	"context"
)

// UnitOfWork coordinates the payment-row write and the balance write so that
// recording a payment is atomic from the caller's view: either both the
// payment record and the commitment update land, or neither does.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetCommitmentRepository returns a commitment repository bound to the
	// transaction in ctx, or the base connection if ctx carries none
	GetCommitmentRepository(ctx context.Context) CommitmentRepository

	// GetPaymentRepository returns a payment repository bound to the
	// transaction in ctx, or the base connection if ctx carries none
	GetPaymentRepository(ctx context.Context) PaymentRepository
}
