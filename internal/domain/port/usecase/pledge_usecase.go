package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// CreateCommitmentInput carries the validated form values for a new pledge.
// The contributor is already a constructed union value; handlers build it
// through the entity constructors so a malformed union never reaches the
// service.
type CreateCommitmentInput struct {
	ChurchID     uuid.UUID
	Contributor  entity.Contributor
	PledgeAmount string
	Currency     string
	CategoryID   *uuid.UUID
	PledgeDate   time.Time
	DueDate      *time.Time
	Notes        string
}

// RecordPaymentInput carries the form values for a new payment against a pledge
type RecordPaymentInput struct {
	ChurchID             uuid.UUID
	PledgeID             uuid.UUID
	Amount               string
	Currency             string
	PaymentDate          time.Time
	Method               string
	TransactionReference string
	Notes                string
	Actor                string
}

// PledgeUseCase defines the operations of the pledge ledger
type PledgeUseCase interface {
	CreateCommitment(ctx context.Context, in CreateCommitmentInput) (*entity.Commitment, error)
	GetCommitment(ctx context.Context, churchID, pledgeID uuid.UUID) (*entity.Commitment, error)
	ListCommitments(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error)
	DeleteCommitment(ctx context.Context, churchID, pledgeID uuid.UUID) error
	RecordPayment(ctx context.Context, in RecordPaymentInput) (*entity.PaymentRecord, error)
	DeletePayment(ctx context.Context, churchID, pledgeID, paymentID uuid.UUID) error
	ListPayments(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error)
}
