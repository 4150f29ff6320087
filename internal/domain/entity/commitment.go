package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
)

// Commitment represents a pledge: a promise by a contributor to give a total
// amount over time. AmountPaid is a denormalized cache of the sum of the
// pledge's payment records; the reconciler keeps it consistent.
//
// Invariant after every completed operation:
//
//	0 <= amountPaid <= PledgeAmount
//	IsFulfilled == (amountPaid >= PledgeAmount)
type Commitment struct {
	ID           uuid.UUID
	ChurchID     uuid.UUID
	Contributor  Contributor
	CategoryID   *uuid.UUID
	PledgeAmount decimal.Decimal
	Currency     string
	amountPaid   decimal.Decimal // cache of PaymentRecord sums (private)
	IsFulfilled  bool
	PledgeDate   time.Time
	DueDate      *time.Time
	Notes        string
	Version      uint64 // optimistic-lock token, bumped on every balance write
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCommitment creates a new commitment with a zero balance. The pledge
// amount is given as a string (the form value) and validated here.
func NewCommitment(
	churchID uuid.UUID,
	contributor Contributor,
	pledgeAmount string,
	currency string,
	categoryID *uuid.UUID,
	pledgeDate time.Time,
	dueDate *time.Time,
	notes string,
	timeProvider coreport.TimeProvider,
) (*Commitment, error) {
	if churchID == uuid.Nil {
		return nil, errs.ErrValidation
	}
	if err := contributor.Validate(); err != nil {
		return nil, err
	}

	amount, err := ParseAmount(pledgeAmount)
	if err != nil {
		return nil, err
	}

	code, err := NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Commitment{
		ID:           uuid.New(),
		ChurchID:     churchID,
		Contributor:  contributor,
		CategoryID:   categoryID,
		PledgeAmount: amount,
		Currency:     code,
		amountPaid:   decimal.Zero,
		IsFulfilled:  false,
		PledgeDate:   pledgeDate,
		DueDate:      dueDate,
		Notes:        notes,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AmountPaid returns the cached sum of recorded payments
func (c *Commitment) AmountPaid() decimal.Decimal {
	return c.amountPaid
}

// Remaining returns the unpaid portion of the pledge
func (c *Commitment) Remaining() decimal.Decimal {
	return c.PledgeAmount.Sub(c.amountPaid)
}

// SetAmountPaid overwrites the cached balance and re-derives IsFulfilled.
// Negative inputs are clamped to zero. Used by repositories when rebuilding
// the entity and by the reconciler when applying a recomputed sum.
func (c *Commitment) SetAmountPaid(paid decimal.Decimal, timeProvider coreport.TimeProvider) {
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	c.amountPaid = paid
	c.IsFulfilled = c.amountPaid.GreaterThanOrEqual(c.PledgeAmount)
	c.UpdatedAt = timeProvider.Now()
}

// ApplyPayment adds a payment amount to the cached balance. Returns a
// detailed overpayment error if the amount exceeds the remaining balance,
// leaving the commitment unchanged.
func (c *Commitment) ApplyPayment(amount decimal.Decimal, timeProvider coreport.TimeProvider) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	if amount.GreaterThan(c.Remaining()) {
		return errs.NewOverpaymentError(c.ID, FormatAmount(amount), FormatAmount(c.Remaining()))
	}
	c.SetAmountPaid(c.amountPaid.Add(amount), timeProvider)
	return nil
}

// RevertPayment subtracts a deleted payment's amount from the cached
// balance, clamping at zero so drift from an earlier interrupted write can
// never drive the balance negative.
func (c *Commitment) RevertPayment(amount decimal.Decimal, timeProvider coreport.TimeProvider) {
	c.SetAmountPaid(c.amountPaid.Sub(amount), timeProvider)
}
