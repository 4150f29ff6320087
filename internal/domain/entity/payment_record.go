package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

// Payment methods
const (
	MethodCash         PaymentMethod = "cash"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodCard         PaymentMethod = "card"
	MethodOnline       PaymentMethod = "online"
)

// IsValidPaymentMethod validates if the payment method is one of the allowed values
func IsValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case MethodCash, MethodMobileMoney, MethodBankTransfer, MethodCheque, MethodCard, MethodOnline:
		return true
	}
	return false
}

// PaymentRecord is one partial payment applied against a commitment.
// Records are immutable once created; the only lifecycle operation after
// creation is deletion.
type PaymentRecord struct {
	ID                   uuid.UUID
	PledgeID             uuid.UUID
	ChurchID             uuid.UUID
	Amount               decimal.Decimal
	Currency             string
	PaymentDate          time.Time
	Method               PaymentMethod
	TransactionReference string
	Notes                string
	RecordedBy           string // opaque actor id, not authenticated here
	CreatedAt            time.Time
}

// NewPaymentRecord creates a payment record with basic validation. Currency
// equality against the parent commitment is the payment service's job; this
// constructor only checks shape.
func NewPaymentRecord(
	churchID uuid.UUID,
	pledgeID uuid.UUID,
	amount string,
	currency string,
	paymentDate time.Time,
	method string,
	transactionReference string,
	notes string,
	recordedBy string,
	timeProvider coreport.TimeProvider,
) (*PaymentRecord, error) {
	if churchID == uuid.Nil || pledgeID == uuid.Nil {
		return nil, errs.ErrValidation
	}

	amt, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	code, err := NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	if !IsValidPaymentMethod(method) {
		return nil, errs.ErrValidation
	}

	recordedBy = strings.TrimSpace(recordedBy)
	if recordedBy == "" {
		return nil, errs.ErrValidation
	}

	return &PaymentRecord{
		ID:                   uuid.New(),
		PledgeID:             pledgeID,
		ChurchID:             churchID,
		Amount:               amt,
		Currency:             code,
		PaymentDate:          paymentDate,
		Method:               PaymentMethod(method),
		TransactionReference: strings.TrimSpace(transactionReference),
		Notes:                notes,
		RecordedBy:           recordedBy,
		CreatedAt:            timeProvider.Now(),
	}, nil
}
