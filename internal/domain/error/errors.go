package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation       = 4001
	CodeInvalidAmount    = 4002
	CodeCurrencyMismatch = 4003
	CodeOverpayment      = 4004
	CodeDuplicateCheckIn = 4005
	CodeHasPayments      = 4006
	CodeInvalidContrib   = 4007
	CodePledgeNotFound   = 4040
	CodePaymentNotFound  = 4041
	CodeEventNotFound    = 4042
	CodeMemberNotFound   = 4043
	CodeConflict         = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when request data fails domain validation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned when a currency code is not a 3-letter ISO code
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrCurrencyMismatch is returned when a payment currency differs from the pledge currency
	ErrCurrencyMismatch = errors.New("payment currency does not match pledge currency")

	// ErrOverpayment is returned when a payment would exceed the remaining pledge balance
	ErrOverpayment = errors.New("payment exceeds remaining pledge balance")

	// ErrInvalidContributor is returned when the contributor is neither a valid member
	// reference nor a valid visitor record
	ErrInvalidContributor = errors.New("invalid contributor")

	// ErrDuplicateCheckIn is returned when a subject is already checked in to an event
	ErrDuplicateCheckIn = errors.New("subject already checked in to this event")

	// ErrHasPayments is returned when deleting a pledge that still has payment records
	ErrHasPayments = errors.New("pledge has payment records and cannot be deleted")

	// ErrConflict is returned when a concurrent update won the write race
	ErrConflict = errors.New("concurrent update detected, please retry")

	// ErrPledgeNotFound is returned when the pledge doesn't exist in the caller's church
	ErrPledgeNotFound = errors.New("pledge not found")

	// ErrPaymentNotFound is returned when the payment doesn't exist in the caller's church
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrEventNotFound is returned when the attendance event doesn't exist
	ErrEventNotFound = errors.New("attendance event not found")

	// ErrCheckInNotFound is returned when no check-in exists for the subject
	ErrCheckInNotFound = errors.New("check-in not found")

	// ErrMemberNotFound is returned when a member reference doesn't resolve
	ErrMemberNotFound = errors.New("member not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrCurrencyMismatch):
		return CodeCurrencyMismatch
	case errors.Is(err, ErrOverpayment):
		return CodeOverpayment
	case errors.Is(err, ErrDuplicateCheckIn):
		return CodeDuplicateCheckIn
	case errors.Is(err, ErrHasPayments):
		return CodeHasPayments
	case errors.Is(err, ErrInvalidContributor):
		return CodeInvalidContrib
	case errors.Is(err, ErrPledgeNotFound):
		return CodePledgeNotFound
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrCheckInNotFound):
		return CodeEventNotFound
	case errors.Is(err, ErrMemberNotFound):
		return CodeMemberNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidCurrency), errors.Is(err, ErrInvalidRequest):
		return CodeValidation
	default:
		return CodeInternalServer
	}
}

// OverpaymentError provides detailed error information for rejected overpayments
type OverpaymentError struct {
	PledgeID  uuid.UUID
	Amount    string
	Remaining string
}

// Error implements the error interface
func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining balance %s on pledge %s",
		e.Amount, e.Remaining, e.PledgeID)
}

// Is checks if the target error is an ErrOverpayment
func (e *OverpaymentError) Is(target error) bool {
	return target == ErrOverpayment
}

// LogFields returns a map of fields for structured logging
func (e *OverpaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "overpayment",
		"pledge_id":  e.PledgeID.String(),
		"amount":     e.Amount,
		"remaining":  e.Remaining,
		"error_code": CodeOverpayment,
	}
}

// NewOverpaymentError creates a new detailed overpayment error
func NewOverpaymentError(pledgeID uuid.UUID, amount, remaining string) error {
	return &OverpaymentError{
		PledgeID:  pledgeID,
		Amount:    amount,
		Remaining: remaining,
	}
}

// CurrencyMismatchError carries both currencies for a rejected payment
type CurrencyMismatchError struct {
	PledgeID        uuid.UUID
	PledgeCurrency  string
	PaymentCurrency string
}

// Error implements the error interface
func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("payment currency %s does not match pledge currency %s (pledge %s)",
		e.PaymentCurrency, e.PledgeCurrency, e.PledgeID)
}

// Is checks if the target error is an ErrCurrencyMismatch
func (e *CurrencyMismatchError) Is(target error) bool {
	return target == ErrCurrencyMismatch
}

// LogFields returns a map of fields for structured logging
func (e *CurrencyMismatchError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "currency_mismatch",
		"pledge_id":        e.PledgeID.String(),
		"pledge_currency":  e.PledgeCurrency,
		"payment_currency": e.PaymentCurrency,
		"error_code":       CodeCurrencyMismatch,
	}
}

// NewCurrencyMismatchError creates a new detailed currency mismatch error
func NewCurrencyMismatchError(pledgeID uuid.UUID, pledgeCurrency, paymentCurrency string) error {
	return &CurrencyMismatchError{
		PledgeID:        pledgeID,
		PledgeCurrency:  pledgeCurrency,
		PaymentCurrency: paymentCurrency,
	}
}

// DuplicateCheckInError identifies which subject was already checked in
type DuplicateCheckInError struct {
	EventID   uuid.UUID
	SubjectID uuid.UUID
}

// Error implements the error interface
func (e *DuplicateCheckInError) Error() string {
	return fmt.Sprintf("subject %s is already checked in to event %s", e.SubjectID, e.EventID)
}

// Is checks if the target error is an ErrDuplicateCheckIn
func (e *DuplicateCheckInError) Is(target error) bool {
	return target == ErrDuplicateCheckIn
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateCheckInError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duplicate_check_in",
		"event_id":   e.EventID.String(),
		"subject_id": e.SubjectID.String(),
		"error_code": CodeDuplicateCheckIn,
	}
}

// NewDuplicateCheckInError creates a new detailed duplicate check-in error
func NewDuplicateCheckInError(eventID, subjectID uuid.UUID) error {
	return &DuplicateCheckInError{
		EventID:   eventID,
		SubjectID: subjectID,
	}
}

// HasPaymentsError reports how many payment records block a pledge deletion
type HasPaymentsError struct {
	PledgeID     uuid.UUID
	PaymentCount int64
}

// Error implements the error interface
func (e *HasPaymentsError) Error() string {
	return fmt.Sprintf("pledge %s has %d payment record(s) and cannot be deleted", e.PledgeID, e.PaymentCount)
}

// Is checks if the target error is an ErrHasPayments
func (e *HasPaymentsError) Is(target error) bool {
	return target == ErrHasPayments
}

// LogFields returns a map of fields for structured logging
func (e *HasPaymentsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":    "has_payments",
		"pledge_id":     e.PledgeID.String(),
		"payment_count": e.PaymentCount,
		"error_code":    CodeHasPayments,
	}
}

// NewHasPaymentsError creates a new detailed has-payments error
func NewHasPaymentsError(pledgeID uuid.UUID, count int64) error {
	return &HasPaymentsError{
		PledgeID:     pledgeID,
		PaymentCount: count,
	}
}

// IsOverpaymentError checks if the error is an overpayment rejection
func IsOverpaymentError(err error) bool {
	return errors.Is(err, ErrOverpayment)
}

// IsCurrencyMismatchError checks if the error is a currency mismatch
func IsCurrencyMismatchError(err error) bool {
	return errors.Is(err, ErrCurrencyMismatch)
}

// IsConflictError checks if the error is a lost-update conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDuplicateCheckInError checks if the error is a duplicate check-in
func IsDuplicateCheckInError(err error) bool {
	return errors.Is(err, ErrDuplicateCheckIn)
}

// IsValidationError checks if the error is any validation-type error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrInvalidContributor)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPledgeNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrCheckInNotFound) ||
		errors.Is(err, ErrMemberNotFound)
}
