package dto

import (
	"time"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// RecordPaymentRequest represents the API request for recording a payment
type RecordPaymentRequest struct {
	Amount               string    `json:"amount" binding:"required"`
	Currency             string    `json:"currency" binding:"required,len=3"`
	PaymentDate          time.Time `json:"paymentDate" binding:"required"`
	Method               string    `json:"method" binding:"required,oneof=cash mobile_money bank_transfer cheque card online"`
	TransactionReference string    `json:"transactionReference,omitempty"`
	Notes                string    `json:"notes,omitempty"`
}

// PaymentResponse represents a recorded payment
type PaymentResponse struct {
	ID                   string    `json:"id"`
	PledgeID             string    `json:"pledgeId"`
	Amount               string    `json:"amount"`
	Currency             string    `json:"currency"`
	PaymentDate          time.Time `json:"paymentDate"`
	Method               string    `json:"method"`
	TransactionReference string    `json:"transactionReference,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	RecordedBy           string    `json:"recordedBy"`
	CreatedAt            time.Time `json:"createdAt"`
}

// PaymentListResponse wraps a pledge's payments
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Count    int               `json:"count"`
}

// NewPaymentResponse builds a response DTO from a payment record entity
func NewPaymentResponse(p *entity.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:                   p.ID.String(),
		PledgeID:             p.PledgeID.String(),
		Amount:               entity.FormatAmount(p.Amount),
		Currency:             p.Currency,
		PaymentDate:          p.PaymentDate,
		Method:               string(p.Method),
		TransactionReference: p.TransactionReference,
		Notes:                p.Notes,
		RecordedBy:           p.RecordedBy,
		CreatedAt:            p.CreatedAt,
	}
}
