package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/dto"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/middleware"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	pledgeService usecase.PledgeUseCase
	logger        coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(pledgeService usecase.PledgeUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		pledgeService: pledgeService,
		logger:        logger,
	}
}

// RecordPayment handles POST /pledges/:pledgeId/payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	pledgeID, ok := parseUUIDParam(c, "pledgeId")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid payment request format", map[string]any{
			"error": err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	record, err := h.pledgeService.RecordPayment(c.Request.Context(), usecase.RecordPaymentInput{
		ChurchID:             middleware.ChurchID(c),
		PledgeID:             pledgeID,
		Amount:               req.Amount,
		Currency:             req.Currency,
		PaymentDate:          req.PaymentDate,
		Method:               req.Method,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
		Actor:                middleware.ActorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPaymentResponse(record))
}

// ListPayments handles GET /pledges/:pledgeId/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	pledgeID, ok := parseUUIDParam(c, "pledgeId")
	if !ok {
		return
	}

	records, err := h.pledgeService.ListPayments(c.Request.Context(), middleware.ChurchID(c), pledgeID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.PaymentListResponse{
		Payments: make([]dto.PaymentResponse, 0, len(records)),
		Count:    len(records),
	}
	for _, record := range records {
		resp.Payments = append(resp.Payments, dto.NewPaymentResponse(record))
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePayment handles DELETE /pledges/:pledgeId/payments/:paymentId.
// Deleting an already-deleted payment returns 204: the surface is
// idempotent even though the service reports not-found internally.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	pledgeID, ok := parseUUIDParam(c, "pledgeId")
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "paymentId")
	if !ok {
		return
	}

	err := h.pledgeService.DeletePayment(c.Request.Context(), middleware.ChurchID(c), pledgeID, paymentID)
	if err != nil {
		if errors.Is(err, domainerr.ErrPaymentNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
