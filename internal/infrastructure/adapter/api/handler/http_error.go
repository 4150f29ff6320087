package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/dto"
)

// statusFromError maps domain errors onto HTTP status codes. Business
// rejections (overpayment, currency mismatch, bad input) are 400s; state
// conflicts (duplicate check-in, pledge with payments, lost update after the
// bounded retry) are 409s.
func statusFromError(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrHasPayments),
		errors.Is(err, domainerr.ErrDuplicateCheckIn),
		errors.Is(err, domainerr.ErrConflict):
		return http.StatusConflict
	case domainerr.IsValidationError(err),
		errors.Is(err, domainerr.ErrOverpayment),
		errors.Is(err, domainerr.ErrCurrencyMismatch),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error DTO for a domain error. Internal
// errors are masked so driver details never reach the client.
func respondError(c *gin.Context, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBadRequest writes a 400 for malformed request bodies and params
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: message,
	})
}
