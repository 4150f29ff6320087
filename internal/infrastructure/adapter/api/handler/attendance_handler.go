package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerr "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/dto"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/middleware"
)

// AttendanceHandler handles attendance-related HTTP requests
type AttendanceHandler struct {
	attendanceService usecase.AttendanceUseCase
	logger            coreport.Logger
}

// NewAttendanceHandler creates a new attendance handler instance
func NewAttendanceHandler(attendanceService usecase.AttendanceUseCase, logger coreport.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// CreateEvent handles POST /events
func (h *AttendanceHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	event, err := h.attendanceService.CreateEvent(c.Request.Context(), middleware.ChurchID(c), req.Name, req.EventDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEventResponse(event))
}

// GetEvent handles GET /events/:eventId
func (h *AttendanceHandler) GetEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.attendanceService.GetEvent(c.Request.Context(), middleware.ChurchID(c), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEventResponse(event))
}

// CheckIn handles POST /events/:eventId/checkins
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}
	subjectID, _ := uuid.Parse(req.SubjectID)

	record, err := h.attendanceService.CheckIn(c.Request.Context(), middleware.ChurchID(c), eventID, subjectID, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCheckInResponse(record))
}

// BulkCheckIn handles POST /events/:eventId/checkins/bulk. Always 200 with a
// per-item result body; partial failure is data, not an HTTP error.
func (h *AttendanceHandler) BulkCheckIn(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req dto.BulkCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	subjectIDs := make([]uuid.UUID, 0, len(req.SubjectIDs))
	for _, raw := range req.SubjectIDs {
		id, _ := uuid.Parse(raw)
		subjectIDs = append(subjectIDs, id)
	}

	result, err := h.attendanceService.BulkCheckIn(c.Request.Context(), middleware.ChurchID(c), eventID, subjectIDs, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBulkCheckInResponse(result))
}

// RemoveCheckIn handles DELETE /events/:eventId/checkins/:subjectId with an
// idempotent 204 for an already-removed check-in
func (h *AttendanceHandler) RemoveCheckIn(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}
	subjectID, ok := parseUUIDParam(c, "subjectId")
	if !ok {
		return
	}

	err := h.attendanceService.RemoveCheckIn(c.Request.Context(), middleware.ChurchID(c), eventID, subjectID)
	if err != nil {
		if errors.Is(err, domainerr.ErrCheckInNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
