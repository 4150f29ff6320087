package dto

import (
	"time"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
)

// CreateEventRequest represents the API request for creating an event
type CreateEventRequest struct {
	Name      string    `json:"name" binding:"required"`
	EventDate time.Time `json:"eventDate" binding:"required"`
}

// EventResponse represents an attendance event with its head count
type EventResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	EventDate       time.Time `json:"eventDate"`
	TotalAttendance int       `json:"totalAttendance"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CheckInRequest represents a single check-in
type CheckInRequest struct {
	SubjectID string `json:"subjectId" binding:"required,uuid"`
}

// BulkCheckInRequest represents a batch of check-ins
type BulkCheckInRequest struct {
	SubjectIDs []string `json:"subjectIds" binding:"required,min=1,dive,uuid"`
}

// CheckInResponse represents a created check-in record
type CheckInResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	SubjectID   string    `json:"subjectId"`
	CheckedInBy string    `json:"checkedInBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BulkCheckInResponse reports per-item outcomes of a bulk check-in
type BulkCheckInResponse struct {
	SuccessCount     int      `json:"successCount"`
	FailedSubjectIDs []string `json:"failedSubjectIds,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

// NewEventResponse builds a response DTO from an event entity
func NewEventResponse(e *entity.AttendanceEvent) EventResponse {
	return EventResponse{
		ID:              e.ID.String(),
		Name:            e.Name,
		EventDate:       e.EventDate,
		TotalAttendance: e.TotalAttendance,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// NewCheckInResponse builds a response DTO from a check-in record
func NewCheckInResponse(r *entity.AttendanceRecord) CheckInResponse {
	return CheckInResponse{
		ID:          r.ID.String(),
		EventID:     r.EventID.String(),
		SubjectID:   r.SubjectID.String(),
		CheckedInBy: r.CheckedInBy,
		CreatedAt:   r.CreatedAt,
	}
}

// NewBulkCheckInResponse builds a response DTO from a bulk check-in result
func NewBulkCheckInResponse(result *usecase.BulkCheckInResult) BulkCheckInResponse {
	resp := BulkCheckInResponse{
		SuccessCount: result.SuccessCount,
		Errors:       result.ErrorMessages,
	}
	for _, id := range result.FailedSubjectIDs {
		resp.FailedSubjectIDs = append(resp.FailedSubjectIDs, id.String())
	}
	return resp
}
