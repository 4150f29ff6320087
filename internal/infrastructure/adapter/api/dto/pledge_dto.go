package dto

import (
	"time"

	"github.com/yawboadu/churchledger/internal/domain/entity"
)

// ContributorRequest is the contributor union on the wire: either a member
// reference or inline visitor details, discriminated by type
type ContributorRequest struct {
	Type      string `json:"type" binding:"required,oneof=member visitor"`
	MemberID  string `json:"memberId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// CreatePledgeRequest represents the API request for creating a pledge
type CreatePledgeRequest struct {
	Contributor ContributorRequest `json:"contributor" binding:"required"`
	Amount      string             `json:"amount" binding:"required"`
	Currency    string             `json:"currency" binding:"required,len=3"`
	CategoryID  string             `json:"categoryId,omitempty"`
	PledgeDate  time.Time          `json:"pledgeDate" binding:"required"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// ContributorResponse mirrors ContributorRequest in responses
type ContributorResponse struct {
	Type        string `json:"type"`
	MemberID    string `json:"memberId,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName"`
}

// PledgeResponse represents a pledge with its derived balance fields
type PledgeResponse struct {
	ID          string              `json:"id"`
	Contributor ContributorResponse `json:"contributor"`
	Amount      string              `json:"amount"`
	Currency    string              `json:"currency"`
	AmountPaid  string              `json:"amountPaid"`
	Remaining   string              `json:"remaining"`
	IsFulfilled bool                `json:"isFulfilled"`
	CategoryID  string              `json:"categoryId,omitempty"`
	PledgeDate  time.Time           `json:"pledgeDate"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// PledgeListResponse wraps a list of pledges
type PledgeListResponse struct {
	Pledges []PledgeResponse `json:"pledges"`
	Count   int              `json:"count"`
}

// NewPledgeResponse builds a response DTO from a commitment entity
func NewPledgeResponse(c *entity.Commitment) PledgeResponse {
	contributor := ContributorResponse{
		Type:        string(c.Contributor.Kind),
		DisplayName: c.Contributor.DisplayName(),
	}
	if c.Contributor.IsMember() {
		contributor.MemberID = c.Contributor.MemberID.String()
	} else {
		contributor.FirstName = c.Contributor.FirstName
		contributor.LastName = c.Contributor.LastName
		contributor.Phone = c.Contributor.Phone
		contributor.Email = c.Contributor.Email
	}

	resp := PledgeResponse{
		ID:          c.ID.String(),
		Contributor: contributor,
		Amount:      entity.FormatAmount(c.PledgeAmount),
		Currency:    c.Currency,
		AmountPaid:  entity.FormatAmount(c.AmountPaid()),
		Remaining:   entity.FormatAmount(c.Remaining()),
		IsFulfilled: c.IsFulfilled,
		PledgeDate:  c.PledgeDate,
		DueDate:     c.DueDate,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.CategoryID != nil {
		resp.CategoryID = c.CategoryID.String()
	}
	return resp
}
