package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	domainerr "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/dto"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/middleware"
)

// PledgeHandler handles pledge-related HTTP requests
type PledgeHandler struct {
	pledgeService usecase.PledgeUseCase
	logger        coreport.Logger
}

// NewPledgeHandler creates a new pledge handler instance
func NewPledgeHandler(pledgeService usecase.PledgeUseCase, logger coreport.Logger) *PledgeHandler {
	return &PledgeHandler{
		pledgeService: pledgeService,
		logger:        logger,
	}
}

// CreatePledge handles POST /pledges
func (h *PledgeHandler) CreatePledge(c *gin.Context) {
	var req dto.CreatePledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid pledge request format", map[string]any{
			"error": err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	contributor, err := contributorFromRequest(req.Contributor)
	if err != nil {
		respondError(c, err)
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			respondBadRequest(c, "Invalid categoryId, expected a UUID")
			return
		}
		categoryID = &id
	}

	commitment, err := h.pledgeService.CreateCommitment(c.Request.Context(), usecase.CreateCommitmentInput{
		ChurchID:     middleware.ChurchID(c),
		Contributor:  contributor,
		PledgeAmount: req.Amount,
		Currency:     req.Currency,
		CategoryID:   categoryID,
		PledgeDate:   req.PledgeDate,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPledgeResponse(commitment))
}

// GetPledge handles GET /pledges/:pledgeId
func (h *PledgeHandler) GetPledge(c *gin.Context) {
	pledgeID, ok := parseUUIDParam(c, "pledgeId")
	if !ok {
		return
	}

	commitment, err := h.pledgeService.GetCommitment(c.Request.Context(), middleware.ChurchID(c), pledgeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPledgeResponse(commitment))
}

// ListPledges handles GET /pledges
func (h *PledgeHandler) ListPledges(c *gin.Context) {
	commitments, err := h.pledgeService.ListCommitments(c.Request.Context(), middleware.ChurchID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.PledgeListResponse{
		Pledges: make([]dto.PledgeResponse, 0, len(commitments)),
		Count:   len(commitments),
	}
	for _, commitment := range commitments {
		resp.Pledges = append(resp.Pledges, dto.NewPledgeResponse(commitment))
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePledge handles DELETE /pledges/:pledgeId. Deleting a pledge that is
// already gone is a 204; deleting one with payments is a 409.
func (h *PledgeHandler) DeletePledge(c *gin.Context) {
	pledgeID, ok := parseUUIDParam(c, "pledgeId")
	if !ok {
		return
	}

	err := h.pledgeService.DeleteCommitment(c.Request.Context(), middleware.ChurchID(c), pledgeID)
	if err != nil {
		if errors.Is(err, domainerr.ErrPledgeNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// contributorFromRequest builds the contributor union from the wire shape
func contributorFromRequest(req dto.ContributorRequest) (entity.Contributor, error) {
	if req.Type == string(entity.ContributorMember) {
		memberID, err := uuid.Parse(req.MemberID)
		if err != nil {
			return entity.Contributor{}, domainerr.ErrInvalidContributor
		}
		return entity.NewMemberContributor(memberID)
	}
	return entity.NewVisitorContributor(req.FirstName, req.LastName, req.Phone, req.Email)
}

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid "+name+", expected a UUID")
		return uuid.Nil, false
	}
	return id, true
}
