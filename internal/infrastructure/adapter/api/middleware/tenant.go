package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerr "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/dto"
)

// Context keys set by the tenancy middleware
const (
	ChurchIDKey = "churchID"
	ActorIDKey  = "actorID"
)

// RequireChurch parses the X-Church-ID header and stores the church id in
// the gin context. Every ledger route is scoped to exactly one church.
func RequireChurch() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Church-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing required header: X-Church-ID",
			})
			return
		}

		churchID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid X-Church-ID header, expected a UUID",
			})
			return
		}

		c.Set(ChurchIDKey, churchID)
		c.Next()
	}
}

// RequireActor parses the X-Actor-ID header for mutating routes so every
// write carries who performed it
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor-ID")
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing required header: X-Actor-ID",
			})
			return
		}

		c.Set(ActorIDKey, actor)
		c.Next()
	}
}

// ChurchID reads the church id the tenancy middleware stored
func ChurchID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(ChurchIDKey).(uuid.UUID)
	return id
}

// ActorID reads the actor id the tenancy middleware stored
func ActorID(c *gin.Context) string {
	actor, _ := c.MustGet(ActorIDKey).(string)
	return actor
}
