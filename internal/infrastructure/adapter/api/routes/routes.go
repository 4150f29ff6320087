package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/handler"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API. Every route requires a
// church id; mutating routes also require an actor id.
func SetupRoutes(
	router *gin.Engine,
	pledgeHandler *handler.PledgeHandler,
	paymentHandler *handler.PaymentHandler,
	attendanceHandler *handler.AttendanceHandler,
) {
	church := middleware.RequireChurch()
	actor := middleware.RequireActor()

	pledgeRoutes := router.Group("/pledges", church)
	{
		pledgeRoutes.POST("", actor, pledgeHandler.CreatePledge)
		pledgeRoutes.GET("", pledgeHandler.ListPledges)
		pledgeRoutes.GET("/:pledgeId", pledgeHandler.GetPledge)
		pledgeRoutes.DELETE("/:pledgeId", actor, pledgeHandler.DeletePledge)

		pledgeRoutes.POST("/:pledgeId/payments", actor, paymentHandler.RecordPayment)
		pledgeRoutes.GET("/:pledgeId/payments", paymentHandler.ListPayments)
		pledgeRoutes.DELETE("/:pledgeId/payments/:paymentId", actor, paymentHandler.DeletePayment)
	}

	eventRoutes := router.Group("/events", church)
	{
		eventRoutes.POST("", actor, attendanceHandler.CreateEvent)
		eventRoutes.GET("/:eventId", attendanceHandler.GetEvent)
		eventRoutes.POST("/:eventId/checkins", actor, attendanceHandler.CheckIn)
		eventRoutes.POST("/:eventId/checkins/bulk", actor, attendanceHandler.BulkCheckIn)
		eventRoutes.DELETE("/:eventId/checkins/:subjectId", actor, attendanceHandler.RemoveCheckIn)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
