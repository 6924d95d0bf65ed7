package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/shipwise/shipwise/internal/api/v1"
	"github.com/shipwise/shipwise/internal/rest/middleware"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Calculation *v1.CalculationHandler
	Session     *v1.SessionHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Calculation method routes: validation and fee resolution
	methods := router.Group("/methods")
	{
		methods.POST("/validate", handlers.Calculation.ValidateMethod)
		methods.POST("/validate-field", handlers.Calculation.ValidateRangeField)
		methods.POST("/resolve", handlers.Calculation.ResolveFee)
	}

	// Session routes
	sessions := router.Group("/sessions")
	{
		sessions.POST("", handlers.Session.CreateSession)
		sessions.GET("", handlers.Session.ListSessions)
		sessions.GET("/:id", handlers.Session.GetSession)
		sessions.PUT("/:id", handlers.Session.UpdateSession)
		sessions.DELETE("/:id", handlers.Session.DeleteSession)
		sessions.POST("/:id/convert", handlers.Session.ConvertSession)
		sessions.POST("/:id/provision", handlers.Session.ProvisionDefaultRules)
	}
}
