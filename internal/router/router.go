package router

import (
	"github.com/gin-gonic/gin"

	"reqlens/internal/domain"
	"reqlens/internal/handler"
	"reqlens/internal/middleware"
	"reqlens/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	importH *handler.ImportHandler,
	requirementH *handler.RequirementHandler,
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Import routes. Source pulls hit an external system with shared
	// credentials, so they are restricted to admins.
	imports := protected.Group("/imports")
	imports.POST("", importH.Import)
	imports.POST("/jama", middleware.RequireRole(domain.RoleAdmin), importH.ImportFromJama)
	imports.GET("/:id/requirements", importH.ListBatchRequirements)

	// Requirement routes
	requirements := protected.Group("/requirements")
	requirements.GET("", requirementH.List)
	requirements.GET("/export.csv", requirementH.ExportCSV)
	requirements.GET("/export.xlsx", requirementH.ExportXLSX)
	requirements.GET("/:id", requirementH.Get)
	requirements.POST("/:id/analyze", analysisH.Analyze)
	requirements.GET("/:id/analyses", analysisH.ListByRequirement)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.GET("/:id", analysisH.Get)

	return r
}
