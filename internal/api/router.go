package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fxgate/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler with all business logic already injected and the
// verifier used to gate the protected routes.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Registers the open token endpoint and the token-gated rate endpoints.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, verifier middleware.TokenVerifier) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Open routes ──────────────────────────────
	router.POST("/token", handler.IssueToken)

	// ─── Protected routes ─────────────────────────
	protected := router.Group("/", middleware.AuthenticateToken(verifier), middleware.RequireQuote())
	{
		protected.GET("/range", handler.GetRange)
		protected.GET("/convert", handler.GetConvert)
		protected.GET("/historical", handler.GetHistorical)
	}

	return router
}
