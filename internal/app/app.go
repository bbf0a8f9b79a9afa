package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fxgate/config"
	"github.com/guttosm/fxgate/internal/api"
	"github.com/guttosm/fxgate/internal/auth"
	"github.com/guttosm/fxgate/internal/fx"
	"github.com/guttosm/fxgate/internal/service"
)

// clientCtor is an indirection for creating the upstream client; tests can
// override it to inject a fake provider.
var clientCtor = func(cfg config.FXConfig) fx.RatesClient {
	return fx.NewClient(cfg, nil)
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the upstream exchange-rate client from configuration.
//   - Creates the token service around the shared signing secret.
//   - Creates the rate service (business logic) over the upstream client.
//   - Configures the Gin router with token, rate, and swagger routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	if cfg.Auth.TokenSecret == "" {
		return nil, nil, fmt.Errorf("token secret is not configured")
	}
	if cfg.FX.APIKey == "" {
		return nil, nil, fmt.Errorf("upstream API key is not configured")
	}

	// Upstream exchange-rate client
	// indirection for unit testing
	client := clientCtor(cfg.FX)

	// Token issuing and verification around the shared secret
	tokens := auth.NewTokenService(cfg.Auth.TokenSecret)

	// Business logic layer
	svc := service.NewRateService(client)

	// HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, tokens)

	// Setup Gin router with routes; the token service doubles as verifier
	router := api.NewRouter(handler, tokens)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	healthHandler.Register(router)

	// Nothing to tear down: the service holds no connections of its own.
	cleanup := func() {}

	return router, cleanup, nil
}
