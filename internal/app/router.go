// Package app provides router configuration.
package app

import (
	"context"
	"time"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/http"
	"github.com/guttosm/bbs-service/internal/service"
)

const healthCheckTimeout = 2 * time.Second

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handlerOpts := []http.HandlerOption{http.WithMaxUploadBytes(cfg.Server.MaxUploadBytes)}
	if services.Schedules != nil {
		handlerOpts = append(handlerOpts, http.WithSchedulesService(services.Schedules))
	}
	if loggingService != nil {
		handlerOpts = append(handlerOpts, http.WithLoggingService(loggingService))
	}
	handler := http.NewHandler(services.Calculator, handlerOpts...)

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		registerDatabaseHealth(healthHandler, dbComponents)
	}

	var jwtSecret []byte
	if cfg.Auth.JWTSecret != "" {
		jwtSecret = []byte(cfg.Auth.JWTSecret)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		APIKeys:           cfg.Auth.APIKeys,
		JWTSecret:         jwtSecret,
		EnableIdempotency: cfg.Server.EnableIdempotency,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		RateCardsService:  services.RateCards,
		SchedulesService:  services.Schedules,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

func registerDatabaseHealth(h *http.HealthHandler, db *DatabaseComponents) {
	if db.RateCardsCircuitBreaker != nil {
		h.RegisterCircuitBreaker("mongodb_rate_cards", db.RateCardsCircuitBreaker)
	}
	if db.SchedulesCircuitBreaker != nil {
		h.RegisterCircuitBreaker("mongodb_schedules", db.SchedulesCircuitBreaker)
	}
	if db.LogsCircuitBreaker != nil {
		h.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}
	if db.DB != nil {
		h.RegisterChecker("mongodb", http.HealthCheckerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return db.DB.HealthCheck(ctx)
		}))
	}
}
