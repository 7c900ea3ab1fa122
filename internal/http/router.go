package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/metrics"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	JWTSecret         []byte
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	RateCardsService  service.RateCardsService
	SchedulesService  service.SchedulesService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter creates and configures the Gin router for the bar bending schedule service.
// Stores that are not configured answer 503 rather than leaving their routes unregistered.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	admin := configureAPIMiddleware(api, &cfg)

	for _, group := range routeGroups(handler, &cfg) {
		group.RegisterRoutes(api, admin)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition", "X-Schedule-Reference", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/api/bbs/export", "/api/bbs/template"),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group and returns the admin subgroup.
// Limits apply per client IP or API key first, and again per admin once the token is verified.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	api.Use(middleware.Timeout(cfg.RequestTimeout))

	if len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		api.Use(limiter.ActorRateLimit())
	}

	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}

	admin := api.Group("", middleware.AdminJWT(cfg.JWTSecret))
	if limiter != nil {
		admin.Use(limiter.ActorRateLimit())
	}
	return admin
}

// routeGroups builds the API route groups. Missing stores are replaced by services that
// report service.ErrRepositoryNotConfigured.
func routeGroups(handler *Handler, cfg *RouterConfig) []RouteGroup {
	rateCards := cfg.RateCardsService
	if rateCards == nil {
		rateCards = service.NewRateCardsService(nil)
	}
	schedules := cfg.SchedulesService
	if schedules == nil {
		schedules = service.NewSchedulesService(nil)
	}
	logging := cfg.LoggingService
	if logging == nil {
		logging = service.NewLoggingService(nil)
	}

	return []RouteGroup{
		NewBBSRoutes(handler),
		NewRateCardRoutes(NewRateCardsHandler(rateCards, handler.calculator, cfg.LoggingService)),
		NewScheduleRoutes(NewSchedulesHandler(schedules)),
		NewAuditRoutes(NewAuditHandler(logging)),
	}
}
