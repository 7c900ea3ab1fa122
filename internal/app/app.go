// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/http"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// Application is the wired service: its router and the resources that must be released on exit.
type Application struct {
	Router *gin.Engine
	db     *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *Application {
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	serviceComponents := InitializeServices(cfg, dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &Application{
		Router: http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		db:     dbComponents,
	}
}

// Close flushes pending audit entries and disconnects from the database.
func (a *Application) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()

	if a.db == nil || a.db.DB == nil {
		return nil
	}
	if err := a.db.DB.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close MongoDB connection")
		return err
	}
	return nil
}
