// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/circuitbreaker"
	"github.com/guttosm/bbs-service/internal/metrics"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                      *repository.MongoDB
	RateCardsRepo           repository.RateCardsRepositoryInterface
	SchedulesRepo           repository.SchedulesRepositoryInterface
	LoggingService          service.LoggingService
	RateCardsCircuitBreaker *circuitbreaker.CircuitBreaker
	SchedulesCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker      *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes the MongoDB connection and the repositories built on it.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	return newDatabaseComponents(db, cfg)
}

// newDatabaseComponents wraps every repository of db in its own circuit breaker.
func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	rateCardsCB := newCircuitBreaker("mongodb-rate-cards", cfg)
	schedulesCB := newCircuitBreaker("mongodb-schedules", cfg)
	logsCB := newCircuitBreaker("mongodb-logs", cfg)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                      db,
		RateCardsRepo:           repository.NewRateCardsRepositoryWithCircuitBreaker(repository.NewRateCardsRepository(db), rateCardsCB),
		SchedulesRepo:           repository.NewSchedulesRepositoryWithCircuitBreaker(repository.NewSchedulesRepository(db), schedulesCB),
		LoggingService:          service.NewLoggingService(logsRepo),
		RateCardsCircuitBreaker: rateCardsCB,
		SchedulesCircuitBreaker: schedulesCB,
		LogsCircuitBreaker:      logsCB,
	}
}

// newCircuitBreaker creates a breaker that publishes its state to the metrics registry.
func newCircuitBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))

	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}
