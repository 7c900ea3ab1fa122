// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/rs/zerolog/log"
)

const seedActor = "system"

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator service.ScheduleCalculator
	RateCards  service.RateCardsService
	Schedules  service.SchedulesService
}

// InitializeServices initializes business logic services. The rate card and schedule
// services are nil when db is nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	opts := []service.Option{service.WithDefaults(cfg.BBS.Options())}

	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	components := &ServiceComponents{}
	if db != nil {
		components.RateCards = service.NewRateCardsService(db.RateCardsRepo)
		components.Schedules = service.NewSchedulesService(db.SchedulesRepo)
		opts = append(opts, service.WithRateCards(components.RateCards))

		if err := initializeDefaultRateCard(components.RateCards, cfg.BBS); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize default rate card")
		}
	}

	components.Calculator = service.NewScheduleCalculatorService(opts...)
	return components
}

// initializeDefaultRateCard stores the configured steel rate as the first rate card
// when one is configured and the store holds none.
func initializeDefaultRateCard(rateCards service.RateCardsService, cfg config.BBSConfig) error {
	if cfg.SteelRatePerKg == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := rateCards.GetActive(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	card, err := rateCards.Update(ctx, model.RateCardUpdate{
		DefaultRatePerKg: cfg.SteelRatePerKg,
		Currency:         cfg.Currency,
	}, seedActor)
	if err != nil {
		return err
	}
	log.Info().Float64("rate_per_kg", *cfg.SteelRatePerKg).Int("version", card.Version).Msg("Created default rate card")
	return nil
}
