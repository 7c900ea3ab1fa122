package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/logger"
	"github.com/guttosm/bbs-service/internal/metrics"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/guttosm/bbs-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// ScheduleCalculator defines the interface for bar bending schedule calculations.
type ScheduleCalculator interface {
	Calculate(ctx context.Context, items []model.BarGroupInput, opts model.Options) (*model.Schedule, error)
	// Defaults returns the server-side options merged under every request.
	Defaults() model.Options
	// InvalidateCache clears the calculation cache (useful when rate cards change)
	InvalidateCache()
}

// RateSource supplies the active steel rate card. A nil card means none is configured.
type RateSource interface {
	GetActive(ctx context.Context) (*repository.RateCard, error)
}

// Option configures a ScheduleCalculatorService.
type Option func(*ScheduleCalculatorService)

// ScheduleCalculatorService implements ScheduleCalculator on top of the bbs engine.
type ScheduleCalculatorService struct {
	engine   *bbs.Engine
	defaults model.Options
	rates    RateSource
	cache    cache.Cache
}

// NewScheduleCalculatorService creates a new ScheduleCalculatorService with the given options.
func NewScheduleCalculatorService(opts ...Option) *ScheduleCalculatorService {
	s := &ScheduleCalculatorService{
		engine:   bbs.NewEngine(),
		defaults: model.Options{Code: model.CodeIS},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDefaults sets the server-side default options.
func WithDefaults(d model.Options) Option {
	return func(s *ScheduleCalculatorService) {
		s.defaults = d
	}
}

// WithEngine replaces the calculation engine.
func WithEngine(e *bbs.Engine) Option {
	return func(s *ScheduleCalculatorService) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithRateCards prices schedules from the active rate card when the request does not.
func WithRateCards(r RateSource) Option {
	return func(s *ScheduleCalculatorService) {
		s.rates = r
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *ScheduleCalculatorService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, 16)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *ScheduleCalculatorService) {
		s.cache = c
	}
}

// Defaults returns the server-side default options.
func (s *ScheduleCalculatorService) Defaults() model.Options {
	return s.defaults
}

// Calculate merges defaults and the active rate card into opts and runs the engine.
// Cached schedules are shared and must not be modified by callers.
func (s *ScheduleCalculatorService) Calculate(ctx context.Context, items []model.BarGroupInput, opts model.Options) (*model.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := mergeOptions(opts, s.defaults, s.activeRateCard(ctx))

	var key cache.Key
	cacheable := false
	if s.cache != nil {
		k, err := cache.KeyOf(items, merged)
		if err != nil {
			log.Warn().Err(err).Msg("schedule cache key unavailable")
		} else {
			key, cacheable = k, true
			if result, ok := s.cache.Get(key); ok {
				metrics.RecordScheduleCalculation(0, "cached", metrics.ScheduleStats{})
				return result, nil
			}
		}
	}

	start := time.Now()
	result, err := s.engine.Calculate(items, merged)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordScheduleCalculation(elapsed, errorClass(err), metrics.ScheduleStats{})
		l := logger.ForSchedule(merged.Code, len(items))
		event := l.Debug().Err(err)
		if loc, ok := bbs.Locate(err); ok {
			event = event.Int("item_index", loc.ItemIndex).Str("member_id", loc.MemberID).Str("field", loc.Field)
		}
		event.Msg("schedule calculation rejected")
		return nil, err
	}

	metrics.RecordScheduleCalculation(elapsed, "success", statsOf(result))
	l := logger.ForSchedule(result.CodeUsed, len(result.Results))
	l.Debug().
		Float64("steel_kg", result.Summary.TotalSteelWeightKg).
		Dur("duration", elapsed).
		Msg("schedule calculated")

	if cacheable {
		s.cache.Set(key, result)
	}
	return result, nil
}

// InvalidateCache clears the calculation cache.
func (s *ScheduleCalculatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *ScheduleCalculatorService) activeRateCard(ctx context.Context) *repository.RateCard {
	if s.rates == nil {
		return nil
	}
	card, err := s.rates.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, ErrRepositoryNotConfigured) {
			log.Warn().Err(err).Msg("active rate card unavailable, using configured rates")
		}
		return nil
	}
	return card
}

// mergeOptions fills unset request options from the rate card and then the server defaults.
// Default lengths are only inherited when the request uses the same unit system.
func mergeOptions(req, defaults model.Options, card *repository.RateCard) model.Options {
	out := req
	if out.Code == "" {
		out.Code = defaults.Code
	}
	if out.Units == "" {
		out.Units = defaults.Units
	}
	if unitsOf(out) == unitsOf(defaults) {
		if out.StockLengthM == 0 {
			out.StockLengthM = defaults.StockLengthM
		}
		if out.DefaultCoverMM == 0 {
			out.DefaultCoverMM = defaults.DefaultCoverMM
		}
	}
	if out.WastagePercentDefault == 0 {
		out.WastagePercentDefault = defaults.WastagePercentDefault
	}

	if out.SteelRatePerKg == nil {
		switch {
		case card != nil && card.DefaultRatePerKg != nil:
			out.SteelRatePerKg = model.Float(*card.DefaultRatePerKg)
		case defaults.SteelRatePerKg != nil:
			out.SteelRatePerKg = model.Float(*defaults.SteelRatePerKg)
		}
	}

	rates := map[int]float64{}
	for d, r := range defaults.RatesByDiameter {
		rates[d] = r
	}
	for d, r := range card.RateMap() {
		rates[d] = r
	}
	for d, r := range req.RatesByDiameter {
		rates[d] = r
	}
	out.RatesByDiameter = nil
	if len(rates) > 0 {
		out.RatesByDiameter = rates
	}

	if out.Currency == "" {
		if card != nil && card.Currency != "" {
			out.Currency = card.Currency
		} else {
			out.Currency = defaults.Currency
		}
	}
	return out
}

func unitsOf(o model.Options) model.UnitSystem {
	if o.Units == "" {
		return model.UnitsMetric
	}
	return o.Units
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, bbs.ErrInvalidUnit):
		return "invalid_unit"
	case errors.Is(err, bbs.ErrInvalidGeometry):
		return "invalid_geometry"
	case errors.Is(err, bbs.ErrUnknownCode):
		return "unknown_code"
	case errors.Is(err, bbs.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}

func statsOf(s *model.Schedule) metrics.ScheduleStats {
	stats := metrics.ScheduleStats{
		BarGroups:        len(s.Results),
		WeightByDiameter: make(map[int]float64, len(s.Summary.ByDiameter)),
	}
	for _, r := range s.Results {
		stats.Splices += r.SpliceCount * r.NumBars
	}
	for _, d := range s.Summary.ByDiameter {
		stats.WeightByDiameter[d.BarDiameterMM] = d.TotalWeightKg
	}
	return stats
}
