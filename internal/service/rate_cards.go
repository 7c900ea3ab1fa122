package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/bbs-service/internal/bbs"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/repository"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrInvalidRateCard is returned when a rate card update carries unusable rates.
	ErrInvalidRateCard = errors.New("invalid rate card")
)

// RateCardsService provides steel rate card operations.
type RateCardsService interface {
	GetActive(ctx context.Context) (*repository.RateCard, error)
	Update(ctx context.Context, update model.RateCardUpdate, createdBy string) (*repository.RateCard, error)
	List(ctx context.Context, limit int) ([]repository.RateCard, error)
}

// RateCardsServiceImpl implements RateCardsService.
type RateCardsServiceImpl struct {
	rateCardsRepo repository.RateCardsRepositoryInterface
}

// NewRateCardsService creates a new rate cards service.
func NewRateCardsService(rateCardsRepo repository.RateCardsRepositoryInterface) RateCardsService {
	return &RateCardsServiceImpl{
		rateCardsRepo: rateCardsRepo,
	}
}

func (s *RateCardsServiceImpl) GetActive(ctx context.Context) (*repository.RateCard, error) {
	if s.rateCardsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.rateCardsRepo.GetActive(ctx)
}

// Update validates u and stores it as the new active rate card version.
func (s *RateCardsServiceImpl) Update(ctx context.Context, u model.RateCardUpdate, createdBy string) (*repository.RateCard, error) {
	if s.rateCardsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := validateRateCard(u); err != nil {
		return nil, err
	}
	return s.rateCardsRepo.Create(ctx, repository.RateCard{
		DefaultRatePerKg: u.DefaultRatePerKg,
		Rates:            repository.RatesFromMap(u.RatesByDiameter),
		Currency:         strings.TrimSpace(u.Currency),
		CreatedBy:        createdBy,
	})
}

func (s *RateCardsServiceImpl) List(ctx context.Context, limit int) ([]repository.RateCard, error) {
	if s.rateCardsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.rateCardsRepo.List(ctx, limit)
}

func validateRateCard(u model.RateCardUpdate) error {
	if u.DefaultRatePerKg == nil && len(u.RatesByDiameter) == 0 {
		return fmt.Errorf("%w: a default rate or at least one diameter rate is required", ErrInvalidRateCard)
	}
	if u.DefaultRatePerKg != nil && !validRate(*u.DefaultRatePerKg) {
		return fmt.Errorf("%w: default_rate_per_kg must be a finite non-negative number", ErrInvalidRateCard)
	}
	for _, r := range repository.RatesFromMap(u.RatesByDiameter) {
		if !bbs.IsCatalogDiameter(r.DiameterMM) {
			return fmt.Errorf("%w: diameter %d mm is not a standard bar size", ErrInvalidRateCard, r.DiameterMM)
		}
		if !validRate(r.RatePerKg) {
			return fmt.Errorf("%w: rate for %d mm must be a finite non-negative number", ErrInvalidRateCard, r.DiameterMM)
		}
	}
	return nil
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
