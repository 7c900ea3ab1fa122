// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/bbs-service/internal/circuitbreaker"
)

// RateCardsRepositoryWithCircuitBreaker wraps a rate cards repository with circuit breaker protection.
type RateCardsRepositoryWithCircuitBreaker struct {
	repo           RateCardsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRateCardsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewRateCardsRepositoryWithCircuitBreaker(repo RateCardsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *RateCardsRepositoryWithCircuitBreaker {
	return &RateCardsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active rate card. When the circuit is open it reports no card,
// so calculations fall back to the configured rate.
func (r *RateCardsRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*RateCard, error) {
	card, err := circuitbreaker.Do(ctx, r.circuitBreaker, func() (*RateCard, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return card, err
}

// Create stores a new active rate card with circuit breaker protection.
func (r *RateCardsRepositoryWithCircuitBreaker) Create(ctx context.Context, card RateCard) (*RateCard, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*RateCard, error) {
		return r.repo.Create(ctx, card)
	})
}

// List returns rate card versions with circuit breaker protection.
func (r *RateCardsRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]RateCard, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]RateCard, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *RateCardsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// SchedulesRepositoryWithCircuitBreaker wraps a saved schedules repository with circuit breaker protection.
type SchedulesRepositoryWithCircuitBreaker struct {
	repo           SchedulesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewSchedulesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewSchedulesRepositoryWithCircuitBreaker(repo SchedulesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *SchedulesRepositoryWithCircuitBreaker {
	return &SchedulesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a schedule with circuit breaker protection.
func (r *SchedulesRepositoryWithCircuitBreaker) Create(ctx context.Context, s *SavedSchedule) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, s)
	})
}

// GetByReference loads a schedule with circuit breaker protection.
// A missing schedule is a normal answer and never trips the breaker.
func (r *SchedulesRepositoryWithCircuitBreaker) GetByReference(ctx context.Context, reference string) (*SavedSchedule, error) {
	var notFound bool
	s, err := circuitbreaker.Do(ctx, r.circuitBreaker, func() (*SavedSchedule, error) {
		s, err := r.repo.GetByReference(ctx, reference)
		if errors.Is(err, ErrScheduleNotFound) {
			notFound = true
			return nil, nil
		}
		return s, err
	})
	if notFound {
		return nil, ErrScheduleNotFound
	}
	return s, err
}

// List returns saved schedules with circuit breaker protection.
func (r *SchedulesRepositoryWithCircuitBreaker) List(ctx context.Context, opts ScheduleQueryOptions) ([]SavedSchedule, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]SavedSchedule, error) {
		return r.repo.List(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *SchedulesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. Logging is non-critical, so an open circuit drops the entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. An open circuit drops the batch.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
