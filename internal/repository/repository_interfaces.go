// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
)

// RateCardsRepositoryInterface defines the interface for rate card repository operations.
type RateCardsRepositoryInterface interface {
	GetActive(ctx context.Context) (*RateCard, error)
	Create(ctx context.Context, card RateCard) (*RateCard, error)
	List(ctx context.Context, limit int) ([]RateCard, error)
}

// SchedulesRepositoryInterface defines the interface for saved schedule repository operations.
type SchedulesRepositoryInterface interface {
	Create(ctx context.Context, s *SavedSchedule) error
	GetByReference(ctx context.Context, reference string) (*SavedSchedule, error)
	List(ctx context.Context, opts ScheduleQueryOptions) ([]SavedSchedule, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ RateCardsRepositoryInterface = (*RateCardsRepository)(nil)
	_ RateCardsRepositoryInterface = (*RateCardsRepositoryWithCircuitBreaker)(nil)
	_ SchedulesRepositoryInterface = (*SchedulesRepository)(nil)
	_ SchedulesRepositoryInterface = (*SchedulesRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface      = (*LogsRepository)(nil)
	_ LogsRepositoryInterface      = (*LogsRepositoryWithCircuitBreaker)(nil)
)
