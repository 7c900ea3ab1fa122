// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockRateCardsRepositoryInterface struct {
	mock.Mock
}

func (m *MockRateCardsRepositoryInterface) GetActive(ctx context.Context) (*repository.RateCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RateCard), args.Error(1)
}

func (m *MockRateCardsRepositoryInterface) Create(ctx context.Context, card repository.RateCard) (*repository.RateCard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RateCard), args.Error(1)
}

func (m *MockRateCardsRepositoryInterface) List(ctx context.Context, limit int) ([]repository.RateCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RateCard), args.Error(1)
}

type MockSchedulesRepositoryInterface struct {
	mock.Mock
}

func (m *MockSchedulesRepositoryInterface) Create(ctx context.Context, s *repository.SavedSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSchedulesRepositoryInterface) GetByReference(ctx context.Context, reference string) (*repository.SavedSchedule, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SavedSchedule), args.Error(1)
}

func (m *MockSchedulesRepositoryInterface) List(ctx context.Context, opts repository.ScheduleQueryOptions) ([]repository.SavedSchedule, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SavedSchedule), args.Error(1)
}
