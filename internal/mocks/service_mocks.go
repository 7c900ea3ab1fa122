// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockScheduleCalculator struct {
	mock.Mock
}

// NewMockScheduleCalculator creates a MockScheduleCalculator that asserts its expectations when the test ends.
func NewMockScheduleCalculator(t testingT) *MockScheduleCalculator {
	m := &MockScheduleCalculator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScheduleCalculator) Calculate(ctx context.Context, items []model.BarGroupInput, opts model.Options) (*model.Schedule, error) {
	args := m.Called(ctx, items, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *MockScheduleCalculator) Defaults() model.Options {
	args := m.Called()
	return args.Get(0).(model.Options)
}

func (m *MockScheduleCalculator) InvalidateCache() {
	m.Called()
}

type MockRateCardsService struct {
	mock.Mock
}

// NewMockRateCardsService creates a MockRateCardsService that asserts its expectations when the test ends.
func NewMockRateCardsService(t testingT) *MockRateCardsService {
	m := &MockRateCardsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRateCardsService) GetActive(ctx context.Context) (*repository.RateCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RateCard), args.Error(1)
}

func (m *MockRateCardsService) Update(ctx context.Context, update model.RateCardUpdate, createdBy string) (*repository.RateCard, error) {
	args := m.Called(ctx, update, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RateCard), args.Error(1)
}

func (m *MockRateCardsService) List(ctx context.Context, limit int) ([]repository.RateCard, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RateCard), args.Error(1)
}

type MockSchedulesService struct {
	mock.Mock
}

// NewMockSchedulesService creates a MockSchedulesService that asserts its expectations when the test ends.
func NewMockSchedulesService(t testingT) *MockSchedulesService {
	m := &MockSchedulesService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSchedulesService) Save(ctx context.Context, items []model.BarGroupInput, result *model.Schedule, createdBy string) (*repository.SavedSchedule, error) {
	args := m.Called(ctx, items, result, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SavedSchedule), args.Error(1)
}

func (m *MockSchedulesService) Get(ctx context.Context, reference string) (*repository.SavedSchedule, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SavedSchedule), args.Error(1)
}

func (m *MockSchedulesService) List(ctx context.Context, project string, limit, skip int) ([]repository.SavedSchedule, error) {
	args := m.Called(ctx, project, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SavedSchedule), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

// NewMockLoggingService creates a MockLoggingService that asserts its expectations when the test ends.
func NewMockLoggingService(t testingT) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
