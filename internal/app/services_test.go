//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/mocks"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func beamItems() []model.BarGroupInput {
	return []model.BarGroupInput{{
		ElementType:   model.ElementBeam,
		MemberID:      "B1",
		BarType:       model.BarMain,
		BarDiameterMM: 12,
		NumBars:       2,
		ClearLengthM:  3,
	}}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		db        func(t *testing.T) *DatabaseComponents
		wantStore bool
	}{
		{
			name: "calculator only without a database",
			cfg:  config.Config{BBS: config.BBSConfig{Code: model.CodeIS}},
		},
		{
			name: "cache enabled",
			cfg: config.Config{
				Cache: config.CacheConfig{Size: 100, TTL: time.Minute},
				BBS:   config.BBSConfig{Code: model.CodeNBC},
			},
		},
		{
			name: "stores wired from the database",
			cfg:  config.Config{BBS: config.BBSConfig{Code: model.CodeIS}},
			db: func(t *testing.T) *DatabaseComponents {
				return &DatabaseComponents{
					RateCardsRepo: new(mocks.MockRateCardsRepositoryInterface),
					SchedulesRepo: new(mocks.MockSchedulesRepositoryInterface),
				}
			},
			wantStore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var db *DatabaseComponents
			if tt.db != nil {
				db = tt.db(t)
			}

			components := InitializeServices(tt.cfg, db)

			require.NotNil(t, components)
			require.NotNil(t, components.Calculator)
			assert.Equal(t, tt.cfg.BBS.Code, components.Calculator.Defaults().Code)
			if tt.wantStore {
				assert.NotNil(t, components.RateCards)
				assert.NotNil(t, components.Schedules)
			} else {
				assert.Nil(t, components.RateCards)
				assert.Nil(t, components.Schedules)
			}
		})
	}
}

func TestInitializeServices_CalculatorUsesConfiguredDefaults(t *testing.T) {
	cfg := config.Config{BBS: config.BBSConfig{
		Code:           model.CodeIS,
		SteelRatePerKg: model.Float(60),
		Currency:       "INR",
	}}

	components := InitializeServices(cfg, nil)

	schedule, err := components.Calculator.Calculate(context.Background(), beamItems(), model.Options{})
	require.NoError(t, err)
	require.Len(t, schedule.Results, 1)
	require.NotNil(t, schedule.Summary.TotalCost)
	assert.Equal(t, "INR", schedule.Currency)
	assert.Equal(t, model.CodeIS, schedule.CodeUsed)
}

func TestInitializeServices_ActiveRateCardPricesSchedules(t *testing.T) {
	rateCards := new(mocks.MockRateCardsRepositoryInterface)
	rateCards.On("GetActive", mock.Anything).Return(&repository.RateCard{
		DefaultRatePerKg: model.Float(80),
		Currency:         "NPR",
		Active:           true,
		Version:          3,
	}, nil)

	components := InitializeServices(
		config.Config{BBS: config.BBSConfig{Code: model.CodeIS}},
		&DatabaseComponents{RateCardsRepo: rateCards, SchedulesRepo: new(mocks.MockSchedulesRepositoryInterface)},
	)

	schedule, err := components.Calculator.Calculate(context.Background(), beamItems(), model.Options{})
	require.NoError(t, err)
	require.NotNil(t, schedule.Results[0].RatePerKg)
	assert.Equal(t, 80.0, *schedule.Results[0].RatePerKg)
	assert.Equal(t, "NPR", schedule.Currency)
}

func TestInitializeDefaultRateCard(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.BBSConfig
		setupMock func(*mocks.MockRateCardsService)
		wantErr   bool
	}{
		{
			name: "no configured rate skips the store",
			cfg:  config.BBSConfig{},
		},
		{
			name: "empty store gets the configured rate",
			cfg:  config.BBSConfig{SteelRatePerKg: model.Float(65), Currency: "INR"},
			setupMock: func(m *mocks.MockRateCardsService) {
				m.On("GetActive", mock.Anything).Return(nil, nil).Once()
				m.On("Update", mock.Anything, model.RateCardUpdate{
					DefaultRatePerKg: model.Float(65),
					Currency:         "INR",
				}, seedActor).Return(&repository.RateCard{Version: 1}, nil).Once()
			},
		},
		{
			name: "active card is kept",
			cfg:  config.BBSConfig{SteelRatePerKg: model.Float(65)},
			setupMock: func(m *mocks.MockRateCardsService) {
				m.On("GetActive", mock.Anything).Return(&repository.RateCard{Version: 4}, nil).Once()
			},
		},
		{
			name: "store error",
			cfg:  config.BBSConfig{SteelRatePerKg: model.Float(65)},
			setupMock: func(m *mocks.MockRateCardsService) {
				m.On("GetActive", mock.Anything).Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
		},
		{
			name: "update rejected",
			cfg:  config.BBSConfig{SteelRatePerKg: model.Float(65)},
			setupMock: func(m *mocks.MockRateCardsService) {
				m.On("GetActive", mock.Anything).Return(nil, nil).Once()
				m.On("Update", mock.Anything, mock.Anything, seedActor).Return(nil, errors.New("write failed")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockRateCardsService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			err := initializeDefaultRateCard(m, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
