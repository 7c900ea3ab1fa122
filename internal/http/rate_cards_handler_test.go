package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/middleware"
	"github.com/guttosm/bbs-service/internal/mocks"
	"github.com/guttosm/bbs-service/internal/repository"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newRateCardRouter registers the rate card routes with every caller acting as "ops@site".
func newRateCardRouter(h *RateCardsHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Set(middleware.ActorKey, "ops@site")
		c.Next()
	})
	api := router.Group("/api")
	NewRateCardRoutes(h).RegisterRoutes(api, api)
	return router
}

func rate(v float64) *float64 { return &v }

func TestRateCardsHandler_GetActiveRateCard(t *testing.T) {
	tests := []struct {
		name       string
		card       *repository.RateCard
		err        error
		wantStatus int
	}{
		{
			name:       "active card",
			card:       &repository.RateCard{DefaultRatePerKg: rate(70), Currency: "INR", Active: true, Version: 3},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no card yet",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store not configured",
			err:        service.ErrRepositoryNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateCards := mocks.NewMockRateCardsService(t)
			rateCards.On("GetActive", mock.Anything).Return(tt.card, tt.err)
			router := newRateCardRouter(NewRateCardsHandler(rateCards, nil, nil))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rate-cards", nil))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.card != nil {
				var card repository.RateCard
				decodeData(t, w, &card)
				assert.Equal(t, 3, card.Version)
				assert.Equal(t, 70.0, *card.DefaultRatePerKg)
			}
		})
	}
}

func TestRateCardsHandler_UpdateRateCard(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(rc *mocks.MockRateCardsService, calc *mocks.MockScheduleCalculator)
		wantStatus int
	}{
		{
			name: "publishes a new version and drops cached schedules",
			body: `{"default_rate_per_kg": 70, "rates_by_diameter": {"16": 72.5}, "currency": "INR"}`,
			setup: func(rc *mocks.MockRateCardsService, calc *mocks.MockScheduleCalculator) {
				rc.On("Update", mock.Anything, mock.MatchedBy(func(u model.RateCardUpdate) bool {
					return *u.DefaultRatePerKg == 70 && u.RatesByDiameter[16] == 72.5 && u.Currency == "INR"
				}), "ops@site").Return(&repository.RateCard{
					DefaultRatePerKg: rate(70),
					Rates:            []repository.DiameterRate{{DiameterMM: 16, RatePerKg: 72.5}},
					Currency:         "INR",
					Active:           true,
					Version:          4,
					CreatedBy:        "ops@site",
				}, nil)
				calc.On("InvalidateCache").Return().Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "negative rate",
			body: `{"default_rate_per_kg": -1}`,
			setup: func(rc *mocks.MockRateCardsService, _ *mocks.MockScheduleCalculator) {
				rc.On("Update", mock.Anything, mock.Anything, "ops@site").
					Return(nil, fmt.Errorf("%w: default_rate_per_kg must not be negative", service.ErrInvalidRateCard))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "currency too long",
			body:       `{"currency": "RUPEES-INR"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"default_rate_per_kg": `,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateCards := mocks.NewMockRateCardsService(t)
			calc := mocks.NewMockScheduleCalculator(t)
			if tt.setup != nil {
				tt.setup(rateCards, calc)
			}
			router := newRateCardRouter(NewRateCardsHandler(rateCards, calc, nil))

			req := httptest.NewRequest(http.MethodPut, "/api/rate-cards", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				var card repository.RateCard
				decodeData(t, w, &card)
				assert.Equal(t, 4, card.Version)
				assert.Equal(t, map[int]float64{16: 72.5}, card.RateMap())
			}
		})
	}
}

func TestRateCardsHandler_ListRateCards(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", wantLimit: 0, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "limit out of range", query: "?limit=1000", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateCards := mocks.NewMockRateCardsService(t)
			if tt.wantStatus == http.StatusOK {
				rateCards.On("List", mock.Anything, tt.wantLimit).Return([]repository.RateCard{{Version: 2}, {Version: 1}}, nil)
			}
			router := newRateCardRouter(NewRateCardsHandler(rateCards, nil, nil))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rate-cards/history"+tt.query, nil))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				var cards []repository.RateCard
				decodeData(t, w, &cards)
				assert.Len(t, cards, 2)
			}
		})
	}
}
