//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationConfig(t *testing.T) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 10 * time.Second,
			MaxUploadBytes: 1 << 20,
		},
		Cache: config.CacheConfig{Size: 100, TTL: time.Minute},
		Database: config.DatabaseConfig{
			URI:                            getSharedContainerURI(),
			DatabaseName:                   testDatabaseName(t),
			LogsTTL:                        30 * 24 * time.Hour,
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		BBS: config.BBSConfig{Code: model.CodeIS, Units: model.UnitsMetric, SteelRatePerKg: model.Float(68), Currency: "INR"},
		Log: config.LogConfig{Level: "error"},
	}
}

func TestInitializeApp_Integration(t *testing.T) {
	cfg := integrationConfig(t)

	application := InitializeApp(cfg)
	require.NotNil(t, application)
	require.NotNil(t, application.db, "database should be connected")
	t.Cleanup(func() { assert.NoError(t, application.Close(context.Background())) })

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, req)
		return w
	}

	t.Run("ready with database checks", func(t *testing.T) {
		w := serve(http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
	})

	t.Run("configured rate seeds the rate card", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/rate-cards", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"created_by":"system"`)
	})

	t.Run("saved schedules are listed", func(t *testing.T) {
		body := strings.Replace(calculateBody, `"items"`, `"save": true, "items"`, 1)
		w := serve(http.MethodPost, "/api/bbs/calculate", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = serve(http.MethodGet, "/api/schedules", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []map[string]interface{} `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Items, 1)
	})
}

func TestInitializeApp_Integration_DatabaseDisabled(t *testing.T) {
	cfg := integrationConfig(t)
	cfg.Database.Enabled = false

	application := InitializeApp(cfg)
	require.NotNil(t, application)
	assert.Nil(t, application.db)
	assert.NoError(t, application.Close(context.Background()))
}
