package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
		assert.True(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Empty(t, cfg.Auth.JWTSecret)
		assert.Equal(t, "bbs_service", cfg.Database.DatabaseName)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, model.CodeIS, cfg.BBS.Code)
		assert.Equal(t, model.UnitsMetric, cfg.BBS.Units)
		assert.Nil(t, cfg.BBS.SteelRatePerKg)
		assert.Equal(t, LogConfig{Level: "info"}, cfg.Log)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("REQUEST_TIMEOUT", "5s")
		_ = os.Setenv("MAX_UPLOAD_BYTES", "2048")
		_ = os.Setenv("IDEMPOTENCY_ENABLED", "false")
		_ = os.Setenv("CACHE_SIZE", "500")
		_ = os.Setenv("CACHE_TTL", "10m")
		_ = os.Setenv("API_KEYS", "key1,key2")
		_ = os.Setenv("JWT_SECRET", "s3cret")
		_ = os.Setenv("MONGODB_ENABLED", "true")
		_ = os.Setenv("LOG_LEVEL", "debug")
		_ = os.Setenv("LOG_PRETTY", "true")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, int64(2048), cfg.Server.MaxUploadBytes)
		assert.False(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, LogConfig{Level: "debug", Pretty: true}, cfg.Log)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("MONGODB_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("appends CORS origins to the local defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://site.example, ")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://site.example"}, cfg.Server.CORSOrigins)
	})
}

func TestLoad_BBSDefaults(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want BBSConfig
	}{
		{
			name: "all set",
			env: map[string]string{
				"BBS_CODE":              "nbc",
				"BBS_UNITS":             "Imperial",
				"BBS_STOCK_LENGTH_M":    "39",
				"BBS_DEFAULT_COVER_MM":  "1.5",
				"BBS_WASTAGE_PERCENT":   "3",
				"BBS_STEEL_RATE_PER_KG": "0",
				"BBS_CURRENCY":          "NPR",
			},
			want: BBSConfig{
				Code: model.CodeNBC, Units: model.UnitsImperial, StockLengthM: 39, DefaultCoverMM: 1.5,
				WastagePercent: 3, SteelRatePerKg: model.Float(0), Currency: "NPR",
			},
		},
		{
			name: "invalid numbers fall back",
			env: map[string]string{
				"BBS_STOCK_LENGTH_M":    "-12",
				"BBS_WASTAGE_PERCENT":   "three",
				"BBS_STEEL_RATE_PER_KG": "NaN",
			},
			want: BBSConfig{Code: model.CodeIS, Units: model.UnitsMetric},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()
			for k, v := range tt.env {
				_ = os.Setenv(k, v)
			}

			assert.Equal(t, tt.want, Load().BBS)
		})
	}
}

func TestBBSConfig_Options(t *testing.T) {
	cfg := BBSConfig{Code: model.CodeACI, Units: model.UnitsImperial, StockLengthM: 40, WastagePercent: 2, Currency: "USD"}

	opts := cfg.Options()

	assert.Equal(t, model.CodeACI, opts.Code)
	assert.Equal(t, model.UnitsImperial, opts.Units)
	assert.Equal(t, 40.0, opts.StockLengthM)
	assert.Equal(t, 2.0, opts.WastagePercentDefault)
	assert.Equal(t, "USD", opts.Currency)
	assert.Nil(t, opts.SteelRatePerKg)
}

func TestLoadDotEnv(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), "bbs.env")
	require.NoError(t, os.WriteFile(path, []byte("BBS_CURRENCY=INR\nPORT=7070\n"), 0o600))
	_ = os.Setenv("PORT", "9090")

	loadDotEnv(path)

	assert.Equal(t, "INR", os.Getenv("BBS_CURRENCY"))
	assert.Equal(t, "9090", os.Getenv("PORT"), "the environment wins over the file")

	loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
