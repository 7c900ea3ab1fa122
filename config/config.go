// Package config provides configuration management for the bar bending schedule service.
package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	BBS      BBSConfig
	Log      LogConfig
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	MaxUploadBytes    int64
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// CacheConfig holds the schedule cache configuration. A zero Size disables the cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// APIKeys gate the whole API when set.
	APIKeys map[string]bool
	// JWTSecret verifies admin bearer tokens. Admin routes answer 403 while it is empty.
	JWTSecret string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// BBSConfig holds the server-side calculation defaults. Zero values defer to the design code.
type BBSConfig struct {
	Code           model.DesignCode
	Units          model.UnitSystem
	StockLengthM   float64
	DefaultCoverMM float64
	WastagePercent float64
	SteelRatePerKg *float64
	Currency       string
}

// Options returns the defaults as calculation options.
func (c BBSConfig) Options() model.Options {
	return model.Options{
		Code:                  c.Code,
		Units:                 c.Units,
		StockLengthM:          c.StockLengthM,
		DefaultCoverMM:        c.DefaultCoverMM,
		WastagePercentDefault: c.WastagePercent,
		SteelRatePerKg:        c.SteelRatePerKg,
		Currency:              c.Currency,
	}
}

// Load creates a Config from environment variables, after merging an optional .env file.
// Variables already set in the environment win over the file.
func Load() Config {
	loadDotEnv(".env")

	return Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			RateLimit:         getEnvInt("RATE_LIMIT", 100),
			RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
			EnableIdempotency: getEnvBool("IDEMPOTENCY_ENABLED", true),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       getEnv("SWAGGER_USER", ""),
			SwaggerPass:       getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size: getEnvInt("CACHE_SIZE", 1000),
			TTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			APIKeys:   parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "bbs_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		BBS: BBSConfig{
			Code:           model.DesignCode(strings.ToUpper(getEnv("BBS_CODE", string(model.CodeIS)))),
			Units:          model.UnitSystem(strings.ToLower(getEnv("BBS_UNITS", string(model.UnitsMetric)))),
			StockLengthM:   getEnvFloat("BBS_STOCK_LENGTH_M", 0),
			DefaultCoverMM: getEnvFloat("BBS_DEFAULT_COVER_MM", 0),
			WastagePercent: getEnvFloat("BBS_WASTAGE_PERCENT", 0),
			SteelRatePerKg: getEnvFloatPtr("BBS_STEEL_RATE_PER_KG"),
			Currency:       getEnv("BBS_CURRENCY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable env file")
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := getEnvFloatPtr(key); v != nil {
		return *v
	}
	return defaultValue
}

// getEnvFloatPtr returns nil when key is unset or not a finite non-negative number.
func getEnvFloatPtr(key string) *float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
