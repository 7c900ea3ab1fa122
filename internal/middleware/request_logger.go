package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/logger"
	"github.com/guttosm/bbs-service/internal/service"
	"github.com/rs/zerolog"
)

// probePaths are logged to the console but never persisted.
var probePaths = []string{"/healthz", "/readyz", "/metrics"}

// RequestLogger logs every request once it has been served. When loggingService
// is non-nil the request is also stored as a log entry without an action type.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Actor:      GetActor(c),
		}
		if last := c.Errors.Last(); last != nil {
			entry.Error = last.Error()
		}
		level := statusLevel(entry.StatusCode)
		entry.Level = level.String()

		event := logger.Logger().WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent)
		if entry.Actor != "" {
			event = event.Str("actor", entry.Actor)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		if loggingService != nil && !isProbe(entry.Path) {
			storeAudit(loggingService, entry)
		}
	}
}

// statusLevel maps 5xx to error and 4xx to warn.
func statusLevel(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

func isProbe(path string) bool {
	for _, p := range probePaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
