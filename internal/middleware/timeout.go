package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/logger"
)

// DefaultRequestTimeout applies when Timeout is given a non-positive duration.
const DefaultRequestTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers observe it through
// ctx; one that gives up without writing a response gets a 504.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = DefaultRequestTimeout
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}
		logger.Logger().Warn().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Dur("timeout", d).
			Msg("request deadline exceeded")
		abortWith(c, http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyTimeout)
	}
}
