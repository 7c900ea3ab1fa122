package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/logger"
)

// ErrorHandler logs errors attached to the gin context. A handler that failed
// without writing a response gets the standard 500 envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		logger.Logger().Error().
			Err(last.Err).
			Int("errors", len(c.Errors)).
			Str("request_id", GetRequestID(c)).
			Str("actor", GetActor(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")

		if c.Writer.Written() {
			return
		}
		abortWith(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
	}
}
