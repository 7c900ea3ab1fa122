package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
	"github.com/guttosm/bbs-service/internal/logger"
)

// Recovery turns a panic into a 500 error envelope. A panic after the response started only
// aborts the chain. http.ErrAbortHandler is re-raised so net/http drops the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			log := logger.Logger()
			log.Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Bool("response_started", c.Writer.Written()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("PANIC recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			abortWith(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
		}()
		c.Next()
	}
}
