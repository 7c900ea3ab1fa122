package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
)

const (
	// APIKeyHeader carries the shared API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is accepted when the header is absent, for download links.
	APIKeyQuery = "api_key"
	// APIKeyActor is recorded as the audit actor for API key callers.
	APIKeyActor = "api-key"
)

// APIKeyAuth rejects requests without one of validKeys. An empty key set
// disables the check. Callers already identified by a token keep their actor.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	if len(validKeys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		switch key := apiKeyFrom(c); {
		case key == "":
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		case !validKeys[key]:
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		if GetActor(c) == "" {
			c.Set(ActorKey, APIKeyActor)
		}
		c.Next()
	}
}

func apiKeyFrom(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}
