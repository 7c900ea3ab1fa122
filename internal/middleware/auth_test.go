package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"site-office": true, "cli": true}

	tests := []struct {
		name      string
		keys      map[string]bool
		header    string
		query     string
		preset    string
		wantCode  int
		wantActor string
		wantBody  string
	}{
		{name: "header key", keys: keys, header: "site-office", wantCode: http.StatusOK, wantActor: APIKeyActor},
		{name: "query key", keys: keys, query: "cli", wantCode: http.StatusOK, wantActor: APIKeyActor},
		{name: "header wins over query", keys: keys, header: "wrong", query: "cli", wantCode: http.StatusUnauthorized, wantBody: "Invalid API key"},
		{name: "missing key", keys: keys, wantCode: http.StatusUnauthorized, wantBody: "API key is required"},
		{name: "unknown key", keys: keys, header: "guess", wantCode: http.StatusUnauthorized, wantBody: "Invalid API key"},
		{name: "token actor is kept", keys: keys, header: "cli", preset: "ops@site", wantCode: http.StatusOK, wantActor: "ops@site"},
		{name: "nil key set disables the check", keys: nil, wantCode: http.StatusOK},
		{name: "empty key set disables the check", keys: map[string]bool{}, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.preset != "" {
					c.Set(ActorKey, tt.preset)
				}
			})
			router.Use(APIKeyAuth(tt.keys))
			router.GET("/api/bbs/export", func(c *gin.Context) {
				c.String(http.StatusOK, GetActor(c))
			})

			target := "/api/bbs/export"
			if tt.query != "" {
				target += "?" + APIKeyQuery + "=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantActor, w.Body.String())
				return
			}
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Contains(t, w.Body.String(), "unauthorized")
		})
	}
}
