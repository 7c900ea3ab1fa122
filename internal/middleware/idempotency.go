package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a response stays replayable.
	IdempotencyKeyTTL = 5 * time.Minute
	// IdempotencyReplayedHeader marks a replayed response.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
)

// replayedHeaders are copied from the original response into a replay.
var replayedHeaders = []string{"Content-Type", "Content-Disposition", "Location"}

type cachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
}

// DefaultIdempotencyConfig returns an enabled configuration with its own cache.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL, maxIdempotencyEntries),
		Enabled: true,
	}
}

// Idempotency replays the stored response for a repeated POST, PUT or PATCH that carries the
// same Idempotency-Key, path and body. A retried save therefore stores the schedule once.
// Only 2xx responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := fingerprint(key, c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.Headers["Content-Type"], cached.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			headers := make(map[string]string, len(replayedHeaders))
			for _, h := range replayedHeaders {
				if v := writer.Header().Get(h); v != "" {
					headers[h] = v
				}
			}
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode: status,
				Headers:    headers,
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// fingerprint hashes the idempotency key with the caller's credentials, the method, the URI and the body,
// so a replay is only served to the caller that made the original request. The body is restored for the handler.
func fingerprint(idempotencyKey string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{
		idempotencyKey,
		req.Header.Get("Authorization"),
		req.Header.Get(APIKeyHeader),
		req.Method,
		req.URL.RequestURI(),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// captureWriter copies the response body while writing it through.
type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
