package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a gzip middleware. Paths in skipPaths are served as-is;
// XLSX and PDF downloads are already compressed.
func Compression(skipPaths ...string) gin.HandlerFunc {
	opts := []gzip.Option{gzip.WithExcludedExtensions([]string{".xlsx", ".pdf", ".png"})}
	if len(skipPaths) > 0 {
		opts = append(opts, gzip.WithExcludedPaths(skipPaths))
	}
	return gzip.Gzip(gzip.DefaultCompression, opts...)
}
