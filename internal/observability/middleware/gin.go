// Package middleware provides the gin middleware shared by the HTTP
// surface: request-id propagation, access logging, panic recovery.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-channel-timer/internal/observability/logging"
)

type GinConfig struct {
	// SkipPaths are logged at debug level only (health probes and the
	// like).
	SkipPaths []string
	Module    logging.Module
}

// Gin attaches a validated request id to the request context and writes an
// access log line per request.
func Gin(cfg GinConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := logging.ValidateAndExtractRequestID(c.GetHeader("x-request-id"))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("x-request-id", requestID)

		c.Next()

		attrs := []any{
			slog.String("module", string(cfg.Module)),
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		}

		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			slog.DebugContext(ctx, "request handled", attrs...)
			return
		}
		slog.InfoContext(ctx, "request handled", attrs...)
	}
}

// PanicRecoveryGin converts handler panics into 500 responses.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered in handler",
					slog.Any("panic", r),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
