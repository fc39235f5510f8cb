// Package logging configures the process-wide slog logger and carries
// request identifiers through contexts and HTTP headers.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels which logical part of the service emitted a log line.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// NewLogger builds the service logger: human-readable text in dev, JSON
// elsewhere, always annotated with the service identity.
func NewLogger(env Environment, level slog.Level, info ServiceInfo) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == EnvDev {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	attrs := []any{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return slog.New(handler).With(attrs...)
}

type requestIDKey struct{}

// WithRequestID stores a request identifier in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the stored request identifier, or empty.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ValidateAndExtractRequestID returns the given identifier when it is a
// well-formed UUID and mints a fresh one otherwise, so outbound requests
// always carry a usable x-request-id.
func ValidateAndExtractRequestID(requestID string) string {
	if _, err := uuid.Parse(requestID); err == nil {
		return requestID
	}
	return uuid.NewString()
}
