package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	LogLevel slog.Level
	Gateway  *GatewayConfig
	Timer    *TimerConfig
}

type GatewayConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	gatewayTimeout := 30 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			gatewayTimeout = time.Duration(parsed) * time.Second
		}
	}

	return &Config{
		Port:     port,
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
		Gateway: &GatewayConfig{
			BaseURL: os.Getenv("GATEWAY_BASE_URL"),
			Token:   os.Getenv("GATEWAY_TOKEN"),
			Timeout: gatewayTimeout,
		},
		Timer: LoadTimerConfig(),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
