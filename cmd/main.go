package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/KasumiMercury/primind-channel-timer/internal/clock"
	"github.com/KasumiMercury/primind-channel-timer/internal/config"
	"github.com/KasumiMercury/primind-channel-timer/internal/gateway"
	"github.com/KasumiMercury/primind-channel-timer/internal/handler"
	"github.com/KasumiMercury/primind-channel-timer/internal/health"
	"github.com/KasumiMercury/primind-channel-timer/internal/infra/timerecorder"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/logging"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/metrics"
	"github.com/KasumiMercury/primind-channel-timer/internal/observability/middleware"
	"github.com/KasumiMercury/primind-channel-timer/internal/registry"
	"github.com/KasumiMercury/primind-channel-timer/internal/scheduler"
	timersvc "github.com/KasumiMercury/primind-channel-timer/internal/service/timer"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is only present in local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	// Validate configuration
	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	timerMetrics, err := metrics.NewTimerMetrics()
	if err != nil {
		slog.Error("failed to initialize timer metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize timer event recorder
	recorderCfg := timerecorder.LoadConfig()
	eventRecorder, err := timerecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize timer event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := eventRecorder.Close(); err != nil {
			slog.Warn("failed to close timer event recorder", slog.String("error", err.Error()))
		}
	}()

	// Initialize dependencies
	chatGateway := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Token, cfg.Gateway.Timeout)

	if err := chatGateway.Ping(ctx); err != nil {
		slog.Warn("chat gateway not reachable at startup",
			slog.String("base_url", cfg.Gateway.BaseURL),
			slog.String("error", err.Error()),
		)
	}

	timerRegistry := registry.New()
	clk := clock.New()

	controller := timersvc.NewController(
		timerRegistry,
		chatGateway,
		clk,
		cfg.Timer.MaxDuration,
		timerMetrics,
		eventRecorder,
	)
	tickScheduler := scheduler.New(
		timerRegistry,
		chatGateway,
		clk,
		cfg.Timer,
		timerMetrics,
		eventRecorder,
	)

	messageHandler := handler.NewMessageEventHandler(controller, chatGateway, cfg.Timer, timerMetrics)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths: []string{"/health", "/health/live", "/health/ready"},
		Module:    logging.Module("channel-timer"),
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(chatGateway, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/events/message", messageHandler.HandleMessageEvent)
	}

	// Start tick scheduler loop
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		tickScheduler.Run(ctx)
	}()

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("tick_interval", cfg.Timer.TickInterval),
			slog.Duration("max_duration", cfg.Timer.MaxDuration),
			slog.Bool("delete_previous_reminder", cfg.Timer.DeletePreviousReminder),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()
		<-schedulerDone

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		cancel()
		<-schedulerDone
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "channel-timer"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	samplingRate := 1.0
	if v := os.Getenv("TRACE_SAMPLING_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			samplingRate = parsed
		}
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:  env,
		LogLevel:     cfg.LogLevel,
		SamplingRate: samplingRate,
	})
}
