package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	timerMeterName = "timer.scheduler"
)

type TimerMetrics struct {
	ticksTotal          metric.Int64Counter
	tickDuration        metric.Float64Histogram
	notificationsSent   metric.Int64Counter
	notificationsFailed metric.Int64Counter
	activeTimers        metric.Int64UpDownCounter
	commandsTotal       metric.Int64Counter
}

func NewTimerMetrics() (*TimerMetrics, error) {
	meter := otel.Meter(timerMeterName)

	ticksTotal, err := meter.Int64Counter(
		"timer_ticks_total",
		metric.WithDescription("Total number of completed tick passes"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"timer_tick_duration_seconds",
		metric.WithDescription("Duration of one tick pass over the registry"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	notificationsSent, err := meter.Int64Counter(
		"timer_notifications_sent_total",
		metric.WithDescription("Total number of reminder and expiry notifications sent"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsFailed, err := meter.Int64Counter(
		"timer_notifications_failed_total",
		metric.WithDescription("Total number of notification sends that failed"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	activeTimers, err := meter.Int64UpDownCounter(
		"timer_active_timers",
		metric.WithDescription("Number of currently active timers"),
		metric.WithUnit("{timer}"),
	)
	if err != nil {
		return nil, err
	}

	commandsTotal, err := meter.Int64Counter(
		"timer_commands_total",
		metric.WithDescription("Timer commands processed, by command and outcome"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, err
	}

	return &TimerMetrics{
		ticksTotal:          ticksTotal,
		tickDuration:        tickDuration,
		notificationsSent:   notificationsSent,
		notificationsFailed: notificationsFailed,
		activeTimers:        activeTimers,
		commandsTotal:       commandsTotal,
	}, nil
}

func (m *TimerMetrics) RecordTick(ctx context.Context, duration time.Duration) {
	m.ticksTotal.Add(ctx, 1)
	m.tickDuration.Record(ctx, duration.Seconds())
}

func (m *TimerMetrics) RecordNotificationSent(ctx context.Context, kind string) {
	m.notificationsSent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *TimerMetrics) RecordNotificationFailed(ctx context.Context, kind string) {
	m.notificationsFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *TimerMetrics) RecordTimerAdded(ctx context.Context) {
	m.activeTimers.Add(ctx, 1)
}

func (m *TimerMetrics) RecordTimerRemoved(ctx context.Context) {
	m.activeTimers.Add(ctx, -1)
}

func (m *TimerMetrics) RecordCommand(ctx context.Context, command, outcome string) {
	m.commandsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}
