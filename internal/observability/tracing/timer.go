package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const timerTracerName = "github.com/KasumiMercury/primind-channel-timer/internal/scheduler"

func TimerTracer() trace.Tracer {
	return otel.Tracer(timerTracerName)
}

// InjectToHTTPRequest propagates the current trace context on an outbound
// gateway request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// StartTickPassSpan opens a span covering one full pass over the registry.
func StartTickPassSpan(ctx context.Context, runID string, timerCount int) (context.Context, trace.Span) {
	return TimerTracer().Start(ctx, "scheduler.tick_pass",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("timer_count", timerCount),
		),
	)
}

// StartGatewayCallSpan opens a client span for one chat-gateway operation.
func StartGatewayCallSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return TimerTracer().Start(ctx, "gateway."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// RecordTickPassResult annotates a tick-pass span with its outcome.
func RecordTickPassResult(span trace.Span, expired, reminders, dropped int, err error) {
	span.SetAttributes(
		attribute.Int("tick.expired_count", expired),
		attribute.Int("tick.reminder_count", reminders),
		attribute.Int("tick.dropped_count", dropped),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
