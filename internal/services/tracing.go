package services

import (
	"context"

	"kiosk/internal/events"
	"kiosk/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("kiosk/internal/services")

// finishSpan records err on span and ends it. Use it deferred with a named
// error result.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// publish sends one event after commit. A failure is logged and otherwise
// ignored: the database is the source of truth.
func publish(ctx context.Context, pub events.Publisher, eventType, correlationID string, payload any) {
	log := logger.WithContext(ctx)

	var traceID string
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	env, err := events.New(eventType, correlationID, traceID, payload)
	if err != nil {
		log.Error("failed to build event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := pub.Publish(ctx, env); err != nil {
		log.Warn("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("correlation_id", correlationID),
			zap.Error(err))
	}
}
