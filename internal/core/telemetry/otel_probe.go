package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todoboard/internal/core/port"
)

const tracerName = "todoboard"

// OTELProbe implements port.Telemetry on top of OpenTelemetry.
type OTELProbe struct {
	logger *slog.Logger
}

func NewOTELProbe(logger *slog.Logger) port.Telemetry {
	return &OTELProbe{logger: logger}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() {
	s.span.End()
}

func (s *otelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toOtelAttrs(attrs)...)
}

func (s *otelSpan) SetStatus(code string, message string) {
	switch code {
	case "ok":
		s.span.SetStatus(codes.Ok, message)
	case "error":
		s.span.SetStatus(codes.Error, message)
	default:
		s.span.SetStatus(codes.Unset, message)
	}
}

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toOtelAttrs(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			out = append(out, attribute.String(key, v))
		case int:
			out = append(out, attribute.Int(key, v))
		case int64:
			out = append(out, attribute.Int64(key, v))
		case float64:
			out = append(out, attribute.Float64(key, v))
		case bool:
			out = append(out, attribute.Bool(key, v))
		default:
			out = append(out, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return out
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	standard := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}
	standard = append(standard, toOtelAttrs(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("repository.%s.%s", entity, operation), trace.WithAttributes(standard...))

	return ctx, &otelSpan{span: span}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	standard := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}
	standard = append(standard, toOtelAttrs(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("service.%s.%s", service, operation), trace.WithAttributes(standard...))

	return ctx, &otelSpan{span: span}
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("entity", entity),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.ErrorContext(ctx, "Repository operation failed",
			"operation", operation,
			"entity", entity,
			"error", err)
		return
	}

	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	// Log argument types only, not values.
	safeArgs := make([]string, len(args))
	for i := range args {
		safeArgs[i] = fmt.Sprintf("%T", args[i])
	}

	p.logger.DebugContext(ctx, "Executing repository query",
		"operation", operation,
		"entity", entity,
		"query", query,
		"args_types", safeArgs)
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	attrs := map[string]interface{}{
		"event":     event,
		"entity":    entity,
		"entity_id": entityID,
	}
	for key, value := range metadata {
		attrs[key] = value
	}

	_, span := p.StartRepositorySpan(ctx, fmt.Sprintf("event.%s", event), entity, attrs)
	span.End()

	p.logger.InfoContext(ctx, "Business event recorded",
		"event", event,
		"entity", entity,
		"entity_id", entityID)
}
