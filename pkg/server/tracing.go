package server

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/folio/pkg/protocol"
)

// TracerName is the name of the tracer live events are recorded with.
// The global OpenTelemetry tracer provider is used; without one configured
// spans are no-ops.
const TracerName = "github.com/vango-dev/folio/pkg/server"

func defaultTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// startEventSpan starts the span covering one client event.
func (s *Session) startEventSpan(ev *protocol.Event) trace.Span {
	_, span := s.tracer.Start(
		s.ctx,
		"folio."+ev.Type.String(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("folio.session_id", s.ID),
			attribute.String("folio.event_type", ev.Type.String()),
			attribute.String("folio.event_target", ev.HID),
			attribute.Int64("folio.event_seq", int64(ev.Seq)),
		),
		trace.WithTimestamp(time.Now()),
	)
	return span
}

// endEventSpan records the outcome of an event and ends its span.
func endEventSpan(span trace.Span, patches int, err error) {
	span.SetAttributes(attribute.Int("folio.patch_count", patches))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
