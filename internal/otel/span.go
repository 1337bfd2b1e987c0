// Package otel provides OpenTelemetry span helpers shared by the portal packages.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for the portal's business context
const (
	AttrEndpoint    = attribute.Key("portal.endpoint")
	AttrEndpointKey = attribute.Key("portal.endpoint.kind")
	AttrOrigin      = attribute.Key("portal.origin")
	AttrStatus      = attribute.Key("portal.status")
	AttrDocument    = attribute.Key("portal.document")
	AttrResultCount = attribute.Key("result.count")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise returns the
// span already carried by ctx (a no-op span when there is none)
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records an error on a span and marks it failed.
// The status description stays generic; details live in the span event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
