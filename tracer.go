package oidcauth

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this library's spans.
const instrumentationName = "github.com/third-party-auth/go-oidc-auth"

func defaultTracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName)
}

// endSpan records the authentication outcome on the span before ending it.
func endSpan(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func spanScopeAttributes(scopes []string) attribute.KeyValue {
	return attribute.StringSlice("oidcauth.required_scopes", scopes)
}
