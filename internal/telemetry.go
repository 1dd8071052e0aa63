package internal

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "storefront"

func tracer() trace.Tracer { return otel.Tracer(tracerName) }

// SetupTracing installs a global tracer provider that writes spans to w.
// With tracing disabled it installs nothing and the returned shutdown is a
// no-op.
func SetupTracing(cfg TracingConfig, w io.Writer) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// TracingMiddleware wraps each request in a server span named after the
// matched route template. /health is not traced.
func TracingMiddleware(serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != "/health"
			}),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if route := mux.CurrentRoute(r); route != nil {
					if tpl, err := route.GetPathTemplate(); err == nil {
						return "HTTP " + r.Method + " " + tpl
					}
				}
				return "HTTP " + r.Method + " " + r.URL.Path
			}),
		)
	}
}
