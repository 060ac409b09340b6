package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Tracing wraps requests in an OpenTelemetry server span and extracts
// W3C trace context from incoming headers. With tracing disabled the
// global provider is a no-op and spans cost nothing.
func Tracing(serviceName string) Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

// GetTraceID returns the active trace ID, or "" when no span is recording
func GetTraceID(r *http.Request) string {
	spanCtx := trace.SpanContextFromContext(r.Context())
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// HTTPRecorder records request metrics
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route, status string, seconds float64)
}

// UnmatchedRoute labels requests that no route pattern matched
const UnmatchedRoute = "unmatched"

// Metrics records request count and latency labelled by route pattern.
// It must wrap the ServeMux directly: the mux writes the matched
// pattern into the request it receives, and any middleware in between
// that clones the request would hide it.
func Metrics(rec HTTPRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		if rec == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = UnmatchedRoute
			}
			rec.ObserveHTTPRequest(r.Method, route, strconv.Itoa(wrapped.statusCode), time.Since(start).Seconds())
		})
	}
}
