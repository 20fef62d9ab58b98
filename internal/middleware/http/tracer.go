package middleware_http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("HttpMiddleware")

// ResponseWriter captures status, size and up to MaxBodyLogged bytes of body.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
	buf         bytes.Buffer
}

func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)

	if room := logger.MaxBodyLogged - rw.buf.Len(); room > 0 {
		rw.buf.Write(b[:min(len(b), room)])
	}
	return n, err
}

// TraceMiddleware continues or starts a trace per request, logs request and
// response, returns the trace id in X-Trace-ID and counts the request by
// route pattern. m may be nil.
func TraceMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
			defer span.End()
			r = r.WithContext(ctx)

			logger.Info(ctx, "HTTP", logger.LogHTTPRequest(r, "incoming::request")...)

			rw := &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			rw.Header().Set("X-Trace-ID", span.SpanContext().TraceID().String())

			perr := serve(next, rw, r)
			if perr != nil {
				span.RecordError(perr)
				logger.Error(ctx, "Handler panicked", slog.String("error", perr.Error()))
				writeInternalError(rw)
			}

			switch {
			case perr != nil:
				span.SetStatus(codes.Error, "panic occurred")
			case rw.statusCode >= 500:
				span.SetStatus(codes.Error, "internal server error")
			case rw.statusCode >= 400:
				span.SetStatus(codes.Error, "client error")
			default:
				span.SetStatus(codes.Ok, "")
			}

			// The mux fills r.Pattern while routing; unmatched paths share one label.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rw.statusCode),
				attribute.Int64("http.response_size", rw.size),
			)
			m.ObserveHTTP(r.Method, route, rw.statusCode)

			duration := time.Since(start)
			logger.Info(ctx, "HTTP", logger.LogHTTPResponse(r, rw.Header(), rw.statusCode, &rw.buf, duration.Milliseconds(), "incoming::response")...)
		})
	}
}

// serve runs next and turns a panic into an error. http.ErrAbortHandler is
// re-raised so net/http can abort the connection as asked.
func serve(next http.Handler, w http.ResponseWriter, r *http.Request) (perr error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			perr = errFromRecover(rec)
		}
	}()
	next.ServeHTTP(w, r)
	return nil
}

// writeInternalError answers with the API error envelope unless the handler
// already started the response.
func writeInternalError(rw *ResponseWriter) {
	if rw.wroteHeader {
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusInternalServerError)
	_, _ = rw.Write([]byte(`{"error":"Internal Server Error"}` + "\n"))
}

func errFromRecover(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
