package tracer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"bizarre-bazaar/internal/config"
	"bizarre-bazaar/internal/logger"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

var (
	once         sync.Once
	shutdownFunc func()
	initErr      error
)

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}()

// ExporterKind picks where spans go: the OTLP collector when configured,
// otherwise stdout when TRACE_STDOUT is set, otherwise nowhere.
func ExporterKind(cfg *config.Config) string {
	switch {
	case cfg.RemoteTraceRpcURI != "":
		return ExporterOTLP
	case cfg.TraceStdout:
		return ExporterStdout
	default:
		return ExporterNone
	}
}

func newExporter(ctx context.Context, cfg *config.Config, stdout io.Writer) (trace.SpanExporter, error) {
	switch ExporterKind(cfg) {
	case ExporterOTLP:
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
			otlptracegrpc.WithCompressor("gzip"),
		)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(stdout))
	default:
		return nil, nil
	}
}

// NewProvider builds the tracer provider for cfg. Without an exporter the
// provider still creates real span contexts, so trace ids reach logs and
// responses.
func NewProvider(ctx context.Context, cfg *config.Config, stdout io.Writer) (*trace.TracerProvider, error) {
	exp, err := newExporter(ctx, cfg, stdout)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppName),
			attribute.String("env", cfg.Env),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []trace.TracerProviderOption{trace.WithResource(res)}
	if exp != nil {
		opts = append(opts, trace.WithBatcher(exp))
	}
	return trace.NewTracerProvider(opts...), nil
}

// Instance installs tracing and profiling once per process. The returned
// shutdown flushes pending spans.
func Instance(globalCtx context.Context) (func(), error) {
	once.Do(func() {
		cfg := config.Instance()
		log := logger.Instance()

		tp, err := NewProvider(globalCtx, cfg, os.Stderr)
		if err != nil {
			log.Error("Failed to create tracer provider", slog.String("error", err.Error()))
			initErr = err
			shutdownFunc = func() {}
			return
		}

		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		log.Info("OpenTelemetry Tracer initialized", slog.String("exporter", ExporterKind(cfg)))

		profiler, err := startProfiler(cfg)
		if err != nil {
			log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
		}

		shutdownFunc = func() {
			if profiler != nil {
				_ = profiler.Stop()
			}
			if err := tp.Shutdown(context.WithoutCancel(globalCtx)); err != nil {
				log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
			}
		}
	})

	return shutdownFunc, initErr
}

func startProfiler(cfg *config.Config) (*pyroscope.Profiler, error) {
	if cfg.RemoteProfilingHttpURI == "" {
		logger.Instance().Info("Pyroscope disabled, REMOTE_PROFILING_HTTP_URI not set")
		return nil, nil
	}
	p, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.AppName,
		ServerAddress:   cfg.RemoteProfilingHttpURI,
		Logger:          pyroLogrus,
		Tags:            map[string]string{"env": cfg.Env},
	})
	if err != nil {
		return nil, err
	}
	logger.Instance().Info("Pyroscope started successfully")
	return p, nil
}
