package middleware_grpc

import (
	"context"
	"log/slog"
	"time"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/telemetry"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

var tracer = otel.Tracer("GrpcMiddleware")

// UnaryTracingInterceptor continues the caller's trace from metadata, logs the
// call and returns the trace id in the x-trace-id trailer.
func UnaryTracingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		ctx = otel.GetTextMapPropagator().Extract(ctx, telemetry.MetadataTextMapCarrier(md.Copy()))

		ctx, span := tracer.Start(ctx, info.FullMethod)
		defer span.End()

		attrs := logger.LogGRPCRequest(info.FullMethod, md, req, "incoming::request")
		if p, ok := peer.FromContext(ctx); ok {
			attrs = append(attrs, slog.String("grpc.remote", p.Addr.String()))
		}
		logger.Info(ctx, "GrpcMiddleware", attrs...)

		_ = grpc.SetTrailer(ctx, metadata.Pairs("x-trace-id", span.SpanContext().TraceID().String()))

		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, code.String())
		} else {
			span.SetStatus(otelcodes.Ok, "")
		}
		logger.Info(ctx, "GrpcMiddleware", logger.LogGRPCResponse(info.FullMethod, code, resp, time.Since(start), "incoming::response")...)
		return resp, err
	}
}

// UnaryClientTracingInterceptor injects the current trace into outgoing
// metadata.
func UnaryClientTracingInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		md, ok := metadata.FromOutgoingContext(ctx)
		if ok {
			md = md.Copy()
		} else {
			md = metadata.MD{}
		}
		otel.GetTextMapPropagator().Inject(ctx, telemetry.MetadataTextMapCarrier(md))
		ctx = metadata.NewOutgoingContext(ctx, md)

		logger.Debug(ctx, "GrpcClient", logger.LogGRPCRequest(method, md, req, "outgoing::request")...)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
