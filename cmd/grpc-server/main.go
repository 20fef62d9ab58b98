package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"bizarre-bazaar/internal/bootstrap"
	"bizarre-bazaar/internal/config"
	grpcHandler "bizarre-bazaar/internal/handler/grpc"
	"bizarre-bazaar/internal/logger"
	middleware_grpc "bizarre-bazaar/internal/middleware/grpc"
	"bizarre-bazaar/internal/tracer"
	"bizarre-bazaar/internal/version"
)

func main() {
	globalCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Instance()
	cfg := config.Instance()

	logger.Info(globalCtx, cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
		slog.Bool("gracefulShutdown", cfg.IsProduction()),
	)

	shutdown, err := tracer.Instance(globalCtx)
	if err != nil {
		logger.Warn(globalCtx, "Tracing disabled", slog.String("error", err.Error()))
	}
	defer shutdown()

	rt, err := bootstrap.New(globalCtx, cfg)
	if err != nil {
		logger.Error(globalCtx, "Failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rt.Close(context.WithoutCancel(globalCtx))
	go rt.ReloadOnHangup(globalCtx)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware_grpc.UnaryTracingInterceptor()),
	)
	grpcHandler.RegisterCatalogServiceServer(grpcServer, grpcHandler.NewCatalogGRPCHandler(rt.Catalog))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(grpcHandler.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.AppPort)
	if err != nil {
		logger.Error(globalCtx, "failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// gRPC has no /metrics route; expose one on a side port when asked.
	if cfg.MetricsAddr != "" {
		go serveMetrics(globalCtx, cfg.MetricsAddr, rt)
	}

	logger.Info(globalCtx, "gRPC server running", slog.String("port", cfg.AppPort))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error(globalCtx, "failed to serve", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-globalCtx.Done()
	healthSrv.Shutdown()

	if !cfg.IsProduction() {
		logger.Info(globalCtx, "Received shutdown signal, exiting immediately")
		grpcServer.Stop()
		return
	}
	logger.Info(globalCtx, "Shutting down gRPC server")
	grpcServer.GracefulStop()
	logger.Info(globalCtx, "gRPC server exited cleanly")
}

func serveMetrics(ctx context.Context, addr string, rt *bootstrap.Runtime) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", rt.Metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	logger.Info(ctx, "Metrics endpoint running", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "Metrics endpoint failed", slog.String("error", err.Error()))
	}
}
