package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizarre-bazaar/internal/bootstrap"
	"bizarre-bazaar/internal/config"
	handler "bizarre-bazaar/internal/handler/http"
	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/tracer"
	"bizarre-bazaar/internal/version"
)

func main() {
	globalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	server := &http.Server{
		Addr: ":" + cfg.AppPort,
		Handler: handler.NewRouter(handler.RouterDeps{
			Catalog:  rt.Catalog,
			Sessions: rt.Sessions,
			Health:   rt.Health,
			Metrics:  rt.Metrics,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(globalCtx, "HTTP server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(globalCtx, "Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-globalCtx.Done()

	if !cfg.IsProduction() {
		logger.Info(globalCtx, "Received shutdown signal, exiting immediately")
		return
	}

	logger.Info(globalCtx, "Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.WithoutCancel(globalCtx), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error(ctx, "HTTP shutdown failed", slog.String("error", err.Error()))
		return
	}
	logger.Info(ctx, "HTTP server exited cleanly")
}
