package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"bizarre-bazaar/internal/config"
	grpcHandler "bizarre-bazaar/internal/handler/grpc"
	"bizarre-bazaar/internal/logger"
	middleware_grpc "bizarre-bazaar/internal/middleware/grpc"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/tracer"
	"bizarre-bazaar/internal/version"

	"go.opentelemetry.io/otel"
)

// One call in reviewEvery posts a review instead of only listing.
const reviewEvery = 5

var customers = []string{"Ana Lima", "Ben Ode", "Chen Wu", "Dara Kim", "Eli Moss"}

func main() {
	globalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Instance()
	cfg := config.Instance()

	logger.Info(globalCtx, cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
	)

	shutdown, err := tracer.Instance(globalCtx)
	if err != nil {
		logger.Warn(globalCtx, "Tracing disabled", slog.String("error", err.Error()))
	}
	defer shutdown()

	if cfg.ExternalGRPC == "" {
		logger.Error(globalCtx, "EXTERNAL_GRPC environment variable is not set")
		os.Exit(1)
	}

	// With DNS_RESOLVER_DELAY_MS set the client re-resolves the target and
	// reconnects when the backend address set changes.
	var reconnect <-chan struct{}
	if cfg.DnsResolverDelayMs > 0 {
		notify := make(chan struct{}, 1)
		go watchDNS(globalCtx, cfg.ExternalGRPC, time.Duration(cfg.DnsResolverDelayMs)*time.Millisecond, notify)
		reconnect = notify
	}

	logger.Info(globalCtx, "gRPC client started",
		slog.String("target", cfg.ExternalGRPC),
		slog.Int64("max_client_delay", cfg.ClientMaxSleepMs),
		slog.Int64("dns_resolver_delay", cfg.DnsResolverDelayMs),
	)

	for {
		if err := run(globalCtx, cfg, reconnect); err != nil {
			logger.Error(globalCtx, "gRPC client stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if globalCtx.Err() != nil {
			logger.Info(globalCtx, "Shutting down gRPC client")
			return
		}
		logger.Info(globalCtx, "Reconnecting after backend change")
	}
}

// run keeps one connection busy until ctx ends or reconnect fires.
func run(ctx context.Context, cfg *config.Config, reconnect <-chan struct{}) error {
	conn, err := grpc.NewClient(
		cfg.ExternalGRPC,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy":"round_robin"}`),
		grpc.WithUnaryInterceptor(middleware_grpc.UnaryClientTracingInterceptor()),
	)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info(ctx, "Closing gRPC connection")
		_ = conn.Close()
	}()

	client := grpcHandler.NewCatalogClient(conn)
	tr := otel.Tracer("bazaar-grpc-client")

	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-reconnect:
			return nil
		default:
		}

		callCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		callCtx, span := tr.Start(callCtx, "bazaar-grpc-request")
		var trailer metadata.MD

		products, resolver, err := client.ListProducts(callCtx, model.DefaultProductQuery(), grpc.Trailer(&trailer))
		traceID := "empty"
		if ids := trailer.Get("x-trace-id"); len(ids) > 0 {
			traceID = ids[0]
		}
		if err != nil {
			logger.Error(callCtx, "Error calling ListProducts",
				slog.String("error", err.Error()),
				slog.String("trace_id", traceID),
			)
		} else {
			logger.Info(callCtx, "Received products",
				slog.String("resolver", resolver),
				slog.String("trace_id", traceID),
				slog.Int("count", len(products)),
			)
			if i%reviewEvery == 0 && len(products) > 0 {
				postReview(callCtx, client, products)
			}
		}
		span.End()
		cancel()

		delay := time.Duration(rand.Int63n(max(cfg.ClientMaxSleepMs, 1))+1) * time.Millisecond
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}
}

func postReview(ctx context.Context, client *grpcHandler.CatalogClient, products []model.Product) {
	p := products[rand.Intn(len(products))]
	review, supplier, err := client.AddReview(ctx, model.ReviewInput{
		ProductID:    p.ID,
		CustomerName: customers[rand.Intn(len(customers))],
		Rating:       rand.Intn(model.MaxReviewRating) + 1,
		Comment:      "load generator",
	})
	if err != nil {
		logger.Warn(ctx, "AddReview failed", slog.String("error", err.Error()))
		return
	}
	logger.Info(ctx, "Review posted",
		slog.String("review_id", review.ID),
		slog.Int("rating", review.Rating),
		slog.String("supplier_id", supplier.ID),
		slog.Float64("supplier_rating", supplier.Rating),
		slog.Int("supplier_total_reviews", supplier.TotalReviews),
	)
}
