package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizarre-bazaar/internal/client"
	"bizarre-bazaar/internal/config"
	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/tracer"
	"bizarre-bazaar/internal/version"
)

var sortFields = []model.SortBy{model.SortByName, model.SortByPrice, model.SortByStock}

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

	if cfg.ExternalHTTP == "" {
		logger.Error(globalCtx, "EXTERNAL_HTTP environment variable is not set")
		os.Exit(1)
	}

	logger.Info(globalCtx, "HTTP client started",
		slog.String("target", cfg.ExternalHTTP),
		slog.Int64("max_client_delay", cfg.ClientMaxSleepMs),
	)

	dash := client.NewDashboardClient(client.NewHTTPClient(cfg.ExternalHTTP, 3*time.Second))

	for globalCtx.Err() == nil {
		if err := session(globalCtx, dash, cfg.ClientMaxSleepMs); err != nil {
			logger.Error(globalCtx, "Session failed", slog.String("error", err.Error()))
		}
		sleep(globalCtx, cfg.ClientMaxSleepMs)
	}
	logger.Info(globalCtx, "Shutting down HTTP client")
}

// session logs in as an admin, browses every section and posts one review.
func session(ctx context.Context, dash *client.DashboardClient, maxSleepMs int64) error {
	if err := dash.Open(ctx); err != nil {
		return err
	}
	defer func() {
		// The parent ctx may already be cancelled on shutdown.
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := dash.Close(closeCtx); err != nil {
			logger.Warn(ctx, "Close session failed", slog.String("error", err.Error()))
		}
	}()

	user, err := dash.Login(ctx, model.LoginInput{Email: "admin@invenflow.com", Role: model.RoleAdmin})
	if err != nil {
		return err
	}
	logger.Info(ctx, "Logged in", slog.String("session", dash.SessionID()), slog.String("user", user.Name))

	q, err := dash.SetProductQuery(ctx, model.ProductQuery{
		Category: model.CategoryAll,
		SortBy:   sortFields[rand.Intn(len(sortFields))],
	})
	if err != nil {
		return err
	}
	order, err := dash.ToggleSortOrder(ctx)
	if err != nil {
		return err
	}
	page, err := dash.View(ctx)
	if err != nil {
		return err
	}
	var products []model.Product
	if page.Dashboard != nil {
		logger.Info(ctx, "Products page",
			slog.String("heading", page.Dashboard.Heading),
			slog.String("sort_by", string(q.SortBy)),
			slog.String("order", string(order)),
			slog.Int("rows", len(page.Dashboard.Products)),
		)
	}
	if products, err = dash.Products(ctx, q); err != nil {
		return err
	}

	for _, s := range model.Sections {
		if err := dash.SetSection(ctx, s); err != nil {
			return err
		}
		page, err := dash.View(ctx)
		if err != nil {
			return err
		}
		if page.Dashboard != nil {
			logger.Debug(ctx, "Section",
				slog.String("heading", page.Dashboard.Heading),
				slog.String("placeholder", page.Dashboard.Placeholder),
			)
		}
		sleep(ctx, maxSleepMs/4)
	}

	if len(products) == 0 {
		return nil
	}
	p := products[rand.Intn(len(products))]
	review, supplier, err := dash.SubmitReview(ctx, model.ReviewInput{
		ProductID:    p.ID,
		CustomerName: "HTTP load generator",
		Rating:       rand.Intn(model.MaxReviewRating) + 1,
		Comment:      "Posted from the dashboard client",
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "Review posted",
		slog.String("review_id", review.ID),
		slog.String("product", p.Name),
		slog.String("supplier_id", supplier.ID),
		slog.Float64("supplier_rating", supplier.Rating),
	)
	return dash.Logout(ctx)
}

func sleep(ctx context.Context, maxMs int64) {
	if maxMs <= 0 {
		maxMs = 1
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(rand.Int63n(maxMs)+1) * time.Millisecond):
	}
}
