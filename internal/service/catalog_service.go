package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/metrics"
	"bizarre-bazaar/internal/model"
	"bizarre-bazaar/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type CatalogService struct {
	repo    *repository.CatalogRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

type CatalogOption func(*CatalogService)

// WithClock overrides the review timestamp source.
func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) { s.now = now }
}

var CatalogServiceTracer = otel.Tracer("CatalogService")

func NewCatalogService(repo *repository.CatalogRepository, m *metrics.Metrics, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{repo: repo, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.publishRatings(repo.Snapshot(context.Background()))
	return s
}

// ValidateSupplierInput trims the form and checks that every field is set.
// AddSupplier itself does not validate; callers do.
func ValidateSupplierInput(in model.SupplierInput) (model.SupplierInput, error) {
	in = model.SupplierInput{
		Name:     strings.TrimSpace(in.Name),
		Location: strings.TrimSpace(in.Location),
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.TrimSpace(in.Email),
	}
	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"location", in.Location},
		{"phone", in.Phone},
		{"email", in.Email},
	}
	for _, f := range fields {
		if f.value == "" {
			return in, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return in, nil
}

// ValidateReviewInput checks the preconditions of AddReview that do not need
// the catalog.
func ValidateReviewInput(in model.ReviewInput) (model.ReviewInput, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.ProductID == "" {
		return in, ErrProductNotSelected
	}
	if in.Rating < model.MinReviewRating || in.Rating > model.MaxReviewRating {
		return in, fmt.Errorf("%w: got %d", ErrInvalidRating, in.Rating)
	}
	if in.CustomerName == "" {
		return in, fmt.Errorf("%w: customerName", ErrMissingField)
	}
	return in, nil
}

// AddSupplier appends a supplier with the next S### id and an empty rating.
func (s *CatalogService) AddSupplier(ctx context.Context, in model.SupplierInput) (model.Supplier, error) {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.AddSupplier")
	defer span.End()
	logger.Info(ctx, "Service")

	var created model.Supplier
	_, err := s.repo.Update(ctx, func(next *model.Catalog) error {
		ids := make([]string, len(next.Suppliers))
		for i, sp := range next.Suppliers {
			ids[i] = sp.ID
		}
		created = model.Supplier{
			ID:       nextID(supplierPrefix, ids),
			Name:     in.Name,
			Location: in.Location,
			Phone:    in.Phone,
			Email:    in.Email,
		}
		next.Suppliers = append(next.Suppliers, created)
		return nil
	})
	if err != nil {
		return model.Supplier{}, err
	}

	span.SetAttributes(attribute.String("supplier.id", created.ID))
	if s.metrics != nil {
		s.metrics.SuppliersAdded.Inc()
		s.metrics.SupplierRating.WithLabelValues(created.ID).Set(created.Rating)
	}
	logger.Info(ctx, "Supplier added", slog.String("supplier_id", created.ID))
	return created, nil
}

// AddReview records a review and folds its rating into the owning supplier's
// aggregate. Product and supplier must resolve; otherwise nothing changes.
func (s *CatalogService) AddReview(ctx context.Context, in model.ReviewInput) (model.Review, model.Supplier, error) {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.AddReview")
	defer span.End()
	logger.Info(ctx, "Service")

	in, err := ValidateReviewInput(in)
	if err != nil {
		s.countReview("rejected")
		return model.Review{}, model.Supplier{}, err
	}

	var (
		created  model.Review
		supplier model.Supplier
	)
	_, err = s.repo.Update(ctx, func(next *model.Catalog) error {
		product, ok := next.Product(in.ProductID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrProductNotFound, in.ProductID)
		}
		sp, ok := next.Supplier(product.SupplierID)
		if !ok {
			return fmt.Errorf("%w: %s (product %s)", ErrSupplierNotFound, product.SupplierID, product.ID)
		}

		ids := make([]string, len(next.Reviews))
		for i, r := range next.Reviews {
			ids[i] = r.ID
		}
		created = model.Review{
			ID:           nextID(reviewPrefix, ids),
			ProductID:    product.ID,
			CustomerName: in.CustomerName,
			Rating:       in.Rating,
			Comment:      in.Comment,
			CreatedAt:    s.now().UTC().Truncate(24 * time.Hour),
		}
		next.Reviews = append(next.Reviews, created)

		sp.Rating = NextRating(sp.Rating, sp.TotalReviews, in.Rating)
		sp.TotalReviews++
		next.SetSupplier(sp)
		supplier = sp
		return nil
	})
	if err != nil {
		s.countReview("rejected")
		logger.Warn(ctx, "Review rejected", slog.String("error", err.Error()))
		return model.Review{}, model.Supplier{}, err
	}

	span.SetAttributes(
		attribute.String("review.id", created.ID),
		attribute.String("supplier.id", supplier.ID),
		attribute.Float64("supplier.rating", supplier.Rating),
	)
	s.countReview("recorded")
	if s.metrics != nil {
		s.metrics.SupplierRating.WithLabelValues(supplier.ID).Set(supplier.Rating)
	}
	logger.Info(ctx, "Review added",
		slog.String("review_id", created.ID),
		slog.String("supplier_id", supplier.ID),
		slog.Float64("supplier_rating", supplier.Rating),
		slog.Int("supplier_total_reviews", supplier.TotalReviews),
	)
	return created, supplier, nil
}

func (s *CatalogService) FilteredSortedProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.FilteredSortedProducts")
	defer span.End()
	defer s.observe("products", time.Now())

	return FilterSortProducts(s.repo.Snapshot(ctx).Products, q)
}

func (s *CatalogService) FilteredSuppliers(ctx context.Context, q model.SupplierQuery) []model.Supplier {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.FilteredSuppliers")
	defer span.End()
	defer s.observe("suppliers", time.Now())

	return FilterSuppliers(s.repo.Snapshot(ctx).Suppliers, q)
}

func (s *CatalogService) Reviews(ctx context.Context, q model.ReviewQuery) []model.Review {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.Reviews")
	defer span.End()
	defer s.observe("reviews", time.Now())

	return FilterReviews(s.repo.Snapshot(ctx), q)
}

func (s *CatalogService) Product(ctx context.Context, id string) (model.Product, error) {
	p, ok := s.repo.Snapshot(ctx).Product(id)
	if !ok {
		return model.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

func (s *CatalogService) Supplier(ctx context.Context, id string) (model.Supplier, error) {
	sp, ok := s.repo.Snapshot(ctx).Supplier(id)
	if !ok {
		return model.Supplier{}, fmt.Errorf("%w: %s", ErrSupplierNotFound, id)
	}
	return sp, nil
}

// Categories returns the category filter options, "All" first.
func (s *CatalogService) Categories() []model.Category {
	out := make([]model.Category, len(model.Categories))
	copy(out, model.Categories)
	return out
}

// Reload replaces the whole catalog, e.g. after the seed source changed.
// Sessions keep their UI state.
func (s *CatalogService) Reload(ctx context.Context, c *model.Catalog) {
	ctx, span := CatalogServiceTracer.Start(ctx, "CatalogService.Reload")
	defer span.End()

	s.repo.Reset(ctx, c)
	if s.metrics != nil {
		s.metrics.SupplierRating.Reset()
	}
	s.publishRatings(s.repo.Snapshot(ctx))
	logger.Info(ctx, "Catalog reloaded",
		slog.Int("products", len(c.Products)),
		slog.Int("suppliers", len(c.Suppliers)),
		slog.Int("reviews", len(c.Reviews)),
	)
}

// Counts reports collection sizes of the current snapshot.
func (s *CatalogService) Counts(ctx context.Context) (products, suppliers, reviews int) {
	c := s.repo.Snapshot(ctx)
	return len(c.Products), len(c.Suppliers), len(c.Reviews)
}

func (s *CatalogService) observe(query string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func (s *CatalogService) countReview(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReviewsAdded.WithLabelValues(outcome).Inc()
}

func (s *CatalogService) publishRatings(c *model.Catalog) {
	if s.metrics == nil {
		return
	}
	for _, sp := range c.Suppliers {
		s.metrics.SupplierRating.WithLabelValues(sp.ID).Set(sp.Rating)
	}
}
