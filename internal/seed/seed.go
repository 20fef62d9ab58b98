// Package seed loads the catalog a process starts from. Servers only read
// sources; mutations stay in memory.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"

	"go.opentelemetry.io/otel"
)

// Source produces the initial catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) (*model.Catalog, error)
}

var SeedTracer = otel.Tracer("Seed")

// Load reads src and validates the result.
func Load(ctx context.Context, src Source) (*model.Catalog, error) {
	ctx, span := SeedTracer.Start(ctx, "Seed.Load")
	defer span.End()

	c, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seed from %s: %w", src.Name(), err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("validate seed from %s: %w", src.Name(), err)
	}

	logger.Info(ctx, "Seed loaded",
		slog.String("source", src.Name()),
		slog.Int("products", len(c.Products)),
		slog.Int("suppliers", len(c.Suppliers)),
		slog.Int("reviews", len(c.Reviews)),
	)
	return c, nil
}

// Validate checks the catalog invariants and reports every violation.
func Validate(c *model.Catalog) error {
	if c == nil {
		return errors.New("catalog is nil")
	}
	var errs []error

	suppliers := make(map[string]bool, len(c.Suppliers))
	for _, s := range c.Suppliers {
		if s.ID == "" {
			errs = append(errs, errors.New("supplier with empty id"))
			continue
		}
		if suppliers[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate supplier id %s", s.ID))
		}
		suppliers[s.ID] = true
		if s.Rating < 0 || s.Rating > model.MaxReviewRating {
			errs = append(errs, fmt.Errorf("supplier %s: rating %v out of range", s.ID, s.Rating))
		}
		if s.TotalReviews < 0 {
			errs = append(errs, fmt.Errorf("supplier %s: negative totalReviews", s.ID))
		}
	}

	products := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			errs = append(errs, errors.New("product with empty id"))
			continue
		}
		if products[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate product id %s", p.ID))
		}
		products[p.ID] = true
		if !p.Category.IsValid() {
			errs = append(errs, fmt.Errorf("product %s: unknown category %q", p.ID, p.Category))
		}
		if !p.Status.IsValid() {
			errs = append(errs, fmt.Errorf("product %s: unknown status %q", p.ID, p.Status))
		}
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %s: negative price", p.ID))
		}
		if p.Stock < 0 {
			errs = append(errs, fmt.Errorf("product %s: negative stock", p.ID))
		}
		if !suppliers[p.SupplierID] {
			errs = append(errs, fmt.Errorf("product %s: supplier %q does not exist", p.ID, p.SupplierID))
		}
	}

	reviews := make(map[string]bool, len(c.Reviews))
	for _, r := range c.Reviews {
		if r.ID == "" {
			errs = append(errs, errors.New("review with empty id"))
			continue
		}
		if reviews[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate review id %s", r.ID))
		}
		reviews[r.ID] = true
		if r.Rating < model.MinReviewRating || r.Rating > model.MaxReviewRating {
			errs = append(errs, fmt.Errorf("review %s: rating %d out of range", r.ID, r.Rating))
		}
		if !products[r.ProductID] {
			errs = append(errs, fmt.Errorf("review %s: product %q does not exist", r.ID, r.ProductID))
		}
	}

	return errors.Join(errs...)
}
