package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/model"

	"go.opentelemetry.io/otel"
)

// CatalogRepository holds the current catalog snapshot. Readers get the
// published snapshot without locking; writers are serialized and publish a
// modified clone, so a reader never sees a half-applied change.
type CatalogRepository struct {
	current atomic.Pointer[model.Catalog]
	writeMu sync.Mutex
}

var CatalogRepositoryTracer = otel.Tracer("CatalogRepository")

func NewCatalogRepository(seed *model.Catalog) *CatalogRepository {
	r := &CatalogRepository{}
	r.current.Store(seed.Clone())
	return r
}

// Snapshot returns the published catalog. Callers must treat it as read-only.
func (r *CatalogRepository) Snapshot(ctx context.Context) *model.Catalog {
	_, span := CatalogRepositoryTracer.Start(ctx, "CatalogRepository.Snapshot")
	defer span.End()

	return r.current.Load()
}

// Update applies fn to a private clone of the current catalog and publishes
// it when fn succeeds. On error nothing is published.
func (r *CatalogRepository) Update(ctx context.Context, fn func(next *model.Catalog) error) (*model.Catalog, error) {
	ctx, span := CatalogRepositoryTracer.Start(ctx, "CatalogRepository.Update")
	defer span.End()
	logger.Debug(ctx, "Repository")

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	next := r.current.Load().Clone()
	if err := fn(next); err != nil {
		span.RecordError(err)
		return nil, err
	}
	r.current.Store(next)
	return next, nil
}

// Reset replaces the whole catalog, e.g. after reloading the seed.
func (r *CatalogRepository) Reset(ctx context.Context, seed *model.Catalog) {
	_, span := CatalogRepositoryTracer.Start(ctx, "CatalogRepository.Reset")
	defer span.End()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.current.Store(seed.Clone())
}
