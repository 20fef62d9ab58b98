package service

import (
	"context"
	"time"

	"bizarre-bazaar/internal/logger"

	"go.opentelemetry.io/otel"
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency whose reachability is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	catalog    *CatalogService
	seedSource string
	deps       map[string]Pinger
}

type HealthStatus struct {
	Status       string            `json:"status"`
	SeedSource   string            `json:"seedSource"`
	Products     int               `json:"products"`
	Suppliers    int               `json:"suppliers"`
	Reviews      int               `json:"reviews"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

var HealthServiceTracer = otel.Tracer("HealthService")

// NewHealthService reports the catalog and, when the seed came from a
// database that stays open, that database.
func NewHealthService(catalog *CatalogService, seedSource string, deps map[string]Pinger) *HealthService {
	return &HealthService{
		catalog:    catalog,
		seedSource: seedSource,
		deps:       deps,
	}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, span := HealthServiceTracer.Start(ctx, "HealthService.Check")
	defer span.End()
	logger.Info(ctx, "Service")

	status := HealthStatus{Status: StatusUp, SeedSource: s.seedSource}
	status.Products, status.Suppliers, status.Reviews = s.catalog.Counts(ctx)

	if len(s.deps) > 0 {
		status.Dependencies = make(map[string]string, len(s.deps))
	}
	for name, dep := range s.deps {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := dep.Ping(pingCtx)
		cancel()

		status.Dependencies[name] = StatusUp
		if err != nil {
			status.Dependencies[name] = StatusDown
			status.Status = StatusDown
		}
	}
	return status
}
