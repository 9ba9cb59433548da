package omnisearch

import (
	"context"

	healthuc "github.com/kailas-cloud/omnisearch/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component: "ok", "open", "missing" or "error"
}

// Health checks the database, every search index and every retriever's circuit breaker.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

var _ healthUseCase = (*healthuc.Service)(nil)
