package sw360search

import (
	"context"
	"time"
)

// HealthStatus represents the aggregated realm health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // realm → "ok"/"error"
}

// Health pings both realm stores.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
	c.obs.observe("health", start, nil)
	return status
}
