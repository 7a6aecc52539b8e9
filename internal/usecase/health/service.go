package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results, one check per realm.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	realms map[string]Pinger
}

// New creates a Service checking the given realms by name.
func New(realms map[string]Pinger) *Service {
	r := make(map[string]Pinger, len(realms))
	for name, p := range realms {
		r[name] = p
	}
	return &Service{realms: r}
}

// Check pings every realm. All failing is Unhealthy, some failing is Degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.realms))

	names := make([]string, 0, len(s.realms))
	for name := range s.realms {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := 0
	for _, name := range names {
		if err := s.realms[name].Ping(ctx); err != nil {
			checks[name] = CheckError
			failed++
		} else {
			checks[name] = CheckOK
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(names):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
