package health

import "github.com/marketkit/shopgraph/internal/domain/snapshot"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the service cannot answer queries.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// SnapshotProvider hands out the active catalog snapshot.
type SnapshotProvider interface {
	Snapshot() *snapshot.Snapshot
}

// Service coordinates health checks.
type Service struct {
	snapshots SnapshotProvider
}

// New creates a Service.
func New(snapshots SnapshotProvider) *Service {
	return &Service{snapshots: snapshots}
}

// Check verifies a catalog snapshot is loaded and non-empty.
func (s *Service) Check() Report {
	checks := make(map[string]CheckResult)

	snap := s.snapshots.Snapshot()
	if snap == nil || snap.Catalog.Len() == 0 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}
	if snap == nil || snap.Graph.NumNodes() == 0 {
		checks["graph"] = CheckError
	} else {
		checks["graph"] = CheckOK
	}

	status := Healthy
	for _, r := range checks {
		if r == CheckError {
			status = Unhealthy
			break
		}
	}
	return Report{Status: status, Checks: checks}
}
