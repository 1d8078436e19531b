package recommend

import "github.com/marketkit/shopgraph/internal/domain/snapshot"

// SnapshotProvider hands out the active catalog snapshot.
type SnapshotProvider interface {
	Snapshot() *snapshot.Snapshot
}
