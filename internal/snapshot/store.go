// Package snapshot persists raw and normalized record sets keyed by agent
// and calendar day, plus the daily dashboard report artifact.
package snapshot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the key. It is
// the only error callers may treat as "nothing collected yet"; anything
// else is a real I/O failure and must propagate.
var ErrNotFound = errors.New("snapshot: blob not found")

// Store is the key-value blob backend. Writes are whole-blob overwrites:
// calling Put twice for the same key replaces the blob, it does not
// append. Keys never collide across agents, so no fine-grained locking is
// needed above this interface.
type Store interface {
	Put(ctx context.Context, namespace, key string, data []byte) error
	Get(ctx context.Context, namespace, key string) ([]byte, error)
}

// Blob namespaces. Raw and normalized record sets are partitioned per
// agent; dashboard reports live under their own namespace keyed by day.
const (
	nsRaw        = "intel/raw"
	nsNormalized = "intel/normalized"
	nsReports    = "reports/dashboard"

	// reportKeyPrefix prefixes the day key of the dashboard artifact.
	reportKeyPrefix = "daily-"
)
