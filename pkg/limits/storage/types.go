package storage

import (
	"context"

	"telepace/telepace/pkg/limits"
)

// Backend is the interface for snapshot persistence.
//
// Implementations must be safe for concurrent use. LoadSnapshot returns
// (nil, nil) when no snapshot has been saved yet.
type Backend interface {
	// SaveSnapshot persists the snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snap limits.Snapshot) error

	// LoadSnapshot returns the most recently saved snapshot, or nil if
	// none exists.
	LoadSnapshot(ctx context.Context) (*limits.Snapshot, error)

	// Close releases any resources held by the backend.
	Close() error
}
