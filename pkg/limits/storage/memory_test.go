package storage

import (
	"context"
	"testing"
	"time"

	"telepace/telepace/pkg/limits"
)

// ============================================================================
// Memory Backend Tests
// ============================================================================

func TestMemoryBackend_EmptyLoad(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()

	snap, err := backend.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap != nil {
		t.Errorf("Expected nil snapshot from empty backend, got %+v", snap)
	}
}

func TestMemoryBackend_SaveLoad(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()

	ctx := context.Background()
	want := limits.Snapshot{
		TotalRequests:        42,
		SuccessfulRequests:   40,
		ResolveRequestsToday: 7,
		ResolveLastReset:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := backend.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := backend.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected snapshot, got nil")
	}
	if got.TotalRequests != want.TotalRequests || got.ResolveRequestsToday != want.ResolveRequestsToday {
		t.Errorf("Snapshot mismatch: got %+v, want %+v", got, want)
	}
}

func TestMemoryBackend_SaveReplaces(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()

	ctx := context.Background()
	backend.SaveSnapshot(ctx, limits.Snapshot{TotalRequests: 1})
	backend.SaveSnapshot(ctx, limits.Snapshot{TotalRequests: 2})

	got, err := backend.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.TotalRequests != 2 {
		t.Errorf("Expected latest snapshot, got total %d", got.TotalRequests)
	}
}
