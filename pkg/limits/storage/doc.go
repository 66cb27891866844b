// Package storage provides persistence backends for limiter usage
// snapshots.
//
// # Overview
//
// The limiter's cumulative counters, most importantly the daily resolve
// quota, should survive a process restart. A Backend persists the
// latest Snapshot and returns it on startup so the limiter resumes
// where it left off.
//
// Two backends are provided:
//
//   - MemoryBackend: keeps the snapshot in memory. Used in tests and
//     when persistence is disabled.
//   - SQLiteBackend: durable single-file storage using modernc.org/sqlite
//     with WAL journaling.
//
// # Usage
//
//	backend, err := storage.NewSQLiteBackend("data/telepace.db")
//	if err != nil {
//		return err
//	}
//	defer backend.Close()
//
//	snap, err := backend.LoadSnapshot(ctx)
//	if err == nil && snap != nil {
//		limiter.Tracker().Restore(*snap)
//	}
package storage
