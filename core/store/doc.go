// Package store is the local cache of the last known merged user list.
//
// A Store is a small key-value document keyed by dataset name ("users" at
// minimum). It is opened once at startup, injected into the reconcile engine and
// closed on exit.
//
// # Drivers
//
//   - file (default): one JSON document on disk (.store.json).
//   - database: rows in a store_entries table through GORM (MySQL or SQLite).
//   - object: the same JSON document kept as one object in S3/MinIO.
//
// # Consistency
//
// Every Set is a read-modify-write of the whole document without locking. Two
// processes writing concurrently race and the last writer wins; earlier writes are
// lost. This is acceptable for a single-operator CLI and nothing more.
//
// Only key hints are ever persisted, never full API keys or admin credentials.
package store
