// Package store provides a SQLite-backed library of named material catalogs.
//
// A saved catalog is a snapshot: its entries plus the fingerprint computed
// by material.Catalog.Fingerprint at save time. Loading rebuilds the
// catalog through material.NewCatalog, so stored rows go through the same
// validation as CUE and YAML sources, and the fingerprint is checked again.
//
// Only catalog definitions are stored. Evaluation results are never
// persisted.
//
// # Database Configuration
//
// Connection settings are passed as go-sqlite3 DSN options. The library
// format version lives in PRAGMA user_version; Open refuses files written
// with a newer format.
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity (material rows cascade
//     with their catalog)
package store
