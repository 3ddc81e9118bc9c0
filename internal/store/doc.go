// Package store keeps a SQLite history of translations.
//
// Each row records one rendering of one parsed query: the source text, the
// canonical JSON tree, its content hash, the dialect and layout, and the
// output. Rows are keyed by (query_hash, dialect, compact); writing the
// same translation twice keeps the first row.
//
// # Ordering
//
// seq is an AUTOINCREMENT logical clock. Listings order by seq, never by
// wall time, so identical write sequences produce identical listings.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Query hashes and tree JSON come from internal/ir: RFC 8785 canonical JSON
// and SHA-256 with domain separation.
package store
