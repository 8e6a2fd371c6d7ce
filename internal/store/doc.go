// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations accept a DBTX so the same
// store can run against the connection pool or inside a transaction.
package store
