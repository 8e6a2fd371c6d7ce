// Package postgres provides PostgreSQL-specific implementations of the
// storage interfaces defined in internal/store. It handles query execution,
// mapping between domain entities and rows, and translation of PostgreSQL
// error codes into store errors.
//
// Schema migrations live in the migrations subpackage and are embedded into
// the binary.
package postgres
