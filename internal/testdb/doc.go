//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database. Tests using it are compiled only with the
// integration build tag and are skipped when no database URL is set.
//
// Two isolation styles are supported: WithTx runs a test inside a
// transaction that is always rolled back, and ResetTables truncates every
// application table for tests that need committed data visible across
// connections, such as concurrency tests.
package testdb
