// Package auth issues and validates HMAC-signed JWT access and refresh
// tokens, and verifies bcrypt password hashes.
package auth
