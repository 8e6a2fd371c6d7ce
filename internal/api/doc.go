// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the application services in
// internal/service and is the single place where errors become status codes.
package api
