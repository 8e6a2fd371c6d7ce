// Package service contains the application use cases. It orchestrates the
// stores defined in internal/store and the pure domain logic in
// internal/domain, owns transaction boundaries, and translates store errors
// into domain error kinds that the API layer maps to status codes.
//
// Services:
//
//   - UserService: registration and phone/password authentication
//   - ReviewService: review submission with implicit place creation
//   - PlaceService: place search with rating filters, and place detail
//
// Metrics decorators in metrics.go wrap PlaceService and ReviewService with
// Prometheus call, error, and duration metrics.
package service
