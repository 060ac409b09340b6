// Package handler provides the HTTP handlers of the Cuppa API.
//
// Each handler struct wraps one service, declared here as a small
// interface so handlers can be tested with function-field mocks.
//
// # Response Format
//
// Handlers use the helpers in response.go:
//
//   - WriteData: single resource as {"data": ..., "_links": {...}}
//   - WriteCollection: list with optional offset pagination
//   - WriteError: RFC 9457 problem details (application/problem+json)
//
// Request bodies are decoded strictly (unknown fields rejected) and
// checked with go-playground/validator struct tags before reaching a
// service. Service sentinel errors are mapped by MapServiceError.
//
// # Authentication
//
// Route registration decides which endpoints run behind middleware.Auth
// or middleware.OptionalAuth; handlers read the caller with
// middleware.GetUserID.
package handler
