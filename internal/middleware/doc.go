// Package middleware provides HTTP middleware for the Cuppa API.
//
// The server chain, outermost first:
//
//	RequestID → Tracing → Logger → Recovery → CORS → Compress → Metrics → mux
//
// Metrics must sit directly on the ServeMux so it can read the matched
// route pattern from the request.
//
// Per-route middleware is applied inside the mux:
//
//   - Auth: requires a valid RS256 bearer token
//   - OptionalAuth: resolves the user when a valid token is present
//   - RequireAdmin: requires the admin role (after Auth)
//   - RateLimit: sliding window keyed by user ID, falling back to client IP
//
// Handlers read the caller with GetUserID(ctx) and GetClaims(ctx).
package middleware
