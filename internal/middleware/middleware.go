// Package middleware holds the echo middleware chain: request ids,
// New Relic tracing, the request-scoped logger, rate limiting, access
// logging and the global error handler.
package middleware
