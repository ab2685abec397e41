// Package errs defines the error shapes returned to API clients.
//
// Services return *HTTPError values; the global error handler renders
// them as JSON with a stable code, a message and the HTTP status.
package errs
