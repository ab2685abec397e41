// Package service holds the business rules between handlers and
// repositories. Services return *errs.HTTPError values that the global
// error handler can render directly.
package service
