// Package lib groups integrations that sit beside the request path:
// background jobs on asynq and e-mail delivery through Resend.
package lib
