// Package notifications publishes run outcomes to ntfy.
//
// NewService returns a no-op publisher when no topic is configured, so callers
// can publish unconditionally. Only finished and failed uploads (plus the
// manual test event) produce a message.
package notifications
