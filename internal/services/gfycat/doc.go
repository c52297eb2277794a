// Package gfycat talks to the remote hosting service: it requests upload
// tickets, streams multipart uploads to the filedrop endpoint, and fetches
// the transcoding status of an uploaded clip.
//
// Every call is a single attempt. Non-2xx responses and connection failures
// are marked services.ErrTransport; bodies that do not match the expected
// JSON shape are marked services.ErrDecode. Retrying status fetches is the
// caller's decision.
package gfycat
