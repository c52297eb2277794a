// Package trim clips a source video to an optional start/end window by
// running the configured ffmpeg binary with stream copy. When neither bound
// is supplied no process is started and the caller is expected to copy the
// input verbatim.
package trim
