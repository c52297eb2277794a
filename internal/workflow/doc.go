// Package workflow runs one upload from start to finish: it validates the
// input, takes an advisory lock on the output path, trims or copies the
// source, requests a ticket, uploads the file and polls until the remote
// service reports the clip complete.
//
// Progress is delivered to a Reporter as milestone events; structured logs
// carry the run_id and stage of every step. Each run is recorded in the
// upload history when a Recorder is supplied.
//
// With background upload enabled the upload and the poll loop run as two
// tasks of an errgroup. The run succeeds only when the poll loop has seen a
// terminal status and the upload task has returned without error; whichever
// fails first cancels the other.
package workflow
