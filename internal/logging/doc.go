// Package logging builds the structured loggers used by gfyup.
//
// Two handlers are available: a human-oriented console format that prints
// the component as a prefix followed by key=value pairs, and a JSON format
// for machine consumption. When a log directory is configured every line is
// also appended to gfyup.log inside it. WithContext copies the run
// identifier and stage stored on a context onto a child logger so a single
// upload can be followed across the trimmer, the remote client and the
// workflow runner.
package logging
