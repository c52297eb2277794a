// Package preflight provides readiness checks for the filesystem paths,
// external binaries and remote endpoints that an upload depends on.
//
// The "gfyup check" command renders these results as a table. A failing
// check does not block an upload; the workflow reports its own typed errors.
package preflight
