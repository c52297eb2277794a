// Package main hosts the gfyup CLI entrypoint and command graph.
//
// The root command accepts an input file with optional -s/-e trim bounds and
// runs a single upload. Subcommands expose the same upload with explicit
// flags, the local upload history, a dependency check and configuration
// scaffolding. Configuration resolution and logger setup live in
// commandContext so each command only wires the internal packages it needs.
package main
