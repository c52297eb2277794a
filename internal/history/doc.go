// Package history records every upload run in a small SQLite database so
// earlier share URLs can be found again with "gfyup history".
//
// A row is inserted when a run starts (state "running") and updated once it
// ends. Upload ticket secrets are never written. Schema changes bump the
// version in schema.go; users delete the database to adopt the new schema.
package history
