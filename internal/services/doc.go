// Package services defines shared utilities consumed by the upload workflow and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and stage names for logging.
//   - Structured error markers plus the Wrap helper so every failure names the
//     stage it came from and can be classified with errors.Is.
//
// Use these helpers when wiring new stage logic so error reporting stays
// uniform across trimming, ticketing, uploading, and polling.
package services
