// Package tasks orchestrates long-running catalog operations with real-time progress reporting.
//
// # Core Operation
//
// [Exporter.BulkExport] writes every playlist owned by a user to disk:
//   - Lists the user's playlists, favorites first
//   - Loads each playlist's membership with the user's favorite flags
//   - Exports concurrently through a bounded worker pool
//   - Writes a manifest file summarizing successes and failures
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default
// to prevent blocking.
//
// Partial failures are reported per playlist rather than aborting the run,
// so one broken export never loses the rest of the library.
package tasks
